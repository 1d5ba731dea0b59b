package i18n

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want language.Tag
	}{
		{"nothing set", nil, English},
		{"english locale", map[string]string{"LANG": "en_US.UTF-8"}, English},
		{"chinese locale", map[string]string{"LANG": "zh_CN.UTF-8"}, Chinese},
		{"taiwan locale", map[string]string{"LANG": "zh_TW.UTF-8"}, Chinese},
		{"posix", map[string]string{"LANG": "C"}, English},
		{"LANG wins over LANGUAGE", map[string]string{"LANG": "en_GB", "LANGUAGE": "zh_CN"}, English},
		{"LANGUAGE list", map[string]string{"LANGUAGE": "zh_CN:en"}, Chinese},
		{"LC_ALL last", map[string]string{"LC_ALL": "zh_CN.GB18030"}, Chinese},
		{"modifier stripped", map[string]string{"LANG": "zh_CN@pinyin"}, Chinese},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(envOf(tt.env)))
		})
	}
}

func TestResolve(t *testing.T) {
	env := envOf(map[string]string{"LANG": "zh_CN.UTF-8"})

	assert.Equal(t, English, Resolve("en", env), "explicit setting wins")
	assert.Equal(t, Chinese, Resolve("", env), "empty setting falls back to locale")
	assert.Equal(t, Chinese, Resolve("%%", env), "unparsable setting falls back to locale")
}

func TestSupported(t *testing.T) {
	for _, v := range []string{"en", "zh-CN", "zh", "en_US.UTF-8"} {
		assert.True(t, Supported(v), v)
	}
	for _, v := range []string{"", "%%", "C"} {
		assert.False(t, Supported(v), v)
	}
}

func TestTranslator(t *testing.T) {
	en := New(English)
	assert.Equal(t, "Current editor: Cursor", en.T(MsgCurrentEditor, "Cursor"))
	assert.Equal(t, "All required extensions are installed in VSCode", en.T(MsgAllExtensionsInstalled, "VSCode"))

	zh := New(Chinese)
	assert.Equal(t, "当前编辑器：Cursor", zh.T(MsgCurrentEditor, "Cursor"))

	fr := New(language.French)
	assert.Equal(t, English, fr.Tag(), "unsupported tags fall back to English")
}

func TestCatalogComplete(t *testing.T) {
	for key := range messages[English] {
		if _, ok := messages[Chinese][key]; !ok {
			t.Errorf("Chinese catalog missing %q", key)
		}
	}
	for key := range messages[Chinese] {
		if _, ok := messages[English][key]; !ok {
			t.Errorf("English catalog missing %q", key)
		}
	}

	en := New(English)
	for key := range messages[English] {
		if got := en.T(key, "x", "y"); strings.HasPrefix(got, "error.") || strings.HasPrefix(got, "info.") {
			t.Errorf("T(%q) returned the key, catalog lookup failed", key)
		}
	}
}
