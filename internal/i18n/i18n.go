// Package i18n holds the user-facing message catalog of extcheck and
// picks its language from configuration or the process locale.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. Placeholders are positional fmt verbs.
const (
	MsgNoEditorCLI              = "error.no_editor_cli"
	MsgCannotGetExtensions      = "error.cannot_get_extensions"    // editor
	MsgCLIConflict              = "error.vscode_cli_conflict"      //
	MsgInvalidConfig            = "error.invalid_config"           // detail
	MsgMultipleEditorsDetected  = "info.multiple_editors_detected" // editor list
	MsgCurrentEditor            = "info.current_editor"            // editor
	MsgActiveEditorPrefix       = "info.active_prefix"             // editor
	MsgMissingExtensions        = "info.missing_extensions"        // extension list
	MsgActiveEditorDetected     = "info.active_editor_detected"    // editor
	MsgTerminalWarning          = "info.terminal_warning"
	MsgTerminalSuggestion       = "info.terminal_suggestion"
	MsgEditorMissingExtensions  = "info.editor_missing_extensions" // editor, extension list
	MsgAllExtensionsInstalled   = "success.all_extensions_installed"
	MsgInstallCommandsHeader    = "install.commands_header"
	MsgInstallCommandsCopyHint  = "install.commands_copy_hint"
	MsgInstallCommandsBatch     = "install.commands_batch"
	MsgInstalling               = "install.running"   // extension, editor
	MsgInstallSucceeded         = "install.succeeded" // extension, editor
	MsgInstallFailed            = "install.failed"    // extension, editor
	MsgNothingToInstall         = "install.nothing"   // editor
	MsgInstallSummaryIncomplete = "install.incomplete"
)

var (
	// English is the fallback language.
	English = language.English
	// Chinese is Simplified Chinese.
	Chinese = language.SimplifiedChinese
)

var messages = map[language.Tag]map[string]string{
	English: {
		MsgNoEditorCLI:              "No available editor CLI detected. Please ensure VSCode, Cursor, or WindSurf is installed with Shell commands enabled.",
		MsgCannotGetExtensions:      "Cannot get extension list for %s. Please ensure CLI is available.",
		MsgCLIConflict:              "Detected you are running script in VSCode, but system code command points to other editor.\nPlease run \"Shell Command: Install 'code' command in PATH\" in VSCode.",
		MsgInvalidConfig:            "Invalid configuration: %s",
		MsgMultipleEditorsDetected:  "Detected multiple editors running: %s",
		MsgCurrentEditor:            "Current editor: %s",
		MsgActiveEditorPrefix:       "Active %s",
		MsgMissingExtensions:        "Missing extensions: %s",
		MsgActiveEditorDetected:     "🔍 Detected %s is running, checked its extension status.",
		MsgTerminalWarning:          "⚠️ Detected you are running script in regular terminal, editor detection may be inaccurate.",
		MsgTerminalSuggestion:       "💡 Recommend running this script in your actual editor's integrated terminal for more accurate results.",
		MsgEditorMissingExtensions:  "⚠️ %s missing extensions: %s",
		MsgAllExtensionsInstalled:   "All required extensions are installed in %s",
		MsgInstallCommandsHeader:    "Installation commands:",
		MsgInstallCommandsCopyHint:  "💡 Installation commands (copy and run):",
		MsgInstallCommandsBatch:     "Or install all at once:",
		MsgInstalling:               "Installing %s into %s",
		MsgInstallSucceeded:         "Installed %s into %s",
		MsgInstallFailed:            "Failed to install %s into %s",
		MsgNothingToInstall:         "Nothing to install for %s",
		MsgInstallSummaryIncomplete: "Some extensions could not be installed. Run the commands above manually.",
	},
	Chinese: {
		MsgNoEditorCLI:              "未检测到可用的编辑器 CLI。请确保已安装 VSCode、Cursor 或 WindSurf 并启用 Shell 命令。",
		MsgCannotGetExtensions:      "无法获取 %s 的插件列表。请确认 CLI 可用。",
		MsgCLIConflict:              "检测到您在 VSCode 中运行脚本，但系统的 code 命令指向其他编辑器。\n请在 VSCode 中执行 \"Shell Command: Install 'code' command in PATH\" 来安装 VSCode CLI。",
		MsgInvalidConfig:            "配置无效：%s",
		MsgMultipleEditorsDetected:  "检测到多个编辑器正在运行：%s",
		MsgCurrentEditor:            "当前编辑器：%s",
		MsgActiveEditorPrefix:       "活跃的 %s",
		MsgMissingExtensions:        "缺少插件：%s",
		MsgActiveEditorDetected:     "🔍 检测到 %s 正在运行，已检查其插件状态。",
		MsgTerminalWarning:          "⚠️ 检测到您在普通终端中运行脚本，编辑器检测可能不准确。",
		MsgTerminalSuggestion:       "💡 建议在您实际使用的编辑器内置终端中运行此脚本以获得更准确的结果。",
		MsgEditorMissingExtensions:  "⚠️ %s 缺少插件：%s",
		MsgAllExtensionsInstalled:   "%s 已安装所有必要插件",
		MsgInstallCommandsHeader:    "安装命令：",
		MsgInstallCommandsCopyHint:  "💡 安装命令（复制即用）:",
		MsgInstallCommandsBatch:     "或者一次性安装：",
		MsgInstalling:               "正在将 %s 安装到 %s",
		MsgInstallSucceeded:         "已将 %s 安装到 %s",
		MsgInstallFailed:            "无法将 %s 安装到 %s",
		MsgNothingToInstall:         "%s 无需安装插件",
		MsgInstallSummaryIncomplete: "部分插件安装失败，请手动运行上面的命令。",
	},
}

var cat = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(English))
	for tag, msgs := range messages {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic("i18n: invalid message " + key + ": " + err.Error())
			}
		}
	}
	return b
}

// Translator renders catalog messages in one language.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Translator for tag. Unsupported tags fall back to English.
func New(tag language.Tag) *Translator {
	tag = match(tag)
	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(cat)),
	}
}

// Tag returns the language the Translator renders.
func (t *Translator) Tag() language.Tag {
	return t.tag
}

// T renders the message for key with positional args.
func (t *Translator) T(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// Resolve picks the language: an explicit setting wins, then the first
// non-empty of LANG, LANGUAGE and LC_ALL.
func Resolve(setting string, getenv func(string) string) language.Tag {
	if setting != "" {
		if tag, ok := Parse(setting); ok {
			return tag
		}
	}
	return Detect(getenv)
}

// Detect reads the locale variables in the order LANG, LANGUAGE, LC_ALL.
func Detect(getenv func(string) string) language.Tag {
	for _, key := range []string{"LANG", "LANGUAGE", "LC_ALL"} {
		if v := getenv(key); v != "" {
			tag, _ := Parse(v)
			return tag
		}
	}
	return English
}

// Parse maps a setting or POSIX locale value such as "zh_CN.UTF-8" to a
// supported language. Chinese is chosen for a zh base language or a CN/TW
// region; everything else is English. ok is false when the value could
// not be parsed at all.
func Parse(value string) (language.Tag, bool) {
	v := value
	if i := strings.IndexByte(v, ':'); i >= 0 {
		v = v[:i]
	}
	if i := strings.IndexAny(v, ".@"); i >= 0 {
		v = v[:i]
	}
	v = strings.ReplaceAll(v, "_", "-")

	tag, err := language.Parse(v)
	if err != nil {
		return English, false
	}
	return match(tag), true
}

// Supported reports whether value names a language Parse understands.
func Supported(value string) bool {
	_, ok := Parse(value)
	return ok
}

func match(tag language.Tag) language.Tag {
	if base, _ := tag.Base(); base.String() == "zh" {
		return Chinese
	}
	if region, conf := tag.Region(); conf == language.Exact {
		switch region.String() {
		case "CN", "TW":
			return Chinese
		}
	}
	return English
}
