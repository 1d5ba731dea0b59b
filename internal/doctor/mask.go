package doctor

import "strings"

// SensitiveKeyPatterns contains substrings that mark an environment
// variable as carrying a session identifier or credential. Keys are
// matched case-insensitively.
var SensitiveKeyPatterns = []string{
	"TRACE_ID",
	"SESSION",
	"TOKEN",
	"SECRET",
	"PASSWORD",
}

// MaskEnv returns a copy of env with sensitive values masked.
func MaskEnv(env map[string]string) map[string]string {
	if env == nil {
		return nil
	}

	masked := make(map[string]string, len(env))
	for k, v := range env {
		if ShouldMask(k) {
			masked[k] = MaskValue(v)
		} else {
			masked[k] = v
		}
	}
	return masked
}

// MaskValue masks a sensitive value. Values with 4 or fewer characters
// are fully masked; longer ones keep their last 4 characters.
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// ShouldMask reports whether the key name suggests sensitive data.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range SensitiveKeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}
