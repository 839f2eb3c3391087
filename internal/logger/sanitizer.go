package logger

import (
	"regexp"
	"strings"
)

const masked = "***MASKED***"

// センシティブなキーのパターン（大文字小文字を区別しない）
var sensitiveKeyPatterns = []string{
	"password",
	"token",
	"secret",
	"github_token",
	"gitlab_token",
	"private_token",
	"authorization",
	"credential",
	"access_token",
}

// センシティブな値のパターン
var sensitiveValuePatterns = []*regexp.Regexp{
	// GitHub personal access tokens / app / user / installation / refresh
	regexp.MustCompile(`^gh[psuor]_[A-Za-z0-9]{36,}$`),
	// GitHub fine-grained personal access tokens
	regexp.MustCompile(`^github_pat_[A-Za-z0-9_]{22,}$`),
	// GitLab personal / project access tokens
	regexp.MustCompile(`^glpat-[A-Za-z0-9\-_]{20,}$`),
	// Authorization Bearer tokens
	regexp.MustCompile(`(?i)^Bearer\s+[A-Za-z0-9\-_\.]{20,}$`),
	// Token headers
	regexp.MustCompile(`(?i)^token\s+[A-Za-z0-9\-_\.]{20,}$`),
}

// 伏せ字にするときに残すプレフィックス
var preservedPrefixes = []string{
	"ghp_", "ghs_", "ghu_", "gho_", "ghr_",
	"github_pat_",
	"glpat-",
	"Bearer ",
	"token ",
}

// SanitizeValue は値がセンシティブな場合にマスクした値を返す
func SanitizeValue(value interface{}) interface{} {
	if isSensitiveValue(value) {
		return maskValue(value)
	}
	return value
}

// SanitizeKeyValue はキーと値の組をチェックし、センシティブな情報をマスクする
func SanitizeKeyValue(key string, value interface{}) (string, interface{}) {
	if isSensitiveKey(key) {
		if isSensitiveValue(value) {
			return key, maskValue(value)
		}
		if s, ok := value.(string); ok && s == "" {
			return key, ""
		}
		return key, masked
	}

	if isSensitiveValue(value) {
		return key, maskValue(value)
	}

	return key, value
}

// SanitizeArgs はログ引数（key-valueペア）をサニタイズしたコピーを返す
func SanitizeArgs(args ...interface{}) []interface{} {
	if len(args) == 0 {
		return args
	}

	sanitized := make([]interface{}, len(args))
	copy(sanitized, args)

	for i := 0; i < len(sanitized)-1; i += 2 {
		if key, ok := sanitized[i].(string); ok {
			_, sanitized[i+1] = SanitizeKeyValue(key, sanitized[i+1])
		}
	}

	return sanitized
}

// isSensitiveKey はキーがセンシティブかどうかを判定する
func isSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)
	lowerKey = strings.ReplaceAll(lowerKey, ".", "_")

	for _, pattern := range sensitiveKeyPatterns {
		if lowerKey == pattern ||
			strings.HasPrefix(lowerKey, pattern+"_") ||
			strings.HasSuffix(lowerKey, "_"+pattern) ||
			strings.Contains(lowerKey, "_"+pattern+"_") {
			return true
		}
	}

	return false
}

// isSensitiveValue は値がセンシティブかどうかを判定する
func isSensitiveValue(value interface{}) bool {
	str, ok := value.(string)
	if !ok || str == "" {
		return false
	}

	for _, pattern := range sensitiveValuePatterns {
		if pattern.MatchString(str) {
			return true
		}
	}

	return false
}

// maskValue はセンシティブな値をマスクする（既知のプレフィックスは保持）
func maskValue(value interface{}) string {
	str, ok := value.(string)
	if !ok || str == "" {
		return masked
	}

	for _, prefix := range preservedPrefixes {
		if strings.HasPrefix(str, prefix) {
			return prefix + masked
		}
	}

	return masked
}
