package util

import "strings"

// TruncateTitle 会话标题截断：超过50字符时截断并追加省略号
func TruncateTitle(s string) string {
	const max = 50
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// StripCodeFences 去掉LLM响应外层的markdown代码围栏
func StripCodeFences(s string) string {
	out := strings.TrimSpace(s)
	out = strings.TrimPrefix(out, "```json")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(out, "```")
	return strings.TrimSpace(out)
}
