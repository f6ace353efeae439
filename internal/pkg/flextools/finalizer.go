package flextools

import "strings"

// Finalize 去除首尾空白，空结果返回 *EmptyOutputError
func Finalize(raw string, platform Platform) (GeneratedPost, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return GeneratedPost{}, &EmptyOutputError{}
	}
	return GeneratedPost{Text: text, Platform: platform}, nil
}
