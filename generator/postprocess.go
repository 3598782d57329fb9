package generator

import (
	"regexp"
	"strings"
)

var titlePattern = regexp.MustCompile(`(?m)^#{1,2}\s+(.+)$`)

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ExtractTitle returns the first Markdown heading, or "" when there is none.
func ExtractTitle(md string) string {
	m := titlePattern.FindStringSubmatch(md)
	if len(m) >= 2 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// Summarize 取首个非标题段落作为摘要，超长时截断到 limit 个字符。
func Summarize(md string, limit int) string {
	digest := extractDigest(md)
	if digest == "" {
		digest = strings.Join(strings.Fields(md), " ")
	}
	return truncateRunes(digest, limit)
}

func extractDigest(md string) string {
	for _, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		return trimmed
	}
	return ""
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
