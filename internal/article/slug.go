package article

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var nonSlugChars = regexp.MustCompile(`[^\w\s-]`)
var whitespace = regexp.MustCompile(`\s+`)

// GenerateSlug 由标题生成URL安全的slug
// 小写、去掉非法字符、空白折叠为中划线
func GenerateSlug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonSlugChars.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(strings.TrimSpace(s), "-")
	return s
}

// uniqueSlug 在slug冲突时追加短随机后缀
func uniqueSlug(slug string) string {
	return slug + "-" + uuid.New().String()[:8]
}

var markdownMarks = strings.NewReplacer("#", "", "*", "", "`", "", "_", "", "~", "", "\n", " ")

// GenerateExcerpt 未提供摘要时从正文截取
func GenerateExcerpt(content string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = 160
	}
	plain := strings.TrimSpace(markdownMarks.Replace(content))
	runes := []rune(plain)
	if len(runes) <= maxLength {
		return plain
	}
	return string(runes[:maxLength]) + "..."
}
