package dataset

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// LineSeparator joins the lines of a multi-line value
	LineSeparator = ", "
	// SkillSeparator joins the lines of a key_skills value in table mode
	SkillSeparator = "# "
)

// CleanField strips HTML markup, joins lines with sep and collapses runs of whitespace
func CleanField(value, sep string) string {
	value = StripTags(value)
	if strings.Contains(value, "\n") {
		value = strings.Join(strings.Split(value, "\n"), sep)
	}
	return strings.Join(strings.Fields(value), " ")
}

// StripTags returns the text content of an HTML fragment with entities decoded.
// A '<' that no later '>' closes is kept as text.
func StripTags(value string) string {
	if !strings.ContainsAny(value, "<&") {
		return value
	}

	if end := strings.LastIndexByte(value, '>'); strings.IndexByte(value[end+1:], '<') >= 0 {
		value = value[:end+1] + strings.ReplaceAll(value[end+1:], "<", "&lt;")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(value))
	if err != nil {
		return value
	}
	return doc.Text()
}
