// AngelaMos | 2026
// sanitize.go

package core

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy = bluemonday.StrictPolicy()
	ugcPolicy    = bluemonday.UGCPolicy()
)

// PlainText strips every tag from s and returns the remaining text
// unescaped, so "Tom & Jerry" is stored as typed.
func PlainText(s string) string {
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// RichText keeps basic formatting markup. Input without any markup is
// returned unchanged.
func RichText(s string) string {
	if PlainText(s) == s {
		return s
	}
	return ugcPolicy.Sanitize(s)
}
