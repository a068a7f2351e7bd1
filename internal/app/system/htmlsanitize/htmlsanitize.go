// Package htmlsanitize strips unsafe HTML from user-supplied text.
//
// Rich-text nodes imported from bulk payloads can carry raw markup inside
// their text fields; everything that ends up stored and later rendered runs
// through Sanitize first.
package htmlsanitize

import (
	"strings"
	"sync"

	"github.com/dalemusser/eduhub/internal/domain/models"
	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// contentPolicy returns the shared sanitization policy: bluemonday's UGC
// policy extended with the formatting the rich-text editor emits (underline,
// strikethrough, sub/sup, mark, and classed tables). Scripts, event handler
// attributes, and javascript: URLs are removed.
func contentPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowElements("u", "s", "sub", "sup", "mark")
		p.AllowAttrs("class").OnElements("table", "thead", "tbody", "tr", "th", "td")
		p.AllowAttrs("colspan", "rowspan").OnElements("th", "td")
		policy = p
	})
	return policy
}

// Sanitize returns s with unsafe HTML removed.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return contentPolicy().Sanitize(s)
}

// IsPlainText reports whether s contains no HTML tags at all.
func IsPlainText(s string) bool {
	return !strings.ContainsAny(s, "<>")
}

// Document returns a copy of the rich-text tree with every text node
// sanitized.
func Document(rt models.RichText) models.RichText {
	rt.Text = Sanitize(rt.Text)
	for i := range rt.Content {
		rt.Content[i] = Document(rt.Content[i])
	}
	return rt
}
