package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// maxStripPasses bounds StripTags on input whose fragments reassemble
// into new tags after a pass, such as "<<b>i>".
const maxStripPasses = 8

var (
	textPolicy *bluemonday.Policy
	safePolicy *bluemonday.Policy
	initOnce   sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		// No element is allowed, so script and style never reach the
		// output as tags; AllowUnsafe only keeps their text.
		textPolicy = bluemonday.StrictPolicy().
			AllowUnsafe(true).
			AllowElementsContent("script", "style", "title")

		safePolicy = bluemonday.NewPolicy()
		safePolicy.AllowStandardURLs()
		safePolicy.AllowElements(
			"p", "br",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
		)
		safePolicy.AllowAttrs("href").OnElements("a")
		safePolicy.RequireNoFollowOnLinks(true)
	})
}

// StripTags removes every tag, comment and doctype from s and keeps the
// text between them, including the text of script and style elements.
// Entities already present in s are left as written and whitespace is
// preserved, so the result is plain text for a template to escape on
// output.
//
//	StripTags("<b>Page</b> - Site") // "Page - Site"
//	StripTags("&lt;b&gt;")          // "&lt;b&gt;"
func StripTags(s string) string {
	initPolicies()

	for range maxStripPasses {
		// Escaping "&" first makes the final unescape undo only what
		// bluemonday added.
		next := html.UnescapeString(textPolicy.Sanitize(strings.ReplaceAll(s, "&", "&amp;")))
		if next == s {
			return s
		}
		s = next
	}
	return s
}

// SanitizeHTML keeps basic formatting tags (p, a, strong, em, lists, code)
// and drops scripts, event handlers, and javascript: URLs.
func SanitizeHTML(s string) string {
	initPolicies()
	return safePolicy.Sanitize(s)
}
