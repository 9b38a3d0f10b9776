// Package sanitizer strips or restricts HTML in user- and config-supplied
// strings using bluemonday policies.
//
// StripTags removes all markup and keeps the text, leaving entities and
// whitespace exactly as written; the controller uses it when composing
// page titles and descriptions. SanitizeHTML allows a small set of
// formatting tags for rich text such as post summaries.
package sanitizer
