package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var contentPolicy = bluemonday.StrictPolicy()

// sanitizeContent strips markup from user-submitted content before it is
// persisted or indexed.
func sanitizeContent(content string) string {
	// Replace block tags with spaces first so adjacent lines don't merge.
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	content = strings.ReplaceAll(content, "</div>", " ")

	sanitized := contentPolicy.Sanitize(content)
	cleaned := html.UnescapeString(sanitized)

	return strings.TrimSpace(strings.Join(strings.Fields(cleaned), " "))
}
