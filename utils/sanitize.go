package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var ugcPolicy = bluemonday.UGCPolicy()

// SanitizeComment strips markup the UGC policy does not allow and trims surrounding whitespace.
func SanitizeComment(input string) string {
	return strings.TrimSpace(ugcPolicy.Sanitize(input))
}
