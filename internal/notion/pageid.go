// internal/notion/pageid.go
package notion

import (
	"fmt"
	"strings"
)

const rawPageIDLen = 32

// ExtractPageID isolates the 32-character page ID from a Notion URL and
// formats it with hyphens in the 8-4-4-4-12 pattern the API expects.
func ExtractPageID(url string) (string, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(url), "/")
	parts := strings.Split(trimmed, "/")
	last := parts[len(parts)-1]

	if idx := strings.Index(last, "?"); idx >= 0 {
		last = last[:idx]
	}

	rawID := last
	if len(last) > rawPageIDLen {
		rawID = last[len(last)-rawPageIDLen:]
	}

	if len(rawID) != rawPageIDLen {
		return "", fmt.Errorf("invalid Notion page ID: must be %d characters long", rawPageIDLen)
	}

	return fmt.Sprintf("%s-%s-%s-%s-%s",
		rawID[0:8], rawID[8:12], rawID[12:16], rawID[16:20], rawID[20:32],
	), nil
}
