// SPDX-License-Identifier: MIT

// Package playlist parses and writes M3U channel playlists.
package playlist

import (
	"strings"
)

// Item represents a single channel entry from an M3U playlist.
type Item struct {
	Name    string // display name after the last comma of the EXTINF line
	TvgID   string
	TvgName string
	Logo    string
	Group   string
	URL     string
	Raw     string // raw EXTINF line
}

// attr extracts a quoted attribute value like tvg-id="..." from an
// EXTINF line. Returns "" when absent or unterminated.
func attr(line, name string) string {
	marker := name + `="`
	idx := strings.Index(line, marker)
	if idx == -1 {
		return ""
	}
	rest := line[idx+len(marker):]
	end := strings.Index(rest, `"`)
	if end == -1 {
		return ""
	}
	return rest[:end]
}

// Parse parses M3U content into channel items. Entries without a URL
// line are dropped; unknown directives are ignored.
func Parse(content string) []Item {
	var items []Item
	var current Item
	var pending bool

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "#EXTINF:"):
			current = Item{
				Raw:     line,
				TvgID:   attr(line, "tvg-id"),
				TvgName: attr(line, "tvg-name"),
				Logo:    attr(line, "tvg-logo"),
				Group:   attr(line, "group-title"),
			}
			if idx := strings.LastIndex(line, ","); idx != -1 {
				current.Name = strings.TrimSpace(line[idx+1:])
			}
			pending = true
		case line == "" || strings.HasPrefix(line, "#"):
			// blank line or other directive
		default:
			if !pending {
				continue // URL with no preceding EXTINF
			}
			current.URL = line
			items = append(items, current)
			current = Item{}
			pending = false
		}
	}
	return items
}
