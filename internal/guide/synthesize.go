// SPDX-License-Identifier: MIT

package guide

import (
	"fmt"
	"time"

	"epgweaver/internal/xmltv"
)

// Synthesis defaults: 48 one-hour blocks.
const (
	DefaultBlockCount = 48
	DefaultBlockHours = 1
)

// Synthesize generates a gapless placeholder schedule for a channel
// the Reconciler produced no entries for. It emits blockCount
// contiguous entries of blockHours width starting at anchor rounded
// down to the hour, keyed by the playlist channel's own identifier.
// Output is deterministic for identical inputs.
func Synthesize(ch ChannelRecord, blockCount, blockHours int, anchor time.Time) []Entry {
	if blockCount <= 0 || blockHours <= 0 {
		return nil
	}
	name := ch.DisplayName
	if name == "" {
		name = ch.Identity()
	}
	identity := ch.Identity()
	anchor = anchor.Truncate(time.Hour)
	width := time.Duration(blockHours) * time.Hour

	entries := make([]Entry, 0, blockCount)
	for i := 0; i < blockCount; i++ {
		start := anchor.Add(time.Duration(i) * width)
		entries = append(entries, Entry{
			Channel: identity,
			Start:   xmltv.FormatTime(start),
			Stop:    xmltv.FormatTime(start.Add(width)),
			Title:   fmt.Sprintf("Program %d - %s", i+1, name),
			Desc:    "No programme information available.",
		})
	}
	return entries
}
