// SPDX-License-Identifier: MIT

package guide

import (
	"github.com/rs/zerolog"

	xwlog "epgweaver/internal/log"
)

// Index maps normalized keys to EPG channels and remembers key
// insertion order for deterministic fuzzy scans.
type Index struct {
	byKey map[string]EpgChannel
	byID  map[string]EpgChannel
	keys  []string
}

// BuildIndex indexes EPG channels by the normalized form of their id
// and, when distinct, of their display name. Collisions keep the first
// channel in document order and log a data-quality warning; an empty
// normalized key indexes nothing.
func BuildIndex(channels []EpgChannel) *Index {
	logger := xwlog.WithComponent("index")
	idx := &Index{
		byKey: make(map[string]EpgChannel, len(channels)),
		byID:  make(map[string]EpgChannel, len(channels)),
	}
	for _, ch := range channels {
		if ch.ID == "" {
			logger.Warn().
				Str(xwlog.FieldEvent, "index.channel_skipped").
				Str(xwlog.FieldChannel, ch.DisplayName).
				Msg("epg channel without id dropped")
			continue
		}
		if _, dup := idx.byID[ch.ID]; !dup {
			idx.byID[ch.ID] = ch
		}
		idKey := Normalize(ch.ID)
		idx.add(idKey, ch, logger)
		if nameKey := Normalize(ch.DisplayName); nameKey != "" && nameKey != idKey {
			idx.add(nameKey, ch, logger)
		}
	}
	return idx
}

func (ix *Index) add(key string, ch EpgChannel, logger zerolog.Logger) {
	if key == "" {
		return
	}
	if prev, ok := ix.byKey[key]; ok {
		if prev.ID != ch.ID {
			logger.Warn().
				Str(xwlog.FieldEvent, "index.key_collision").
				Str(xwlog.FieldKey, key).
				Str("kept", prev.ID).
				Str("dropped", ch.ID).
				Msg("duplicate normalized key, keeping first")
		}
		return
	}
	ix.byKey[key] = ch
	ix.keys = append(ix.keys, key)
}

// Lookup returns the channel indexed under the normalized key.
func (ix *Index) Lookup(key string) (EpgChannel, bool) {
	if key == "" {
		return EpgChannel{}, false
	}
	ch, ok := ix.byKey[key]
	return ch, ok
}

// ByID returns the channel with the given raw EPG id.
func (ix *Index) ByID(id string) (EpgChannel, bool) {
	if id == "" {
		return EpgChannel{}, false
	}
	ch, ok := ix.byID[id]
	return ch, ok
}

// Keys returns the indexed keys in insertion order. Callers must not
// mutate the returned slice.
func (ix *Index) Keys() []string {
	return ix.keys
}

// Len reports the number of indexed keys.
func (ix *Index) Len() int {
	return len(ix.keys)
}
