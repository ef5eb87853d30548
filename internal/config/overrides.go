// SPDX-License-Identifier: MIT

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"epgweaver/internal/guide"
	xwlog "epgweaver/internal/log"
)

// OverrideTable assembles the manual override table, mapping normalized
// playlist identifier -> raw EPG id. Inline entries take precedence
// over file entries; within a source, duplicate normalized keys are
// first-wins (in sorted raw-key order, so the outcome is stable) with
// a warning.
func (c Config) OverrideTable() (map[string]string, error) {
	logger := xwlog.WithComponent("config")
	table := make(map[string]string)

	add := func(raw, target, source string) {
		key := guide.Normalize(raw)
		if key == "" || target == "" {
			logger.Warn().
				Str(xwlog.FieldEvent, "overrides.entry_skipped").
				Str(xwlog.FieldKey, raw).
				Str(xwlog.FieldSource, source).
				Msg("override entry with blank key or target dropped")
			return
		}
		if prev, ok := table[key]; ok {
			if prev != target {
				logger.Warn().
					Str(xwlog.FieldEvent, "overrides.key_collision").
					Str(xwlog.FieldKey, key).
					Str("kept", prev).
					Str("dropped", target).
					Msg("duplicate override key, keeping first")
			}
			return
		}
		table[key] = target
	}

	addAll := func(entries map[string]string, source string) {
		raws := make([]string, 0, len(entries))
		for raw := range entries {
			raws = append(raws, raw)
		}
		sort.Strings(raws)
		for _, raw := range raws {
			add(raw, entries[raw], source)
		}
	}

	addAll(c.Overrides, "inline")

	if c.OverridesFile != "" {
		data, err := os.ReadFile(filepath.Clean(c.OverridesFile)) // #nosec G304 -- path from caller configuration
		if err != nil {
			return nil, fmt.Errorf("read overrides file: %w", err)
		}
		var fromFile map[string]string
		if err := json.Unmarshal(data, &fromFile); err != nil {
			return nil, fmt.Errorf("parse overrides file: %w", err)
		}
		addAll(fromFile, c.OverridesFile)
	}
	return table, nil
}
