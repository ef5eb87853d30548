// SPDX-License-Identifier: MIT

package guide

import (
	"fmt"

	"github.com/rs/zerolog"

	xwlog "epgweaver/internal/log"
)

// DefaultMinRatio is the canonical fuzzy acceptance threshold.
const DefaultMinRatio = 0.72

// Matcher resolves playlist channels against an EPG index using the
// fixed strategy chain manual -> exact -> fuzzy -> none.
type Matcher struct {
	index     *Index
	overrides map[string]string // normalized playlist key -> raw EPG id
	minRatio  float64
	logger    zerolog.Logger
}

// NewMatcher validates the threshold up front; a MinRatio outside
// [0,1] invalidates every subsequent decision, so it is the one
// condition that fails fast. The overrides table may be nil.
func NewMatcher(index *Index, overrides map[string]string, minRatio float64) (*Matcher, error) {
	if minRatio < 0 || minRatio > 1 {
		return nil, fmt.Errorf("min ratio %v outside [0,1]", minRatio)
	}
	if index == nil {
		index = BuildIndex(nil)
	}
	return &Matcher{
		index:     index,
		overrides: overrides,
		minRatio:  minRatio,
		logger:    xwlog.WithComponent("matcher"),
	}, nil
}

// Match resolves one playlist channel. It never fails: a channel that
// cannot be resolved yields StrategyNone with the best ratio observed.
// Channels are matched independently; the same EPG channel may be
// selected for more than one playlist entry.
func (m *Matcher) Match(ch ChannelRecord) MatchResult {
	key := ch.Key()
	if key == "" {
		// A blank key matches nothing, not even another blank key.
		return MatchResult{Strategy: StrategyNone}
	}

	// Manual override. A target id missing from the index is a soft
	// miss and falls through to the automatic strategies.
	if target, ok := m.overrides[key]; ok {
		if epgCh, ok := m.index.ByID(target); ok {
			m.logMatch(ch, key, epgCh.ID, StrategyManual, 1.0)
			return MatchResult{EpgID: epgCh.ID, Score: 1.0, Strategy: StrategyManual}
		}
		m.logger.Warn().
			Str(xwlog.FieldEvent, "match.override_dangling").
			Str(xwlog.FieldKey, key).
			Str(xwlog.FieldEpgID, target).
			Msg("manual override target not in index, falling through")
	}

	// Exact normalized key.
	if epgCh, ok := m.index.Lookup(key); ok {
		m.logMatch(ch, key, epgCh.ID, StrategyExact, 1.0)
		return MatchResult{EpgID: epgCh.ID, Score: 1.0, Strategy: StrategyExact}
	}

	// Fuzzy scan over every indexed key. Ties are broken by earliest
	// insertion order: a later key must strictly beat the best ratio.
	best := 0.0
	bestKey := ""
	for _, candidate := range m.index.Keys() {
		if r := Ratio(key, candidate); r > best {
			best = r
			bestKey = candidate
		}
	}
	if bestKey != "" && best >= m.minRatio {
		epgCh, _ := m.index.Lookup(bestKey)
		m.logMatch(ch, key, epgCh.ID, StrategyFuzzy, best)
		return MatchResult{EpgID: epgCh.ID, Score: best, Strategy: StrategyFuzzy}
	}

	m.logger.Debug().
		Str(xwlog.FieldEvent, "match.none").
		Str(xwlog.FieldChannel, ch.DisplayName).
		Str(xwlog.FieldKey, key).
		Float64(xwlog.FieldRatio, best).
		Msg("no credible match")
	return MatchResult{Score: best, Strategy: StrategyNone}
}

// MatchAll resolves every channel in order.
func (m *Matcher) MatchAll(channels []ChannelRecord) []ChannelMatch {
	out := make([]ChannelMatch, 0, len(channels))
	for _, ch := range channels {
		out = append(out, ChannelMatch{Channel: ch, Result: m.Match(ch)})
	}
	return out
}

func (m *Matcher) logMatch(ch ChannelRecord, key, epgID string, s Strategy, score float64) {
	m.logger.Debug().
		Str(xwlog.FieldEvent, "match.resolved").
		Str(xwlog.FieldChannel, ch.DisplayName).
		Str(xwlog.FieldKey, key).
		Str(xwlog.FieldEpgID, epgID).
		Str(xwlog.FieldStrategy, s.String()).
		Float64(xwlog.FieldRatio, score).
		Msg("channel resolved")
}
