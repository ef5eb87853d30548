// SPDX-License-Identifier: MIT

package guide

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatcher(t *testing.T, channels []EpgChannel, overrides map[string]string, minRatio float64) *Matcher {
	t.Helper()
	m, err := NewMatcher(BuildIndex(channels), overrides, minRatio)
	require.NoError(t, err)
	return m
}

func TestNewMatcherRejectsBadRatio(t *testing.T) {
	for _, ratio := range []float64{-0.1, 1.1, 2.0} {
		_, err := NewMatcher(BuildIndex(nil), nil, ratio)
		assert.Error(t, err, "ratio %v", ratio)
	}
	_, err := NewMatcher(BuildIndex(nil), nil, 0.0)
	assert.NoError(t, err)
	_, err = NewMatcher(BuildIndex(nil), nil, 1.0)
	assert.NoError(t, err)
}

func TestMatchExactAfterNormalization(t *testing.T) {
	// Scenario: playlist "globosp" vs EPG id "Globo-SP".
	m := newTestMatcher(t, []EpgChannel{{ID: "Globo-SP", DisplayName: "Globo SP"}}, nil, 0.72)

	got := m.Match(ChannelRecord{RawID: "globosp", DisplayName: "GLOBO SP FHD"})
	assert.Equal(t, MatchResult{EpgID: "Globo-SP", Score: 1.0, Strategy: StrategyExact}, got)
}

func TestMatchFuzzySelectsClosest(t *testing.T) {
	// Scenario: display name "SporTV 2 HD" against {sportv2, sportv3}.
	m := newTestMatcher(t, []EpgChannel{{ID: "sportv2"}, {ID: "sportv3"}}, nil, 0.72)

	got := m.Match(ChannelRecord{DisplayName: "SporTV 2 HD"})
	assert.Equal(t, "sportv2", got.EpgID)
	assert.Equal(t, StrategyFuzzy, got.Strategy)
	assert.InDelta(t, 1.0-2.0/9.0, got.Score, 1e-9)
}

func TestMatchBelowThresholdIsNone(t *testing.T) {
	m := newTestMatcher(t, []EpgChannel{{ID: "sportv2"}, {ID: "sportv3"}}, nil, 0.95)

	got := m.Match(ChannelRecord{DisplayName: "SporTV 2 HD"})
	assert.Equal(t, StrategyNone, got.Strategy)
	assert.Empty(t, got.EpgID)
	assert.InDelta(t, 1.0-2.0/9.0, got.Score, 1e-9, "score reports the best ratio observed")
}

func TestMatchEmptyIndex(t *testing.T) {
	m := newTestMatcher(t, nil, nil, 0.72)

	got := m.Match(ChannelRecord{DisplayName: "Globo SP"})
	assert.Equal(t, MatchResult{Strategy: StrategyNone, Score: 0.0}, got)
}

func TestMatchEmptyKeyMatchesNothing(t *testing.T) {
	// Even an EPG channel that also normalizes to "" must not collide
	// with a blank playlist name.
	m := newTestMatcher(t, []EpgChannel{{ID: "::"}, {ID: "globosp"}}, nil, 0.0)

	got := m.Match(ChannelRecord{DisplayName: "--"})
	assert.Equal(t, StrategyNone, got.Strategy)
	assert.Empty(t, got.EpgID)
}

func TestMatchManualOverrideWins(t *testing.T) {
	// Exact would hit "globosp"; the override redirects elsewhere and
	// takes precedence.
	m := newTestMatcher(t,
		[]EpgChannel{{ID: "globosp"}, {ID: "globo-rj"}},
		map[string]string{"globosp": "globo-rj"},
		0.72,
	)

	got := m.Match(ChannelRecord{RawID: "globosp"})
	assert.Equal(t, MatchResult{EpgID: "globo-rj", Score: 1.0, Strategy: StrategyManual}, got)
}

func TestMatchDanglingOverrideFallsThrough(t *testing.T) {
	// Scenario: override maps "recordtv" to an id absent from the EPG;
	// the automatic strategies still run.
	m := newTestMatcher(t,
		[]EpgChannel{{ID: "recordtv"}},
		map[string]string{"recordtv": "record-sp"},
		0.72,
	)

	got := m.Match(ChannelRecord{RawID: "RecordTV"})
	assert.Equal(t, MatchResult{EpgID: "recordtv", Score: 1.0, Strategy: StrategyExact}, got)
}

func TestMatchExactBeatsFuzzy(t *testing.T) {
	// An exact hit must never fall through to the fuzzy scan even when
	// other candidates exist.
	m := newTestMatcher(t, []EpgChannel{{ID: "band"}, {ID: "bandhd"}}, nil, 0.5)

	got := m.Match(ChannelRecord{RawID: "bandhd"})
	assert.Equal(t, MatchResult{EpgID: "bandhd", Score: 1.0, Strategy: StrategyExact}, got)
}

func TestMatchFuzzyTieBreaksByIndexOrder(t *testing.T) {
	// "abcx" and "abxd" are both one substitution away from "abcd":
	// identical ratios, so the earlier index entry wins.
	m := newTestMatcher(t, []EpgChannel{{ID: "abcx"}, {ID: "abxd"}}, nil, 0.5)
	got := m.Match(ChannelRecord{RawID: "abcd"})
	assert.Equal(t, "abcx", got.EpgID)

	// Reversed insertion order flips the winner.
	m = newTestMatcher(t, []EpgChannel{{ID: "abxd"}, {ID: "abcx"}}, nil, 0.5)
	got = m.Match(ChannelRecord{RawID: "abcd"})
	assert.Equal(t, "abxd", got.EpgID)
}

func TestMatchAllDeterministic(t *testing.T) {
	epg := []EpgChannel{
		{ID: "Globo-SP", DisplayName: "Globo SP"},
		{ID: "sportv2"}, {ID: "sportv3"},
		{ID: "abcx"}, {ID: "abxd"},
	}
	channels := []ChannelRecord{
		{RawID: "globosp"},
		{DisplayName: "SporTV 2 HD"},
		{RawID: "abcd"},
		{DisplayName: "Completely Unrelated Channel"},
		{DisplayName: ""},
	}
	overrides := map[string]string{"sportv3": "sportv3"}

	run := func() []ChannelMatch {
		m := newTestMatcher(t, epg, overrides, 0.6)
		return m.MatchAll(channels)
	}

	first := run()
	second := run()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("match results not deterministic (-first +second):\n%s", diff)
	}
}

func TestMatchSameEpgChannelReusable(t *testing.T) {
	// No exclusivity: playlist variants may share one EPG channel.
	m := newTestMatcher(t, []EpgChannel{{ID: "Globo-SP", DisplayName: "Globo SP"}}, nil, 0.6)

	a := m.Match(ChannelRecord{RawID: "globosp"})
	b := m.Match(ChannelRecord{DisplayName: "Globo SP FHD"})
	assert.Equal(t, "Globo-SP", a.EpgID)
	assert.Equal(t, "Globo-SP", b.EpgID)
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "manual", StrategyManual.String())
	assert.Equal(t, "exact", StrategyExact.String())
	assert.Equal(t, "fuzzy", StrategyFuzzy.String())
	assert.Equal(t, "none", StrategyNone.String())
}
