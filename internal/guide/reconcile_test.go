// SPDX-License-Identifier: MIT

package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileRekeysVerbatim(t *testing.T) {
	schedules := map[string][]Entry{
		"Globo-SP": {
			{Channel: "Globo-SP", Start: "20260824120000 +0000", Stop: "20260824130000 +0000", Title: "Jornal", Desc: "Notícias"},
			{Channel: "Globo-SP", Start: "20260824130000 +0000", Stop: "20260824140000 +0000", Title: "Novela", Desc: ""},
			{Channel: "Globo-SP", Start: "20260824140000 +0000", Stop: "20260824150000 +0000", Title: "", Desc: "sem título"},
		},
	}
	matches := []ChannelMatch{{
		Channel: ChannelRecord{RawID: "globosp", DisplayName: "GLOBO SP"},
		Result:  MatchResult{EpgID: "Globo-SP", Score: 1.0, Strategy: StrategyExact},
	}}

	got := Reconcile(matches, schedules)
	require.Len(t, got, 3)
	for i, e := range got {
		src := schedules["Globo-SP"][i]
		assert.Equal(t, "globosp", e.Channel, "entry %d keyed by playlist identifier", i)
		assert.Equal(t, src.Start, e.Start)
		assert.Equal(t, src.Stop, e.Stop)
		assert.Equal(t, src.Title, e.Title)
		assert.Equal(t, src.Desc, e.Desc)
	}
}

func TestReconcileSkipsUnmatched(t *testing.T) {
	schedules := map[string][]Entry{
		"x": {{Channel: "x", Start: "a", Stop: "b"}},
	}
	matches := []ChannelMatch{{
		Channel: ChannelRecord{DisplayName: "Unknown"},
		Result:  MatchResult{Strategy: StrategyNone, Score: 0.4},
	}}

	assert.Empty(t, Reconcile(matches, schedules))
}

func TestReconcileEmptyScheduleYieldsNothing(t *testing.T) {
	matches := []ChannelMatch{{
		Channel: ChannelRecord{RawID: "globosp"},
		Result:  MatchResult{EpgID: "Globo-SP", Score: 1.0, Strategy: StrategyExact},
	}}

	assert.Empty(t, Reconcile(matches, map[string][]Entry{}))
}

func TestReconcileSharedEpgChannel(t *testing.T) {
	// Two playlist variants matched to the same EPG channel each get a
	// full copy under their own identifier.
	schedules := map[string][]Entry{
		"Globo-SP": {{Channel: "Globo-SP", Start: "s", Stop: "t", Title: "x"}},
	}
	matches := []ChannelMatch{
		{Channel: ChannelRecord{RawID: "globosp"}, Result: MatchResult{EpgID: "Globo-SP", Score: 1.0, Strategy: StrategyExact}},
		{Channel: ChannelRecord{RawID: "globospfhd"}, Result: MatchResult{EpgID: "Globo-SP", Score: 0.8, Strategy: StrategyFuzzy}},
	}

	got := Reconcile(matches, schedules)
	require.Len(t, got, 2)
	assert.Equal(t, "globosp", got[0].Channel)
	assert.Equal(t, "globospfhd", got[1].Channel)
}

func TestSchedulesByChannel(t *testing.T) {
	entries := []Entry{
		{Channel: "a", Title: "1"},
		{Channel: "b", Title: "2"},
		{Channel: "a", Title: "3"},
	}
	got := SchedulesByChannel(entries)
	require.Len(t, got["a"], 2)
	assert.Equal(t, "1", got["a"][0].Title)
	assert.Equal(t, "3", got["a"][1].Title, "source order preserved")
	require.Len(t, got["b"], 1)
}
