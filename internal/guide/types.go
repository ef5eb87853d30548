// SPDX-License-Identifier: MIT

// Package guide reconciles channel identities between a playlist and an
// EPG document and produces a single schedule keyed by the playlist's
// identifiers.
package guide

// ChannelRecord is one playlist entry as seen by the engine.
type ChannelRecord struct {
	RawID       string // tvg-id attribute, may be empty
	DisplayName string
}

// Identity returns the identifier all output entries for this channel
// are keyed by: the raw id when present, otherwise the normalized
// display name.
func (c ChannelRecord) Identity() string {
	if c.RawID != "" {
		return c.RawID
	}
	return Normalize(c.DisplayName)
}

// Key returns the normalized comparison key for matching.
func (c ChannelRecord) Key() string {
	if c.RawID != "" {
		return Normalize(c.RawID)
	}
	return Normalize(c.DisplayName)
}

// EpgChannel is one channel declared by the EPG document.
type EpgChannel struct {
	ID          string // required
	DisplayName string // may be empty
}

// Entry is one programme slot. Start and Stop carry the source
// document's timestamp text verbatim.
type Entry struct {
	Channel string
	Start   string
	Stop    string
	Title   string
	Desc    string
}

// Strategy names the technique that produced a match.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyManual
	StrategyExact
	StrategyFuzzy
)

func (s Strategy) String() string {
	switch s {
	case StrategyManual:
		return "manual"
	case StrategyExact:
		return "exact"
	case StrategyFuzzy:
		return "fuzzy"
	default:
		return "none"
	}
}

// MatchResult is the Matcher's verdict for one playlist channel.
// EpgID is empty exactly when Strategy is StrategyNone; Score is 1.0
// for manual and exact hits and the best observed ratio otherwise.
type MatchResult struct {
	EpgID    string
	Score    float64
	Strategy Strategy
}

// ChannelMatch pairs a playlist channel with its match verdict.
type ChannelMatch struct {
	Channel ChannelRecord
	Result  MatchResult
}
