// SPDX-License-Identifier: MIT

package guide

// SchedulesByChannel groups entries by their original channel key.
// Source order within each channel is preserved.
func SchedulesByChannel(entries []Entry) map[string][]Entry {
	out := make(map[string][]Entry)
	for _, e := range entries {
		out[e.Channel] = append(out[e.Channel], e)
	}
	return out
}

// Reconcile clones the schedule entries of every matched channel with
// the channel key rewritten to the playlist channel's own identifier.
// All other fields are copied verbatim; entries keep their source
// order and are not re-sorted, de-duplicated, or validated. A match
// against an EPG channel with an empty schedule contributes nothing;
// those channels are the Synthesizer's input.
func Reconcile(matches []ChannelMatch, schedules map[string][]Entry) []Entry {
	var out []Entry
	for _, m := range matches {
		if m.Result.Strategy == StrategyNone {
			continue
		}
		identity := m.Channel.Identity()
		for _, e := range schedules[m.Result.EpgID] {
			out = append(out, Entry{
				Channel: identity,
				Start:   e.Start,
				Stop:    e.Stop,
				Title:   e.Title,
				Desc:    e.Desc,
			})
		}
	}
	return out
}
