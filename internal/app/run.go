// SPDX-License-Identifier: MIT

// Package app wires one reconciliation run: fetch, parse, match,
// reconcile, synthesize, write.
package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"epgweaver/internal/config"
	"epgweaver/internal/fetch"
	"epgweaver/internal/guide"
	xwlog "epgweaver/internal/log"
	"epgweaver/internal/playlist"
	"epgweaver/internal/xmltv"
)

// Result summarizes one run.
type Result struct {
	Channels    int // playlist channels processed
	Matched     int // channels resolved to an EPG channel
	Reconciled  int // programmes re-keyed from the source EPG
	Synthesized int // placeholder programmes generated
}

// Run executes one full reconciliation. The playlist source is
// required; a missing or unloadable EPG source degrades to placeholder
// synthesis for every channel.
func Run(ctx context.Context, cfg config.Config) (Result, error) {
	return run(ctx, cfg, time.Now().UTC())
}

func run(ctx context.Context, cfg config.Config, anchor time.Time) (Result, error) {
	var res Result
	if err := cfg.Validate(); err != nil {
		return res, err
	}
	logger := xwlog.WithComponent("app")

	overrides, err := cfg.OverrideTable()
	if err != nil {
		return res, err
	}

	// Both inputs are materialized fully before matching begins; the
	// two fetches are independent and run concurrently.
	loader := fetch.New()
	var playlistRaw, epgRaw []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := loader.Load(gctx, cfg.PlaylistSource)
		if err != nil {
			return fmt.Errorf("load playlist %s: %w", cfg.PlaylistSource, err)
		}
		playlistRaw = data
		return nil
	})
	if cfg.EPGSource != "" {
		g.Go(func() error {
			data, err := loader.Load(gctx, cfg.EPGSource)
			if err != nil {
				// Guide generation must not abort over a missing
				// upstream EPG; every channel gets placeholders.
				logger.Warn().
					Str(xwlog.FieldEvent, "run.epg_unavailable").
					Str(xwlog.FieldSource, cfg.EPGSource).
					Err(err).
					Msg("could not load EPG source, synthesizing all schedules")
				return nil
			}
			epgRaw = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}

	items := playlist.Parse(string(playlistRaw))
	if len(items) == 0 {
		return res, fmt.Errorf("playlist %s contains no channels", cfg.PlaylistSource)
	}
	channels := make([]guide.ChannelRecord, 0, len(items))
	for _, it := range items {
		channels = append(channels, guide.ChannelRecord{RawID: it.TvgID, DisplayName: it.Name})
	}
	res.Channels = len(channels)

	epgChannels, schedules := loadEPG(epgRaw, cfg.EPGSource)

	matcher, err := guide.NewMatcher(guide.BuildIndex(epgChannels), overrides, cfg.MinRatio)
	if err != nil {
		return res, err
	}
	matches := matcher.MatchAll(channels)
	for _, m := range matches {
		if m.Result.Strategy != guide.StrategyNone {
			res.Matched++
		}
	}

	reconciled := guide.Reconcile(matches, schedules)
	res.Reconciled = len(reconciled)

	covered := make(map[string]bool, len(reconciled))
	for _, e := range reconciled {
		covered[e.Channel] = true
	}

	// Every channel presents some schedule, fabricated if need be.
	// Duplicate playlist identities get one placeholder block set.
	var synthesized []guide.Entry
	for _, ch := range channels {
		identity := ch.Identity()
		if identity == "" || covered[identity] {
			continue
		}
		covered[identity] = true
		synthesized = append(synthesized, guide.Synthesize(ch, cfg.BlockCount, cfg.BlockHours, anchor)...)
	}
	res.Synthesized = len(synthesized)

	doc := assemble(channels, items, append(reconciled, synthesized...))
	if err := xmltv.WriteFile(cfg.OutputPath, doc); err != nil {
		return res, fmt.Errorf("write guide: %w", err)
	}

	if cfg.PlaylistOut != "" {
		if err := writePlaylist(cfg.PlaylistOut, items, channels); err != nil {
			return res, fmt.Errorf("write playlist: %w", err)
		}
	}

	logger.Info().
		Str(xwlog.FieldEvent, "run.complete").
		Int("channels", res.Channels).
		Int("matched", res.Matched).
		Int("reconciled", res.Reconciled).
		Int("synthesized", res.Synthesized).
		Str(xwlog.FieldPath, cfg.OutputPath).
		Msg("guide written")
	return res, nil
}

// loadEPG decodes the raw EPG document into engine inputs. Schedule
// entries with unparseable timestamps are dropped with a diagnostic;
// a nil or undecodable document yields empty inputs.
func loadEPG(raw []byte, source string) ([]guide.EpgChannel, map[string][]guide.Entry) {
	logger := xwlog.WithComponent("app")
	if len(raw) == 0 {
		return nil, nil
	}
	doc, err := xmltv.Decode(bytes.NewReader(raw))
	if err != nil {
		logger.Warn().
			Str(xwlog.FieldEvent, "run.epg_unreadable").
			Str(xwlog.FieldSource, source).
			Err(err).
			Msg("could not parse EPG document, synthesizing all schedules")
		return nil, nil
	}

	channels := make([]guide.EpgChannel, 0, len(doc.Channels))
	for _, ch := range doc.Channels {
		name := ""
		if len(ch.DisplayName) > 0 {
			name = ch.DisplayName[0]
		}
		channels = append(channels, guide.EpgChannel{ID: ch.ID, DisplayName: name})
	}

	var entries []guide.Entry
	dropped := 0
	for _, p := range doc.Programmes {
		if p.Channel == "" {
			dropped++
			continue
		}
		if _, err := xmltv.ParseTime(p.Start); err != nil {
			dropped++
			continue
		}
		if _, err := xmltv.ParseTime(p.Stop); err != nil {
			dropped++
			continue
		}
		entries = append(entries, guide.Entry{
			Channel: p.Channel,
			Start:   p.Start,
			Stop:    p.Stop,
			Title:   p.Title.Value,
			Desc:    p.Desc,
		})
	}
	if dropped > 0 {
		logger.Warn().
			Str(xwlog.FieldEvent, "run.programmes_dropped").
			Int(xwlog.FieldCount, dropped).
			Msg("malformed programmes dropped from source EPG")
	}
	return channels, guide.SchedulesByChannel(entries)
}

// assemble builds the output document: one channel declaration per
// distinct playlist identity (first occurrence wins the display name
// and logo), then all programmes in reconciled-then-synthesized order.
func assemble(channels []guide.ChannelRecord, items []playlist.Item, entries []guide.Entry) *xmltv.TV {
	doc := &xmltv.TV{Generator: "epgweaver"}
	seen := make(map[string]bool, len(channels))
	for i, ch := range channels {
		identity := ch.Identity()
		if identity == "" || seen[identity] {
			continue
		}
		seen[identity] = true
		decl := xmltv.Channel{ID: identity, DisplayName: []string{ch.DisplayName}}
		if logo := items[i].Logo; logo != "" {
			decl.Icon = &xmltv.Icon{Src: logo}
		}
		doc.Channels = append(doc.Channels, decl)
	}
	for _, e := range entries {
		doc.Programmes = append(doc.Programmes, xmltv.Programme{
			Start:   e.Start,
			Stop:    e.Stop,
			Channel: e.Channel,
			Title:   xmltv.Title{Value: e.Title},
			Desc:    e.Desc,
		})
	}
	return doc
}

// writePlaylist re-emits the playlist with tvg-id set to the
// reconciled identity, so player and guide agree on ids.
func writePlaylist(path string, items []playlist.Item, channels []guide.ChannelRecord) error {
	out := make([]playlist.Item, len(items))
	copy(out, items)
	for i := range out {
		out[i].TvgID = channels[i].Identity()
	}
	f, err := os.Create(filepath.Clean(path)) // #nosec G304 -- path from caller configuration
	if err != nil {
		return err
	}
	if err := playlist.Write(f, out); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
