// SPDX-License-Identifier: MIT

package log

// Canonical field name constants for structured logging.
const (
	FieldEvent     = "event"
	FieldComponent = "component"

	// Matching fields
	FieldChannel  = "channel"
	FieldKey      = "key"
	FieldEpgID    = "epg_id"
	FieldStrategy = "strategy"
	FieldRatio    = "ratio"

	// Source / document fields
	FieldSource = "source"
	FieldPath   = "path"
	FieldCount  = "count"
)
