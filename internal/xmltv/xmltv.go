// SPDX-License-Identifier: MIT

// Package xmltv models XMLTV guide documents and their wire encoding.
package xmltv

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// TV is the root element of an XMLTV document.
type TV struct {
	XMLName    xml.Name    `xml:"tv"`
	Generator  string      `xml:"generator-info-name,attr,omitempty"`
	SourceInfo string      `xml:"source-info-name,attr,omitempty"`
	Channels   []Channel   `xml:"channel"`
	Programmes []Programme `xml:"programme"`
}

// Channel is a channel declaration. A channel may carry several
// display names; upstream guides often list aliases.
type Channel struct {
	ID          string   `xml:"id,attr"`
	DisplayName []string `xml:"display-name"`
	Icon        *Icon    `xml:"icon,omitempty"`
}

type Icon struct {
	Src string `xml:"src,attr"`
}

// Programme is one schedule slot. Start and Stop keep the raw XMLTV
// timestamp text so re-keyed entries stay byte-identical to the source.
type Programme struct {
	Start   string `xml:"start,attr"`
	Stop    string `xml:"stop,attr"`
	Channel string `xml:"channel,attr"`
	Title   Title  `xml:"title"`
	Desc    string `xml:"desc,omitempty"`
}

type Title struct {
	Lang  string `xml:"lang,attr,omitempty"`
	Value string `xml:",chardata"`
}

// 50MB cap on decoded documents; large enough for any real guide,
// small enough to bound memory on a hostile source.
const maxDocSize = 50 * 1024 * 1024

// Decode reads an XMLTV document from r with strict parsing and entity
// expansion disabled.
func Decode(r io.Reader) (*TV, error) {
	dec := xml.NewDecoder(io.LimitReader(r, maxDocSize))
	dec.Strict = true
	dec.Entity = make(map[string]string)

	var doc TV
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode xmltv: %w", err)
	}
	return &doc, nil
}

// Write serializes the document with an XML declaration and indentation.
func Write(w io.Writer, tv *TV) error {
	out, err := xml.MarshalIndent(tv, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal xmltv: %w", err)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// WriteFile writes the document to path.
func WriteFile(path string, tv *TV) error {
	path = filepath.Clean(path)
	f, err := os.Create(path) // #nosec G304 -- path comes from caller configuration
	if err != nil {
		return err
	}
	if err := Write(f, tv); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
