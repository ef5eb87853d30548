// SPDX-License-Identifier: MIT

package playlist

import (
	"bytes"
	"fmt"
	"io"
)

// Write emits items as an M3U playlist.
func Write(w io.Writer, items []Item) error {
	buf := &bytes.Buffer{}
	buf.WriteString("#EXTM3U\n")
	for _, it := range items {
		buf.WriteString(fmt.Sprintf(
			`#EXTINF:-1 tvg-id="%s" tvg-logo="%s" group-title="%s",%s`+"\n",
			it.TvgID, it.Logo, it.Group, it.Name,
		))
		buf.WriteString(it.URL + "\n")
	}
	_, err := io.Copy(w, buf)
	return err
}
