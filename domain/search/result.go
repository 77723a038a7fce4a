package search

import (
	"errors"
	"fmt"
	"strings"
)

// Match is one located occurrence in absolute screen coordinates: the
// top-left corner plus the needle dimensions at the scale that produced it.
type Match struct {
	X, Y, W, H int
}

// Center returns the midpoint of the matched area.
func (m Match) Center() (int, int) {
	return m.X + m.W/2, m.Y + m.H/2
}

// Report is the outcome of one search request. Matches from one pattern are
// contiguous and raster-ordered; groups follow pattern submission order.
type Report struct {
	Matches []Match
	// Truncated is set when the global result cap cut the merged list.
	Truncated bool
}

// EncodeOptions controls the textual encoding of a Report.
type EncodeOptions struct {
	// CenterPos emits the match midpoint instead of the top-left corner.
	CenterPos bool
	// Debug, when non-empty, is appended verbatim after the encoded body.
	Debug string
	// MaxBytes bounds the encoded output; 0 means unbounded. Exceeding it
	// is a distinct failure, never a silent truncation.
	MaxBytes int
}

// Encode renders the report in the wire form "{count}[x|y|w|h,...]", or
// "{0}[No Match Found]" when the report is empty.
func (r *Report) Encode(opts EncodeOptions) (string, error) {
	var sb strings.Builder
	if len(r.Matches) == 0 {
		sb.WriteString("{0}[No Match Found]")
	} else {
		fmt.Fprintf(&sb, "{%d}[", len(r.Matches))
		for i, m := range r.Matches {
			x, y := m.X, m.Y
			if opts.CenterPos {
				x, y = m.Center()
			}
			if i > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "%d|%d|%d|%d", x, y, m.W, m.H)
		}
		sb.WriteByte(']')
	}
	if opts.Debug != "" {
		sb.WriteString(" | DEBUG: ")
		sb.WriteString(opts.Debug)
	}
	out := sb.String()
	if opts.MaxBytes > 0 && len(out) > opts.MaxBytes {
		return "", CodeResultTooLarge.Err(
			fmt.Errorf("encoded %d bytes, cap %d", len(out), opts.MaxBytes))
	}
	return out, nil
}

// EncodeFailure renders any error in the wire form "{code}[message]".
// Errors without a RequestError in their chain map to CodeExtractFailed.
func EncodeFailure(err error) string {
	var re *RequestError
	if !errors.As(err, &re) {
		re = CodeExtractFailed.Err(err)
	}
	return fmt.Sprintf("{%d}[%s]", re.Code, re.Code.Message())
}
