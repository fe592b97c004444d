package ics

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// ContentLine is a single unfolded iCalendar content line without its
// terminating line break.
type ContentLine string

// CalendarStream reads content lines from an iCalendar stream.  Lines in an
// iCalendar file may be "folded" (RFC 5545 section 3.1) by inserting a line
// break followed by a single space or horizontal tab.  This type hides that
// detail by joining continuations before returning the logical line.
type CalendarStream struct {
	b *bufio.Reader
}

// NewCalendarStream wraps r so the caller can read unfolded content lines.
// Both CRLF and bare LF line breaks are accepted and stripped.
func NewCalendarStream(r io.Reader) *CalendarStream {
	return &CalendarStream{b: bufio.NewReader(r)}
}

// ReadLine returns the next unfolded content line.  io.EOF signals a clean
// end of stream; any other failure of the underlying reader is reported as
// ErrRead so callers can tell it apart from exhaustion.
func (cs *CalendarStream) ReadLine() (ContentLine, error) {
	var out []byte
	for {
		b, err := cs.b.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("%w: %v", ErrRead, err)
		}
		out = append(out, bytes.TrimRight(b, "\r\n")...)
		if err == io.EOF {
			if len(out) == 0 {
				return "", io.EOF
			}
			return ContentLine(out), nil
		}
		// A following line starting with one space or tab continues this
		// line; the marker character itself is dropped.
		p, _ := cs.b.Peek(1)
		if len(p) == 1 && (p[0] == ' ' || p[0] == '\t') {
			_, _ = cs.b.Discard(1)
			continue
		}
		return ContentLine(out), nil
	}
}
