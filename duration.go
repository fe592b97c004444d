package ics

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// decodeDuration parses the RFC 5545 section 3.3.6 duration grammar:
//
//	["-"] "P" ( weeks "W" | [days "D"] ["T" [hours "H"] [minutes "M"] [seconds "S"]] )
//
// Tokens are peeled left to right in that strict order and every numeric
// component may be absent.  The input must be fully consumed; leftover
// characters after the applicable tokens are a failure.  A leading "-"
// negates the whole span.
func decodeDuration(raw string) (time.Duration, error) {
	fail := func() (time.Duration, error) {
		return 0, fmt.Errorf("%w: DURATION value %q", ErrPropertyConditionNotRespected, raw)
	}
	s := raw
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) == 0 || s[0] != 'P' {
		return fail()
	}
	s = s[1:]

	var d time.Duration
	if n, rest, ok := peelDurationToken(s, 'W'); ok {
		d = time.Duration(n) * 7 * 24 * time.Hour
		s = rest
	} else {
		if n, rest, ok := peelDurationToken(s, 'D'); ok {
			d += time.Duration(n) * 24 * time.Hour
			s = rest
		}
		if len(s) > 0 && s[0] == 'T' {
			s = s[1:]
			if n, rest, ok := peelDurationToken(s, 'H'); ok {
				d += time.Duration(n) * time.Hour
				s = rest
			}
			if n, rest, ok := peelDurationToken(s, 'M'); ok {
				d += time.Duration(n) * time.Minute
				s = rest
			}
			if n, rest, ok := peelDurationToken(s, 'S'); ok {
				d += time.Duration(n) * time.Second
				s = rest
			}
		}
	}
	if len(s) != 0 {
		return fail()
	}
	if neg {
		d = -d
	}
	return d, nil
}

// peelDurationToken reads a decimal number directly followed by the marker
// from the front of s.  On a miss it leaves s untouched.
func peelDurationToken(s string, marker byte) (int, string, bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(s) || s[i] != marker {
		return 0, s, false
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, s, false
	}
	return n, s[i+1:], true
}

// FormatDuration renders a duration in the same grammar decodeDuration
// reads, using days rather than weeks, so decode(format(d)) == d.
func FormatDuration(d time.Duration) string {
	var b strings.Builder
	if d < 0 {
		b.WriteByte('-')
		d = -d
	}
	b.WriteByte('P')
	secs := int64(d / time.Second)
	days := secs / 86400
	secs -= days * 86400
	hours := secs / 3600
	secs -= hours * 3600
	mins := secs / 60
	secs -= mins * 60
	if days > 0 {
		fmt.Fprintf(&b, "%dD", days)
	}
	if hours > 0 || mins > 0 || secs > 0 || days == 0 {
		b.WriteByte('T')
		if hours > 0 {
			fmt.Fprintf(&b, "%dH", hours)
		}
		if mins > 0 {
			fmt.Fprintf(&b, "%dM", mins)
		}
		if secs > 0 || (hours == 0 && mins == 0) {
			fmt.Fprintf(&b, "%dS", secs)
		}
	}
	return b.String()
}
