package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeMinimalCalendar(t *testing.T) {
	cal := &Calendar{
		ProdId:  "-//test//EN",
		Version: "2.0",
		Todo: &VTodo{
			UID:     "x@example.com",
			DtStamp: time.Date(2007, 3, 13, 12, 34, 32, 0, time.UTC),
		},
	}
	want := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"BEGIN:VTODO",
		"UID:x@example.com",
		"DTSTAMP:20070313T123432Z",
		"END:VTODO",
		"END:VCALENDAR",
		"",
	}, "\n")
	assert.Equal(t, want, cal.Serialize(WithNewLineUnix))
}

func TestSerializeNewLineStyles(t *testing.T) {
	cal := &Calendar{
		ProdId:  "p",
		Version: "2.0",
		Journal: &VJournal{
			UID:     "j@example.com",
			DtStamp: time.Date(1997, 9, 1, 13, 0, 0, 0, time.UTC),
		},
	}
	crlf := cal.Serialize(WithNewLineWindows)
	assert.True(t, strings.HasSuffix(crlf, "END:VCALENDAR\r\n"))
	assert.NotContains(t, strings.ReplaceAll(crlf, "\r\n", ""), "\r")
}

func TestSerializeFoldsLongLines(t *testing.T) {
	long := strings.Repeat("all work and no play makes a dull to-do list ", 4)
	cal := &Calendar{
		ProdId:  "p",
		Version: "2.0",
		Todo: &VTodo{
			UID:     "x@example.com",
			DtStamp: time.Date(2007, 3, 13, 12, 34, 32, 0, time.UTC),
			Summary: &long,
		},
	}
	out := cal.Serialize(WithNewLineUnix)
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 75, "line %q", line)
	}

	reparsed, err := ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	require.NotNil(t, reparsed.Todo.Summary)
	assert.Equal(t, long, *reparsed.Todo.Summary)
}

func TestSerializeRoundTrip(t *testing.T) {
	cal := parseFixture(t, "vevent.ics")
	out := cal.Serialize(WithNewLineUnix)
	reparsed, err := ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	if diff := cmp.Diff(cal, reparsed); diff != "" {
		t.Errorf("round trip mismatch (-original +reparsed):\n%s", diff)
	}
}

func TestSerializeRoundTripVTodoFixture(t *testing.T) {
	cal := parseFixture(t, "vtodo.ics")
	out := cal.Serialize(WithNewLineUnix)
	reparsed, err := ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	if diff := cmp.Diff(cal, reparsed); diff != "" {
		t.Errorf("round trip mismatch (-original +reparsed):\n%s", diff)
	}
}

func TestFormatGeo(t *testing.T) {
	assert.Equal(t, "37.386013;-122.082932", FormatGeo(Geo{Latitude: 37.386013, Longitude: -122.082932}))
	assert.Equal(t, "90;-180", FormatGeo(Geo{Latitude: 90, Longitude: -180}))
}

func TestFormatDateTime(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	assert.Equal(t, "20070313T103432Z",
		FormatDateTime(time.Date(2007, 3, 13, 12, 34, 32, 0, loc)))
}
