package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wrapCalendar(body string) string {
	return "BEGIN:VCALENDAR\nVERSION:2.0\nPRODID:-//test//EN\n" + body + "END:VCALENDAR\n"
}

func TestParseVTodoProperties(t *testing.T) {
	input := wrapCalendar(`BEGIN:VTODO
UID:todo-1@example.com
DTSTAMP:20070313T123432Z
DUE;VALUE=DATE:20070501
SUMMARY:Submit tax return
DESCRIPTION:Forms and receipts
PRIORITY:1
PERCENT-COMPLETE:40
SEQUENCE:2
STATUS:IN-PROCESS
CLASS:CONFIDENTIAL
CATEGORIES:FAMILY,FINANCE
GEO:48.85837;2.294481
COMMENT:first pass done
END:VTODO
`)
	cal, err := ParseCalendar(strings.NewReader(input))
	require.NoError(t, err)
	todo := cal.Todo
	require.NotNil(t, todo)

	assert.Equal(t, "todo-1@example.com", todo.UID)
	assert.Equal(t, time.Date(2007, 3, 13, 12, 34, 32, 0, time.UTC), todo.DtStamp)
	require.NotNil(t, todo.Due)
	assert.Equal(t, time.Date(2007, 5, 1, 0, 0, 0, 0, time.UTC), *todo.Due)
	require.NotNil(t, todo.Summary)
	assert.Equal(t, "Submit tax return", *todo.Summary)
	require.NotNil(t, todo.Priority)
	assert.Equal(t, 1, *todo.Priority)
	require.NotNil(t, todo.PercentComplete)
	assert.Equal(t, 40, *todo.PercentComplete)
	require.NotNil(t, todo.Sequence)
	assert.Equal(t, 2, *todo.Sequence)
	require.NotNil(t, todo.Status)
	assert.Equal(t, StatusInProcess, *todo.Status)
	require.NotNil(t, todo.Class)
	assert.Equal(t, ClassConfidential, *todo.Class)
	assert.Equal(t, []string{"FAMILY", "FINANCE"}, todo.Categories)
	require.NotNil(t, todo.Geo)
	assert.Equal(t, Geo{Latitude: 48.85837, Longitude: 2.294481}, *todo.Geo)
	assert.Equal(t, []string{"first pass done"}, todo.Comments)
	assert.Nil(t, todo.Duration)
	assert.Nil(t, todo.Alarm)
}

func TestParseVTodoMissingRequired(t *testing.T) {
	t.Run("missing uid", func(t *testing.T) {
		input := wrapCalendar("BEGIN:VTODO\nDTSTAMP:20070313T123432Z\nEND:VTODO\n")
		_, err := ParseCalendar(strings.NewReader(input))
		require.ErrorIs(t, err, ErrMissingNecessaryProperty)
		assert.Contains(t, err.Error(), "UID")
	})
	t.Run("missing dtstamp", func(t *testing.T) {
		input := wrapCalendar("BEGIN:VTODO\nUID:x@example.com\nEND:VTODO\n")
		_, err := ParseCalendar(strings.NewReader(input))
		require.ErrorIs(t, err, ErrMissingNecessaryProperty)
		assert.Contains(t, err.Error(), "DTSTAMP")
	})
}

func TestParseVTodoDuplicateUnique(t *testing.T) {
	input := wrapCalendar(`BEGIN:VTODO
UID:x@example.com
DTSTAMP:20070313T123432Z
SUMMARY:one
SUMMARY:two
END:VTODO
`)
	_, err := ParseCalendar(strings.NewReader(input))
	require.ErrorIs(t, err, ErrDuplicateUniqueProperty)
	assert.Contains(t, err.Error(), "SUMMARY")
}

func TestParseVTodoDueDurationExclusive(t *testing.T) {
	t.Run("due then duration", func(t *testing.T) {
		input := wrapCalendar(`BEGIN:VTODO
UID:x@example.com
DTSTAMP:20070313T123432Z
DUE:20070501T000000Z
DURATION:PT1H
END:VTODO
`)
		_, err := ParseCalendar(strings.NewReader(input))
		assert.ErrorIs(t, err, ErrPropertyConditionNotRespected)
	})
	t.Run("duration then due", func(t *testing.T) {
		input := wrapCalendar(`BEGIN:VTODO
UID:x@example.com
DTSTAMP:20070313T123432Z
DURATION:PT1H
DUE:20070501T000000Z
END:VTODO
`)
		_, err := ParseCalendar(strings.NewReader(input))
		assert.ErrorIs(t, err, ErrPropertyConditionNotRespected)
	})
}

func TestParseVTodoStatusStateSpace(t *testing.T) {
	input := wrapCalendar(`BEGIN:VTODO
UID:x@example.com
DTSTAMP:20070313T123432Z
STATUS:CONFIRMED
END:VTODO
`)
	_, err := ParseCalendar(strings.NewReader(input))
	assert.ErrorIs(t, err, ErrPropertyConditionNotRespected)
}

func TestParseVTodoRangeChecks(t *testing.T) {
	t.Run("percent over 100", func(t *testing.T) {
		input := wrapCalendar(`BEGIN:VTODO
UID:x@example.com
DTSTAMP:20070313T123432Z
PERCENT-COMPLETE:150
END:VTODO
`)
		_, err := ParseCalendar(strings.NewReader(input))
		require.ErrorIs(t, err, ErrPropertyConditionNotRespected)
		assert.ErrorIs(t, err, ErrValueOutOfRange)
	})
	t.Run("priority over 9", func(t *testing.T) {
		input := wrapCalendar(`BEGIN:VTODO
UID:x@example.com
DTSTAMP:20070313T123432Z
PRIORITY:10
END:VTODO
`)
		_, err := ParseCalendar(strings.NewReader(input))
		require.ErrorIs(t, err, ErrPropertyConditionNotRespected)
		assert.ErrorIs(t, err, ErrValueOutOfRange)
	})
}

func TestParseVTodoUnknownProperty(t *testing.T) {
	input := wrapCalendar(`BEGIN:VTODO
UID:x@example.com
DTSTAMP:20070313T123432Z
SDQ:content
END:VTODO
`)
	_, err := ParseCalendar(strings.NewReader(input))
	require.ErrorIs(t, err, ErrUnknownProperty)
	assert.Contains(t, err.Error(), "SDQ")
}

func TestParseVEventRejectsTodoProperties(t *testing.T) {
	input := wrapCalendar(`BEGIN:VEVENT
UID:x@example.com
DTSTAMP:20070313T123432Z
DUE:20070501T000000Z
END:VEVENT
`)
	_, err := ParseCalendar(strings.NewReader(input))
	require.ErrorIs(t, err, ErrUnexpectedProperty)
	assert.Contains(t, err.Error(), "DUE")
}

func TestParseVJournalRejectsPlaceProperties(t *testing.T) {
	for _, line := range []string{"LOCATION:office", "GEO:1;2", "PRIORITY:5"} {
		input := wrapCalendar("BEGIN:VJOURNAL\nUID:x@example.com\nDTSTAMP:20070313T123432Z\n" + line + "\nEND:VJOURNAL\n")
		_, err := ParseCalendar(strings.NewReader(input))
		assert.ErrorIs(t, err, ErrUnexpectedProperty, line)
	}
}

func TestParseVJournal(t *testing.T) {
	input := wrapCalendar(`BEGIN:VJOURNAL
UID:journal-1@example.com
DTSTAMP:19970901T130000Z
DTSTART;VALUE=DATE:19970317
SUMMARY:Staff meeting minutes
STATUS:DRAFT
END:VJOURNAL
`)
	cal, err := ParseCalendar(strings.NewReader(input))
	require.NoError(t, err)
	j := cal.Journal
	require.NotNil(t, j)
	assert.Equal(t, "journal-1@example.com", j.UID)
	require.NotNil(t, j.DtStart)
	assert.Equal(t, time.Date(1997, 3, 17, 0, 0, 0, 0, time.UTC), *j.DtStart)
	require.NotNil(t, j.Status)
	assert.Equal(t, StatusDraft, *j.Status)
}

func TestParseVAlarm(t *testing.T) {
	t.Run("complete alarm", func(t *testing.T) {
		input := wrapCalendar(`BEGIN:VTODO
UID:x@example.com
DTSTAMP:20070313T123432Z
BEGIN:VALARM
ACTION:AUDIO
TRIGGER:-PT10M
DURATION:PT5M
REPEAT:2
END:VALARM
END:VTODO
`)
		cal, err := ParseCalendar(strings.NewReader(input))
		require.NoError(t, err)
		alarm := cal.Todo.Alarm
		require.NotNil(t, alarm)
		assert.Equal(t, ActionAudio, alarm.Action)
		assert.Equal(t, "-PT10M", alarm.Trigger)
		require.NotNil(t, alarm.Duration)
		assert.Equal(t, 5*time.Minute, *alarm.Duration)
		require.NotNil(t, alarm.Repeat)
		assert.Equal(t, 2, *alarm.Repeat)
	})
	t.Run("missing trigger", func(t *testing.T) {
		input := wrapCalendar(`BEGIN:VTODO
UID:x@example.com
DTSTAMP:20070313T123432Z
BEGIN:VALARM
ACTION:DISPLAY
END:VALARM
END:VTODO
`)
		_, err := ParseCalendar(strings.NewReader(input))
		require.ErrorIs(t, err, ErrMissingNecessaryProperty)
		assert.Contains(t, err.Error(), "TRIGGER")
	})
	t.Run("missing action", func(t *testing.T) {
		input := wrapCalendar(`BEGIN:VTODO
UID:x@example.com
DTSTAMP:20070313T123432Z
BEGIN:VALARM
TRIGGER:-PT10M
END:VALARM
END:VTODO
`)
		_, err := ParseCalendar(strings.NewReader(input))
		require.ErrorIs(t, err, ErrMissingNecessaryProperty)
		assert.Contains(t, err.Error(), "ACTION")
	})
	t.Run("second alarm rejected", func(t *testing.T) {
		input := wrapCalendar(`BEGIN:VTODO
UID:x@example.com
DTSTAMP:20070313T123432Z
BEGIN:VALARM
ACTION:DISPLAY
TRIGGER:-PT10M
END:VALARM
BEGIN:VALARM
ACTION:AUDIO
TRIGGER:-PT5M
END:VALARM
END:VTODO
`)
		_, err := ParseCalendar(strings.NewReader(input))
		require.ErrorIs(t, err, ErrDuplicateUniqueProperty)
		assert.Contains(t, err.Error(), "VALARM")
	})
	t.Run("alarm cannot nest", func(t *testing.T) {
		input := wrapCalendar(`BEGIN:VTODO
UID:x@example.com
DTSTAMP:20070313T123432Z
BEGIN:VALARM
ACTION:DISPLAY
TRIGGER:-PT10M
BEGIN:VALARM
END:VALARM
END:VALARM
END:VTODO
`)
		_, err := ParseCalendar(strings.NewReader(input))
		assert.ErrorIs(t, err, ErrUnexpectedComponent)
	})
}

func TestParseMismatchedEnd(t *testing.T) {
	input := wrapCalendar(`BEGIN:VTODO
UID:x@example.com
DTSTAMP:20070313T123432Z
END:VEVENT
`)
	_, err := ParseCalendar(strings.NewReader(input))
	assert.ErrorIs(t, err, ErrUnexpectedComponent)
}
