package ics

import (
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// maxLineOctets is the content line length limit of RFC 5545 section 3.1;
// longer lines are folded.
const maxLineOctets = 75

// FormatDateTime renders an instant in the UTC form read by the date-time
// codec.
func FormatDateTime(t time.Time) string {
	return t.UTC().Format(dateTimeFormatUtc)
}

// FormatGeo renders a geographic position in the "lat;lon" form read by the
// GEO codec.
func FormatGeo(g Geo) string {
	return strconv.FormatFloat(g.Latitude, 'f', -1, 64) + ";" +
		strconv.FormatFloat(g.Longitude, 'f', -1, 64)
}

// foldWriter emits content lines with RFC 5545 folding.  The first write
// failure sticks; later calls are no-ops so serializers can run straight
// through and check err once.
type foldWriter struct {
	w       io.Writer
	newLine string
	err     error
}

// line writes one logical content line, folding at 75 octets.  The cut point
// backs up so a multi-byte rune is never split, and continuation lines leave
// one octet of the limit for their leading space.
func (fw *foldWriter) line(s string) {
	if fw.err != nil {
		return
	}
	limit := maxLineOctets
	for len(s) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		if cut == 0 {
			cut = limit
		}
		if _, err := io.WriteString(fw.w, s[:cut]+fw.newLine+" "); err != nil {
			fw.err = err
			return
		}
		s = s[cut:]
		limit = maxLineOctets - 1
	}
	if _, err := io.WriteString(fw.w, s+fw.newLine); err != nil {
		fw.err = err
	}
}

func (fw *foldWriter) begin(c ComponentType) { fw.line("BEGIN:" + string(c)) }
func (fw *foldWriter) end(c ComponentType)   { fw.line("END:" + string(c)) }

func (fw *foldWriter) prop(p Property, value string) {
	fw.line(string(p) + ":" + value)
}

func (fw *foldWriter) optText(p Property, v *string) {
	if v != nil {
		fw.prop(p, *v)
	}
}

func (fw *foldWriter) optTime(p Property, v *time.Time) {
	if v != nil {
		fw.prop(p, FormatDateTime(*v))
	}
}

func (fw *foldWriter) optInt(p Property, v *int) {
	if v != nil {
		fw.prop(p, strconv.Itoa(*v))
	}
}

func (fw *foldWriter) optDuration(p Property, v *time.Duration) {
	if v != nil {
		fw.prop(p, FormatDuration(*v))
	}
}

func (fw *foldWriter) each(p Property, vs []string) {
	for _, v := range vs {
		fw.prop(p, v)
	}
}

func (fw *foldWriter) eachTime(p Property, vs []time.Time) {
	for _, v := range vs {
		fw.prop(p, FormatDateTime(v))
	}
}

// Serialize renders the calendar as a string.  The newline defaults to the
// platform's NewLine; pass WithNewLineWindows for strict RFC 5545 CRLF output.
func (cal *Calendar) Serialize(ops ...WithNewLine) string {
	b := &strings.Builder{}
	_ = cal.SerializeTo(b, ops...)
	return b.String()
}

// SerializeTo writes the calendar to w.  Output round-trips through
// ParseCalendar: every property is emitted in the exact textual form its
// codec reads.
func (cal *Calendar) SerializeTo(w io.Writer, ops ...WithNewLine) error {
	nl := string(NewLine)
	if len(ops) > 0 {
		nl = string(ops[len(ops)-1])
	}
	fw := &foldWriter{w: w, newLine: nl}
	fw.begin(ComponentVCalendar)
	fw.prop(PropertyVersion, cal.Version)
	fw.prop(PropertyProductId, cal.ProdId)
	fw.optText(PropertyCalscale, cal.CalScale)
	fw.optText(PropertyMethod, cal.Method)
	if cal.Todo != nil {
		cal.Todo.serializeTo(fw)
	}
	if cal.Event != nil {
		cal.Event.serializeTo(fw)
	}
	if cal.Journal != nil {
		cal.Journal.serializeTo(fw)
	}
	fw.end(ComponentVCalendar)
	return fw.err
}

func (todo *VTodo) serializeTo(fw *foldWriter) {
	fw.begin(ComponentVTodo)
	fw.prop(PropertyUid, todo.UID)
	fw.prop(PropertyDtstamp, FormatDateTime(todo.DtStamp))
	fw.optText(PropertyClass, (*string)(todo.Class))
	fw.optTime(PropertyCompleted, todo.Completed)
	fw.optTime(PropertyCreated, todo.Created)
	fw.optText(PropertyDescription, todo.Description)
	fw.optTime(PropertyDtstart, todo.DtStart)
	if todo.Geo != nil {
		fw.prop(PropertyGeo, FormatGeo(*todo.Geo))
	}
	fw.optTime(PropertyLastModified, todo.LastModified)
	fw.optText(PropertyLocation, todo.Location)
	fw.optText(PropertyOrganizer, todo.Organizer)
	fw.optInt(PropertyPercentComplete, todo.PercentComplete)
	fw.optInt(PropertyPriority, todo.Priority)
	fw.optTime(PropertyRecurrenceId, todo.RecurrenceId)
	fw.optInt(PropertySequence, todo.Sequence)
	fw.optText(PropertyStatus, (*string)(todo.Status))
	fw.optText(PropertySummary, todo.Summary)
	fw.optText(PropertyUrl, todo.URL)
	fw.optTime(PropertyDue, todo.Due)
	fw.optDuration(PropertyDuration, todo.Duration)
	fw.each(PropertyAttach, todo.Attachments)
	fw.each(PropertyAttendee, todo.Attendees)
	if len(todo.Categories) > 0 {
		fw.prop(PropertyCategories, strings.Join(todo.Categories, ","))
	}
	fw.each(PropertyComment, todo.Comments)
	fw.each(PropertyContact, todo.Contacts)
	fw.eachTime(PropertyExdate, todo.ExDates)
	fw.eachTime(PropertyRdate, todo.RDates)
	fw.each(PropertyRelatedTo, todo.RelatedTo)
	fw.each(PropertyResources, todo.Resources)
	if todo.Alarm != nil {
		todo.Alarm.serializeTo(fw)
	}
	fw.end(ComponentVTodo)
}

func (event *VEvent) serializeTo(fw *foldWriter) {
	fw.begin(ComponentVEvent)
	fw.prop(PropertyUid, event.UID)
	fw.prop(PropertyDtstamp, FormatDateTime(event.DtStamp))
	fw.optText(PropertyClass, (*string)(event.Class))
	fw.optTime(PropertyCreated, event.Created)
	fw.optText(PropertyDescription, event.Description)
	fw.optTime(PropertyDtstart, event.DtStart)
	fw.optDuration(PropertyDuration, event.Duration)
	if event.Geo != nil {
		fw.prop(PropertyGeo, FormatGeo(*event.Geo))
	}
	fw.optTime(PropertyLastModified, event.LastModified)
	fw.optText(PropertyLocation, event.Location)
	fw.optText(PropertyOrganizer, event.Organizer)
	fw.optInt(PropertyPriority, event.Priority)
	fw.optTime(PropertyRecurrenceId, event.RecurrenceId)
	fw.optInt(PropertySequence, event.Sequence)
	fw.optText(PropertyStatus, (*string)(event.Status))
	fw.optText(PropertySummary, event.Summary)
	fw.optText(PropertyUrl, event.URL)
	fw.each(PropertyAttach, event.Attachments)
	fw.each(PropertyAttendee, event.Attendees)
	if len(event.Categories) > 0 {
		fw.prop(PropertyCategories, strings.Join(event.Categories, ","))
	}
	fw.each(PropertyComment, event.Comments)
	fw.each(PropertyContact, event.Contacts)
	fw.eachTime(PropertyExdate, event.ExDates)
	fw.eachTime(PropertyRdate, event.RDates)
	fw.each(PropertyRelatedTo, event.RelatedTo)
	fw.each(PropertyResources, event.Resources)
	if event.Alarm != nil {
		event.Alarm.serializeTo(fw)
	}
	fw.end(ComponentVEvent)
}

func (journal *VJournal) serializeTo(fw *foldWriter) {
	fw.begin(ComponentVJournal)
	fw.prop(PropertyUid, journal.UID)
	fw.prop(PropertyDtstamp, FormatDateTime(journal.DtStamp))
	fw.optText(PropertyClass, (*string)(journal.Class))
	fw.optTime(PropertyCreated, journal.Created)
	fw.optText(PropertyDescription, journal.Description)
	fw.optTime(PropertyDtstart, journal.DtStart)
	fw.optTime(PropertyLastModified, journal.LastModified)
	fw.optText(PropertyOrganizer, journal.Organizer)
	fw.optTime(PropertyRecurrenceId, journal.RecurrenceId)
	fw.optInt(PropertySequence, journal.Sequence)
	fw.optText(PropertyStatus, (*string)(journal.Status))
	fw.optText(PropertySummary, journal.Summary)
	fw.optText(PropertyUrl, journal.URL)
	fw.each(PropertyAttach, journal.Attachments)
	fw.each(PropertyAttendee, journal.Attendees)
	if len(journal.Categories) > 0 {
		fw.prop(PropertyCategories, strings.Join(journal.Categories, ","))
	}
	fw.each(PropertyComment, journal.Comments)
	fw.each(PropertyContact, journal.Contacts)
	fw.eachTime(PropertyExdate, journal.ExDates)
	fw.eachTime(PropertyRdate, journal.RDates)
	fw.each(PropertyRelatedTo, journal.RelatedTo)
	fw.end(ComponentVJournal)
}

func (alarm *VAlarm) serializeTo(fw *foldWriter) {
	fw.begin(ComponentVAlarm)
	fw.prop(PropertyAction, string(alarm.Action))
	fw.prop(PropertyTrigger, alarm.Trigger)
	fw.optDuration(PropertyDuration, alarm.Duration)
	fw.optInt(PropertyRepeat, alarm.Repeat)
	fw.optText(PropertyDescription, alarm.Description)
	fw.optText(PropertySummary, alarm.Summary)
	fw.each(PropertyAttach, alarm.Attachments)
	fw.each(PropertyAttendee, alarm.Attendees)
	fw.end(ComponentVAlarm)
}
