package ics

import (
	"fmt"
	"io"
	"time"
)

// VTodo is a finalized VTODO component (RFC 5545 section 3.6.2).  Required
// properties are plain fields, optional-unique properties are pointers whose
// presence is the "seen" flag, and repeatable properties accumulate in
// document order.
type VTodo struct {
	UID     string
	DtStamp time.Time

	Class           *Class
	Completed       *time.Time
	Created         *time.Time
	Description     *string
	DtStart         *time.Time
	Geo             *Geo
	LastModified    *time.Time
	Location        *string
	Organizer       *string
	PercentComplete *int
	Priority        *int
	RecurrenceId    *time.Time
	Sequence        *int
	Status          *Status
	Summary         *string
	URL             *string

	// Due and Duration are mutually exclusive.
	Due      *time.Time
	Duration *time.Duration

	Attachments []string
	Attendees   []string
	Categories  []string
	Comments    []string
	Contacts    []string
	ExDates     []time.Time
	RDates      []time.Time
	RelatedTo   []string
	Resources   []string

	Alarm *VAlarm
}

// VEvent is a finalized VEVENT component (RFC 5545 section 3.6.1).
type VEvent struct {
	UID     string
	DtStamp time.Time

	Class        *Class
	Created      *time.Time
	Description  *string
	DtStart      *time.Time
	Duration     *time.Duration
	Geo          *Geo
	LastModified *time.Time
	Location     *string
	Organizer    *string
	Priority     *int
	RecurrenceId *time.Time
	Sequence     *int
	Status       *Status
	Summary      *string
	URL          *string

	Attachments []string
	Attendees   []string
	Categories  []string
	Comments    []string
	Contacts    []string
	ExDates     []time.Time
	RDates      []time.Time
	RelatedTo   []string
	Resources   []string

	Alarm *VAlarm
}

// VJournal is a finalized VJOURNAL component (RFC 5545 section 3.6.3).
type VJournal struct {
	UID     string
	DtStamp time.Time

	Class        *Class
	Created      *time.Time
	Description  *string
	DtStart      *time.Time
	LastModified *time.Time
	Organizer    *string
	RecurrenceId *time.Time
	Sequence     *int
	Status       *Status
	Summary      *string
	URL          *string

	Attachments []string
	Attendees   []string
	Categories  []string
	Comments    []string
	Contacts    []string
	ExDates     []time.Time
	RDates      []time.Time
	RelatedTo   []string
}

// VAlarm is a finalized VALARM subcomponent (RFC 5545 section 3.6.6).
// Trigger stays an opaque string; its relative/absolute grammar is an open
// extension point.
type VAlarm struct {
	Action  Action
	Trigger string

	Duration    *time.Duration
	Repeat      *int
	Description *string
	Summary     *string

	Attachments []string
	Attendees   []string
}

func missingProperty(name Property) error {
	return fmt.Errorf("%w: %s", ErrMissingNecessaryProperty, name)
}

// applyUnique stores v into an optional-unique slot, failing when the slot is
// already occupied.  The (v, err) pair plugs directly into the Value
// accessors so call sites stay one line.
func applyUnique[T any](slot **T, p Property, v T, err error) error {
	if err != nil {
		return err
	}
	if *slot != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateUniqueProperty, p)
	}
	val := v
	*slot = &val
	return nil
}

func applyRepeated[T any](list *[]T, v T, err error) error {
	if err != nil {
		return err
	}
	*list = append(*list, v)
	return nil
}

// applyUniqueInRange is applyUnique plus the component-owned range check for
// bounded integers such as PERCENT-COMPLETE and PRIORITY.
func applyUniqueInRange(slot **int, p Property, lo, hi, n int, err error) error {
	if err != nil {
		return err
	}
	if n < lo || n > hi {
		return fmt.Errorf("%w: %w: %s value %d outside [%d,%d]",
			ErrPropertyConditionNotRespected, ErrValueOutOfRange, p, n, lo, hi)
	}
	return applyUnique(slot, p, n, nil)
}

func applyUniqueStatus(slot **Status, c ComponentType, s Status, err error) error {
	if err != nil {
		return err
	}
	if *slot != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateUniqueProperty, PropertyStatus)
	}
	if !s.ValidFor(c) {
		return fmt.Errorf("%w: STATUS %s not valid for %s", ErrPropertyConditionNotRespected, s, c)
	}
	val := s
	*slot = &val
	return nil
}

// parseBody drives the line loop shared by every component assembler.  It
// unfolds each line, returns on the matching END, hands child BEGIN blocks to
// begin (nil means the component has no legal children) and every other line,
// tokenized and decoded, to apply.
func parseBody(cs *CalendarStream, kind ComponentType, begin func(ComponentType) error, apply func(Property, Value) error) error {
	for {
		l, err := cs.ReadLine()
		if err == io.EOF {
			return fmt.Errorf("%w: %s", ErrBeginWithoutEnd, kind)
		}
		if err != nil {
			return err
		}
		if len(l) == 0 {
			continue
		}
		prop, err := ParseProperty(l)
		if err != nil {
			return err
		}
		switch prop.IANAToken {
		case "END":
			if prop.Value != string(kind) {
				return fmt.Errorf("%w: END:%s inside %s", ErrUnexpectedComponent, prop.Value, kind)
			}
			return nil
		case "BEGIN":
			if prop.Value == "" {
				return fmt.Errorf("%w: %q", ErrInvalidBeginLine, string(l))
			}
			child := ComponentType(prop.Value)
			if !child.known() {
				return fmt.Errorf("%w: %s", ErrUnknownComponent, prop.Value)
			}
			if begin == nil {
				return fmt.Errorf("%w: %s inside %s", ErrUnexpectedComponent, child, kind)
			}
			if err := begin(child); err != nil {
				return err
			}
		default:
			p, err := IdentifyProperty(prop.IANAToken)
			if err != nil {
				return err
			}
			v, err := DecodeValue(p, prop.Value, prop.ICalParameters)
			if err != nil {
				return err
			}
			if err := apply(p, v); err != nil {
				return err
			}
		}
	}
}

// parseVTodo consumes the body of a VTODO up to its END line and returns the
// finalized record.  The BEGIN:VTODO line must already be consumed.
func parseVTodo(cs *CalendarStream) (*VTodo, error) {
	todo := &VTodo{}
	var hasUID, hasDtStamp bool

	begin := func(child ComponentType) error {
		if child != ComponentVAlarm {
			return fmt.Errorf("%w: %s inside %s", ErrUnexpectedComponent, child, ComponentVTodo)
		}
		if todo.Alarm != nil {
			return fmt.Errorf("%w: %s", ErrDuplicateUniqueProperty, ComponentVAlarm)
		}
		a, err := parseVAlarm(cs)
		if err != nil {
			return err
		}
		todo.Alarm = a
		return nil
	}

	apply := func(p Property, v Value) error {
		switch p {
		case PropertyUid:
			s, err := v.Text()
			if err != nil {
				return err
			}
			if hasUID {
				return fmt.Errorf("%w: %s", ErrDuplicateUniqueProperty, p)
			}
			hasUID = true
			todo.UID = s
			return nil
		case PropertyDtstamp:
			t, err := v.Time()
			if err != nil {
				return err
			}
			if hasDtStamp {
				return fmt.Errorf("%w: %s", ErrDuplicateUniqueProperty, p)
			}
			hasDtStamp = true
			todo.DtStamp = t
			return nil
		case PropertyClass:
			c, err := v.Class()
			return applyUnique(&todo.Class, p, c, err)
		case PropertyCompleted:
			t, err := v.Time()
			return applyUnique(&todo.Completed, p, t, err)
		case PropertyCreated:
			t, err := v.Time()
			return applyUnique(&todo.Created, p, t, err)
		case PropertyDescription:
			s, err := v.Text()
			return applyUnique(&todo.Description, p, s, err)
		case PropertyDtstart:
			t, err := v.Time()
			return applyUnique(&todo.DtStart, p, t, err)
		case PropertyGeo:
			g, err := v.Geo()
			return applyUnique(&todo.Geo, p, g, err)
		case PropertyLastModified:
			t, err := v.Time()
			return applyUnique(&todo.LastModified, p, t, err)
		case PropertyLocation:
			s, err := v.Text()
			return applyUnique(&todo.Location, p, s, err)
		case PropertyOrganizer:
			s, err := v.Text()
			return applyUnique(&todo.Organizer, p, s, err)
		case PropertyPercentComplete:
			n, err := v.Int()
			return applyUniqueInRange(&todo.PercentComplete, p, 0, 100, n, err)
		case PropertyPriority:
			n, err := v.Int()
			return applyUniqueInRange(&todo.Priority, p, 0, 9, n, err)
		case PropertyRecurrenceId:
			t, err := v.Time()
			return applyUnique(&todo.RecurrenceId, p, t, err)
		case PropertySequence:
			n, err := v.Int()
			return applyUnique(&todo.Sequence, p, n, err)
		case PropertyStatus:
			s, err := v.Status()
			return applyUniqueStatus(&todo.Status, ComponentVTodo, s, err)
		case PropertySummary:
			s, err := v.Text()
			return applyUnique(&todo.Summary, p, s, err)
		case PropertyUrl:
			s, err := v.Text()
			return applyUnique(&todo.URL, p, s, err)
		case PropertyDue:
			if todo.Duration != nil {
				return fmt.Errorf("%w: DUE and DURATION are mutually exclusive", ErrPropertyConditionNotRespected)
			}
			t, err := v.Time()
			return applyUnique(&todo.Due, p, t, err)
		case PropertyDuration:
			if todo.Due != nil {
				return fmt.Errorf("%w: DUE and DURATION are mutually exclusive", ErrPropertyConditionNotRespected)
			}
			d, err := v.Duration()
			return applyUnique(&todo.Duration, p, d, err)
		case PropertyAttach:
			s, err := v.Text()
			return applyRepeated(&todo.Attachments, s, err)
		case PropertyAttendee:
			s, err := v.Text()
			return applyRepeated(&todo.Attendees, s, err)
		case PropertyCategories:
			ss, err := v.TextList()
			if err != nil {
				return err
			}
			todo.Categories = append(todo.Categories, ss...)
			return nil
		case PropertyComment:
			s, err := v.Text()
			return applyRepeated(&todo.Comments, s, err)
		case PropertyContact:
			s, err := v.Text()
			return applyRepeated(&todo.Contacts, s, err)
		case PropertyExdate:
			t, err := v.Time()
			return applyRepeated(&todo.ExDates, t, err)
		case PropertyRdate:
			t, err := v.Time()
			return applyRepeated(&todo.RDates, t, err)
		case PropertyRelatedTo:
			s, err := v.Text()
			return applyRepeated(&todo.RelatedTo, s, err)
		case PropertyResources:
			s, err := v.Text()
			return applyRepeated(&todo.Resources, s, err)
		default:
			return fmt.Errorf("%w: %s in %s", ErrUnexpectedProperty, p, ComponentVTodo)
		}
	}

	if err := parseBody(cs, ComponentVTodo, begin, apply); err != nil {
		return nil, err
	}
	if !hasUID {
		return nil, missingProperty(PropertyUid)
	}
	if !hasDtStamp {
		return nil, missingProperty(PropertyDtstamp)
	}
	return todo, nil
}

// parseVEvent consumes the body of a VEVENT up to its END line.
func parseVEvent(cs *CalendarStream) (*VEvent, error) {
	event := &VEvent{}
	var hasUID, hasDtStamp bool

	begin := func(child ComponentType) error {
		if child != ComponentVAlarm {
			return fmt.Errorf("%w: %s inside %s", ErrUnexpectedComponent, child, ComponentVEvent)
		}
		if event.Alarm != nil {
			return fmt.Errorf("%w: %s", ErrDuplicateUniqueProperty, ComponentVAlarm)
		}
		a, err := parseVAlarm(cs)
		if err != nil {
			return err
		}
		event.Alarm = a
		return nil
	}

	apply := func(p Property, v Value) error {
		switch p {
		case PropertyUid:
			s, err := v.Text()
			if err != nil {
				return err
			}
			if hasUID {
				return fmt.Errorf("%w: %s", ErrDuplicateUniqueProperty, p)
			}
			hasUID = true
			event.UID = s
			return nil
		case PropertyDtstamp:
			t, err := v.Time()
			if err != nil {
				return err
			}
			if hasDtStamp {
				return fmt.Errorf("%w: %s", ErrDuplicateUniqueProperty, p)
			}
			hasDtStamp = true
			event.DtStamp = t
			return nil
		case PropertyClass:
			c, err := v.Class()
			return applyUnique(&event.Class, p, c, err)
		case PropertyCreated:
			t, err := v.Time()
			return applyUnique(&event.Created, p, t, err)
		case PropertyDescription:
			s, err := v.Text()
			return applyUnique(&event.Description, p, s, err)
		case PropertyDtstart:
			t, err := v.Time()
			return applyUnique(&event.DtStart, p, t, err)
		case PropertyDuration:
			d, err := v.Duration()
			return applyUnique(&event.Duration, p, d, err)
		case PropertyGeo:
			g, err := v.Geo()
			return applyUnique(&event.Geo, p, g, err)
		case PropertyLastModified:
			t, err := v.Time()
			return applyUnique(&event.LastModified, p, t, err)
		case PropertyLocation:
			s, err := v.Text()
			return applyUnique(&event.Location, p, s, err)
		case PropertyOrganizer:
			s, err := v.Text()
			return applyUnique(&event.Organizer, p, s, err)
		case PropertyPriority:
			n, err := v.Int()
			return applyUniqueInRange(&event.Priority, p, 0, 9, n, err)
		case PropertyRecurrenceId:
			t, err := v.Time()
			return applyUnique(&event.RecurrenceId, p, t, err)
		case PropertySequence:
			n, err := v.Int()
			return applyUnique(&event.Sequence, p, n, err)
		case PropertyStatus:
			s, err := v.Status()
			return applyUniqueStatus(&event.Status, ComponentVEvent, s, err)
		case PropertySummary:
			s, err := v.Text()
			return applyUnique(&event.Summary, p, s, err)
		case PropertyUrl:
			s, err := v.Text()
			return applyUnique(&event.URL, p, s, err)
		case PropertyAttach:
			s, err := v.Text()
			return applyRepeated(&event.Attachments, s, err)
		case PropertyAttendee:
			s, err := v.Text()
			return applyRepeated(&event.Attendees, s, err)
		case PropertyCategories:
			ss, err := v.TextList()
			if err != nil {
				return err
			}
			event.Categories = append(event.Categories, ss...)
			return nil
		case PropertyComment:
			s, err := v.Text()
			return applyRepeated(&event.Comments, s, err)
		case PropertyContact:
			s, err := v.Text()
			return applyRepeated(&event.Contacts, s, err)
		case PropertyExdate:
			t, err := v.Time()
			return applyRepeated(&event.ExDates, t, err)
		case PropertyRdate:
			t, err := v.Time()
			return applyRepeated(&event.RDates, t, err)
		case PropertyRelatedTo:
			s, err := v.Text()
			return applyRepeated(&event.RelatedTo, s, err)
		case PropertyResources:
			s, err := v.Text()
			return applyRepeated(&event.Resources, s, err)
		default:
			return fmt.Errorf("%w: %s in %s", ErrUnexpectedProperty, p, ComponentVEvent)
		}
	}

	if err := parseBody(cs, ComponentVEvent, begin, apply); err != nil {
		return nil, err
	}
	if !hasUID {
		return nil, missingProperty(PropertyUid)
	}
	if !hasDtStamp {
		return nil, missingProperty(PropertyDtstamp)
	}
	return event, nil
}

// parseVJournal consumes the body of a VJOURNAL up to its END line.
// Journals have no legal sub-components.
func parseVJournal(cs *CalendarStream) (*VJournal, error) {
	journal := &VJournal{}
	var hasUID, hasDtStamp bool

	apply := func(p Property, v Value) error {
		switch p {
		case PropertyUid:
			s, err := v.Text()
			if err != nil {
				return err
			}
			if hasUID {
				return fmt.Errorf("%w: %s", ErrDuplicateUniqueProperty, p)
			}
			hasUID = true
			journal.UID = s
			return nil
		case PropertyDtstamp:
			t, err := v.Time()
			if err != nil {
				return err
			}
			if hasDtStamp {
				return fmt.Errorf("%w: %s", ErrDuplicateUniqueProperty, p)
			}
			hasDtStamp = true
			journal.DtStamp = t
			return nil
		case PropertyClass:
			c, err := v.Class()
			return applyUnique(&journal.Class, p, c, err)
		case PropertyCreated:
			t, err := v.Time()
			return applyUnique(&journal.Created, p, t, err)
		case PropertyDescription:
			s, err := v.Text()
			return applyUnique(&journal.Description, p, s, err)
		case PropertyDtstart:
			t, err := v.Time()
			return applyUnique(&journal.DtStart, p, t, err)
		case PropertyLastModified:
			t, err := v.Time()
			return applyUnique(&journal.LastModified, p, t, err)
		case PropertyOrganizer:
			s, err := v.Text()
			return applyUnique(&journal.Organizer, p, s, err)
		case PropertyRecurrenceId:
			t, err := v.Time()
			return applyUnique(&journal.RecurrenceId, p, t, err)
		case PropertySequence:
			n, err := v.Int()
			return applyUnique(&journal.Sequence, p, n, err)
		case PropertyStatus:
			s, err := v.Status()
			return applyUniqueStatus(&journal.Status, ComponentVJournal, s, err)
		case PropertySummary:
			s, err := v.Text()
			return applyUnique(&journal.Summary, p, s, err)
		case PropertyUrl:
			s, err := v.Text()
			return applyUnique(&journal.URL, p, s, err)
		case PropertyAttach:
			s, err := v.Text()
			return applyRepeated(&journal.Attachments, s, err)
		case PropertyAttendee:
			s, err := v.Text()
			return applyRepeated(&journal.Attendees, s, err)
		case PropertyCategories:
			ss, err := v.TextList()
			if err != nil {
				return err
			}
			journal.Categories = append(journal.Categories, ss...)
			return nil
		case PropertyComment:
			s, err := v.Text()
			return applyRepeated(&journal.Comments, s, err)
		case PropertyContact:
			s, err := v.Text()
			return applyRepeated(&journal.Contacts, s, err)
		case PropertyExdate:
			t, err := v.Time()
			return applyRepeated(&journal.ExDates, t, err)
		case PropertyRdate:
			t, err := v.Time()
			return applyRepeated(&journal.RDates, t, err)
		case PropertyRelatedTo:
			s, err := v.Text()
			return applyRepeated(&journal.RelatedTo, s, err)
		default:
			return fmt.Errorf("%w: %s in %s", ErrUnexpectedProperty, p, ComponentVJournal)
		}
	}

	if err := parseBody(cs, ComponentVJournal, nil, apply); err != nil {
		return nil, err
	}
	if !hasUID {
		return nil, missingProperty(PropertyUid)
	}
	if !hasDtStamp {
		return nil, missingProperty(PropertyDtstamp)
	}
	return journal, nil
}

// parseVAlarm consumes the body of a VALARM up to its END line.  ACTION and
// TRIGGER are required; alarms cannot nest.
func parseVAlarm(cs *CalendarStream) (*VAlarm, error) {
	alarm := &VAlarm{}
	var hasAction, hasTrigger bool

	apply := func(p Property, v Value) error {
		switch p {
		case PropertyAction:
			a, err := v.Action()
			if err != nil {
				return err
			}
			if hasAction {
				return fmt.Errorf("%w: %s", ErrDuplicateUniqueProperty, p)
			}
			hasAction = true
			alarm.Action = a
			return nil
		case PropertyTrigger:
			s, err := v.Text()
			if err != nil {
				return err
			}
			if hasTrigger {
				return fmt.Errorf("%w: %s", ErrDuplicateUniqueProperty, p)
			}
			hasTrigger = true
			alarm.Trigger = s
			return nil
		case PropertyDuration:
			d, err := v.Duration()
			return applyUnique(&alarm.Duration, p, d, err)
		case PropertyRepeat:
			n, err := v.Int()
			return applyUnique(&alarm.Repeat, p, n, err)
		case PropertyDescription:
			s, err := v.Text()
			return applyUnique(&alarm.Description, p, s, err)
		case PropertySummary:
			s, err := v.Text()
			return applyUnique(&alarm.Summary, p, s, err)
		case PropertyAttach:
			s, err := v.Text()
			return applyRepeated(&alarm.Attachments, s, err)
		case PropertyAttendee:
			s, err := v.Text()
			return applyRepeated(&alarm.Attendees, s, err)
		default:
			return fmt.Errorf("%w: %s in %s", ErrUnexpectedProperty, p, ComponentVAlarm)
		}
	}

	if err := parseBody(cs, ComponentVAlarm, nil, apply); err != nil {
		return nil, err
	}
	if !hasAction {
		return nil, missingProperty(PropertyAction)
	}
	if !hasTrigger {
		return nil, missingProperty(PropertyTrigger)
	}
	return alarm, nil
}
