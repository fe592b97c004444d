package ics

import (
	"fmt"
	"io"
	"strings"
)

// Calendar is a parsed VCALENDAR document.  Exactly one of Todo, Event and
// Journal is non-nil after a successful parse.
type Calendar struct {
	ProdId  string
	Version string

	CalScale *string
	Method   *string

	Todo    *VTodo
	Event   *VEvent
	Journal *VJournal
}

func (cal *Calendar) childSet() bool {
	return cal.Todo != nil || cal.Event != nil || cal.Journal != nil
}

// ParseCalendar reads one complete iCalendar document from r.  The very first
// content line must be BEGIN:VCALENDAR; blank lines before it are skipped.
// All structural and semantic failures are reported through the exported
// sentinel errors, so callers classify them with errors.Is.
func ParseCalendar(r io.Reader) (*Calendar, error) {
	cs := NewCalendarStream(r)

	var first ContentLine
	for {
		l, err := cs.ReadLine()
		if err == io.EOF {
			return nil, ErrNoBeginFound
		}
		if err != nil {
			return nil, err
		}
		if len(l) == 0 {
			continue
		}
		first = l
		break
	}
	prop, err := ParseProperty(first)
	if err != nil {
		if strings.HasPrefix(string(first), "BEGIN") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidBeginLine, string(first))
		}
		return nil, fmt.Errorf("%w: first line %q", ErrNoBeginFound, string(first))
	}
	if prop.IANAToken != "BEGIN" {
		return nil, fmt.Errorf("%w: first line %q", ErrNoBeginFound, string(first))
	}
	if prop.Value == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBeginLine, string(first))
	}
	if prop.Value != string(ComponentVCalendar) {
		return nil, fmt.Errorf("%w: first line %q", ErrNoBeginFound, string(first))
	}

	cal := &Calendar{}
	var hasProdId, hasVersion bool

	begin := func(child ComponentType) error {
		switch child {
		case ComponentVTodo, ComponentVEvent, ComponentVJournal:
		default:
			return fmt.Errorf("%w: %s inside %s", ErrUnexpectedComponent, child, ComponentVCalendar)
		}
		if cal.childSet() {
			return fmt.Errorf("%w: %s", ErrDuplicateUniqueProperty, child)
		}
		switch child {
		case ComponentVTodo:
			t, err := parseVTodo(cs)
			if err != nil {
				return err
			}
			cal.Todo = t
		case ComponentVEvent:
			e, err := parseVEvent(cs)
			if err != nil {
				return err
			}
			cal.Event = e
		case ComponentVJournal:
			j, err := parseVJournal(cs)
			if err != nil {
				return err
			}
			cal.Journal = j
		}
		return nil
	}

	apply := func(p Property, v Value) error {
		switch p {
		case PropertyProductId:
			s, err := v.Text()
			if err != nil {
				return err
			}
			if hasProdId {
				return fmt.Errorf("%w: %s", ErrDuplicateUniqueProperty, p)
			}
			hasProdId = true
			cal.ProdId = s
			return nil
		case PropertyVersion:
			s, err := v.Text()
			if err != nil {
				return err
			}
			if hasVersion {
				return fmt.Errorf("%w: %s", ErrDuplicateUniqueProperty, p)
			}
			hasVersion = true
			cal.Version = s
			return nil
		case PropertyCalscale:
			s, err := v.Text()
			return applyUnique(&cal.CalScale, p, s, err)
		case PropertyMethod:
			s, err := v.Text()
			return applyUnique(&cal.Method, p, s, err)
		default:
			return fmt.Errorf("%w: %s in %s", ErrUnexpectedProperty, p, ComponentVCalendar)
		}
	}

	if err := parseBody(cs, ComponentVCalendar, begin, apply); err != nil {
		return nil, err
	}
	if !hasProdId {
		return nil, missingProperty(PropertyProductId)
	}
	if !hasVersion {
		return nil, missingProperty(PropertyVersion)
	}
	if !cal.childSet() {
		return nil, fmt.Errorf("%w: one of %s, %s or %s",
			ErrMissingNecessaryProperty, ComponentVTodo, ComponentVEvent, ComponentVJournal)
	}
	return cal, nil
}
