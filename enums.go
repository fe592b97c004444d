package ics

import (
	"fmt"
)

// ComponentType enumerates the component names this library understands
// (RFC 5545 section 3.6).
type ComponentType string

const (
	// ComponentVCalendar is the VCALENDAR container component.
	ComponentVCalendar ComponentType = "VCALENDAR"
	// ComponentVTodo represents a VTODO component.
	ComponentVTodo ComponentType = "VTODO"
	// ComponentVEvent represents a VEVENT component.
	ComponentVEvent ComponentType = "VEVENT"
	// ComponentVJournal represents a VJOURNAL component.
	ComponentVJournal ComponentType = "VJOURNAL"
	// ComponentVAlarm represents a VALARM subcomponent.
	ComponentVAlarm ComponentType = "VALARM"
)

func (c ComponentType) known() bool {
	switch c {
	case ComponentVCalendar, ComponentVTodo, ComponentVEvent, ComponentVJournal, ComponentVAlarm:
		return true
	}
	return false
}

// Status enumerates STATUS property values (RFC 5545 section 3.8.1.11).
// Which values are legal depends on the owning component; see ValidFor.
type Status string

const (
	// StatusNeedsAction indicates a to-do needs action.
	StatusNeedsAction Status = "NEEDS-ACTION"
	// StatusCompleted indicates a to-do was completed.
	StatusCompleted Status = "COMPLETED"
	// StatusInProcess indicates a to-do is in process.
	StatusInProcess Status = "IN-PROCESS"
	// StatusCancelled indicates the object was cancelled.
	StatusCancelled Status = "CANCELLED"
	// StatusTentative indicates an event is tentative.
	StatusTentative Status = "TENTATIVE"
	// StatusConfirmed indicates an event is definite.
	StatusConfirmed Status = "CONFIRMED"
	// StatusDraft indicates a journal entry is a draft.
	StatusDraft Status = "DRAFT"
	// StatusFinal indicates a journal entry is final.
	StatusFinal Status = "FINAL"
)

func decodeStatus(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusNeedsAction, StatusCompleted, StatusInProcess, StatusCancelled,
		StatusTentative, StatusConfirmed, StatusDraft, StatusFinal:
		return s, nil
	}
	return "", fmt.Errorf("%w: STATUS value %q", ErrPropertyConditionNotRespected, raw)
}

// ValidFor reports whether the status belongs to the state space of the given
// component kind.  A to-do accepts NEEDS-ACTION, COMPLETED, IN-PROCESS and
// CANCELLED; an event TENTATIVE, CONFIRMED and CANCELLED; a journal DRAFT,
// FINAL and CANCELLED.
func (s Status) ValidFor(c ComponentType) bool {
	switch c {
	case ComponentVTodo:
		switch s {
		case StatusNeedsAction, StatusCompleted, StatusInProcess, StatusCancelled:
			return true
		}
	case ComponentVEvent:
		switch s {
		case StatusTentative, StatusConfirmed, StatusCancelled:
			return true
		}
	case ComponentVJournal:
		switch s {
		case StatusDraft, StatusFinal, StatusCancelled:
			return true
		}
	}
	return false
}

// Class enumerates CLASS property values (RFC 5545 section 3.8.1.3).  The
// grammar leaves the vocabulary open for iana-tokens and x-names, so any
// other non-empty token is carried through as an opaque Class value;
// IsRegistered tells the two cases apart.
type Class string

const (
	// ClassPublic marks information as public.  This is the RFC default.
	ClassPublic Class = "PUBLIC"
	// ClassPrivate marks information as private.
	ClassPrivate Class = "PRIVATE"
	// ClassConfidential marks information as confidential.
	ClassConfidential Class = "CONFIDENTIAL"
)

func decodeClass(raw string) (Class, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: empty CLASS value", ErrPropertyConditionNotRespected)
	}
	return Class(raw), nil
}

// IsRegistered reports whether the class is one of the three registered
// RFC 5545 tokens rather than an extension token.
func (c Class) IsRegistered() bool {
	switch c {
	case ClassPublic, ClassPrivate, ClassConfidential:
		return true
	}
	return false
}

// Action enumerates VALARM ACTION property values (RFC 5545 section 3.8.6.1).
type Action string

const (
	// ActionAudio plays an audio alert.
	ActionAudio Action = "AUDIO"
	// ActionDisplay shows display text.
	ActionDisplay Action = "DISPLAY"
	// ActionEmail sends an email message.
	ActionEmail Action = "EMAIL"
)

func decodeAction(raw string) (Action, error) {
	switch a := Action(raw); a {
	case ActionAudio, ActionDisplay, ActionEmail:
		return a, nil
	}
	return "", fmt.Errorf("%w: ACTION value %q", ErrPropertyConditionNotRespected, raw)
}
