package ics

import (
	"errors"
)

// Every parse failure is reported through one of these sentinel errors so
// callers can classify a failure with errors.Is.  The wrapped message carries
// the offending property or component name where one exists.
var (
	// ErrNoBeginFound is returned when the first content line of a stream is
	// not BEGIN:VCALENDAR.
	ErrNoBeginFound = errors.New("expected BEGIN:VCALENDAR as first content line")
	// ErrBeginWithoutEnd is returned when the stream is exhausted before the
	// matching END line of an open component.
	ErrBeginWithoutEnd = errors.New("reached end of stream without finding the end of current component")
	// ErrInvalidBeginLine is returned for a BEGIN line with no component name.
	ErrInvalidBeginLine = errors.New("malformed BEGIN line")
	// ErrUnknownComponent is returned when a BEGIN names a component kind that
	// is not part of the recognized vocabulary.
	ErrUnknownComponent = errors.New("unknown component")
	// ErrUnexpectedComponent is returned when a recognized component kind
	// appears under a parent that cannot contain it.
	ErrUnexpectedComponent = errors.New("unexpected component")
	// ErrUnableToParseProperty is returned when a content line has no
	// structural ":" separating identifier from value.
	ErrUnableToParseProperty = errors.New("unable to parse property")
	// ErrUnknownProperty is returned when an identifier is not part of the
	// recognized property vocabulary.  It is distinct from
	// ErrPropertyConditionNotRespected so lenient callers can skip unknown
	// properties while still rejecting malformed known ones.
	ErrUnknownProperty = errors.New("unknown property")
	// ErrPropertyConditionNotRespected is returned when a recognized
	// property's value violates its grammar or an RFC 5545 range or
	// state-space constraint.
	ErrPropertyConditionNotRespected = errors.New("property condition not respected")
	// ErrDuplicateUniqueProperty is returned when a unique property, or a
	// unique sub-component, appears more than once.
	ErrDuplicateUniqueProperty = errors.New("unique property appears twice")
	// ErrMissingNecessaryProperty is returned at component finalization when
	// a required property was never seen.
	ErrMissingNecessaryProperty = errors.New("missing necessary property")
	// ErrUnexpectedProperty is returned when a recognized property appears in
	// a component that does not allow it.
	ErrUnexpectedProperty = errors.New("unexpected property")
	// ErrWrongValueKind reports a Value accessed as a variant other than the
	// one its codec produced.
	ErrWrongValueKind = errors.New("value accessed as wrong kind")
	// ErrValueOutOfRange marks range violations (geo coordinates, percent,
	// priority) as distinct from grammar failures.  It is always wrapped
	// together with ErrPropertyConditionNotRespected.
	ErrValueOutOfRange = errors.New("value out of range")
	// ErrRead wraps any failure of the underlying line source other than a
	// clean end of stream.
	ErrRead = errors.New("read failure")
)
