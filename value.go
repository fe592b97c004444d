package ics

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	// ValueKindText is a single verbatim string.
	ValueKindText ValueKind = iota
	// ValueKindTextList is an ordered, non-deduplicated list of strings.
	ValueKindTextList
	// ValueKindDateTime is an instant normalized to UTC.
	ValueKindDateTime
	// ValueKindDuration is a signed span of time.
	ValueKindDuration
	// ValueKindInteger is a non-negative integer.
	ValueKindInteger
	// ValueKindGeo is a latitude/longitude pair.
	ValueKindGeo
	// ValueKindStatus is a STATUS enumeration token.
	ValueKindStatus
	// ValueKindClass is a CLASS token, possibly an extension token.
	ValueKindClass
	// ValueKindAction is a VALARM ACTION token.
	ValueKindAction
)

func (k ValueKind) String() string {
	switch k {
	case ValueKindText:
		return "TEXT"
	case ValueKindTextList:
		return "TEXT-LIST"
	case ValueKindDateTime:
		return "DATE-TIME"
	case ValueKindDuration:
		return "DURATION"
	case ValueKindInteger:
		return "INTEGER"
	case ValueKindGeo:
		return "GEO"
	case ValueKindStatus:
		return "STATUS"
	case ValueKindClass:
		return "CLASS"
	case ValueKindAction:
		return "ACTION"
	}
	return "UNKNOWN"
}

// propertyValueKinds maps every recognized property to the codec that decodes
// its value.  The mapping doubles as the membership table behind
// IdentifyProperty.  Address and URI properties (ORGANIZER, ATTENDEE,
// CONTACT, URL, ATTACH) and TRIGGER have no dedicated grammar here and pass
// through as opaque text.
var propertyValueKinds = map[Property]ValueKind{
	PropertyDtstamp:         ValueKindDateTime,
	PropertyCompleted:       ValueKindDateTime,
	PropertyCreated:         ValueKindDateTime,
	PropertyDtstart:         ValueKindDateTime,
	PropertyLastModified:    ValueKindDateTime,
	PropertyRecurrenceId:    ValueKindDateTime,
	PropertyExdate:          ValueKindDateTime,
	PropertyRdate:           ValueKindDateTime,
	PropertyDue:             ValueKindDateTime,
	PropertyDuration:        ValueKindDuration,
	PropertyUid:             ValueKindText,
	PropertyDescription:     ValueKindText,
	PropertyLocation:        ValueKindText,
	PropertySummary:         ValueKindText,
	PropertyComment:         ValueKindText,
	PropertyRelatedTo:       ValueKindText,
	PropertyResources:       ValueKindText,
	PropertyProductId:       ValueKindText,
	PropertyVersion:         ValueKindText,
	PropertyCalscale:        ValueKindText,
	PropertyMethod:          ValueKindText,
	PropertyOrganizer:       ValueKindText,
	PropertyAttendee:        ValueKindText,
	PropertyContact:         ValueKindText,
	PropertyUrl:             ValueKindText,
	PropertyAttach:          ValueKindText,
	PropertyTrigger:         ValueKindText,
	PropertyCategories:      ValueKindTextList,
	PropertyPercentComplete: ValueKindInteger,
	PropertyPriority:        ValueKindInteger,
	PropertySequence:        ValueKindInteger,
	PropertyRepeat:          ValueKindInteger,
	PropertyStatus:          ValueKindStatus,
	PropertyAction:          ValueKindAction,
	PropertyClass:           ValueKindClass,
	PropertyGeo:             ValueKindGeo,
}

// Geo is a geographic position (RFC 5545 section 3.8.1.6).
type Geo struct {
	Latitude  float64
	Longitude float64
}

// Value is the decoded form of one property value.  The variant produced for
// a given Property is fixed by propertyValueKinds; accessing a Value through
// the wrong accessor returns ErrWrongValueKind rather than panicking, so an
// internal contract violation never aborts the process.
type Value struct {
	kind   ValueKind
	text   string
	list   []string
	ts     time.Time
	dur    time.Duration
	num    int
	geo    Geo
	status Status
	class  Class
	action Action
}

// Kind returns the variant tag of the value.
func (v Value) Kind() ValueKind { return v.kind }

func (v Value) wrongKind(want ValueKind) error {
	return fmt.Errorf("%w: have %s, want %s", ErrWrongValueKind, v.kind, want)
}

// Text returns the single-string variant.
func (v Value) Text() (string, error) {
	if v.kind != ValueKindText {
		return "", v.wrongKind(ValueKindText)
	}
	return v.text, nil
}

// TextList returns the string-list variant.
func (v Value) TextList() ([]string, error) {
	if v.kind != ValueKindTextList {
		return nil, v.wrongKind(ValueKindTextList)
	}
	return v.list, nil
}

// Time returns the date-time variant, always in UTC.
func (v Value) Time() (time.Time, error) {
	if v.kind != ValueKindDateTime {
		return time.Time{}, v.wrongKind(ValueKindDateTime)
	}
	return v.ts, nil
}

// Duration returns the duration variant.
func (v Value) Duration() (time.Duration, error) {
	if v.kind != ValueKindDuration {
		return 0, v.wrongKind(ValueKindDuration)
	}
	return v.dur, nil
}

// Int returns the integer variant.
func (v Value) Int() (int, error) {
	if v.kind != ValueKindInteger {
		return 0, v.wrongKind(ValueKindInteger)
	}
	return v.num, nil
}

// Geo returns the geographic-position variant.
func (v Value) Geo() (Geo, error) {
	if v.kind != ValueKindGeo {
		return Geo{}, v.wrongKind(ValueKindGeo)
	}
	return v.geo, nil
}

// Status returns the status-enum variant.
func (v Value) Status() (Status, error) {
	if v.kind != ValueKindStatus {
		return "", v.wrongKind(ValueKindStatus)
	}
	return v.status, nil
}

// Class returns the class-token variant.
func (v Value) Class() (Class, error) {
	if v.kind != ValueKindClass {
		return "", v.wrongKind(ValueKindClass)
	}
	return v.class, nil
}

// Action returns the alarm-action variant.
func (v Value) Action() (Action, error) {
	if v.kind != ValueKindAction {
		return "", v.wrongKind(ValueKindAction)
	}
	return v.action, nil
}

// DecodeValue runs the codec registered for the property over the raw value
// and, for the date-time family, its parameter list.  This is the single
// chokepoint where untyped text becomes a typed value.
func DecodeValue(p Property, raw string, params map[string][]string) (Value, error) {
	kind, ok := propertyValueKinds[p]
	if !ok {
		return Value{}, fmt.Errorf("%w: %s", ErrUnknownProperty, p)
	}
	switch kind {
	case ValueKindDateTime:
		t, err := decodeDateTime(p, raw, params)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: kind, ts: t}, nil
	case ValueKindDuration:
		d, err := decodeDuration(raw)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: kind, dur: d}, nil
	case ValueKindInteger:
		n, err := decodeInteger(p, raw)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: kind, num: n}, nil
	case ValueKindGeo:
		g, err := decodeGeo(raw)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: kind, geo: g}, nil
	case ValueKindStatus:
		s, err := decodeStatus(raw)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: kind, status: s}, nil
	case ValueKindClass:
		c, err := decodeClass(raw)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: kind, class: c}, nil
	case ValueKindAction:
		a, err := decodeAction(raw)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: kind, action: a}, nil
	case ValueKindTextList:
		return Value{kind: kind, list: strings.Split(raw, ",")}, nil
	default:
		return Value{kind: ValueKindText, text: raw}, nil
	}
}

const (
	dateTimeFormatUtc          = "20060102T150405Z"
	dateTimeFormatUtcNoSeconds = "20060102T1504Z"
)

// decodeDateTime parses the UTC forms YYYYMMDDTHHMMSSZ and YYYYMMDDTHHMMZ.
// A VALUE=DATE parameter marks the raw value as a bare date, which is read as
// midnight UTC; VALUE=DATE-TIME is a no-op.  Any other parameter is a
// validation failure per the property grammar.
func decodeDateTime(p Property, raw string, params map[string][]string) (time.Time, error) {
	for name, vs := range params {
		if name != "VALUE" {
			return time.Time{}, fmt.Errorf("%w: %s parameter %s", ErrPropertyConditionNotRespected, p, name)
		}
		for _, v := range vs {
			switch v {
			case "DATE":
				raw += "T000000Z"
			case "DATE-TIME":
			default:
				return time.Time{}, fmt.Errorf("%w: %s parameter VALUE=%s", ErrPropertyConditionNotRespected, p, v)
			}
		}
	}
	for _, layout := range []string{dateTimeFormatUtc, dateTimeFormatUtcNoSeconds} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %s value %q", ErrPropertyConditionNotRespected, p, raw)
}

// decodeInteger accepts non-negative decimal integers only.  Range
// constraints such as percent 0-100 belong to the owning component, not to
// the codec.
func decodeInteger(p Property, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s value %q", ErrPropertyConditionNotRespected, p, raw)
	}
	return n, nil
}

// decodeGeo parses "lat;long".  A missing separator or non-numeric field is
// a grammar failure; coordinates outside [-90,90] x [-180,180] additionally
// wrap ErrValueOutOfRange so callers can tell the two apart.
func decodeGeo(raw string) (Geo, error) {
	latStr, lonStr, ok := strings.Cut(raw, ";")
	if !ok {
		return Geo{}, fmt.Errorf("%w: GEO value %q has no separator", ErrPropertyConditionNotRespected, raw)
	}
	lat, latErr := strconv.ParseFloat(latStr, 64)
	lon, lonErr := strconv.ParseFloat(lonStr, 64)
	if latErr != nil || lonErr != nil {
		return Geo{}, fmt.Errorf("%w: GEO value %q", ErrPropertyConditionNotRespected, raw)
	}
	if lat < -90 || lat > 90 {
		return Geo{}, fmt.Errorf("%w: %w: GEO latitude %v", ErrPropertyConditionNotRespected, ErrValueOutOfRange, lat)
	}
	if lon < -180 || lon > 180 {
		return Geo{}, fmt.Errorf("%w: %w: GEO longitude %v", ErrPropertyConditionNotRespected, ErrValueOutOfRange, lon)
	}
	return Geo{Latitude: lat, Longitude: lon}, nil
}
