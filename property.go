package ics

import (
	"fmt"
	"strings"
)

// Property enumerates the iCalendar property names recognized by this
// library.  Each constant is the textual identifier defined in RFC 5545
// section 3.8 (or 3.7 for the calendar-level properties).
type Property string

const (
	// PropertyProductId corresponds to PRODID (section 3.7.3).
	PropertyProductId Property = "PRODID"
	// PropertyVersion corresponds to VERSION (section 3.7.4).
	PropertyVersion Property = "VERSION"
	// PropertyCalscale corresponds to CALSCALE (section 3.7.1).
	PropertyCalscale Property = "CALSCALE"
	// PropertyMethod corresponds to METHOD (section 3.7.2).
	PropertyMethod Property = "METHOD"
	// PropertyUid holds the globally unique identifier (section 3.8.4.7).
	PropertyUid Property = "UID"
	// PropertyDtstamp is the creation timestamp of the object (section 3.8.7.2).
	PropertyDtstamp Property = "DTSTAMP"
	// PropertyCompleted records when a to-do was completed (section 3.8.2.1).
	PropertyCompleted Property = "COMPLETED"
	// PropertyCreated records the creation time (section 3.8.7.1).
	PropertyCreated Property = "CREATED"
	// PropertyDtstart defines the start time of the component (section 3.8.2.4).
	PropertyDtstart Property = "DTSTART"
	// PropertyLastModified records the last modification time (section 3.8.7.3).
	PropertyLastModified Property = "LAST-MODIFIED"
	// PropertyRecurrenceId identifies a specific recurrence (section 3.8.4.4).
	PropertyRecurrenceId Property = "RECURRENCE-ID"
	// PropertyExdate excludes a recurrence date (section 3.8.5.1).
	PropertyExdate Property = "EXDATE"
	// PropertyRdate specifies additional recurrence dates (section 3.8.5.2).
	PropertyRdate Property = "RDATE"
	// PropertyDue sets the due date of a to-do (section 3.8.2.3).
	PropertyDue Property = "DUE"
	// PropertyDuration specifies a duration of time (section 3.8.2.5).
	PropertyDuration Property = "DURATION"
	// PropertyDescription corresponds to DESCRIPTION (section 3.8.1.5).
	PropertyDescription Property = "DESCRIPTION"
	// PropertyLocation corresponds to LOCATION (section 3.8.1.7).
	PropertyLocation Property = "LOCATION"
	// PropertySummary holds the title of the component (section 3.8.1.12).
	PropertySummary Property = "SUMMARY"
	// PropertyComment corresponds to COMMENT (section 3.8.1.4).
	PropertyComment Property = "COMMENT"
	// PropertyRelatedTo corresponds to RELATED-TO (section 3.8.4.5).
	PropertyRelatedTo Property = "RELATED-TO"
	// PropertyResources lists needed resources (section 3.8.1.10).
	PropertyResources Property = "RESOURCES"
	// PropertyCategories corresponds to CATEGORIES (section 3.8.1.2).
	PropertyCategories Property = "CATEGORIES"
	// PropertyPercentComplete indicates task completion (section 3.8.1.8).
	PropertyPercentComplete Property = "PERCENT-COMPLETE"
	// PropertyPriority sets the relative priority (section 3.8.1.9).
	PropertyPriority Property = "PRIORITY"
	// PropertySequence increments on each update (section 3.8.7.4).
	PropertySequence Property = "SEQUENCE"
	// PropertyRepeat indicates how often to repeat an alarm (section 3.8.6.2).
	PropertyRepeat Property = "REPEAT"
	// PropertyStatus sets the overall status (section 3.8.1.11).
	PropertyStatus Property = "STATUS"
	// PropertyAction corresponds to ACTION (section 3.8.6.1).
	PropertyAction Property = "ACTION"
	// PropertyClass corresponds to CLASS (section 3.8.1.3).
	PropertyClass Property = "CLASS"
	// PropertyGeo stores geographic position in "lat;lon" form (section 3.8.1.6).
	PropertyGeo Property = "GEO"
	// PropertyOrganizer gives the organizer's address (section 3.8.4.3).
	PropertyOrganizer Property = "ORGANIZER"
	// PropertyAttendee lists a participant (section 3.8.4.1).
	PropertyAttendee Property = "ATTENDEE"
	// PropertyContact supplies contact information (section 3.8.4.2).
	PropertyContact Property = "CONTACT"
	// PropertyUrl provides a link to more information (section 3.8.4.6).
	PropertyUrl Property = "URL"
	// PropertyAttach associates a document with the component (section 3.8.1.1).
	PropertyAttach Property = "ATTACH"
	// PropertyTrigger defines when an alarm fires (section 3.8.6.3).
	PropertyTrigger Property = "TRIGGER"
)

// IdentifyProperty resolves an identifier string to a Property.  The lookup
// is a single map access over the closed vocabulary; unrecognized names
// return ErrUnknownProperty.
func IdentifyProperty(name string) (Property, error) {
	p := Property(name)
	if _, ok := propertyValueKinds[p]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownProperty, name)
	}
	return p, nil
}

// BaseProperty is the tokenized form of one content line: the identifier, the
// parameter list and the raw value, still undecoded.
type BaseProperty struct {
	IANAToken      string
	ICalParameters map[string][]string
	Value          string
}

// ParseProperty splits a fully unfolded content line into identifier,
// parameters and raw value.  The split happens at the first ":" outside
// double quotes; any further ":" belongs to the value verbatim, so values
// such as URLs survive untouched.  Parameters sit between the identifier and
// the value, separated by ";", each one a NAME=VALUE pair split at its first
// "=".  Double-quoted parameter values keep ";", ":" and "," literal.
func ParseProperty(contentLine ContentLine) (*BaseProperty, error) {
	s := string(contentLine)
	sep := scanStructuralColon(s)
	if sep < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnableToParseProperty, s)
	}
	r := &BaseProperty{
		ICalParameters: map[string][]string{},
		Value:          s[sep+1:],
	}
	segments := splitOutsideQuotes(s[:sep], ';')
	r.IANAToken = segments[0]
	if r.IANAToken == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnableToParseProperty, s)
	}
	for _, seg := range segments[1:] {
		k, v, ok := strings.Cut(seg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: parameter %q in %q", ErrUnableToParseProperty, seg, s)
		}
		r.ICalParameters[k] = append(r.ICalParameters[k], strings.Trim(v, `"`))
	}
	return r, nil
}

// scanStructuralColon returns the index of the first ":" outside double
// quotes, or -1 when the line has none.
func scanStructuralColon(s string) int {
	quoted := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			quoted = !quoted
		case ':':
			if !quoted {
				return i
			}
		}
	}
	return -1
}

func splitOutsideQuotes(s string, sep byte) []string {
	var out []string
	quoted := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			quoted = !quoted
		case sep:
			if !quoted {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	return append(out, s[start:])
}
