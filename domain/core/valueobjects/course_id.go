package valueobjects

import (
	"strings"
	"unicode"
)

// CourseID is a normalized course identifier: uppercase ASCII letters and digits only.
// "cse-12", "CSE 12" and "CSE12" all normalize to "CSE12".
type CourseID string

// NormalizeCourseID uppercases raw and strips every separator.
// Applying it to an already normalized id returns the id unchanged.
func NormalizeCourseID(raw string) CourseID {
	upper := strings.ToUpper(raw)
	return CourseID(strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, upper))
}

// String returns the string representation of the CourseID
func (id CourseID) String() string {
	return string(id)
}

// IsZero checks if the CourseID is empty
func (id CourseID) IsZero() bool {
	return id == ""
}

// SubjectPrefix returns the leading run of letters, e.g. "CSE" for "CSE12".
func (id CourseID) SubjectPrefix() string {
	s := string(id)
	for i, r := range s {
		if !unicode.IsLetter(r) {
			return s[:i]
		}
	}
	return s
}

// Campus is an uppercase, trimmed campus code such as "UCD"
type Campus string

// NormalizeCampus canonicalizes a campus code
func NormalizeCampus(raw string) Campus {
	return Campus(strings.ToUpper(strings.TrimSpace(raw)))
}

// String returns the string representation of the Campus
func (c Campus) String() string {
	return string(c)
}

// IsZero checks if the Campus is empty
func (c Campus) IsZero() bool {
	return c == ""
}
