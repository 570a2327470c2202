// Package types provides shared type definitions used across sajumatch packages.
// This package exists to break import cycles between room, compat and the CLI.
// Types in this package should be foundational data structures with no complex dependencies.
package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"sajumatch/internal/compat"
	"sajumatch/internal/saju"
)

// =============================================================================
// PERSON
// =============================================================================

// ErrInvalidPerson is wrapped by every person or room validation failure.
var ErrInvalidPerson = errors.New("invalid person")

// Input limits accepted from users.
const (
	MaxNameLength     = 20
	MaxRoomNameLength = 30
	MinBirthYear      = 1900
	MaxBirthYear      = 2100
)

// FieldError reports a single invalid field.
type FieldError struct {
	Field  string
	Reason string
	Err    error // optional underlying cause
}

func (e *FieldError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidPerson, e.Field, e.Reason)
}

// Unwrap exposes both ErrInvalidPerson and the underlying cause.
func (e *FieldError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidPerson, e.Err}
	}
	return []error{ErrInvalidPerson}
}

// Person is one participant: a type code plus a birth moment.
type Person struct {
	ID         string    `yaml:"id" json:"id"`
	Name       string    `yaml:"name,omitempty" json:"name,omitempty"`
	TypeCode   string    `yaml:"type_code" json:"type_code"`
	BirthYear  int       `yaml:"birth_year" json:"birth_year"`
	BirthMonth int       `yaml:"birth_month" json:"birth_month"`
	BirthDay   int       `yaml:"birth_day" json:"birth_day"`
	BirthHour  int       `yaml:"birth_hour" json:"birth_hour"`
	Creator    bool      `yaml:"creator,omitempty" json:"creator,omitempty"`
	JoinedAt   time.Time `yaml:"joined_at,omitempty" json:"joined_at"`
}

// Code returns the type code. Person satisfies compat.Profile.
func (p Person) Code() string { return p.TypeCode }

// FourPillars derives the person's pillars.
func (p Person) FourPillars() (saju.FourPillars, error) {
	return saju.Compute(p.BirthYear, p.BirthMonth, p.BirthDay, p.BirthHour)
}

// DisplayName falls back to the type code when no name was given.
func (p Person) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.TypeCode
}

// Validate checks the person against the input rules and canonicalises the
// type code to upper case.
func (p *Person) Validate() error {
	if utf8.RuneCountInString(p.Name) > MaxNameLength {
		return &FieldError{Field: "name", Reason: fmt.Sprintf("longer than %d characters", MaxNameLength)}
	}

	code, err := compat.ParseTypeCode(p.TypeCode)
	if err != nil {
		return &FieldError{Field: "type_code", Reason: "must be one of " + typeCodeList(), Err: err}
	}
	p.TypeCode = string(code)

	if p.BirthYear < MinBirthYear || p.BirthYear > MaxBirthYear {
		return &FieldError{Field: "birth_year", Reason: fmt.Sprintf("must be within [%d,%d]", MinBirthYear, MaxBirthYear)}
	}
	if err := saju.Validate(p.BirthMonth, p.BirthDay, p.BirthHour); err != nil {
		var de *saju.DateError
		field := "birth"
		if errors.As(err, &de) {
			field = "birth_" + de.Field
		}
		return &FieldError{Field: field, Reason: "out of range", Err: err}
	}
	return nil
}

func typeCodeList() string {
	codes := compat.AllTypeCodes()
	names := make([]string, len(codes))
	for i, c := range codes {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// =============================================================================
// ROOM
// =============================================================================

// Room groups participants whose pairwise compatibility is compared.
type Room struct {
	ID           string    `yaml:"id" json:"id"`
	Name         string    `yaml:"name,omitempty" json:"name,omitempty"`
	CreatedAt    time.Time `yaml:"created_at" json:"created_at"`
	Participants []Person  `yaml:"participants" json:"participants"`
}

// ValidateName checks the room name length.
func (r *Room) ValidateName() error {
	if utf8.RuneCountInString(r.Name) > MaxRoomNameLength {
		return &FieldError{Field: "room_name", Reason: fmt.Sprintf("longer than %d characters", MaxRoomNameLength)}
	}
	return nil
}

// Find returns the participant with the given ID.
func (r *Room) Find(id string) (Person, bool) {
	for _, p := range r.Participants {
		if p.ID == id {
			return p, true
		}
	}
	return Person{}, false
}

// Reference returns the participant relations are shown from: the given
// ID when present, else the creator, else the first participant.
func (r *Room) Reference(id string) (Person, bool) {
	if id != "" {
		return r.Find(id)
	}
	for _, p := range r.Participants {
		if p.Creator {
			return p, true
		}
	}
	if len(r.Participants) > 0 {
		return r.Participants[0], true
	}
	return Person{}, false
}
