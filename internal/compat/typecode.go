package compat

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTypeCode is returned by ParseTypeCode. The scorer itself never
// fails on a bad code; it falls back to NeutralTypeCodeScore.
var ErrInvalidTypeCode = errors.New("invalid type code")

// TypeCode is a canonical four-letter personality type, e.g. "INTJ".
type TypeCode string

const (
	// TypeCodeLength is the number of axes in a type code.
	TypeCodeLength = 4
	// AxisPoints is awarded for each axis on which two codes agree.
	AxisPoints = 25
	// NeutralTypeCodeScore is returned when either code is malformed.
	NeutralTypeCodeScore = 50
)

// axes lists the two letters allowed at each position.
var axes = [TypeCodeLength][2]rune{
	{'E', 'I'},
	{'S', 'N'},
	{'T', 'F'},
	{'J', 'P'},
}

// allTypeCodes is the fixed display order of the sixteen codes.
var allTypeCodes = [16]TypeCode{
	"INTJ", "INTP", "ENTJ", "ENTP",
	"INFJ", "INFP", "ENFJ", "ENFP",
	"ISTJ", "ISFJ", "ESTJ", "ESFJ",
	"ISTP", "ISFP", "ESTP", "ESFP",
}

// AllTypeCodes returns the sixteen valid codes.
func AllTypeCodes() []TypeCode {
	out := make([]TypeCode, len(allTypeCodes))
	copy(out, allTypeCodes[:])
	return out
}

// ParseTypeCode validates s case-insensitively and returns its upper-case form.
func ParseTypeCode(s string) (TypeCode, error) {
	code := []rune(strings.ToUpper(strings.TrimSpace(s)))
	if len(code) != TypeCodeLength {
		return "", fmt.Errorf("%w: %q must have %d letters", ErrInvalidTypeCode, s, TypeCodeLength)
	}
	for i, r := range code {
		if r != axes[i][0] && r != axes[i][1] {
			return "", fmt.Errorf("%w: %q position %d must be %c or %c",
				ErrInvalidTypeCode, s, i+1, axes[i][0], axes[i][1])
		}
	}
	return TypeCode(string(code)), nil
}

// TypeCodeScore awards AxisPoints per position where a and b agree exactly,
// giving 0-100 in steps of 25. Codes that are not four characters long
// score NeutralTypeCodeScore instead of failing.
func TypeCodeScore(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) != TypeCodeLength || len(rb) != TypeCodeLength {
		return NeutralTypeCodeScore
	}
	score := 0
	for i := range ra {
		if ra[i] == rb[i] {
			score += AxisPoints
		}
	}
	return score
}
