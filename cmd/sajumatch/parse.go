package main

import (
	"fmt"
	"strconv"
	"strings"

	"sajumatch/internal/types"
)

// parseDate reads YYYY-MM-DD. Range checks are left to the engine.
func parseDate(s string) (year, month, day int, err error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("date %q: want YYYY-MM-DD", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("date %q: %w", s, err)
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], nil
}

// parsePerson reads TYPE:YYYY-MM-DD[:HOUR] into a validated person.
func parsePerson(arg, name string) (types.Person, error) {
	parts := strings.Split(arg, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return types.Person{}, fmt.Errorf("person %q: want TYPE:YYYY-MM-DD[:HOUR]", arg)
	}

	y, m, d, err := parseDate(parts[1])
	if err != nil {
		return types.Person{}, err
	}
	hour := 0
	if len(parts) == 3 {
		hour, err = strconv.Atoi(parts[2])
		if err != nil {
			return types.Person{}, fmt.Errorf("person %q: hour: %w", arg, err)
		}
	}

	p := types.Person{
		Name:       name,
		TypeCode:   parts[0],
		BirthYear:  y,
		BirthMonth: m,
		BirthDay:   d,
		BirthHour:  hour,
	}
	if err := p.Validate(); err != nil {
		return types.Person{}, err
	}
	return p, nil
}
