package domain

import (
	"fmt"
	"time"
)

// SunSign is one of the twelve western zodiac signs, or SignUnknown.
type SunSign string

// Sun signs in table order.
const (
	SignAries       SunSign = "Aries"
	SignTaurus      SunSign = "Taurus"
	SignGemini      SunSign = "Gemini"
	SignCancer      SunSign = "Cancer"
	SignLeo         SunSign = "Leo"
	SignVirgo       SunSign = "Virgo"
	SignLibra       SunSign = "Libra"
	SignScorpio     SunSign = "Scorpio"
	SignSagittarius SunSign = "Sagittarius"
	SignCapricorn   SunSign = "Capricorn"
	SignAquarius    SunSign = "Aquarius"
	SignPisces      SunSign = "Pisces"

	// SignUnknown is returned when no range matches.
	SignUnknown SunSign = "Unknown"
)

// Element is one of the four classical elements, or ElementUnknown.
type Element string

// Elements.
const (
	ElementFire    Element = "Fire"
	ElementEarth   Element = "Earth"
	ElementAir     Element = "Air"
	ElementWater   Element = "Water"
	ElementUnknown Element = "Unknown"
)

// BirthDate is a calendar date with no time or zone component.
type BirthDate struct {
	Year  int
	Month time.Month
	Day   int
}

// birthDateLayout is the wire format for birth dates.
const birthDateLayout = time.DateOnly

// ParseBirthDate parses a YYYY-MM-DD string.
func ParseBirthDate(s string) (BirthDate, error) {
	t, err := time.Parse(birthDateLayout, s)
	if err != nil {
		return BirthDate{}, NewValidationError("dob", "must be a date in YYYY-MM-DD format")
	}

	return BirthDateFromTime(t), nil
}

// BirthDateFromTime reads the calendar components of t as-is, in t's own location.
func BirthDateFromTime(t time.Time) BirthDate {
	y, m, d := t.Date()
	return BirthDate{Year: y, Month: m, Day: d}
}

// String formats the date as YYYY-MM-DD.
func (d BirthDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether d is the zero date.
func (d BirthDate) IsZero() bool {
	return d == BirthDate{}
}

// MarshalText implements encoding.TextMarshaler. The zero date encodes as "".
func (d BirthDate) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}

	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Accepts YYYY-MM-DD or an
// RFC 3339 timestamp, whose calendar date is kept as written.
func (d *BirthDate) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" {
		*d = BirthDate{}
		return nil
	}

	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		*d = BirthDateFromTime(ts)
		return nil
	}

	parsed, err := ParseBirthDate(s)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

// signRange is an inclusive month/day span. Capricorn wraps December into January.
type signRange struct {
	sign       SunSign
	startMonth time.Month
	startDay   int
	endMonth   time.Month
	endDay     int
}

func (r signRange) contains(month time.Month, day int) bool {
	return (month == r.startMonth && day >= r.startDay) ||
		(month == r.endMonth && day <= r.endDay)
}

var signTable = [...]signRange{
	{SignAries, time.March, 21, time.April, 19},
	{SignTaurus, time.April, 20, time.May, 20},
	{SignGemini, time.May, 21, time.June, 20},
	{SignCancer, time.June, 21, time.July, 22},
	{SignLeo, time.July, 23, time.August, 22},
	{SignVirgo, time.August, 23, time.September, 22},
	{SignLibra, time.September, 23, time.October, 22},
	{SignScorpio, time.October, 23, time.November, 21},
	{SignSagittarius, time.November, 22, time.December, 21},
	{SignCapricorn, time.December, 22, time.January, 19},
	{SignAquarius, time.January, 20, time.February, 18},
	{SignPisces, time.February, 19, time.March, 20},
}

var signElements = map[SunSign]Element{
	SignAries:       ElementFire,
	SignLeo:         ElementFire,
	SignSagittarius: ElementFire,
	SignTaurus:      ElementEarth,
	SignVirgo:       ElementEarth,
	SignCapricorn:   ElementEarth,
	SignGemini:      ElementAir,
	SignLibra:       ElementAir,
	SignAquarius:    ElementAir,
	SignCancer:      ElementWater,
	SignScorpio:     ElementWater,
	SignPisces:      ElementWater,
}

// ResolveSunSign returns the sign whose date range contains d's month and day.
// Only month and day are read. Returns SignUnknown if nothing matches.
func ResolveSunSign(d BirthDate) SunSign {
	for _, r := range signTable {
		if r.contains(d.Month, d.Day) {
			return r.sign
		}
	}

	return SignUnknown
}

// ResolveElement returns the element of sign, or ElementUnknown.
func ResolveElement(sign SunSign) Element {
	if e, ok := signElements[sign]; ok {
		return e
	}

	return ElementUnknown
}

// Element is shorthand for ResolveElement(s).
func (s SunSign) Element() Element {
	return ResolveElement(s)
}

// IsKnown reports whether s is one of the twelve signs.
func (s SunSign) IsKnown() bool {
	_, ok := signElements[s]
	return ok
}

// Energy is the short theme used when describing an element in prompts.
// Returns "" for ElementUnknown.
func (e Element) Energy() string {
	switch e {
	case ElementFire:
		return "action/passion"
	case ElementEarth:
		return "grounding/stability"
	case ElementAir:
		return "communication/clarity"
	case ElementWater:
		return "emotion/intuition"
	default:
		return ""
	}
}

// Signs returns the twelve signs in table order.
func Signs() []SunSign {
	signs := make([]SunSign, 0, len(signTable))
	for _, r := range signTable {
		signs = append(signs, r.sign)
	}

	return signs
}

// Elements returns the four elements.
func Elements() []Element {
	return []Element{ElementFire, ElementEarth, ElementAir, ElementWater}
}
