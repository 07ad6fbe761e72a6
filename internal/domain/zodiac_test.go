package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSunSign_Boundaries(t *testing.T) {
	tests := []struct {
		name     string
		month    time.Month
		day      int
		expected SunSign
	}{
		{name: "last day of pisces", month: time.March, day: 20, expected: SignPisces},
		{name: "first day of aries", month: time.March, day: 21, expected: SignAries},
		{name: "last day of aries", month: time.April, day: 19, expected: SignAries},
		{name: "first day of taurus", month: time.April, day: 20, expected: SignTaurus},
		{name: "last day of sagittarius", month: time.December, day: 21, expected: SignSagittarius},
		{name: "first day of capricorn", month: time.December, day: 22, expected: SignCapricorn},
		{name: "new year is capricorn", month: time.January, day: 1, expected: SignCapricorn},
		{name: "last day of capricorn", month: time.January, day: 19, expected: SignCapricorn},
		{name: "first day of aquarius", month: time.January, day: 20, expected: SignAquarius},
		{name: "last day of aquarius", month: time.February, day: 18, expected: SignAquarius},
		{name: "first day of pisces", month: time.February, day: 19, expected: SignPisces},
		{name: "leap day", month: time.February, day: 29, expected: SignPisces},
		{name: "mid leo", month: time.July, day: 30, expected: SignLeo},
		{name: "first day of scorpio", month: time.October, day: 23, expected: SignScorpio},
		{name: "last day of scorpio", month: time.November, day: 21, expected: SignScorpio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveSunSign(BirthDate{Year: 2000, Month: tt.month, Day: tt.day})
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveSunSign_CoversEveryDayOfLeapYear(t *testing.T) {
	counts := make(map[SunSign]int)

	// 2024 is a leap year, so this walks all 366 month/day pairs.
	for d := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC); d.Year() == 2024; d = d.AddDate(0, 0, 1) {
		sign := ResolveSunSign(BirthDateFromTime(d))
		require.True(t, sign.IsKnown(), "no sign for %s", d.Format(time.DateOnly))

		matches := 0
		for _, r := range signTable {
			if r.contains(d.Month(), d.Day()) {
				matches++
			}
		}
		require.Equal(t, 1, matches, "ranges overlap on %s", d.Format(time.DateOnly))

		counts[sign]++
	}

	assert.Len(t, counts, 12)

	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, 366, total)
}

func TestResolveSunSign_InvalidDateIsUnknown(t *testing.T) {
	assert.Equal(t, SignUnknown, ResolveSunSign(BirthDate{}))
	assert.Equal(t, SignUnknown, ResolveSunSign(BirthDate{Year: 2000, Month: 13, Day: 1}))
}

func TestResolveSunSign_Idempotent(t *testing.T) {
	d := BirthDate{Year: 1990, Month: time.August, Day: 23}

	first := ResolveSunSign(d)
	for range 10 {
		assert.Equal(t, first, ResolveSunSign(d))
	}
}

func TestResolveElement_Partition(t *testing.T) {
	members := make(map[Element][]SunSign)
	for _, sign := range Signs() {
		e := ResolveElement(sign)
		require.NotEqual(t, ElementUnknown, e, "sign %s has no element", sign)
		members[e] = append(members[e], sign)
	}

	require.Len(t, members, 4)
	for _, e := range Elements() {
		assert.Len(t, members[e], 3, "element %s", e)
	}

	assert.ElementsMatch(t, []SunSign{SignAries, SignLeo, SignSagittarius}, members[ElementFire])
	assert.ElementsMatch(t, []SunSign{SignTaurus, SignVirgo, SignCapricorn}, members[ElementEarth])
	assert.ElementsMatch(t, []SunSign{SignGemini, SignLibra, SignAquarius}, members[ElementAir])
	assert.ElementsMatch(t, []SunSign{SignCancer, SignScorpio, SignPisces}, members[ElementWater])
}

func TestResolveElement_Unknown(t *testing.T) {
	assert.Equal(t, ElementUnknown, ResolveElement(SignUnknown))
	assert.Equal(t, ElementUnknown, ResolveElement(SunSign("Ophiuchus")))
	assert.Empty(t, ElementUnknown.Energy())
}

func TestResolve_Composition(t *testing.T) {
	d, err := ParseBirthDate("1987-07-30")
	require.NoError(t, err)

	sign := ResolveSunSign(d)
	assert.Equal(t, SignLeo, sign)
	assert.Equal(t, ElementFire, ResolveElement(sign))
	assert.Equal(t, ElementFire, sign.Element())
	assert.Equal(t, "action/passion", sign.Element().Energy())
}

func TestParseBirthDate(t *testing.T) {
	d, err := ParseBirthDate("2001-12-22")
	require.NoError(t, err)
	assert.Equal(t, BirthDate{Year: 2001, Month: time.December, Day: 22}, d)
	assert.Equal(t, "2001-12-22", d.String())

	_, err = ParseBirthDate("22/12/2001")
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "dob", vErr.Field)
}

func TestBirthDateFromTime_ReadsCalendarComponents(t *testing.T) {
	// Late evening west of UTC is already the next day in UTC; the local calendar date wins.
	loc := time.FixedZone("UTC-8", -8*60*60)
	ts := time.Date(1999, time.March, 20, 23, 30, 0, 0, loc)

	d := BirthDateFromTime(ts)
	assert.Equal(t, time.March, d.Month)
	assert.Equal(t, 20, d.Day)
	assert.Equal(t, SignPisces, ResolveSunSign(d))
}
