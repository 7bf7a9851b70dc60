package callflow

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Identity holds the callee's reference data. The father's name and birth
// date are verification secrets: they never leave this type, comparison is
// the only operation exposed, and no message template receives them.
type Identity struct {
	fullName   string
	fatherName string
	birthDate  time.Time
}

func NewIdentity(fullName, fatherName string, birthDate time.Time) Identity {
	return Identity{
		fullName:   fullName,
		fatherName: fatherName,
		birthDate:  birthDate,
	}
}

// FullName is the only disclosable field; it is spoken in the greeting.
func (id Identity) FullName() string { return id.fullName }

// MatchFather compares a spoken father's name, case-insensitively.
// Transcribed speech carries no reliable casing.
func (id Identity) MatchFather(candidate string) bool {
	return strings.EqualFold(strings.TrimSpace(candidate), id.fatherName)
}

// MatchBirthDate parses a spoken birth date and compares the calendar day.
func (id Identity) MatchBirthDate(candidate string) bool {
	parsed, ok := ParseSpokenDate(candidate)
	if !ok {
		return false
	}
	y1, m1, d1 := parsed.Date()
	y2, m2, d2 := id.birthDate.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Verify checks both secrets at once. Both must match.
func (id Identity) Verify(fatherName, birthDate string) bool {
	return id.MatchFather(fatherName) && id.MatchBirthDate(birthDate)
}

var azMonths = map[string]time.Month{
	"yanvar":   time.January,
	"fevral":   time.February,
	"mart":     time.March,
	"aprel":    time.April,
	"may":      time.May,
	"iyun":     time.June,
	"iyul":     time.July,
	"avqust":   time.August,
	"sentyabr": time.September,
	"oktyabr":  time.October,
	"noyabr":   time.November,
	"dekabr":   time.December,
}

var spokenDateRe = regexp.MustCompile(`^(\d{1,2})\s+([^\s]+)\s+(\d{4})$`)

// ParseSpokenDate accepts the date formats a transcribed call produces:
// "12.07.2001", "12/07/2001", "2001-07-12" and "12 iyul 2001".
func ParseSpokenDate(raw string) (time.Time, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))

	for _, layout := range []string{"02.01.2006", "2.1.2006", "02/01/2006", "2/1/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	if m := spokenDateRe.FindStringSubmatch(s); m != nil {
		if month, ok := azMonths[m[2]]; ok {
			if t, err := time.Parse("2-1-2006", m[1]+"-"+strconv.Itoa(int(month))+"-"+m[3]); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
