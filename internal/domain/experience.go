package domain

import (
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ExperienceYears counts full years between since and now; the current
// year counts only once the anniversary is reached.
func ExperienceYears(since, now time.Time) int {
	years := now.Year() - since.Year()
	if now.Month() < since.Month() || (now.Month() == since.Month() && now.Day() < since.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// SinceFromYears maps a years-of-experience value to the first day of the
// current month that many years ago.
func SinceFromYears(years int, now time.Time) time.Time {
	return time.Date(now.Year()-years, now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string { return t.Format(dateLayout) }

// ParseDate accepts "YYYY-MM-DD" and longer timestamps starting with one.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	return time.Parse(dateLayout, s)
}

// ExperienceLabel renders years with the Russian plural form ("1 год", "3 года", "7 лет").
func ExperienceLabel(years int) string {
	return strconv.Itoa(years) + " " + yearsWord(years)
}

func yearsWord(n int) string {
	if n < 0 {
		n = -n
	}
	if mod100 := n % 100; mod100 >= 11 && mod100 <= 14 {
		return "лет"
	}
	switch n % 10 {
	case 1:
		return "год"
	case 2, 3, 4:
		return "года"
	default:
		return "лет"
	}
}
