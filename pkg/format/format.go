// Package format renders dates and ages the way the dashboard displays them.
package format

import (
	"fmt"
	"time"
)

// Age returns the number of full years between dob and now, rendered as
// "N yrs" ("1 yr" when exactly one). The count is decremented when now's
// month/day falls before dob's month/day.
func Age(dob, now time.Time) string {
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	if years == 1 {
		return "1 yr"
	}
	return fmt.Sprintf("%d yrs", years)
}

// SlashDate renders t as "M/D/YYYY" with no zero padding.
func SlashDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

// MonthDate renders t as "Jun 13th, 2021".
func MonthDate(t time.Time) string {
	return fmt.Sprintf("%s %d%s, %d", t.Month().String()[:3], t.Day(), ordinalSuffix(t.Day()), t.Year())
}

// LongDate renders t as "13th June 2021, 4:05 pm" on a 12-hour clock.
func LongDate(t time.Time) string {
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	period := "am"
	if t.Hour() >= 12 {
		period = "pm"
	}
	return fmt.Sprintf("%d%s %s %d, %d:%02d %s",
		t.Day(), ordinalSuffix(t.Day()), t.Month().String(), t.Year(),
		hour, t.Minute(), period)
}

// ordinalSuffix returns the English ordinal suffix for a day of month. The
// 11th-13th take "th" regardless of the last digit.
func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
