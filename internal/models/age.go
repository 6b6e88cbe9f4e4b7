package models

import "time"

// Age returns the whole-year age at now for the given date of birth. The year
// difference is decremented when the birthday has not yet occurred this year.
func Age(dateOfBirth, now time.Time) int {
	years := now.Year() - dateOfBirth.Year()
	anniversary := dateOfBirth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
