package store

import "time"

// CalculateAge derives a whole-year age from a YYYY-MM-DD date of birth,
// subtracting one when the birthday has not yet occurred in today's year.
// An unparseable date yields 0 (the field is optional downstream).
func CalculateAge(dateOfBirth string, today time.Time) int {
	birth, err := time.Parse("2006-01-02", dateOfBirth)
	if err != nil {
		return 0
	}

	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
