// Package forms holds the client-side validation rules applied to signup and
// profile forms before any request is issued.
package forms

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	passwordMinLength = 8
	minimumAge        = 13
	dateLayout        = "2006-01-02"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

// postalPatterns maps supported countries to their postal-code formats.
var postalPatterns = map[string]*regexp.Regexp{
	"DE": regexp.MustCompile(`^\d{5}$`),
	"US": regexp.MustCompile(`^\d{5}(-\d{4})?$`),
	"GB": regexp.MustCompile(`^[A-Za-z]{1,2}\d[A-Za-z\d]? ?\d[A-Za-z]{2}$`),
	"PL": regexp.MustCompile(`^\d{2}-\d{3}$`),
}

// ValidateEmail checks basic address syntax and rejects surrounding spaces.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	if email != strings.TrimSpace(email) {
		return errors.New("email must not contain leading or trailing whitespace")
	}
	if !emailPattern.MatchString(email) {
		return errors.New("email address is not valid")
	}
	return nil
}

// ValidatePassword enforces the platform's password rule: minimum length
// plus at least one uppercase letter, one lowercase letter and one digit.
func ValidatePassword(password string) error {
	if password != strings.TrimSpace(password) {
		return errors.New("password must not contain leading or trailing whitespace")
	}
	if len(password) < passwordMinLength {
		return fmt.Errorf("password must be at least %d characters", passwordMinLength)
	}
	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return errors.New("password must contain at least 1 uppercase letter, 1 lowercase letter, and 1 number")
	}
	return nil
}

// ValidatePostalCode checks the code against the country's format; countries
// without a known format only require a non-empty code.
func ValidatePostalCode(country, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errors.New("postal code is required")
	}
	pattern, ok := postalPatterns[strings.ToUpper(country)]
	if !ok {
		return nil
	}
	if !pattern.MatchString(code) {
		return fmt.Errorf("postal code does not match the format for %s", strings.ToUpper(country))
	}
	return nil
}

// Age returns the full years between dateOfBirth (YYYY-MM-DD) and now.
func Age(dateOfBirth string, now time.Time) (int, error) {
	dob, err := time.Parse(dateLayout, dateOfBirth)
	if err != nil {
		return 0, fmt.Errorf("date of birth must be %s", dateLayout)
	}
	years := now.Year() - dob.Year()
	anniversary := dob.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years, nil
}

// ValidateDateOfBirth parses the date and enforces the minimum age.
func ValidateDateOfBirth(dateOfBirth string, now time.Time) error {
	age, err := Age(dateOfBirth, now)
	if err != nil {
		return err
	}
	if age < 0 {
		return errors.New("date of birth is in the future")
	}
	if age < minimumAge {
		return fmt.Errorf("you must be at least %d years old", minimumAge)
	}
	return nil
}
