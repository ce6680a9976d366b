package forms

import (
	"testing"
	"time"
)

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("user@example.com"); err != nil {
		t.Fatalf("valid email rejected: %v", err)
	}
	if err := ValidateEmail(""); err == nil {
		t.Fatal("empty email accepted")
	}
	if err := ValidateEmail(" user@example.com"); err == nil {
		t.Fatal("email with leading space accepted")
	}
	if err := ValidateEmail("user@example"); err == nil {
		t.Fatal("email without domain zone accepted")
	}
	if err := ValidateEmail("no-at-sign.example.com"); err == nil {
		t.Fatal("email without @ accepted")
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("Abcdefg1"); err != nil {
		t.Fatalf("valid password rejected: %v", err)
	}
	if err := ValidatePassword("Ab1"); err == nil {
		t.Fatal("short password accepted")
	}
	if err := ValidatePassword("abcdefg1"); err == nil {
		t.Fatal("password without uppercase accepted")
	}
	if err := ValidatePassword("ABCDEFG1"); err == nil {
		t.Fatal("password without lowercase accepted")
	}
	if err := ValidatePassword("Abcdefgh"); err == nil {
		t.Fatal("password without digit accepted")
	}
	if err := ValidatePassword(" Abcdefg1 "); err == nil {
		t.Fatal("password with surrounding whitespace accepted")
	}
}

func TestValidatePostalCode(t *testing.T) {
	if err := ValidatePostalCode("DE", "10115"); err != nil {
		t.Fatalf("valid DE code rejected: %v", err)
	}
	if err := ValidatePostalCode("DE", "1011"); err == nil {
		t.Fatal("short DE code accepted")
	}
	if err := ValidatePostalCode("US", "94103-1234"); err != nil {
		t.Fatalf("valid US zip+4 rejected: %v", err)
	}
	if err := ValidatePostalCode("PL", "00-001"); err != nil {
		t.Fatalf("valid PL code rejected: %v", err)
	}
	// Unknown country only requires a non-empty code.
	if err := ValidatePostalCode("NZ", "6011"); err != nil {
		t.Fatalf("unknown country code rejected: %v", err)
	}
	if err := ValidatePostalCode("NZ", "  "); err == nil {
		t.Fatal("blank code accepted")
	}
}

func TestAge(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	age, err := Age("2000-08-31", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if age != 26 {
		t.Fatalf("expected 26, got %d", age)
	}
	// Birthday tomorrow: one year less.
	age, err = Age("2000-09-01", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if age != 25 {
		t.Fatalf("expected 25, got %d", age)
	}
	if _, err := Age("31-08-2000", now); err == nil {
		t.Fatal("malformed date accepted")
	}
}

func TestValidateDateOfBirth(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	if err := ValidateDateOfBirth("2000-01-15", now); err != nil {
		t.Fatalf("adult rejected: %v", err)
	}
	if err := ValidateDateOfBirth("2020-01-15", now); err == nil {
		t.Fatal("underage accepted")
	}
	if err := ValidateDateOfBirth("2030-01-15", now); err == nil {
		t.Fatal("future date accepted")
	}
}
