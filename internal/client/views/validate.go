package views

import (
	"regexp"
	"time"
	"unicode"
)

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-\+\(\)]{10,}$`)
)

const (
	MinAge                  = 18
	SINLength               = 9
	RegistrationPasswordLen = 8
	ChangePasswordLen       = 6
)

// Rule is an extra form check run after the per-field checks.
type Rule func(form Form) error

func ValidEmail(s string) bool { return emailPattern.MatchString(s) }
func ValidPhone(s string) bool { return phonePattern.MatchString(s) }

// AgeOn returns the age in whole years at now of someone born on dob.
func AgeOn(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// Email requires field to look like an email address.
func Email(field string) Rule {
	return func(form Form) error {
		if !ValidEmail(form.Get(field)) {
			return invalid(field, "Please enter a valid email address")
		}
		return nil
	}
}

// Phone checks field only when it is filled in.
func Phone(field string) Rule {
	return func(form Form) error {
		v := form.Get(field)
		if v != "" && !ValidPhone(v) {
			return invalid(field, "Please enter a valid phone number")
		}
		return nil
	}
}

func SIN(field string) Rule {
	return func(form Form) error {
		v := form.Get(field)
		if len(v) != SINLength || SanitizeDigits(v) != v {
			return invalid(field, "SIN must be exactly 9 digits")
		}
		return nil
	}
}

// Adult requires the yyyy-mm-dd date in field to be at least MinAge years
// before now().
func Adult(field string, now func() time.Time) Rule {
	return func(form Form) error {
		dob, err := time.Parse(DateLayout, form.Get(field))
		if err != nil {
			return invalid(field, "Please enter your date of birth")
		}
		if AgeOn(dob, now()) < MinAge {
			return invalid(field, "You must be at least 18 years old to apply")
		}
		return nil
	}
}

// StrongPassword is the registration policy: RegistrationPasswordLen characters with at
// least one letter and one digit.
func StrongPassword(field string) Rule {
	return func(form Form) error {
		pw := form[field]
		var letter, digit bool
		for _, r := range pw {
			switch {
			case unicode.IsLetter(r):
				letter = true
			case unicode.IsDigit(r):
				digit = true
			}
		}
		if len([]rune(pw)) < RegistrationPasswordLen || !letter || !digit {
			return invalid(field, "Password must be at least 8 characters and contain letters and numbers")
		}
		return nil
	}
}

// MinLength is the change-password policy.
func MinLength(field string, n int, msg string) Rule {
	return func(form Form) error {
		if len([]rune(form[field])) < n {
			return invalid(field, msg)
		}
		return nil
	}
}

// Matches requires confirm to equal field.
func Matches(field, confirm, msg string) Rule {
	return func(form Form) error {
		if form[field] != form[confirm] {
			return invalid(confirm, msg)
		}
		return nil
	}
}

// Checked requires a yes/no field to be answered yes.
func Checked(field, msg string) Rule {
	return func(form Form) error {
		switch form.Get(field) {
		case "y", "yes", "true", "1":
			return nil
		}
		return invalid(field, msg)
	}
}

// Validate runs rules in order and returns the first failure.
func Validate(form Form, rules ...Rule) error {
	for _, rule := range rules {
		if err := rule(form); err != nil {
			return err
		}
	}
	return nil
}
