package auth

import "unicode"

// ValidatePassword enforces the registration password policy: at least 8
// characters with an upper-case letter, a lower-case letter and a digit.
func ValidatePassword(pw string) (bool, []string) {
	var problems []string

	if len(pw) < 8 {
		problems = append(problems, "Password must be at least 8 characters long")
	}

	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper {
		problems = append(problems, "Password must contain an uppercase letter")
	}
	if !lower {
		problems = append(problems, "Password must contain a lowercase letter")
	}
	if !digit {
		problems = append(problems, "Password must contain a digit")
	}

	return len(problems) == 0, problems
}
