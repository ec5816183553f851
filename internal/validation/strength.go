package validation

import "unicode/utf8"

// Strength is advisory feedback for the password field; it never gates
// submission.
type Strength string

const (
	StrengthWeak   Strength = "weak"
	StrengthMedium Strength = "medium"
	StrengthStrong Strength = "strong"
)

// MaxStrengthScore is the highest score PasswordStrength can return.
const MaxStrengthScore = 6

// PasswordStrength scores p from 0 to 6: one point each for length >= 6,
// >= 8, >= 12, mixed case, a digit, and a symbol.
func PasswordStrength(p string) (Strength, int) {
	score := 0
	n := utf8.RuneCountInString(p)
	if n >= 6 {
		score++
	}
	if n >= 8 {
		score++
	}
	if n >= 12 {
		score++
	}

	var lower, upper, digit, symbol bool
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	if lower && upper {
		score++
	}
	if digit {
		score++
	}
	if symbol {
		score++
	}

	return StrengthForScore(score), score
}

// StrengthForScore maps a score onto its level.
func StrengthForScore(score int) Strength {
	switch {
	case score <= 2:
		return StrengthWeak
	case score <= 4:
		return StrengthMedium
	default:
		return StrengthStrong
	}
}
