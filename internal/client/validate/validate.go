// Package validate holds local input checks performed before any
// network call. They keep obviously malformed input off the wire; the
// server still validates everything independently.
package validate

import (
	"fmt"
	"net/mail"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/portalcli/internal/common"
)

const (
	// MinPasswordLength and MaxPasswordLength bound accepted passwords.
	// The upper bound matches the server's hashing input limit.
	MinPasswordLength = 8
	MaxPasswordLength = 72

	maxEmailLength = 254

	// MaxPhotoSize caps uploads at 5 MiB before any bytes are sent.
	MaxPhotoSize = 5 << 20
)

var photoExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// Email checks address format and length.
func Email(s string) error {
	if s == "" || len(s) > maxEmailLength {
		return common.ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return common.ErrInvalidEmail
	}
	return nil
}

// Password checks the accepted length bounds.
func Password(s string) error {
	if len(s) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", common.ErrInvalidPassword, MinPasswordLength)
	}
	if len(s) > MaxPasswordLength {
		return fmt.Errorf("%w: must be at most %d characters", common.ErrInvalidPassword, MaxPasswordLength)
	}
	return nil
}

// Strength scores a password 0..4 from its length and character
// classes. Shown to the user during registration; it never blocks
// submission on its own.
func Strength(s string) int {
	var hasLower, hasUpper, hasDigit, hasOther bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasOther = true
		}
	}

	classes := 0
	for _, ok := range []bool{hasLower, hasUpper, hasDigit, hasOther} {
		if ok {
			classes++
		}
	}

	score := 0
	if len(s) >= MinPasswordLength {
		score++
	}
	if len(s) >= 12 {
		score++
	}
	if classes >= 2 {
		score++
	}
	if classes >= 4 {
		score++
	}
	return score
}

// StrengthLabel renders a Strength score for display.
func StrengthLabel(score int) string {
	switch {
	case score <= 1:
		return "weak"
	case score == 2:
		return "fair"
	case score == 3:
		return "good"
	default:
		return "strong"
	}
}

// PhotoFilename checks the upload has an allowed image extension.
func PhotoFilename(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := photoExtensions[ext]; !ok {
		return fmt.Errorf("unsupported photo type %q", ext)
	}
	return nil
}

// PhotoSize checks the upload does not exceed the size cap.
func PhotoSize(size int64) error {
	if size <= 0 {
		return fmt.Errorf("photo is empty")
	}
	if size > MaxPhotoSize {
		return fmt.Errorf("photo exceeds %d bytes", int64(MaxPhotoSize))
	}
	return nil
}
