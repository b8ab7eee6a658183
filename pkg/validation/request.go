package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate = validator.New()

	// Validation constants
	MaxCodeLength  = 32
	MaxFocusLength = 64

	codePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// BuildRequest represents the inbound parameters of one network build.
type BuildRequest struct {
	Focus string `json:"focus" validate:"omitempty,max=64"`
}

// ValidateBuildRequest validates the parameters of a build request. The
// focus value may be a record identifier (all digits) or a referral code.
func ValidateBuildRequest(req *BuildRequest) error {
	if req == nil {
		return errors.New("build request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	focus := strings.TrimSpace(req.Focus)
	if focus == "" {
		return nil
	}
	if isDigits(focus) {
		return nil
	}
	return ValidateCode(focus)
}

// ValidateCode checks that a referral code is well formed: non-blank, within
// length bounds, alphanumeric with underscore and hyphen.
func ValidateCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errors.New("referral code cannot be blank")
	}
	if len(code) > MaxCodeLength {
		return fmt.Errorf("referral code exceeds maximum length of %d characters", MaxCodeLength)
	}
	if !codePattern.MatchString(code) {
		return fmt.Errorf("referral code %q contains invalid characters (only alphanumeric, underscore and hyphen allowed)", code)
	}
	return nil
}

// formatValidationError converts validator errors into readable messages.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q validation", fe.Field(), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
