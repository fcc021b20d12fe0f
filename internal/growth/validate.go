package growth

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// fieldValidator applies the tags the remote rows carry to local input.
var fieldValidator = validator.New(validator.WithRequiredStructEnabled())

// checkDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the
// YYYY-MM-DD form stored in the dataset.
func checkDate(field, s string) (string, error) {
	d := normalizeDate(s)
	if err := fieldValidator.Var(d, "required,datetime="+DateLayout); err != nil {
		return "", fmt.Errorf("%w: %s %q is not a date", ErrInvalidField, field, s)
	}
	return d, nil
}

// checkEmail accepts nil (leave alone) and "" (clear).
func checkEmail(p *string) error {
	if p == nil || *p == "" {
		return nil
	}
	if err := fieldValidator.Var(*p, "email"); err != nil {
		return fmt.Errorf("%w: email %q", ErrInvalidField, *p)
	}
	return nil
}
