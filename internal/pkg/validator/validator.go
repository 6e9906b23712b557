package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Fields flattens a binding error into a field -> failed-rule map for
// error payloads. Non-validation errors (malformed JSON, type mismatch)
// yield nil.
func Fields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
