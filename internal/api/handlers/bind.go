package handlers

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/spec-kit/auth-service/internal/transport"
	"github.com/spec-kit/auth-service/pkg/util"
)

// validatable is implemented by every request DTO.
type validatable interface {
	Validate() error
}

// bind decodes the envelope payload into the DTO and validates it, mapping
// both failure modes to a VALIDATION_FAILED envelope before the handler body
// runs.
func bind(env *transport.Envelope, req validatable) error {
	if err := env.Bind(req); err != nil {
		return util.NewValidationFailed(map[string]any{"payload": "malformed payload"})
	}
	if err := req.Validate(); err != nil {
		return util.NewValidationFailed(validationDetails(err))
	}
	return nil
}

func validationDetails(err error) map[string]any {
	details := map[string]any{}
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		for field, fieldErr := range fieldErrs {
			details[field] = fieldErr.Error()
		}
	} else if err != nil {
		details["payload"] = err.Error()
	}
	return details
}
