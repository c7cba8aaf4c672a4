package resource

import (
	"errors"

	"github.com/dafibh/fortuna/fortuna-web/internal/apiclient"
	"github.com/dafibh/fortuna/fortuna-web/internal/domain"
)

// ErrFormInitialized is returned when Init is called a second time
var ErrFormInitialized = errors.New("form already initialized")

// ServerErrorMessages maps a failed submission to the messages shown inline.
// Validation rejections (422) surface the server's error list; every other
// failure, including transport errors, gets the fixed connectivity message.
func ServerErrorMessages(err error) []string {
	if err == nil {
		return nil
	}
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.IsValidation() {
		if len(apiErr.Errors) > 0 {
			return append([]string(nil), apiErr.Errors...)
		}
		if apiErr.Detail != "" {
			return []string{apiErr.Detail}
		}
		return []string{}
	}
	return []string{MsgConnectivity}
}

// IsValidationError reports whether err is a 422 rejection
func IsValidationError(err error) bool {
	var apiErr *apiclient.APIError
	return errors.As(err, &apiErr) && apiErr.IsValidation()
}

// IsNotFound reports whether err is a 404 from the REST API
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
