package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dafibh/fortuna/fortuna-web/internal/domain"
)

// APIError is returned for every non-2xx response of the REST API
type APIError struct {
	StatusCode int
	Title      string
	Detail     string
	Errors     []string
}

func (e *APIError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = e.Title
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, msg)
}

// IsValidation reports whether the server rejected the payload (422)
func (e *APIError) IsValidation() bool {
	return e.StatusCode == http.StatusUnprocessableEntity
}

// Is lets errors.Is(err, domain.ErrNotFound) match a 404
func (e *APIError) Is(target error) bool {
	return target == domain.ErrNotFound && e.StatusCode == http.StatusNotFound
}

// fieldError is the {field, message} element of a ProblemDetails errors array
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorBody accepts both a bare {"errors": [...]} body and RFC 7807 problem details
type errorBody struct {
	Title  string            `json:"title"`
	Detail string            `json:"detail"`
	Errors []json.RawMessage `json:"errors"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	if len(body) == 0 {
		return apiErr
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		apiErr.Detail = strings.TrimSpace(string(body))
		return apiErr
	}

	apiErr.Title = eb.Title
	apiErr.Detail = eb.Detail
	for _, raw := range eb.Errors {
		if msg := decodeErrorMessage(raw); msg != "" {
			apiErr.Errors = append(apiErr.Errors, msg)
		}
	}
	return apiErr
}

func decodeErrorMessage(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var fe fieldError
	if err := json.Unmarshal(raw, &fe); err == nil {
		switch {
		case fe.Field != "" && fe.Message != "":
			return fe.Field + ": " + fe.Message
		case fe.Message != "":
			return fe.Message
		}
	}
	return ""
}
