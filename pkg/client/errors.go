package client

import (
	"fmt"

	gjson "github.com/goccy/go-json"
)

// APIError is a structured rejection from the duckling server. Both
// fields are propagated intact for diagnostics.
type APIError struct {
	StatusCode int
	Title      string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s: %s", e.StatusCode, e.Title, e.Message)
}

type errorResponse struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// apiErrorFromBody builds an APIError from a non-success response body.
// A body that is not the expected JSON shape still yields an APIError
// carrying the status code, so the caller always sees one error kind
// for server-side rejections.
func apiErrorFromBody(status int, body []byte) *APIError {
	var er errorResponse
	if err := gjson.Unmarshal(body, &er); err != nil {
		return &APIError{StatusCode: status, Title: "unknown", Message: string(body)}
	}
	return &APIError{StatusCode: status, Title: er.Title, Message: er.Message}
}
