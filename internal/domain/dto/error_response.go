package dto

import "time"

// ErrorResponse is the JSON body returned for every failed request.
//
// Fields:
//   - Message: short, user-facing description.
//   - ErrorDetails: underlying error text, omitted when empty.
//   - Timestamp: when the error was produced (UTC).
type ErrorResponse struct {
	Message      string    `json:"message" example:"invalid limit"`
	ErrorDetails string    `json:"error_details,omitempty" example:"strconv.Atoi: parsing \"x\": invalid syntax"`
	Timestamp    time.Time `json:"timestamp" example:"2026-02-01T18:00:00Z"`
}

// Error implements the error interface.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse, copying err's text into ErrorDetails when non-nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now().UTC()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
