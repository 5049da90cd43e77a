package dto

// ErrorResponse is the uniform error payload. Code carries the failure
// taxonomy tag (e.g. "not_eligible", "expired") so clients can branch
// without parsing the message.
type ErrorResponse struct {
	Code    string   `json:"code,omitempty"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
