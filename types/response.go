package types

// SubmitResponse is returned for a successful public submission.
type SubmitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// StatusResponse is the generic success envelope for mutations.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope for all client-visible failures.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
