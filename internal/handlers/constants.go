package handlers

const (
	ErrInvalidRequestBody  = "Invalid request body"
	ErrUnauthorized        = "Unauthorized"
	ErrForbidden           = "Forbidden"
	ErrInternalServerError = "Internal server error"
	ErrNoActiveSession     = "No active drill session"
	ErrInvalidCSRFToken    = "Invalid CSRF token"
	ErrTooManyRequests     = "Too many requests"

	// maxAnswerBodyBytes bounds guess and submit bodies
	maxAnswerBodyBytes = 4 << 10
	// maxImportBodyBytes bounds admin uploads
	maxImportBodyBytes = 5 << 20
)
