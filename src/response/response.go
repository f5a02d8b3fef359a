package response

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	Token    string `json:"token"`
	UID      uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type SuccessResponse struct {
	Data interface{} `json:"data"`
}

// ValidationErrorResponse lists every failing field with its message.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}
