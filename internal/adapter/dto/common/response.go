package common

// SuccessResponse is the standard success envelope
type SuccessResponse struct {
	Code    int         `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the standard error envelope
type ErrorResponse struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}
