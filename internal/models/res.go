package models

// ApiResponse is the envelope for the non-GraphQL endpoints (health, failures outside resolvers).
type ApiResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func SuccessResponse(data interface{}, message string) ApiResponse {
	return ApiResponse{
		Success: true,
		Data:    data,
		Message: message,
	}
}

func ErrorResponse(err string, requestID string) ApiResponse {
	return ApiResponse{
		Success:   false,
		Error:     err,
		RequestID: requestID,
	}
}
