package response

import "prime_estate/internal/domain/models"

// Response is the uniform success envelope: {success: true, data: ...}.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the failure envelope. Domain errors surface in "err",
// auth and infrastructure errors in "error".
type ErrorResponse struct {
	Success bool   `json:"success"`
	Err     string `json:"err,omitempty"`
	Error   string `json:"error,omitempty"`
}

func Success(data interface{}) Response {
	return Response{Success: true, Data: data}
}

func SuccessMessage(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}

func Fail(msg string) ErrorResponse {
	return ErrorResponse{Success: false, Err: msg}
}

func FailError(msg string) ErrorResponse {
	return ErrorResponse{Success: false, Error: msg}
}

// ProjectListResponse mirrors the paginated listing payload.
type ProjectListResponse struct {
	Success     bool             `json:"success"`
	Count       int              `json:"count"`
	Total       int              `json:"total"`
	TotalPages  int              `json:"totalPages"`
	CurrentPage int              `json:"currentPage"`
	Filters     ListFilters      `json:"filters"`
	Data        []models.Project `json:"data"`
}

type ListFilters struct {
	Status string `json:"status,omitempty"`
	Type   string `json:"type,omitempty"`
}
