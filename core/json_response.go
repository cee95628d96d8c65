package core

import (
	"encoding/json"
	"errors"
	"net/http"
)

// JSONResponse is the standard JSON response envelope.
type JSONResponse struct {
	Success bool         `json:"success"`
	Data    any          `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON creates a 200 response with the standard envelope.
func JSON(data any) Response {
	return jsonResponse{
		status: http.StatusOK,
		body:   JSONResponse{Success: true, Data: data},
	}
}

// JSONRaw creates a 200 response encoding body as-is, without the envelope.
// Used where a collaborator dictates the exact response shape, e.g. the
// webhook acknowledgment.
func JSONRaw(status int, body any) Response {
	return jsonResponse{status: status, body: body}
}

// JSONError creates a JSON error response. HTTPError values map to their
// status code; anything else is an internal server error.
func JSONError(err error) Response {
	status := http.StatusInternalServerError
	code := "internal_error"

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		code = httpErr.Key
	}

	return jsonResponse{
		status: status,
		body: JSONResponse{
			Success: false,
			Error: &ErrorDetail{
				Code:    code,
				Message: http.StatusText(status),
			},
		},
	}
}
