package response

import "crossborder/internal/pricing"

// Response represents a standard API response format
type Response struct {
	Status     string      `json:"status"`      // "success" or "error"
	StatusCode int         `json:"status_code"` // HTTP status code
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	ErrorKind  string      `json:"error_kind,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// Success returns a standard success response wrapping the data
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// Error returns a standard error response wrapping the error message
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}

// EngineError renders a structured pricing error, carrying its taxonomy kind
// and remediation suggestion through to the client.
func EngineError(statusCode int, err error) Response {
	resp := Error(statusCode, err.Error())
	if e, ok := err.(*pricing.Error); ok {
		resp.Error = e.Message
		resp.ErrorKind = string(e.Kind)
		resp.Suggestion = e.Suggestion
	}
	return resp
}
