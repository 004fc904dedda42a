// Package envelope provides the uniform response wrapper used by every API
// endpoint. All bodies sent to clients go through this package so that success
// and error responses stay consistent and internal details never leak.
package envelope

// Success wraps a payload as {"success":true,"data":...}.
type Success struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// Error wraps a message as {"success":false,"error":"..."}.
type Error struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func OK(data any) *Success {
	return &Success{Success: true, Data: data}
}

func New(msg string) *Error {
	return &Error{Success: false, Error: msg}
}
