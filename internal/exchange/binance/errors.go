package binance

import "fmt"

// APIError is an error reported by the Binance REST API, e.g. {"code":-1121,"msg":"Invalid symbol."}.
type APIError struct {
	Endpoint   string `json:"-"`
	StatusCode int    `json:"-"`
	Code       int    `json:"code"`
	Message    string `json:"msg"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("binance %s: status %d, code %d: %s", e.Endpoint, e.StatusCode, e.Code, e.Message)
}
