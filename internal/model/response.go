package model

// ResponseData is the envelope returned by every API endpoint.
// Transport success (HTTP status) and application success (Success) are reported separately.
type ResponseData[T any] struct {
	Data         T      `json:"data"`
	Success      bool   `json:"success"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// OK wraps data in a successful envelope.
func OK[T any](data T) ResponseData[T] {
	return ResponseData[T]{Data: data, Success: true}
}

// Fail returns a failed envelope with a zero payload.
func Fail[T any](msg string) ResponseData[T] {
	return ResponseData[T]{Success: false, ErrorMessage: msg}
}

// ListModel is one page of items.
// CurrentPage lies in [1, TotalPages] whenever TotalPages > 0.
type ListModel[T any] struct {
	Items       []T `json:"items"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
}
