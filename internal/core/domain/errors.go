package domain

import "net/http"

// Kind discriminates failure categories so handlers can map them to
// status codes without inspecting error strings.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindUnavailable
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// HTTPStatus is a hint for the request-handling boundary; the mapping
// itself stays free of transport concerns.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

var (
	ErrDuplicateEmail   = &Error{Kind: KindConflict, Message: "this email has already submitted the survey"}
	ErrResponseNotFound = &Error{Kind: KindNotFound, Message: "response not found"}
)
