// Package httperror defines the body of every error response.
package httperror

// Kind classifies an error for API clients.
//
// swagger:enum Kind
type Kind string

const (
	KindUnauthorized Kind = "unauthorized"
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindUpstream     Kind = "upstream"
	KindInternal     Kind = "internal"
)

type Error struct {
	Message string `json:"error" example:"the transactionId field must be set"`
	Kind    Kind   `json:"kind" example:"validation"`
}

func New(kind Kind, e error) Error {
	return Error{
		Message: e.Error(),
		Kind:    kind,
	}
}
