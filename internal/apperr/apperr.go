package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Message struct {
	Code  string `json:"code"`
	Text  string `json:"text"`
	Value any    `json:"value,omitempty"`
}

func (m Message) WithValue(v any) Message {
	m.Value = v
	return m
}

var (
	Unknown         = Message{Code: "unknown", Text: "unknown"}
	PG              = Message{Code: "pg", Text: "postgres error"}
	Validation      = Message{Code: "validation", Text: "validation error"}
	Auth            = Message{Code: "auth", Text: "auth error"}
	NoAccess        = Message{Code: "no_access", Text: "no access"}
	NotFound        = Message{Code: "not_found", Text: "not found"}
	NotFoundAccount = Message{Code: "not_found_account", Text: "account not found"}
	InvalidPassword = Message{Code: "invalid_password", Text: "invalid password"}
)

type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthenticated
	KindForbidden
	KindBadRequest
	KindValidation
	KindNotFound
	KindStore
)

func (k Kind) Status() int {
	switch k {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindBadRequest, KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is rendered by the HTTP error handler as the error envelope.
type Error struct {
	Kind     Kind
	Messages []Message
	Err      error
}

func (e *Error) Error() string {
	text := ""
	if len(e.Messages) > 0 {
		text = e.Messages[0].Code
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", text, e.Err)
	}
	return text
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Status() int { return e.Kind.Status() }

func New(kind Kind, err error, msgs ...Message) *Error {
	return &Error{Kind: kind, Messages: msgs, Err: err}
}

func Unauthenticated(err error) *Error {
	return New(KindUnauthenticated, err, Auth)
}

func Forbidden(err error) *Error {
	return New(KindForbidden, err, NoAccess)
}

func BadRequest(msg Message, err error) *Error {
	return New(KindBadRequest, err, msg)
}

func NotFoundError(msg Message, err error) *Error {
	return New(KindNotFound, err, msg)
}

func Internal(err error) *Error {
	return New(KindUnknown, err, Unknown)
}

func Store(err error, sqlState string) *Error {
	return New(KindStore, err, PG.WithValue(map[string]string{"sqlState": sqlState}))
}

// FromValidation turns ozzo field errors into one message per field, sorted by
// field name. Any other error becomes a single validation message.
func FromValidation(err error) *Error {
	var fields validation.Errors
	if !errors.As(err, &fields) {
		return New(KindValidation, err, Message{Code: Validation.Code, Text: err.Error()})
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	msgs := make([]Message, 0, len(names))
	for _, name := range names {
		msgs = append(msgs, Message{
			Code:  Validation.Code,
			Text:  fmt.Sprintf("%s: %v", name, fields[name]),
			Value: name,
		})
	}
	return New(KindValidation, err, msgs...)
}

func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
