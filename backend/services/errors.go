package services

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindValidation ErrorKind = "validation_error"
	KindNotFound   ErrorKind = "not_found"
	KindUpstream   ErrorKind = "upstream_error"
	KindStore      ErrorKind = "store_error"
)

// Ошибки для errors.Is. Совпадает любая *Error того же вида.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrUpstream   = &Error{Kind: KindUpstream}
	ErrStore      = &Error{Kind: KindStore}
)

// Error возвращают все операции сервисов. Status и Detail заполняются
// только для ошибок воркера.
type Error struct {
	Kind    ErrorKind
	Op      string
	Message string
	Status  int
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Message == ""
}

// KindOf возвращает вид ошибки или "", если это не ошибка сервиса.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func validationError(op, format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Op: op, Message: fmt.Sprintf(format, args...)}
}

func notFoundError(op, format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Op: op, Message: fmt.Sprintf(format, args...)}
}

func upstreamError(op string, status int, detail string, err error) error {
	msg := "rendering worker request failed"
	if status != 0 {
		msg = fmt.Sprintf("rendering worker returned status %d", status)
	}
	return &Error{Kind: KindUpstream, Op: op, Message: msg, Status: status, Detail: detail, Err: err}
}

// storeError оборачивает ошибку базы данных. Ошибки сервисов
// возвращаются без изменений.
func storeError(op string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: KindStore, Op: op, Message: "store unavailable", Err: err}
}
