package apperr

import "errors"

// Code mirrors the failure taxonomy of the advice pipeline: a NotFound means
// the request was fine but the world has no answer, Internal means an
// upstream or storage fault, Validation means the request never qualified.
type Code int

const (
	CodeNotFound Code = iota
	CodeInternal
	CodeValidation
)

type Error struct {
	Code Code
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func NotFound(msg string) error   { return &Error{Code: CodeNotFound, Msg: msg} }
func Internal(msg string) error   { return &Error{Code: CodeInternal, Msg: msg} }
func Validation(msg string) error { return &Error{Code: CodeValidation, Msg: msg} }

func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}

func IsNotFound(err error) bool {
	c, ok := CodeOf(err)
	return ok && c == CodeNotFound
}
