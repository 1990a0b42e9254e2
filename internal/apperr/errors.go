package apperr

import "errors"

// Виды ошибок, по которым клиент ветвит сообщения.
var (
	ErrValidation      = errors.New("validation")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not_found")
	ErrConflict        = errors.New("conflict")
	ErrExpired         = errors.New("expired")
)

// Error доменная ошибка с текстом для клиента и видом для errors.Is.
type Error struct {
	kind error
	msg  string
}

func New(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.kind
}

// Kind возвращает вид ошибки или nil, если это инфраструктурный сбой.
func Kind(err error) error {
	for _, kind := range []error{ErrValidation, ErrUnauthenticated, ErrUnauthorized, ErrNotFound, ErrConflict, ErrExpired} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// Message текст самой внешней доменной ошибки в цепочке.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.msg
	}
	return ""
}
