package lispi

import "fmt"

type ErrorKind int

const (
	ErrUnresolvedSymbol ErrorKind = iota
	ErrNotCallable
	ErrEmptyCall
	ErrArity
	ErrType
	ErrMalformedForm
	ErrImport
)

// EvalError is returned for every evaluation failure. It propagates through
// eval as a normal error; the driver is the only recovery point.
type EvalError struct {
	Kind    ErrorKind
	Message string
}

func (e *EvalError) Error() string {
	return e.Message
}

func evalErrf(kind ErrorKind, format string, args ...any) *EvalError {
	return &EvalError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
