package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeTooLarge     Code = "PAYLOAD_TOO_LARGE"
	CodeInternal     Code = "INTERNAL_ERROR"
	CodeDependency   Code = "DEPENDENCY_ERROR"
)

// Metadata captures what a code is allowed to reveal to callers.
type Metadata struct {
	Retryable     bool
	PublicMessage string
	MessageShown  bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		Retryable:     false,
		PublicMessage: "Missing required fields.",
		MessageShown:  true,
	},
	CodeUnauthorized: {
		Retryable:     false,
		PublicMessage: "Incorrect email or password.",
		MessageShown:  true,
	},
	CodeNotFound: {
		Retryable:     false,
		PublicMessage: "Not found.",
		MessageShown:  true,
	},
	CodeConflict: {
		Retryable:     false,
		PublicMessage: "Conflict detected.",
		MessageShown:  true,
	},
	CodeTooLarge: {
		Retryable:     false,
		PublicMessage: "Payload too large.",
		MessageShown:  true,
	},
	CodeInternal: {
		Retryable:     true,
		PublicMessage: "Something went wrong. Please try again.",
		MessageShown:  false,
	},
	CodeDependency: {
		Retryable:     true,
		PublicMessage: "Something went wrong. Please try again.",
		MessageShown:  false,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// PublicMessage resolves the envelope-facing message for any error: typed
// errors surface their own message when the code allows it, everything else
// collapses to the generic internal message.
func PublicMessage(err error) string {
	typed := As(err)
	if typed == nil {
		return MetadataFor(CodeInternal).PublicMessage
	}
	meta := MetadataFor(typed.Code())
	if meta.MessageShown && typed.Message() != "" {
		return typed.Message()
	}
	return meta.PublicMessage
}
