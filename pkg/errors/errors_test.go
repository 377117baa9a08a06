package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublicMessageShownCodes(t *testing.T) {
	err := New(CodeValidation, "Missing required fields.")
	require.Equal(t, "Missing required fields.", PublicMessage(err))

	wrapped := fmt.Errorf("handler: %w", New(CodeNotFound, "Product not found."))
	require.Equal(t, "Product not found.", PublicMessage(wrapped))
}

func TestPublicMessageCollapsesInternalCauses(t *testing.T) {
	cause := stdErrors.New("pq: connection refused")

	require.Equal(t, "Something went wrong. Please try again.",
		PublicMessage(Wrap(CodeDependency, cause, "append order")))
	require.Equal(t, "Something went wrong. Please try again.",
		PublicMessage(Wrap(CodeInternal, cause, "encode cart")))
	require.Equal(t, "Something went wrong. Please try again.",
		PublicMessage(cause), "untyped errors reveal nothing")
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("boom")
	err := Wrap(CodeDependency, cause, "context")

	require.True(t, stdErrors.Is(err, cause))
	require.Equal(t, CodeDependency, As(err).Code())
	require.Nil(t, As(stdErrors.New("untyped")))
}
