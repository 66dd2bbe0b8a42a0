package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/lexiflash/internal/errors"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := errors.NewInternalError(cause)

	assert.Equal(t, "INTERNAL_ERROR: internal server error (disk full)", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestAsAppError(t *testing.T) {
	nf := errors.NewNotFoundError("item", "abc")
	wrapped := fmt.Errorf("load: %w", nf)

	assert.Same(t, nf, errors.AsAppError(wrapped))

	plain := errors.AsAppError(stderrors.New("boom"))
	assert.Equal(t, errors.ErrCodeInternal, plain.Code)
	assert.Equal(t, http.StatusInternalServerError, plain.Status)
}

func TestNewInsufficientFundsError(t *testing.T) {
	err := errors.NewInsufficientFundsError(150, 200)

	assert.Equal(t, errors.ErrCodeInsufficientFunds, err.Code)
	assert.Equal(t, http.StatusConflict, err.Status)
	assert.Contains(t, err.Message, "have 150, need 200")
}
