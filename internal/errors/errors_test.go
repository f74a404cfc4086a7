package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"gocorr/domain/core"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := ConfigInvalid("PORT is required")
	wrapped := Wrap(base, "loading server config")

	assert.Equal(t, CodeConfigInvalid, GetCode(wrapped))
	assert.Equal(t, "loading server config: PORT is required", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, base))

	assert.Equal(t, CodeInternalError, GetCode(Wrap(fmt.Errorf("boom"), "ctx")))
	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Equal(t, "UNKNOWN", GetCode(fmt.Errorf("plain")))
}

func TestFromDomain(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"column", core.NewColumnNotFoundError("age"), CodeNotFound, http.StatusNotFound},
		{"report", core.ErrReportNotFound, CodeNotFound, http.StatusNotFound},
		{"few observations", core.NewInsufficientDataError("correlation", 2, 3), CodeInsufficientData, http.StatusUnprocessableEntity},
		{"empty sample", core.ErrEmptySample, CodeInsufficientData, http.StatusUnprocessableEntity},
		{"no dataset", core.ErrDatasetNotLoaded, CodePrecondition, http.StatusConflict},
		{"no dimensions", core.ErrDimensionsNotConfigured, CodePrecondition, http.StatusConflict},
		{"lengths", core.NewLengthMismatchError(3, 4), CodeInvalidInput, http.StatusBadRequest},
		{"alpha", fmt.Errorf("%w: 2", core.ErrInvalidAlpha), CodeInvalidInput, http.StatusBadRequest},
		{"id", core.ErrInvalidID, CodeInvalidInput, http.StatusBadRequest},
		{"unknown", fmt.Errorf("disk on fire"), CodeInternalError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := FromDomain(tt.err)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.status, HTTPStatus(appErr.Code))
			assert.True(t, stderrors.Is(appErr, tt.err))
		})
	}

	assert.Nil(t, FromDomain(nil))

	db := DatabaseError("save report", fmt.Errorf("conn refused"))
	assert.Same(t, db, FromDomain(db))
}
