package errx_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Abraxas-365/hirematch/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRegistry = errx.NewRegistry("TEST")

var (
	codeMissing = testRegistry.Register("MISSING", errx.TypeNotFound, http.StatusNotFound, "Thing not found")
	codeDenied  = testRegistry.Register("DENIED", errx.TypeAuthorization, http.StatusForbidden, "Denied")
)

func TestRegistryNew(t *testing.T) {
	err := testRegistry.New(codeMissing)

	assert.Equal(t, "TEST_MISSING", err.Code)
	assert.Equal(t, errx.TypeNotFound, err.Type)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Equal(t, "Thing not found", err.Message)
}

func TestRegistryDuplicatePanics(t *testing.T) {
	r := errx.NewRegistry("DUP")
	r.Register("X", errx.TypeInternal, http.StatusInternalServerError, "x")

	assert.Panics(t, func() {
		r.Register("X", errx.TypeInternal, http.StatusInternalServerError, "x")
	})
}

func TestWithDetailDoesNotMutateOriginal(t *testing.T) {
	base := testRegistry.New(codeDenied)
	withID := base.WithDetail("id", "42")

	assert.Empty(t, base.Details)
	assert.Equal(t, "42", withID.Details["id"])

	both := withID.WithDetails(map[string]any{"role": "RECRUITER"})
	assert.Len(t, both.Details, 2)
	assert.Len(t, withID.Details, 1)
}

func TestWrapKeepsRegisteredCode(t *testing.T) {
	inner := testRegistry.New(codeMissing)
	wrapped := errx.Wrap(fmt.Errorf("lookup: %w", inner), "failed to load", errx.TypeInternal)

	require.NotNil(t, wrapped)
	assert.Equal(t, "TEST_MISSING", wrapped.Code)
	assert.Equal(t, http.StatusNotFound, wrapped.HTTPStatus)
	assert.True(t, errx.IsType(wrapped, errx.TypeNotFound))
	assert.ErrorIs(t, wrapped, testRegistry.New(codeMissing))
}

func TestWrapPlainError(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := errx.Wrap(cause, "failed to query", errx.TypeInternal)

	assert.Equal(t, errx.TypeInternal, wrapped.Type)
	assert.Equal(t, http.StatusInternalServerError, wrapped.HTTPStatus)
	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, wrapped.Error(), "connection refused")
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, errx.Wrap(nil, "nothing", errx.TypeInternal))
}

func TestToHTTPResponse(t *testing.T) {
	resp := testRegistry.New(codeDenied).WithDetail("job_id", "j1").ToHTTPResponse()

	assert.Equal(t, "TEST_DENIED", resp["code"])
	assert.Equal(t, errx.TypeAuthorization, resp["type"])
	assert.Equal(t, map[string]any{"job_id": "j1"}, resp["details"])
}

func TestUnknownCode(t *testing.T) {
	err := testRegistry.New("TEST_NOPE")
	assert.Equal(t, errx.TypeInternal, err.Type)
	assert.True(t, errx.IsCode(err, "TEST_NOPE"))
}
