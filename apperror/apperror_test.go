package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusAndCodePerKind(t *testing.T) {
	cases := []struct {
		kind   Kind
		status int
		code   int
	}{
		{Internal, http.StatusInternalServerError, 50000},
		{Validation, http.StatusBadRequest, 40000},
		{AlreadyExists, http.StatusConflict, 40900},
		{InvalidCredentials, http.StatusUnauthorized, 40101},
		{Unauthorized, http.StatusUnauthorized, 40100},
		{NotFound, http.StatusNotFound, 40400},
		{Forbidden, http.StatusForbidden, 40300},
	}
	for _, tc := range cases {
		e := New(tc.kind, "x")
		assert.Equal(t, tc.status, e.Status())
		assert.Equal(t, tc.code, e.Code())
	}
}

func TestIsMatchesWrappedKind(t *testing.T) {
	err := fmt.Errorf("handler: %w", New(NotFound, "Post not found"))
	assert.True(t, Is(err, NotFound))
	assert.False(t, Is(err, Forbidden))
	assert.False(t, Is(errors.New("plain"), NotFound))
}

func TestFromWrapsUnknownAsInternal(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	ae := From(cause)
	require.Equal(t, Internal, ae.Kind)
	assert.Equal(t, "internal server error", ae.Message)
	assert.ErrorIs(t, ae, cause)

	known := New(Forbidden, "This post is private")
	assert.Same(t, known, From(known))
}
