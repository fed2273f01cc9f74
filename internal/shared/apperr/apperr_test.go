package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{InvalidErr("bad", nil), http.StatusBadRequest},
		{NotFoundErr("missing"), http.StatusNotFound},
		{UnauthorizedErr("login"), http.StatusUnauthorized},
		{ForbiddenErr("nope"), http.StatusForbidden},
		{ConflictErr("dup"), http.StatusConflict},
		{Wrap(errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err))
	}
}

func TestPublicMessageNeverLeaksInternal(t *testing.T) {
	err := Wrap(errors.New("dsn: user=root password=hunter2"))
	assert.NotContains(t, PublicMessage(err), "hunter2")
	assert.Equal(t, genericMessage, PublicMessage(err))

	assert.Equal(t, "Paper type not found.", PublicMessage(NotFoundErr("Paper type not found.")))
}

func TestAsUnwrapsThroughWrapping(t *testing.T) {
	inner := NotFoundErr("gone")
	wrapped := fmt.Errorf("fetching category: %w", inner)

	ae, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, NotFound, ae.Kind)

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil))
}
