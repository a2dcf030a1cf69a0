package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusByKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"connectivity", Wrap(errors.New("dial"), KindConnectivity, "store unavailable"), http.StatusInternalServerError},
		{"not found", New(KindNotFound, "Business not found"), http.StatusNotFound},
		{"malformed", New(KindMalformedInput, "bad id"), http.StatusBadRequest},
		{"conflict", New(KindConflict, "duplicate id"), http.StatusConflict},
		{"untyped", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	base := New(KindNotFound, "Business not found")
	wrapped := fmt.Errorf("delete business 7: %w", base)

	require.Equal(t, KindNotFound, KindOf(wrapped))
	require.True(t, errors.Is(wrapped, ErrNotFound))
	require.False(t, errors.Is(New(KindConflict, "duplicate id"), ErrNotFound))
}

func TestErrorText(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, KindConnectivity, "mongo ping")
	require.Equal(t, "mongo ping: connection refused", err.Error())
	require.ErrorIs(t, err, cause)
	require.Nil(t, Wrap(nil, KindInternal, "x"))
}
