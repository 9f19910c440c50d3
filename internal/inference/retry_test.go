package inference

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRetryableError(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "json parsing error",
			err:  errors.New("json.Unmarshal(...) > unexpected end of JSON input"),
			want: true,
		},
		{
			name: "malformed completion",
			err:  errors.New("malformed completion: expected 8 suggestions, got 3"),
			want: true,
		},
		{
			name: "server error",
			err:  errors.New("response error 503: unavailable"),
			want: true,
		},
		{
			name: "rate limited",
			err:  errors.New("response error 429: too many requests"),
			want: true,
		},
		{
			name: "client error",
			err:  errors.New("response error 401: unauthorized"),
			want: false,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsRetryableError(tc.err))
		})
	}
}

func TestDo(t *testing.T) {
	ctx := context.Background()

	t.Run("retries a retryable error until it succeeds", func(t *testing.T) {
		attempts := 0
		err := Do(ctx, 3, func() error {
			attempts++
			if attempts < 3 {
				return errors.New("response error 500: boom")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("stops immediately on an unrecoverable error", func(t *testing.T) {
		attempts := 0
		err := Do(ctx, 3, func() error {
			attempts++
			return errors.New("response error 401: unauthorized")
		})
		require.Error(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("gives up after the configured attempts", func(t *testing.T) {
		attempts := 0
		wantErr := errors.New("response error 500: boom")
		err := Do(ctx, 2, func() error {
			attempts++
			return wantErr
		})
		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, 3, attempts)
	})

	t.Run("returns the unrecoverable error unwrapped", func(t *testing.T) {
		wantErr := errors.New("response error 401: unauthorized")
		err := Do(ctx, 3, func() error {
			return wantErr
		})
		assert.ErrorIs(t, err, wantErr)
	})
}
