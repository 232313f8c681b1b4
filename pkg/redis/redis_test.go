package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type closer struct {
	closed bool
	err    error
}

func (c *closer) Close() error {
	c.closed = true
	return c.err
}

func TestOpen_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want error
	}{
		{name: "empty url", url: "", want: ErrEmptyConnectionURL},
		{name: "http scheme", url: "http://localhost:6379", want: ErrFailedToParseURL},
		{name: "no scheme", url: "localhost:6379", want: ErrFailedToParseURL},
		{name: "bad db number", url: "redis://localhost:6379/abc", want: ErrFailedToParseURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, err := Open(context.Background(), Config{URL: tt.url}, nil)
			require.Nil(t, client)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOpen_UnreachableServer(t *testing.T) {
	t.Parallel()

	cfg := Config{
		URL:           "redis://127.0.0.1:1/0",
		Timeout:       100 * time.Millisecond,
		RetryAttempts: 2,
		RetryInterval: time.Millisecond,
	}
	client, err := Open(context.Background(), cfg, nil)
	require.Nil(t, client)
	require.ErrorIs(t, err, ErrConnectionFailed)
}

func TestOpen_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := Config{URL: "redis://127.0.0.1:1/0", Timeout: 50 * time.Millisecond, RetryAttempts: 5, RetryInterval: time.Second}
	_, err := Open(ctx, cfg, nil)
	require.ErrorIs(t, err, ErrConnectionFailed)
}

func TestConfig_Enabled(t *testing.T) {
	t.Parallel()

	require.False(t, Config{}.Enabled())
	require.True(t, Config{URL: "redis://localhost:6379"}.Enabled())
}

func TestHealthcheck_NilClient(t *testing.T) {
	t.Parallel()

	err := Healthcheck(nil)(context.Background())
	require.ErrorIs(t, err, ErrHealthcheckFailed)
}

func TestShutdown(t *testing.T) {
	t.Parallel()

	c := &closer{}
	require.NoError(t, Shutdown(c)(context.Background()))
	require.True(t, c.closed)

	failing := &closer{err: errors.New("boom")}
	require.EqualError(t, Shutdown(failing)(context.Background()), "boom")
}
