package resilience

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(attempts int) Policy {
	return Policy{Attempts: attempts, Base: time.Millisecond, Cap: 5 * time.Millisecond, Factor: 2}
}

func TestDo_SuccessOnFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastPolicy(3), func(context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesTransient(t *testing.T) {
	calls := 0
	var retried []int
	p := fastPolicy(3)
	p.OnRetry = func(attempt int, _ error) { retried = append(retried, attempt) }

	err := Do(context.Background(), p, func(context.Context) error {
		calls++
		if calls < 3 {
			return NewTransientError(errors.New("busy"), http.StatusServiceUnavailable)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, retried)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastPolicy(3), func(context.Context) error {
		calls++
		return NewTransientError(errors.New("always"), http.StatusBadGateway)
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, "always", err.Error())
}

func TestDo_PermanentErrorStops(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastPolicy(5), func(context.Context) error {
		calls++
		return errors.New("bad request")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_CustomRetryable(t *testing.T) {
	calls := 0
	p := fastPolicy(2)
	p.Retryable = func(error) bool { return true }
	_ = Do(context.Background(), p, func(context.Context) error {
		calls++
		return errors.New("anything")
	})
	assert.Equal(t, 2, calls)
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	p := Policy{Attempts: 5, Base: time.Hour, Cap: time.Hour}

	err := Do(ctx, p, func(context.Context) error {
		calls++
		cancel()
		return NewTransientError(errors.New("busy"), http.StatusTooManyRequests)
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoVal_ReturnsValue(t *testing.T) {
	calls := 0
	v, err := DoVal(context.Background(), fastPolicy(3), func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", NewTransientError(errors.New("busy"), http.StatusTooManyRequests)
		}
		return "text", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "text", v)
}

func TestPolicy_Delay(t *testing.T) {
	p := Policy{Attempts: 5, Base: 100 * time.Millisecond, Cap: 300 * time.Millisecond, Factor: 2}.withDefaults()

	assert.Equal(t, 100*time.Millisecond, p.delay(0))
	assert.Equal(t, 200*time.Millisecond, p.delay(1))
	assert.Equal(t, 300*time.Millisecond, p.delay(2))
	assert.Equal(t, 300*time.Millisecond, p.delay(6))

	p.Jitter = 0.5
	for i := 0; i < 20; i++ {
		d := p.delay(0)
		assert.GreaterOrEqual(t, d, 50*time.Millisecond)
		assert.LessOrEqual(t, d, 150*time.Millisecond)
	}
}

func TestPolicy_Defaults(t *testing.T) {
	p := Policy{}.withDefaults()
	d := DefaultPolicy()
	assert.Equal(t, d.Attempts, p.Attempts)
	assert.Equal(t, d.Base, p.Base)
	assert.Equal(t, d.Cap, p.Cap)
	assert.NotNil(t, p.Retryable)
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("invalid api key"), false},
		{"marked", NewTransientError(errors.New("x"), 503), true},
		{"wrapped mark", fmt.Errorf("ocr: %w", NewTransientError(errors.New("x"), 429)), true},
		{"conn refused", fmt.Errorf("dial: %w", syscall.ECONNREFUSED), true},
		{"reset message", errors.New("read tcp: connection reset by peer"), true},
		{"timeout message", errors.New("net/http: TLS handshake timeout"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestIsTransientHTTPStatus(t *testing.T) {
	for _, code := range []int{408, 429, 500, 502, 503, 504} {
		assert.True(t, IsTransientHTTPStatus(code), code)
	}
	for _, code := range []int{200, 400, 401, 404, 422} {
		assert.False(t, IsTransientHTTPStatus(code), code)
	}
}

func TestTransientError_Unwrap(t *testing.T) {
	base := errors.New("base")
	te := NewTransientError(base, 503)
	assert.ErrorIs(t, te, base)
	assert.Equal(t, 503, te.StatusCode)
}
