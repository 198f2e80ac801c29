package authsdk

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// SessionSource publishes the signed-in principal once it becomes known.
// Subscribe may invoke fn synchronously when a principal is already
// available. The returned function stops delivery; after it returns fn is
// not called again.
type SessionSource interface {
	Subscribe(fn func(UserInfoResponse)) (unsubscribe func())
}

// SessionValue is a SessionSource backed by a value the application sets
// itself, e.g. after restoring a session from storage.
type SessionValue struct {
	mu   sync.Mutex
	user *UserInfoResponse
	subs map[int]func(UserInfoResponse)
	next int
}

// Set stores the principal and notifies every subscriber.
func (v *SessionValue) Set(user UserInfoResponse) {
	v.mu.Lock()
	v.user = &user
	subs := make([]func(UserInfoResponse), 0, len(v.subs))
	for _, fn := range v.subs {
		subs = append(subs, fn)
	}
	v.mu.Unlock()

	for _, fn := range subs {
		fn(user)
	}
}

// Clear forgets the principal. Subscribers are not notified.
func (v *SessionValue) Clear() {
	v.mu.Lock()
	v.user = nil
	v.mu.Unlock()
}

// Get returns the current principal, if any.
func (v *SessionValue) Get() (UserInfoResponse, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.user == nil {
		return UserInfoResponse{}, false
	}
	return *v.user, true
}

// Subscribe implements SessionSource.
func (v *SessionValue) Subscribe(fn func(UserInfoResponse)) func() {
	v.mu.Lock()
	if v.subs == nil {
		v.subs = make(map[int]func(UserInfoResponse))
	}
	id := v.next
	v.next++
	v.subs[id] = fn
	current := v.user
	v.mu.Unlock()

	if current != nil {
		fn(*current)
	}

	return func() {
		v.mu.Lock()
		delete(v.subs, id)
		v.mu.Unlock()
	}
}

// PollingSource calls Poll every Interval until it yields a principal, then
// delivers it once and stops.
type PollingSource struct {
	Poll     func(ctx context.Context) (*UserInfoResponse, error)
	Interval time.Duration
	Clock    clock.WithTicker
	Logger   *slog.Logger
}

// Subscribe implements SessionSource. Each subscription polls on its own goroutine.
func (p *PollingSource) Subscribe(fn func(UserInfoResponse)) func() {
	clk := p.Clock
	if clk == nil {
		clk = clock.RealClock{}
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interval := p.Interval
	if interval <= 0 {
		interval = time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)

		ticker := clk.NewTicker(interval)
		defer ticker.Stop()

		for {
			user, err := p.Poll(ctx)
			if ctx.Err() != nil {
				return
			}
			switch {
			case err == nil && user != nil:
				fn(*user)
				return
			case err != nil && !IsErrorCode(err, ErrorCodeInvalidToken):
				logger.Debug("session poll failed", "error", err)
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C():
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}

// UserInfoSource returns a PollingSource that resolves accessToken through
// the userinfo endpoint.
func (c *SDKClient) UserInfoSource(accessToken string, interval time.Duration) *PollingSource {
	return &PollingSource{
		Poll: func(ctx context.Context) (*UserInfoResponse, error) {
			return c.GetUserInfo(ctx, accessToken)
		},
		Interval: interval,
		Clock:    c.clock(),
	}
}
