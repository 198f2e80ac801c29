package authsdk

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

const (
	tokenCallback = "https://app.example.com/callback#access_token=tok-123&token_type=Bearer"
	waitFor       = 2 * time.Second
	tick          = 5 * time.Millisecond
)

// recorder collects navigations and callbacks made by the controller.
type recorder struct {
	mu      sync.Mutex
	targets []string
	errors  []string
	users   []UserInfoResponse
}

func (r *recorder) Navigate(target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets = append(r.targets, target)
}

func (r *recorder) onError(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

func (r *recorder) onSuccess(user UserInfoResponse) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, user)
}

func (r *recorder) Targets() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.targets...)
}

func (r *recorder) Errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.errors...)
}

func (r *recorder) Users() []UserInfoResponse {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]UserInfoResponse(nil), r.users...)
}

func newTestController(t *testing.T, source SessionSource, errorRedirect string) (*BootstrapController, *recorder, *testingclock.FakeClock) {
	t.Helper()

	fc := testingclock.NewFakeClock(time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC))
	rec := &recorder{}
	c := NewBootstrapController(source, rec, BootstrapOptions{
		SuccessRedirect: "/",
		ErrorRedirect:   errorRedirect,
		OnSuccess:       rec.onSuccess,
		OnError:         rec.onError,
		Clock:           fc,
	})
	t.Cleanup(c.Unmount)

	return c, rec, fc
}

func requireState(t *testing.T, c *BootstrapController, want BootstrapState) {
	t.Helper()
	require.Eventually(t, func() bool { return c.State() == want }, waitFor, tick, "state never became %s", want)
}

func TestBootstrapErrorRedirectsAfterDelay(t *testing.T) {
	t.Parallel()

	c, rec, fc := newTestController(t, &SessionValue{}, "/login")
	require.NoError(t, c.Mount("https://app.example.com/callback#error=access_denied&error_description=User%20cancelled"))

	requireState(t, c, StateError)
	require.Equal(t, "User cancelled", c.Message())
	require.Equal(t, []string{"User cancelled"}, rec.Errors())

	require.Eventually(t, fc.HasWaiters, waitFor, tick)
	require.Empty(t, rec.Targets())

	fc.Step(DefaultErrorRedirectDelay)
	require.Eventually(t, func() bool { return len(rec.Targets()) == 1 }, waitFor, tick)
	require.Equal(t, []string{"/login?error=User%20cancelled"}, rec.Targets())
}

func TestBootstrapTimeout(t *testing.T) {
	t.Parallel()

	c, rec, fc := newTestController(t, &SessionValue{}, "/login")
	require.NoError(t, c.Mount(tokenCallback))

	// The timeout is armed by Mount itself.
	require.True(t, fc.HasWaiters())
	require.Equal(t, StateProcessing, c.State())

	fc.Step(DefaultBootstrapTimeout)
	requireState(t, c, StateError)
	require.Equal(t, TimeoutMessage, c.Message())
	require.Equal(t, []string{TimeoutMessage}, rec.Errors())

	require.Eventually(t, fc.HasWaiters, waitFor, tick)
	fc.Step(DefaultErrorRedirectDelay)

	require.Eventually(t, func() bool { return len(rec.Targets()) == 1 }, waitFor, tick)
	require.Equal(t, "/login?error=Authentication%20timed%20out.%20Please%20try%20again.", rec.Targets()[0])
}

func TestBootstrapAuthenticated(t *testing.T) {
	t.Parallel()

	t.Run("principal arrives later", func(t *testing.T) {
		t.Parallel()

		source := &SessionValue{}
		c, rec, fc := newTestController(t, source, "/login")
		require.NoError(t, c.Mount(tokenCallback))
		require.Equal(t, StateProcessing, c.State())

		source.Set(UserInfoResponse{Subject: "user-1", Email: "ada@example.com"})

		requireState(t, c, StateAuthenticated)
		require.Eventually(t, func() bool { return len(rec.Targets()) == 1 }, waitFor, tick)
		require.Equal(t, []string{"/"}, rec.Targets())
		require.Equal(t, "user-1", rec.Users()[0].Subject)
		require.Empty(t, rec.Errors())

		// The timeout was cancelled, so stepping past it changes nothing.
		require.Eventually(t, func() bool { return !fc.HasWaiters() }, waitFor, tick)
		fc.Step(time.Minute)
		require.Equal(t, StateAuthenticated, c.State())
		require.Empty(t, rec.Errors())
	})

	t.Run("principal already known", func(t *testing.T) {
		t.Parallel()

		source := &SessionValue{}
		source.Set(UserInfoResponse{Subject: "user-2"})

		c, rec, _ := newTestController(t, source, "/login")
		require.NoError(t, c.Mount(tokenCallback))

		requireState(t, c, StateAuthenticated)
		require.Eventually(t, func() bool { return len(rec.Users()) == 1 }, waitFor, tick)
		require.Equal(t, "user-2", rec.Users()[0].Subject)
	})
}

func TestBootstrapUnknown(t *testing.T) {
	t.Parallel()

	t.Run("no fragment", func(t *testing.T) {
		t.Parallel()

		c, rec, fc := newTestController(t, &SessionValue{}, "/login")
		require.NoError(t, c.Mount("https://app.example.com/callback"))

		requireState(t, c, StateUnknown)
		require.False(t, fc.HasWaiters())
		require.Empty(t, rec.Targets())
		require.Empty(t, rec.Errors())
	})

	t.Run("malformed URL", func(t *testing.T) {
		t.Parallel()

		c, _, _ := newTestController(t, &SessionValue{}, "/login")
		require.Error(t, c.Mount("https://app.example.com/callback#error=%zz"))
		requireState(t, c, StateUnknown)
	})
}

func TestBootstrapUnmountCancelsEverything(t *testing.T) {
	t.Parallel()

	source := &SessionValue{}
	c, rec, fc := newTestController(t, source, "/login")
	require.NoError(t, c.Mount(tokenCallback))
	require.True(t, fc.HasWaiters())

	c.Unmount()
	require.False(t, fc.HasWaiters())

	fc.Step(time.Minute)
	source.Set(UserInfoResponse{Subject: "late"})

	require.Equal(t, StateProcessing, c.State())
	require.Empty(t, rec.Errors())
	require.Empty(t, rec.Users())
	require.Empty(t, rec.Targets())

	// A second Unmount is a no-op.
	c.Unmount()
}

func TestBootstrapGoToLogin(t *testing.T) {
	t.Parallel()

	c, rec, fc := newTestController(t, &SessionValue{}, "/login?next=%2Fhome")
	require.NoError(t, c.Mount("https://app.example.com/callback#error=access_denied"))

	requireState(t, c, StateError)
	require.Equal(t, "access_denied", c.Message())
	require.Eventually(t, fc.HasWaiters, waitFor, tick)

	c.GoToLogin()
	require.Eventually(t, func() bool { return len(rec.Targets()) == 1 }, waitFor, tick)
	require.Equal(t, "/login?next=%2Fhome&error=access_denied", rec.Targets()[0])

	// The delayed redirect was cancelled and does not navigate a second time.
	require.Eventually(t, func() bool { return !fc.HasWaiters() }, waitFor, tick)
	fc.Step(time.Minute)
	require.Len(t, rec.Targets(), 1)
}

func TestBootstrapGoToLoginIgnoredWhileProcessing(t *testing.T) {
	t.Parallel()

	source := &SessionValue{}
	c, rec, _ := newTestController(t, source, "/login")
	require.NoError(t, c.Mount(tokenCallback))

	c.GoToLogin()
	source.Set(UserInfoResponse{Subject: "user-1"})

	requireState(t, c, StateAuthenticated)
	require.Eventually(t, func() bool { return len(rec.Targets()) == 1 }, waitFor, tick)
	require.Equal(t, []string{"/"}, rec.Targets())
}

func TestBootstrapMountTwice(t *testing.T) {
	t.Parallel()

	t.Run("while mounted", func(t *testing.T) {
		t.Parallel()

		c, _, _ := newTestController(t, &SessionValue{}, "/login")
		require.NoError(t, c.Mount(tokenCallback))
		require.ErrorIs(t, c.Mount(tokenCallback), ErrAlreadyMounted)
	})

	t.Run("after unmount", func(t *testing.T) {
		t.Parallel()

		c, rec, fc := newTestController(t, &SessionValue{}, "/login")
		require.NoError(t, c.Mount(tokenCallback))
		c.Unmount()

		require.ErrorIs(t, c.Mount(tokenCallback), ErrAlreadyMounted)
		require.False(t, fc.HasWaiters())
		require.Equal(t, StateProcessing, c.State())
		require.Empty(t, rec.Targets())
	})
}

// returnsWithin fails the test unless ch is closed before waitFor elapses.
func returnsWithin(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(waitFor):
		t.Fatalf("%s never returned", what)
	}
}

func TestBootstrapUnmountFromCallbacks(t *testing.T) {
	t.Parallel()

	t.Run("navigator", func(t *testing.T) {
		t.Parallel()

		fc := testingclock.NewFakeClock(time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC))
		unmounted := make(chan struct{})
		var targets []string

		var c *BootstrapController
		c = NewBootstrapController(&SessionValue{}, NavigatorFunc(func(target string) {
			targets = append(targets, target)
			c.Unmount()
			close(unmounted)
		}), BootstrapOptions{ErrorRedirect: "/login", Clock: fc})
		t.Cleanup(c.Unmount)

		require.NoError(t, c.Mount("https://app.example.com/callback#error=access_denied"))
		require.Eventually(t, fc.HasWaiters, waitFor, tick)
		fc.Step(DefaultErrorRedirectDelay)

		returnsWithin(t, unmounted, "Unmount inside Navigate")
		require.Equal(t, []string{"/login?error=access_denied"}, targets)
		require.Equal(t, StateError, c.State())
		require.False(t, fc.HasWaiters())

		done := make(chan struct{})
		go func() {
			c.Unmount()
			close(done)
		}()
		returnsWithin(t, done, "second Unmount")
	})

	t.Run("on success", func(t *testing.T) {
		t.Parallel()

		fc := testingclock.NewFakeClock(time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC))
		rec := &recorder{}
		unmounted := make(chan struct{})
		source := &SessionValue{}

		var c *BootstrapController
		c = NewBootstrapController(source, rec, BootstrapOptions{
			SuccessRedirect: "/",
			ErrorRedirect:   "/login",
			OnSuccess: func(UserInfoResponse) {
				c.Unmount()
				close(unmounted)
			},
			Clock: fc,
		})
		t.Cleanup(c.Unmount)

		require.NoError(t, c.Mount(tokenCallback))
		source.Set(UserInfoResponse{Subject: "user-1"})

		returnsWithin(t, unmounted, "Unmount inside OnSuccess")
		require.Equal(t, StateAuthenticated, c.State())
		require.False(t, fc.HasWaiters())

		// Unmounted before the success redirect, so no navigation follows.
		fc.Step(time.Minute)
		require.Never(t, func() bool { return len(rec.Targets()) > 0 }, 100*time.Millisecond, tick)
	})

	t.Run("on error", func(t *testing.T) {
		t.Parallel()

		fc := testingclock.NewFakeClock(time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC))
		rec := &recorder{}
		unmounted := make(chan struct{})

		var c *BootstrapController
		c = NewBootstrapController(&SessionValue{}, rec, BootstrapOptions{
			ErrorRedirect: "/login",
			OnError: func(string) {
				c.Unmount()
				close(unmounted)
			},
			Clock: fc,
		})
		t.Cleanup(c.Unmount)

		require.NoError(t, c.Mount("https://app.example.com/callback#error=access_denied"))

		returnsWithin(t, unmounted, "Unmount inside OnError")
		require.Equal(t, StateError, c.State())

		// The error redirect was never scheduled.
		require.False(t, fc.HasWaiters())
		require.Empty(t, rec.Targets())
	})
}

func TestBootstrapWithUserInfoSource(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/oauth2/userinfo", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sub":"user-9","name":"Grace"}`))
	}))
	t.Cleanup(srv.Close)

	client := NewSDKClient(srv.URL)
	source := client.UserInfoSource("tok-123", time.Second)

	c, rec, _ := newTestController(t, source, "/login")
	require.NoError(t, c.Mount(tokenCallback))

	requireState(t, c, StateAuthenticated)
	require.Eventually(t, func() bool { return len(rec.Users()) == 1 }, waitFor, tick)
	require.Equal(t, "Grace", rec.Users()[0].Name)
}
