package authsdk

import (
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// BootstrapState is the lifecycle state of a BootstrapController.
type BootstrapState string

const (
	StateProcessing    BootstrapState = "processing"
	StateAuthenticated BootstrapState = "authenticated"
	StateError         BootstrapState = "error"
	StateUnknown       BootstrapState = "unknown"
)

const (
	DefaultBootstrapTimeout   = 10 * time.Second
	DefaultErrorRedirectDelay = 3 * time.Second

	// TimeoutMessage is reported when no principal arrives in time.
	TimeoutMessage = "Authentication timed out. Please try again."
)

// ErrAlreadyMounted is returned by every Mount after the first. A controller
// is single-use; create a new one for the next callback.
var ErrAlreadyMounted = errors.New("bootstrap controller already mounted")

// Navigator moves the application to another location.
type Navigator interface {
	Navigate(target string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(target string)

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(target string) { f(target) }

// BootstrapOptions configures a BootstrapController. Zero durations fall
// back to the package defaults.
type BootstrapOptions struct {
	SuccessRedirect string
	ErrorRedirect   string

	OnSuccess func(user UserInfoResponse)
	OnError   func(message string)

	Timeout            time.Duration
	ErrorRedirectDelay time.Duration

	Clock  clock.WithDelayedExecution
	Logger *slog.Logger
}

type bootstrapEventKind int

const (
	eventCallback bootstrapEventKind = iota
	eventPrincipal
	eventTimeout
	eventRedirect
	eventGoToLogin
)

type bootstrapEvent struct {
	kind     bootstrapEventKind
	fragment CallbackFragment
	user     UserInfoResponse
}

// BootstrapController turns the fragment of a login redirect into a local
// session state. Every transition, callback and navigation runs on a single
// event loop goroutine started by Mount; timers only enqueue events.
//
// OnSuccess, OnError and the Navigator may call Unmount themselves.
type BootstrapController struct {
	source SessionSource
	nav    Navigator
	opts   BootstrapOptions
	clock  clock.WithDelayedExecution
	logger *slog.Logger

	mu          sync.Mutex
	state       BootstrapState
	message     string
	used        bool
	mounted     bool
	inCallback  bool
	navigated   bool
	events      chan bootstrapEvent
	done        chan struct{}
	loopDone    chan struct{}
	timeout     clock.Timer
	redirect    clock.Timer
	unsubscribe func()
}

// NewBootstrapController creates a controller in the processing state.
func NewBootstrapController(source SessionSource, nav Navigator, opts BootstrapOptions) *BootstrapController {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultBootstrapTimeout
	}
	if opts.ErrorRedirectDelay <= 0 {
		opts.ErrorRedirectDelay = DefaultErrorRedirectDelay
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.RealClock{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &BootstrapController{
		source: source,
		nav:    nav,
		opts:   opts,
		clock:  clk,
		logger: logger,
		state:  StateProcessing,
	}
}

// Mount starts the controller for callbackURL. A URL that cannot be parsed
// leaves the controller in the unknown state and the parse error is returned.
func (c *BootstrapController) Mount(callbackURL string) error {
	frag, parseErr := ParseCallback(callbackURL)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.used {
		return ErrAlreadyMounted
	}
	c.used = true
	c.mounted = true
	c.events = make(chan bootstrapEvent, 16)
	c.done = make(chan struct{})
	c.loopDone = make(chan struct{})

	go c.run(c.events, c.done, c.loopDone)

	// The callback event is queued first so it is handled before any
	// principal the source delivers.
	c.post(bootstrapEvent{kind: eventCallback, fragment: frag})

	if parseErr == nil && !frag.Failed() && frag.AccessToken != "" {
		c.timeout = c.clock.AfterFunc(c.opts.Timeout, func() {
			c.post(bootstrapEvent{kind: eventTimeout})
		})
		c.unsubscribe = c.source.Subscribe(func(user UserInfoResponse) {
			c.post(bootstrapEvent{kind: eventPrincipal, user: user})
		})
	}

	return parseErr
}

// Unmount cancels every timer, unsubscribes from the session source and
// waits for the event loop to exit. No callback or navigation starts after
// Unmount returns.
//
// Called from inside OnSuccess, OnError or the Navigator, Unmount cannot wait
// for the loop it is running on; it stops everything and returns, and the
// loop exits once the callback does.
func (c *BootstrapController) Unmount() {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return
	}
	c.mounted = false
	reentrant := c.inCallback
	close(c.done)
	stopTimer(c.timeout)
	stopTimer(c.redirect)
	c.timeout, c.redirect = nil, nil
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	loopDone := c.loopDone
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if !reentrant {
		<-loopDone
	}
}

// State returns the current state.
func (c *BootstrapController) State() BootstrapState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Message returns the error message while in the error state.
func (c *BootstrapController) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

// GoToLogin skips the pending error redirect delay and navigates now. It does
// nothing unless the controller is in the error state.
func (c *BootstrapController) GoToLogin() {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return
	}
	events, done := c.events, c.done
	c.mu.Unlock()

	select {
	case events <- bootstrapEvent{kind: eventGoToLogin}:
	case <-done:
	}
}

// post enqueues ev unless the loop has been told to stop. The channels are
// set once by Mount and never replaced.
func (c *BootstrapController) post(ev bootstrapEvent) {
	select {
	case c.events <- ev:
	case <-c.done:
	}
}

func (c *BootstrapController) run(events <-chan bootstrapEvent, done, loopDone chan struct{}) {
	defer close(loopDone)

	for {
		select {
		case <-done:
			return
		case ev := <-events:
			select {
			case <-done:
				return
			default:
			}
			c.handle(ev)
		}
	}
}

func (c *BootstrapController) handle(ev bootstrapEvent) {
	switch ev.kind {
	case eventCallback:
		switch {
		case ev.fragment.Failed():
			c.fail(ev.fragment.Message())
		case ev.fragment.AccessToken != "":
			c.logger.Debug("awaiting session principal")
		default:
			c.setState(StateUnknown, "")
		}

	case eventPrincipal:
		if c.State() != StateProcessing {
			return
		}
		c.mu.Lock()
		stopTimer(c.timeout)
		c.timeout = nil
		c.mu.Unlock()

		c.setState(StateAuthenticated, "")
		c.logger.Info("session bootstrap authenticated", "sub", ev.user.Subject)
		if c.opts.OnSuccess != nil {
			c.callout(func() { c.opts.OnSuccess(ev.user) })
		}
		if c.opts.SuccessRedirect != "" {
			c.navigate(c.opts.SuccessRedirect)
		}

	case eventTimeout:
		if c.State() == StateProcessing {
			c.fail(TimeoutMessage)
		}

	case eventRedirect:
		if c.State() == StateError {
			c.navigate(c.errorTarget())
		}

	case eventGoToLogin:
		if c.State() != StateError {
			c.logger.Debug("go to login ignored", "state", c.State())
			return
		}
		c.mu.Lock()
		stopTimer(c.redirect)
		c.redirect = nil
		c.mu.Unlock()
		c.navigate(c.errorTarget())
	}
}

// fail enters the error state, reports msg and schedules the error redirect.
func (c *BootstrapController) fail(msg string) {
	c.mu.Lock()
	stopTimer(c.timeout)
	c.timeout = nil
	c.state = StateError
	c.message = msg
	c.mu.Unlock()

	c.logger.Warn("session bootstrap failed", "message", msg)
	if c.opts.OnError != nil {
		c.callout(func() { c.opts.OnError(msg) })
	}

	c.mu.Lock()
	if c.mounted {
		c.redirect = c.clock.AfterFunc(c.opts.ErrorRedirectDelay, func() {
			c.post(bootstrapEvent{kind: eventRedirect})
		})
	}
	c.mu.Unlock()
}

func (c *BootstrapController) setState(state BootstrapState, msg string) {
	c.mu.Lock()
	c.state = state
	c.message = msg
	c.mu.Unlock()
}

// navigate calls the Navigator at most once.
func (c *BootstrapController) navigate(target string) {
	c.mu.Lock()
	if c.navigated {
		c.mu.Unlock()
		return
	}
	c.navigated = true
	c.mu.Unlock()

	c.callout(func() { c.nav.Navigate(target) })
}

// callout runs fn on the loop goroutine unless the controller has been
// unmounted, marking it so a nested Unmount does not wait on the loop.
func (c *BootstrapController) callout(fn func()) {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return
	}
	c.inCallback = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inCallback = false
		c.mu.Unlock()
	}()
	fn()
}

// errorTarget appends the escaped message to ErrorRedirect. Spaces are
// encoded as %20.
func (c *BootstrapController) errorTarget() string {
	c.mu.Lock()
	msg := c.message
	c.mu.Unlock()

	target := c.opts.ErrorRedirect
	if msg == "" {
		return target
	}

	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + "error=" + strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
}

func stopTimer(t clock.Timer) {
	if t != nil {
		t.Stop()
	}
}
