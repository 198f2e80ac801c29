// Package idx generates the lexicographically sortable ULID identifiers used
// for users, clients, token rows and request ids.
package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type ID string

// Zero is the empty ID, only useful as a placeholder.
const Zero ID = ""

var ErrInvalid = errors.New("idx: invalid ulid")

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns an ID for the current UTC time. IDs minted within the same
// millisecond still sort in creation order.
func New() ID {
	return NewAt(time.Now().UTC())
}

// NewAt mints an ID at t.
func NewAt(t time.Time) ID {
	mu.Lock()
	defer mu.Unlock()

	return ID(ulid.MustNew(ulid.Timestamp(t), entropy).String())
}

// Parse validates s as a strict ULID.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalid
	}
	if _, err := ulid.ParseStrict(s); err != nil {
		return Zero, ErrInvalid
	}
	return ID(s), nil
}

func (id ID) IsZero() bool   { return id == Zero }
func (id ID) String() string { return string(id) }

// Time is the embedded millisecond timestamp, or the zero time for a
// malformed ID.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(id.String())
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time())
}

// Compare orders a and b: -1 if a<b, 0 if equal, +1 if a>b.
func Compare(a, b ID) int {
	return strings.Compare(a.String(), b.String())
}
