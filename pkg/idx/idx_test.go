package idx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/sso/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.False(t, id.IsZero())

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	_, err = idx.Parse("  ")
	require.ErrorIs(t, err, idx.ErrInvalid)
	_, err = idx.Parse("not-a-ulid")
	require.ErrorIs(t, err, idx.ErrInvalid)
}

func TestOrdering(t *testing.T) {
	a := idx.NewAt(time.Unix(1, 0).UTC())
	b := idx.NewAt(time.Unix(2, 0).UTC())

	require.Equal(t, -1, idx.Compare(a, b))
	require.Equal(t, 1, idx.Compare(b, a))
	require.Equal(t, 0, idx.Compare(a, a))

	// Same millisecond still sorts by creation order.
	now := time.Now().UTC()
	first, second := idx.NewAt(now), idx.NewAt(now)
	require.Equal(t, -1, idx.Compare(first, second))
}

func TestTimeExtraction(t *testing.T) {
	tm := time.Unix(1700000000, 0).UTC()
	require.WithinDuration(t, tm, idx.NewAt(tm).Time(), time.Millisecond)
	require.True(t, idx.ID("garbage").Time().IsZero())
}
