package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ting-32/noodle/internal/models"
)

func TestTTL_NoExpiry_PutGetDelete(t *testing.T) {
	c := New[int]()
	defer c.Close()

	c.Put("a", 1)
	c.Put("b", 2)

	v, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)
	require.Equal(t, 2, c.Len())

	c.Delete("a")
	_, ok = c.Get("a")
	require.False(t, ok)
	require.Equal(t, 1, c.Len())
}

func TestTTL_Get_Expired_LazyDelete(t *testing.T) {
	clock := time.Unix(0, 0)
	c := New[string](WithTTL(10*time.Millisecond), WithNoJanitor(), WithClock(func() time.Time { return clock }))
	defer c.Close()

	c.Put("dead", "x")
	v, ok := c.Get("dead")
	require.True(t, ok)
	require.Equal(t, "x", v)

	clock = clock.Add(20 * time.Millisecond)
	v, ok = c.Get("dead")
	require.False(t, ok)
	require.Empty(t, v)

	c.mu.RLock()
	_, present := c.data["dead"]
	c.mu.RUnlock()
	require.False(t, present)
}

func TestTTL_Purge(t *testing.T) {
	clock := time.Unix(0, 0)
	c := New[int](WithTTL(time.Second), WithNoJanitor(), WithClock(func() time.Time { return clock }))
	defer c.Close()

	c.Put("old", 1)
	clock = clock.Add(600 * time.Millisecond)
	c.Put("new", 2)
	clock = clock.Add(600 * time.Millisecond)

	require.Equal(t, 1, c.Len())
	c.Purge()
	c.mu.RLock()
	require.Len(t, c.data, 1)
	c.mu.RUnlock()
}

func TestTTL_JanitorPurges(t *testing.T) {
	ttl := 30 * time.Millisecond
	c := New[int](WithTTL(ttl))
	defer c.Close()

	c.Put("y", 1)
	require.Eventually(t, func() bool {
		c.mu.RLock()
		defer c.mu.RUnlock()
		return len(c.data) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestTTL_CloseTwice(t *testing.T) {
	c := New[int](WithTTL(time.Minute))
	c.Close()
	require.NotPanics(t, c.Close)
}

func TestSnapshotCache_RoundTripAndInvalidate(t *testing.T) {
	sc := NewSnapshotCache(New[models.Snapshot]())

	_, ok := sc.CachedSnapshot()
	require.False(t, ok)

	in := models.Snapshot{
		Stores: []models.Store{{StoreName: "North", HolidayDates: []string{"2024-05-01"}}},
		Orders: []models.Order{{ID: "r1", ItemName: "noodle", Quantity: 2}},
	}
	require.True(t, sc.PutSnapshotAt(sc.Generation(), in))

	got, ok := sc.CachedSnapshot()
	require.True(t, ok)
	require.Equal(t, "North", got.Stores[0].StoreName)
	require.Equal(t, []models.Product{}, got.Products)

	got.Stores[0].HolidayDates[0] = "changed"
	again, _ := sc.CachedSnapshot()
	require.Equal(t, "2024-05-01", again.Stores[0].HolidayDates[0])

	sc.Invalidate()
	_, ok = sc.CachedSnapshot()
	require.False(t, ok)
}

func TestSnapshotCache_PutSnapshotAt_StaleGeneration(t *testing.T) {
	sc := NewSnapshotCache(New[models.Snapshot]())

	gen := sc.Generation()
	sc.Invalidate()
	require.False(t, sc.PutSnapshotAt(gen, models.Snapshot{}))
	_, ok := sc.CachedSnapshot()
	require.False(t, ok)

	require.True(t, sc.PutSnapshotAt(sc.Generation(), models.Snapshot{}))
	_, ok = sc.CachedSnapshot()
	require.True(t, ok)
}
