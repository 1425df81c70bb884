package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/corteo/pkg/domain"
)

func testEvent(title, city, date string) *domain.Event {
	return &domain.Event{
		Title:       title,
		Description: "descrizione",
		Category:    domain.CategoryPeace,
		EventType:   domain.EventProtest,
		City:        city,
		Address:     city,
		Latitude:    41.9028,
		Longitude:   12.4964,
		Date:        date,
		Time:        domain.NoTime,
		SourceName:  "collettivo",
		SourceURL:   "https://example.com",
		EventURL:    "https://example.com/p/1",
		CountryCode: domain.CountryCode,
	}
}

func TestEventRepository_Insert(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	ev := testEvent("Corteo per la pace", "Roma", "2025-06-28")
	ev.Featured = true
	ev.Attendees = 120
	before := time.Now().UTC().Add(-time.Second)
	require.NoError(t, repos.Event.Insert(ctx, ev))
	assert.NotZero(t, ev.ID)
	assert.True(t, ev.CreatedAt.After(before))

	events, err := repos.Event.List(ctx, domain.EventFilter{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	got := events[0]
	assert.Equal(t, ev.ID, got.ID)
	assert.Equal(t, "Corteo per la pace", got.Title)
	assert.Equal(t, domain.CategoryPeace, got.Category)
	assert.Equal(t, domain.EventProtest, got.EventType)
	assert.Equal(t, "2025-06-28", got.Date)
	assert.Equal(t, domain.NoTime, got.Time)
	assert.InDelta(t, 41.9028, got.Latitude, 0.000001)
	assert.Equal(t, "https://example.com/p/1", got.EventURL)
	assert.Equal(t, "IT", got.CountryCode)
	assert.Equal(t, 120, got.Attendees)
	assert.True(t, got.Featured)
}

func TestEventRepository_UnknownDateStoredAsNull(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	ev := testEvent("Assemblea aperta", "Milano", "")
	require.NoError(t, repos.Event.Insert(ctx, ev))

	var nulls int
	require.NoError(t, repos.DB.GetContext(ctx, &nulls, "SELECT COUNT(*) FROM events WHERE date IS NULL"))
	assert.Equal(t, 1, nulls)

	events, err := repos.Event.List(ctx, domain.EventFilter{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Empty(t, events[0].Date)
	assert.False(t, events[0].HasDate())
}

func TestEventRepository_FindSimilar(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repos.Event.Insert(ctx, testEvent("Sciopero generale!", "Torino", "2025-06-20")))
	require.NoError(t, repos.Event.Insert(ctx, testEvent("Sciopero generale", "Milano", "2025-06-20")))
	require.NoError(t, repos.Event.Insert(ctx, testEvent("Presidio", "Torino", "")))

	tests := []struct {
		name  string
		title string
		city  string
		date  string
		want  int
	}{
		{name: "folded title and city", title: "SCIOPERO   generale", city: "Torino", want: 1},
		{name: "city case ignored", title: "sciopero generale", city: "torino", want: 1},
		{name: "matching date", title: "Sciopero generale", city: "Torino", date: "2025-06-20", want: 1},
		{name: "other date", title: "Sciopero generale", city: "Torino", date: "2025-07-01", want: 0},
		{name: "other city", title: "Sciopero generale", city: "Roma", want: 0},
		{name: "null date not matched by date", title: "Presidio", city: "Torino", date: "2025-06-20", want: 0},
		{name: "null date matched without date", title: "Presidio", city: "Torino", want: 1},
		{name: "different title", title: "Sciopero", city: "Torino", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := repos.Event.FindSimilar(ctx, tt.title, tt.city, tt.date)
			require.NoError(t, err)
			assert.Len(t, events, tt.want)
		})
	}
}

func TestEventRepository_List(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	first := testEvent("Corteo uno", "Roma", "")
	require.NoError(t, repos.Event.Insert(ctx, first))
	second := testEvent("Corteo due", "Milano", "")
	second.Category = domain.CategoryLGBTQ
	require.NoError(t, repos.Event.Insert(ctx, second))
	third := testEvent("Corteo tre", "Roma", "")
	require.NoError(t, repos.Event.Insert(ctx, third))

	t.Run("all newest first", func(t *testing.T) {
		events, err := repos.Event.List(ctx, domain.EventFilter{})
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, []int64{third.ID, second.ID, first.ID}, []int64{events[0].ID, events[1].ID, events[2].ID})
	})

	t.Run("by city", func(t *testing.T) {
		events, err := repos.Event.List(ctx, domain.EventFilter{City: "roma"})
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("by category", func(t *testing.T) {
		events, err := repos.Event.List(ctx, domain.EventFilter{Category: domain.CategoryLGBTQ})
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "Corteo due", events[0].Title)
	})

	t.Run("limit", func(t *testing.T) {
		events, err := repos.Event.List(ctx, domain.EventFilter{Limit: 1})
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, third.ID, events[0].ID)
	})

	count, err := repos.Event.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestEventRepository_InsertCanceled(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := repos.Event.Insert(ctx, testEvent("Corteo", "Roma", ""))
	require.Error(t, err)
}

func TestIsLockError(t *testing.T) {
	assert.False(t, isLockError(nil))
	assert.False(t, isLockError(assert.AnError))
	assert.True(t, isLockError(&criticalError{err: errString("database is locked (5) (SQLITE_BUSY)")}))
	assert.True(t, isLockError(errString("database table is locked")))
}

type errString string

func (e errString) Error() string { return string(e) }
