package store

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quakemap/quake-backend-go/internal/models"
)

type fakeLoader struct {
	events []models.Event
	err    error
}

func (f *fakeLoader) LoadEvents() ([]models.Event, error) {
	return f.events, f.err
}

func TestStoreNotReadyBeforeLoad(t *testing.T) {
	s := New()
	assert.False(t, s.Ready())
	assert.Zero(t, s.Len())
}

func TestStoreLoad(t *testing.T) {
	events := []models.Event{
		{ID: "a", OccurredAt: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "b", OccurredAt: time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "c", OccurredAt: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)},
	}
	s := New()
	require.NoError(t, s.Load(&fakeLoader{events: events}))

	assert.True(t, s.Ready())
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, events, s.Events())

	extent := s.Extent()
	assert.Equal(t, time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC), extent.Min)
	assert.Equal(t, time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), extent.Max)
}

func TestStoreLoadFailureStaysNotReady(t *testing.T) {
	s := New()
	err := s.Load(&fakeLoader{err: errors.New("disk gone")})

	require.Error(t, err)
	assert.False(t, s.Ready())
}

func TestStoreLoadEmptyDatasetIsReady(t *testing.T) {
	s := New()
	require.NoError(t, s.Load(&fakeLoader{}))

	assert.True(t, s.Ready())
	assert.Zero(t, s.Len())
}
