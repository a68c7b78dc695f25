package quiz

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/reftable/reftabletest"
)

func TestManager(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewManager(time.Minute, nil)
	m.now = func() time.Time { return clock }

	deck := reftabletest.Tables(t)
	a := m.Create(deck, Options{})
	b := m.Create(deck, Options{})
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, m.Len())

	got, err := m.Get(a.ID)
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = m.Get(uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, err, model.ErrNotFound)

	clock = clock.Add(45 * time.Second)
	_, err = m.Get(b.ID)
	require.NoError(t, err)

	clock = clock.Add(30 * time.Second)
	assert.Equal(t, 1, m.Evict())
	_, err = m.Get(a.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Get(b.ID)
	assert.NoError(t, err)

	m.Delete(b.ID)
	assert.Zero(t, m.Len())
}

func TestStartEvictor(t *testing.T) {
	m := NewManager(0, nil)
	assert.Equal(t, DefaultIdleTimeout, m.idle)

	_, err := m.StartEvictor("not a schedule")
	assert.Error(t, err)

	stop, err := m.StartEvictor("@every 1m")
	require.NoError(t, err)
	stop()
}
