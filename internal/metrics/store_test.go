package metrics

import (
	"path/filepath"
	"testing"

	"github.com/mauv0809/wicketkeeper/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary on-disk SQLite database for testing.
func setupTestDB(t *testing.T) (MetricsStore, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(filepath.Join(t.TempDir(), "metrics.db"), "", "", "../../migrations")
	require.NoError(t, err)

	return New(db), teardown
}

func TestIncrementAndGetAll(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	// 1. Initially, there should be no metrics
	metrics, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, metrics)

	// 2. Increment a new key
	store.Increment(KeyBallsBowled)
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{KeyBallsBowled: 1}, metrics)

	// 3. Increment the same key again
	store.Increment(KeyBallsBowled)
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{KeyBallsBowled: 2}, metrics)

	// 4. Increment a different key
	store.Increment(KeyMatchesCompleted)
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		KeyBallsBowled:      2,
		KeyMatchesCompleted: 1,
	}, metrics)
}
