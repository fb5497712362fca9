package providers

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"tatico/internal/models"
	"tatico/internal/structures"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nopLogger satisfies Logger for provider tests without touching disk.
type nopLogger struct{}

func (nopLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (nopLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (nopLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (nopLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (nopLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (nopLogger) Close()                                        {}

// identityCompressor passes bytes through unchanged.
type identityCompressor struct{}

func (identityCompressor) Compress(val []byte) ([]byte, error)   { return val, nil }
func (identityCompressor) Decompress(val []byte) ([]byte, error) { return val, nil }
func (identityCompressor) Close()                                {}

func storeConfig(t *testing.T) *structures.Config {
	t.Helper()
	return &structures.Config{
		Persistence: structures.Persistence{
			FilePath: filepath.Join(t.TempDir(), "tatico.dat"),
		},
	}
}

func newTestStore(t *testing.T, conf *structures.Config) StoreProviderInterface {
	t.Helper()
	store, err := NewStoreProvider(conf, identityCompressor{}, nopLogger{})
	require.NoError(t, err)
	return store
}

func TestFileStore_GetMissingKey(t *testing.T) {
	store := newTestStore(t, storeConfig(t))

	goal := 15
	assert.False(t, store.Get(models.KeyWeeklyGoal, &goal))
	assert.Equal(t, 15, goal)
}

func TestFileStore_SetGetRoundtrip(t *testing.T) {
	store := newTestStore(t, storeConfig(t))

	store.Set(models.KeyWeeklyGoal, 20)

	var goal int
	require.True(t, store.Get(models.KeyWeeklyGoal, &goal))
	assert.Equal(t, 20, goal)
}

func TestFileStore_RoundtripAcrossReload(t *testing.T) {
	conf := storeConfig(t)
	store := newTestStore(t, conf)
	store.Set(models.KeyExamDate, "2026-06-15")
	store.Set(models.KeyStreak, 7)

	reloaded := newTestStore(t, conf)

	var examDate string
	var streakCount int
	require.True(t, reloaded.Get(models.KeyExamDate, &examDate))
	require.True(t, reloaded.Get(models.KeyStreak, &streakCount))
	assert.Equal(t, "2026-06-15", examDate)
	assert.Equal(t, 7, streakCount)
}

func TestFileStore_GetUndecodableValue(t *testing.T) {
	store := newTestStore(t, storeConfig(t))
	store.Set(models.KeyWeeklyGoal, "not a number")

	goal := 15
	assert.False(t, store.Get(models.KeyWeeklyGoal, &goal))
	assert.Equal(t, 15, goal)
}

func TestFileStore_CorruptFileStartsEmpty(t *testing.T) {
	conf := storeConfig(t)
	require.NoError(t, os.WriteFile(conf.Persistence.FilePath, []byte("not json at all"), 0644))

	store := newTestStore(t, conf)

	var goal int
	assert.False(t, store.Get(models.KeyWeeklyGoal, &goal))
}

func TestFileStore_LegacyBareMapMigration(t *testing.T) {
	conf := storeConfig(t)
	legacy := map[string]json.RawMessage{
		models.KeyStreak: json.RawMessage("3"),
	}
	raw, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(conf.Persistence.FilePath, raw, 0644))

	store := newTestStore(t, conf)

	var streakCount int
	require.True(t, store.Get(models.KeyStreak, &streakCount))
	assert.Equal(t, 3, streakCount)
}

func TestFileStore_ResetClearsKeysAndFile(t *testing.T) {
	conf := storeConfig(t)
	store := newTestStore(t, conf)
	store.Set(models.KeyStreak, 5)

	store.Reset()

	var streakCount int
	assert.False(t, store.Get(models.KeyStreak, &streakCount))
	_, err := os.Stat(conf.Persistence.FilePath)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_FlushNoopWhenClean(t *testing.T) {
	conf := storeConfig(t)
	store := newTestStore(t, conf)

	require.NoError(t, store.Flush())
	_, err := os.Stat(conf.Persistence.FilePath)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_WriteThroughCreatesFile(t *testing.T) {
	conf := storeConfig(t)
	store := newTestStore(t, conf)

	store.Set(models.KeyStreak, 1)

	_, err := os.Stat(conf.Persistence.FilePath)
	assert.NoError(t, err)
}

// warnCountLogger counts warn-level entries so tests can assert that no
// write-through failed.
type warnCountLogger struct {
	mu    sync.Mutex
	warns int
}

func (l *warnCountLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (l *warnCountLogger) Warnf(_ TypeEnum, _ string, _ ...interface{}) {
	l.mu.Lock()
	l.warns++
	l.mu.Unlock()
}
func (l *warnCountLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (l *warnCountLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (l *warnCountLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (l *warnCountLogger) Close()                                        {}

func TestFileStore_ConcurrentWriteThrough(t *testing.T) {
	conf := storeConfig(t)
	logger := &warnCountLogger{}
	store, err := NewStoreProvider(conf, identityCompressor{}, logger)
	require.NoError(t, err)

	const writers = 4
	const perWriter = 50

	var wg sync.WaitGroup
	for g := 0; g < writers; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				store.Set(fmt.Sprintf("tactical_bulk_%d_%d", g, i), i)
			}
		}(g)
	}
	wg.Wait()

	logger.mu.Lock()
	warns := logger.warns
	logger.mu.Unlock()
	assert.Zero(t, warns)
	require.NoError(t, store.Flush())

	reloaded := newTestStore(t, conf)
	for g := 0; g < writers; g++ {
		for i := 0; i < perWriter; i++ {
			var v int
			require.True(t, reloaded.Get(fmt.Sprintf("tactical_bulk_%d_%d", g, i), &v))
			assert.Equal(t, i, v)
		}
	}
}

func TestFileStore_DeleteRemovesKey(t *testing.T) {
	store := newTestStore(t, storeConfig(t))
	store.Set(models.KeyStreak, 5)
	store.Delete(models.KeyStreak)

	var streakCount int
	assert.False(t, store.Get(models.KeyStreak, &streakCount))
}
