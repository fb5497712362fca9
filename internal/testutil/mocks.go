package testutil

import (
	"sync"
	"tatico/internal/models"
	"tatico/internal/providers"
	"time"

	json "github.com/goccy/go-json"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockStore implements providers.StoreProviderInterface in memory.
type MockStore struct {
	mu         sync.Mutex
	Data       map[string]json.RawMessage
	SetCalls   int
	ResetCalls int
	FlushCalls int
}

func NewMockStore() *MockStore {
	return &MockStore{Data: make(map[string]json.RawMessage)}
}

func (m *MockStore) Get(key string, out any) bool {
	m.mu.Lock()
	raw, ok := m.Data[key]
	m.mu.Unlock()
	if !ok {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (m *MockStore) Set(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	m.mu.Lock()
	m.Data[key] = raw
	m.SetCalls++
	m.mu.Unlock()
}

func (m *MockStore) Delete(key string) {
	m.mu.Lock()
	delete(m.Data, key)
	m.mu.Unlock()
}

func (m *MockStore) Reset() {
	m.mu.Lock()
	m.Data = make(map[string]json.RawMessage)
	m.ResetCalls++
	m.mu.Unlock()
}

func (m *MockStore) Flush() error {
	m.mu.Lock()
	m.FlushCalls++
	m.mu.Unlock()
	return nil
}

func (m *MockStore) Load() error { return nil }

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu             sync.Mutex
	VerseFallbacks int
	Rejects        map[string]int
	Persists       int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{Rejects: make(map[string]int)}
}

func (m *MockMetrics) IncVerseFallbacks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.VerseFallbacks++
}

func (m *MockMetrics) IncValidationRejects(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rejects[kind]++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persists++
}

// MockWakeLock implements providers.WakeLockInterface and tracks holds.
type MockWakeLock struct {
	mu       sync.Mutex
	Held     bool
	Acquires int
	Releases int
}

func (m *MockWakeLock) Acquire() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Held = true
	m.Acquires++
}

func (m *MockWakeLock) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Held = false
	m.Releases++
}

// MockVerseProvider implements providers.VerseProviderInterface.
type MockVerseProvider struct {
	Verse models.DailyVerse
	Calls int
}

func (m *MockVerseProvider) Today() models.DailyVerse {
	m.Calls++
	return m.Verse
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}
