package providers

import (
	"os"
	"sync"
	"tatico/internal/models"
	"tatico/internal/structures"
	"tatico/internal/tracker/interfaces"

	json "github.com/goccy/go-json"
)

// StoreProviderInterface is the persistent key-value contract: reads fall
// back to the caller's default on any failure, writes are best-effort.
// Each key is independent; there is no cross-key transactionality.
type StoreProviderInterface interface {
	Get(key string, out any) bool
	Set(key string, v any)
	Delete(key string)
	Reset()
	Flush() error
	Load() error
}

// FileStore keeps every key in memory and writes the whole snapshot through
// to a single zstd-compressed JSON file. mu guards the map and the dirty
// flag; flushMu serializes snapshot writes, since the view thread's
// write-through and the scheduler's periodic flush share one tmp file path.
type FileStore struct {
	mu         sync.Mutex
	flushMu    sync.Mutex
	entries    map[string]json.RawMessage
	dirty      bool
	filePath   string
	compressor interfaces.CompressorInterface
	logger     Logger
}

func NewStoreProvider(conf *structures.Config, compressor interfaces.CompressorInterface, logger Logger) (StoreProviderInterface, error) {
	fs := &FileStore{
		entries:    make(map[string]json.RawMessage),
		filePath:   conf.Persistence.FilePath,
		compressor: compressor,
		logger:     logger,
	}
	if err := fs.Load(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *FileStore) Get(key string, out any) bool {
	fs.mu.Lock()
	raw, ok := fs.entries[key]
	fs.mu.Unlock()
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		fs.logger.Warnf(TypeStore, "Discarding undecodable value for key %s: %s", key, err)
		return false
	}
	return true
}

func (fs *FileStore) Set(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		fs.logger.Warnf(TypeStore, "Dropping unencodable value for key %s: %s", key, err)
		return
	}

	fs.mu.Lock()
	fs.entries[key] = raw
	fs.dirty = true
	fs.mu.Unlock()

	if err := fs.Flush(); err != nil {
		fs.logger.Warnf(TypeStore, "Write-through failed for key %s: %s", key, err)
	}
}

func (fs *FileStore) Delete(key string) {
	fs.mu.Lock()
	delete(fs.entries, key)
	fs.dirty = true
	fs.mu.Unlock()
}

// Reset clears every persisted key and removes the snapshot file. This is
// the destructive full-reset operation; the confirmation prompt belongs to
// the view layer.
func (fs *FileStore) Reset() {
	fs.mu.Lock()
	fs.entries = make(map[string]json.RawMessage)
	fs.dirty = false
	fs.mu.Unlock()

	if err := os.Remove(fs.filePath); err != nil && !os.IsNotExist(err) {
		fs.logger.Warnf(TypeStore, "Failed to remove snapshot file: %s", err)
	}
	fs.logger.Infof(TypeStore, "Store reset, all keys cleared")
}

func (fs *FileStore) Flush() error {
	fs.flushMu.Lock()
	defer fs.flushMu.Unlock()

	fs.mu.Lock()
	if !fs.dirty {
		fs.mu.Unlock()
		return nil
	}
	snapshot := models.NewSnapshot()
	for k, v := range fs.entries {
		snapshot.Entries[k] = v
	}
	// Cleared together with the snapshot copy so a Set landing mid-write
	// re-marks it and the next flush picks that change up. A failed write
	// restores the flag below.
	fs.dirty = false
	fs.mu.Unlock()

	if err := fs.writeSnapshot(snapshot); err != nil {
		fs.mu.Lock()
		fs.dirty = true
		fs.mu.Unlock()
		return err
	}
	return nil
}

func (fs *FileStore) writeSnapshot(snapshot *models.Snapshot) error {
	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	data, err := fs.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fs.filePath + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fs.filePath)
}

func (fs *FileStore) Load() error {
	data, err := os.ReadFile(fs.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressed, err := fs.compressor.Decompress(data)
	if err != nil {
		// V1 snapshots were written uncompressed.
		decompressed = data
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(decompressed, &snapshot); err == nil && snapshot.Entries != nil {
		fs.mu.Lock()
		fs.entries = snapshot.Entries
		fs.dirty = false
		fs.mu.Unlock()
		return nil
	}

	// Try the V1 format: a bare key→value map.
	fs.logger.Warnf(TypeStore, "Inconsistent snapshot found, try to migrate from old data format")
	var legacy map[string]json.RawMessage
	if err := json.Unmarshal(decompressed, &legacy); err == nil && legacy != nil {
		fs.logger.Warnf(TypeStore, "Migration from v1 format successful")
		fs.mu.Lock()
		fs.entries = legacy
		fs.dirty = true
		fs.mu.Unlock()
		return nil
	}

	// Corrupt data degrades to defaults rather than halting startup.
	fs.logger.Warnf(TypeStore, "Snapshot unreadable, starting from defaults")
	return nil
}
