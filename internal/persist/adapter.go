// Package persist reads and writes the whole task collection as one JSON
// blob under a fixed key of a kv.Store.
//
// Load never fails: absent data yields an empty collection, and data that
// cannot be read or parsed is backed up, logged and replaced by an empty
// collection. Save always rewrites the entire collection.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"todo/internal/kv"
	"todo/internal/logging"
	"todo/internal/task"
)

const (
	// DefaultKey is the slot the collection is stored under.
	DefaultKey = "TodoData"

	// BackupSuffix is appended to the key to hold a blob that failed to parse.
	BackupSuffix = ".corrupt"
)

// Status says which path Load took.
type Status int

const (
	// StatusLoaded means a stored collection was parsed.
	StatusLoaded Status = iota
	// StatusAbsent means nothing was stored yet.
	StatusAbsent
	// StatusMalformed means the stored blob did not parse and was discarded.
	StatusMalformed
	// StatusUnreadable means the storage read itself failed.
	StatusUnreadable
)

func (s Status) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusAbsent:
		return "absent"
	case StatusMalformed:
		return "malformed"
	case StatusUnreadable:
		return "unreadable"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// LoadResult is the outcome of Load. Tasks is never nil.
type LoadResult struct {
	Tasks  []task.Task
	Status Status

	// Err is the parse or read error for StatusMalformed and StatusUnreadable.
	Err error

	// BackupKey is where a malformed blob was copied, if the copy succeeded.
	BackupKey string
}

// Discarded reports whether stored data existed but could not be used.
func (r LoadResult) Discarded() bool {
	return r.Status == StatusMalformed || r.Status == StatusUnreadable
}

// SaveError reports that the collection could not be written. The caller's
// in-memory collection is unaffected.
type SaveError struct {
	Key string
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save %s: %v", e.Key, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// Adapter persists task collections to a kv.Store.
type Adapter struct {
	store  kv.Store
	key    string
	logger *slog.Logger
}

// New creates an Adapter writing under key. An empty key means DefaultKey;
// a nil logger discards log output.
func New(store kv.Store, key string, logger *slog.Logger) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Adapter{store: store, key: key, logger: logger}
}

// Key returns the storage key in use.
func (a *Adapter) Key() string { return a.key }

// Load reads the stored collection.
func (a *Adapter) Load() LoadResult {
	data, err := a.store.Get(a.key)
	if errors.Is(err, kv.ErrNotFound) {
		a.logger.Debug("no stored tasks", slog.String("key", a.key))
		return LoadResult{Tasks: []task.Task{}, Status: StatusAbsent}
	}
	if err != nil {
		a.logger.Debug("stored tasks unreadable, starting empty",
			slog.String("key", a.key), slog.String("error", err.Error()))
		return LoadResult{Tasks: []task.Task{}, Status: StatusUnreadable, Err: err}
	}

	tasks, err := Decode(data)
	if err != nil {
		res := LoadResult{Tasks: []task.Task{}, Status: StatusMalformed, Err: err}
		backup := a.key + BackupSuffix
		if berr := a.store.Set(backup, data); berr != nil {
			a.logger.Debug("backing up malformed tasks failed",
				slog.String("key", backup), slog.String("error", berr.Error()))
		} else {
			res.BackupKey = backup
		}
		a.logger.Debug("stored tasks malformed, starting empty",
			slog.String("key", a.key),
			slog.String("backup", res.BackupKey),
			slog.String("error", err.Error()))
		return res
	}

	a.logger.Debug("loaded tasks", slog.String("key", a.key), slog.Int("count", len(tasks)))
	return LoadResult{Tasks: tasks, Status: StatusLoaded}
}

// Save overwrites the stored collection with tasks.
func (a *Adapter) Save(tasks []task.Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return &SaveError{Key: a.key, Err: err}
	}
	if err := a.store.Set(a.key, data); err != nil {
		a.logger.Debug("saving tasks failed", slog.String("key", a.key), slog.String("error", err.Error()))
		return &SaveError{Key: a.key, Err: err}
	}
	a.logger.Debug("saved tasks", slog.String("key", a.key), slog.Int("count", len(tasks)))
	return nil
}

// Encode serializes a collection. A nil collection encodes as "[]".
func Encode(tasks []task.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	return json.Marshal(tasks)
}

// Decode parses a stored collection. A JSON null decodes to an empty
// collection. Anything that is not an array of task objects, or that
// repeats an id, is an error.
func Decode(data []byte) ([]task.Task, error) {
	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	if tasks == nil {
		return []task.Task{}, nil
	}
	seen := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("decode tasks: duplicate id %q", t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return tasks, nil
}
