package mapping

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/gofrs/flock"

	"gallerysync/internal/fileutil"
	"gallerysync/internal/logging"
	"gallerysync/internal/services"
)

const lockRetryDelay = 100 * time.Millisecond

// Store persists the event mapping as a pretty-printed JSON array in a single
// file. Mutations take a sibling flock so two concurrent invocations cannot
// interleave their load-modify-write cycles.
type Store struct {
	path   string
	lock   *flock.Flock
	logger *slog.Logger
}

// NewStore creates a store for the given mapping file path.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		lock:   flock.New(path + ".lock"),
		logger: logging.WithComponent(logger, "mapping"),
	}
}

// Path returns the mapping file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted collection. A missing file is an empty collection;
// a malformed file is a fatal store corruption error.
func (s *Store) Load() ([]Event, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Event{}, nil
		}
		return nil, services.Wrap(services.ErrStoreCorrupt, "mapping", "load", s.path, err)
	}
	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, services.Wrap(services.ErrStoreCorrupt, "mapping", "load", s.path, err)
	}
	if events == nil {
		events = []Event{}
	}
	return events, nil
}

// Put appends event to the collection, re-sorts it newest first, and writes
// the whole file back atomically. A record for the same folder already being
// present is rejected unless replace is set, in which case the existing record
// is dropped in favour of the new one. Returns the full persisted collection.
func (s *Store) Put(ctx context.Context, event Event, replace bool) ([]Event, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}

	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("acquire store lock: not granted")
	}
	defer func() {
		_ = s.lock.Unlock()
	}()

	events, err := s.Load()
	if err != nil {
		return nil, err
	}

	if idx := indexByFolder(events, event.Folder); idx >= 0 {
		if !replace {
			return nil, services.Wrap(services.ErrValidation, "mapping", "put",
				fmt.Sprintf("folder %q already ingested (id %s); rerun with replace to refresh it", event.Folder, events[idx].ID), nil)
		}
		s.logger.Info("replacing existing event",
			logging.Args(logging.String(logging.FieldFolder, event.Folder), logging.String("previous_id", events[idx].ID))...)
		events = append(events[:idx], events[idx+1:]...)
	}

	events = append(events, event)
	SortByDateDesc(events)

	if err := s.write(events); err != nil {
		return nil, err
	}
	s.logger.Info("mapping updated",
		logging.Args(logging.String(logging.FieldEvent, event.Name), logging.Int(logging.FieldCount, len(events)))...)
	return events, nil
}

func indexByFolder(events []Event, folder string) int {
	for i, ev := range events {
		if ev.Folder == folder {
			return i
		}
	}
	return -1
}

func (s *Store) write(events []Event) error {
	data, err := EncodeIndented(events)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if err := fileutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write mapping: %w", err)
	}
	return nil
}
