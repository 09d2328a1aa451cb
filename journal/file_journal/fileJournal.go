package file_journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Malcan-Technologies/creditxpress-aws-sub009/journal"

	"github.com/google/uuid"
	"github.com/juju/fslock"
)

var _ journal.Journal = (*FileJournal)(nil)

type FileJournal struct {
	lockFile *fslock.Lock

	dataFile *os.File
}

const (
	defaultLockFile = "/tmp/cosign_journal_lock"
)

// NewFileJournal inits an append-only journal file.
// It takes two arguments: filename - path to a data file, lockFilename (optional) - path to a lock file
func NewFileJournal(filename string, lockFilename ...string) (*FileJournal, error) {
	var (
		fj  FileJournal
		err error
	)
	if len(lockFilename) > 0 {
		fj.lockFile = fslock.New(lockFilename[0])
	} else {
		fj.lockFile = fslock.New(defaultLockFile)
	}

	if fj.dataFile, err = os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644); err != nil {
		return nil, fmt.Errorf("failed to open a data file: %v", err)
	}
	return &fj, nil
}

// Append writes one event as a JSON line. Missing ID and CreatedAt are
// stamped here so callers only fill what they know.
func (fj *FileJournal) Append(e journal.Event) error {
	if err := fj.lockFile.Lock(); err != nil {
		return fmt.Errorf("failed to lock a file: %v", err)
	}
	defer fj.lockFile.Unlock()

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal an event %v: %v", e, err)
	}

	if _, err = fj.dataFile.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write an event to a data file: %v", err)
	}
	return nil
}

// Tail returns the last n events in append order. Used by the operator CLI.
func (fj *FileJournal) Tail(n int) ([]journal.Event, error) {
	if n <= 0 {
		return nil, nil
	}

	if _, err := fj.dataFile.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("failed to seek to the start of a data file: %v", err)
	}

	var events []journal.Event
	scanner := bufio.NewScanner(fj.dataFile)
	for scanner.Scan() {
		var e journal.Event
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("failed to unmarshal an event %s: %v", scanner.Text(), err)
		}
		events = append(events, e)
		if len(events) > n {
			events = events[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read a data file: %v", err)
	}

	return events, nil
}

func (fj *FileJournal) Close() error {
	return fj.dataFile.Close()
}
