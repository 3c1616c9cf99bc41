// Package lock implements the PID lock file a long-lived writer (the TUI) holds
// in the config directory. Other processes read it to refuse mutations while a
// live holder exists.
//
// File format: "<pid>|<unix seconds>|<holder>".
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	nowFunc         = time.Now
	pidFunc         = os.Getpid
)

// ErrMalformed is returned for lock files that cannot be parsed.
var ErrMalformed = errors.New("lock file is malformed")

// Info describes the holder recorded in a lock file.
type Info struct {
	PID      int
	Holder   string
	Acquired time.Time
}

// HeldError reports a live lock owned by another process.
type HeldError struct {
	Path string
	Info Info
}

func (e *HeldError) Error() string {
	return fmt.Sprintf("%s is running (pid %d, since %s); close it first",
		e.Info.Holder, e.Info.PID, e.Info.Acquired.Format(time.Kitchen))
}

// IsHeld reports whether err is a *HeldError.
func IsHeld(err error) bool {
	var held *HeldError
	return errors.As(err, &held)
}

// Lock is an acquired lock file.
type Lock struct {
	path string
	info Info
}

// Path returns the lock file path for a config directory.
func Path(configDir string) string {
	return filepath.Join(configDir, constants.LockfileName)
}

// Acquire takes the lock at path for holder. A lock left by a dead process, by
// this process, or older than constants.LockStaleAfter is replaced.
func Acquire(path, holder string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	info := Info{PID: pidFunc(), Holder: holder, Acquired: nowFunc()}
	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			_, werr := f.WriteString(encode(info))
			cerr := f.Close()
			if werr != nil || cerr != nil {
				os.Remove(path)
				return nil, fmt.Errorf("failed to write lock file: %w", errors.Join(werr, cerr))
			}
			logger.Debug("Acquired lock", "path", path, "pid", info.PID)
			return &Lock{path: path, info: info}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create lock file: %w", err)
		}

		current, err := Check(path)
		if err != nil {
			return nil, err
		}
		if current != nil {
			return nil, &HeldError{Path: path, Info: *current}
		}
		// Stale or malformed: Check already removed it.
		time.Sleep(constants.LockRetryBackoff)
	}
	return nil, fmt.Errorf("failed to acquire lock %s", path)
}

// Check returns the live holder of the lock at path, or nil if it is free. Stale
// and malformed lock files are removed on the way.
func Check(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read lock file: %w", err)
	}

	info, err := decode(string(data))
	if err != nil {
		logger.Warn("Removing malformed lock file", "path", path, "error", err)
		return nil, removeStale(path)
	}
	if !alive(info) {
		logger.Info("Removing stale lock file", "path", path, "pid", info.PID)
		return nil, removeStale(path)
	}
	return &info, nil
}

func alive(info Info) bool {
	if info.PID == pidFunc() {
		return false
	}
	if nowFunc().Sub(info.Acquired) > constants.LockStaleAfter {
		return false
	}
	proc, err := findProcessFunc(info.PID)
	return err == nil && proc != nil
}

func removeStale(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove stale lock file: %w", err)
	}
	return nil
}

// Release removes the lock file if it still belongs to this lock.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if info, err := decode(string(data)); err == nil && info.PID != l.info.PID {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	logger.Debug("Released lock", "path", l.path)
	return nil
}

// Info returns the holder recorded for this lock.
func (l *Lock) Info() Info { return l.info }

func encode(info Info) string {
	return fmt.Sprintf("%d|%d|%s", info.PID, info.Acquired.Unix(), info.Holder)
}

func decode(s string) (Info, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "|", 3)
	if len(parts) != 3 {
		return Info{}, ErrMalformed
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return Info{}, fmt.Errorf("%w: bad pid %q", ErrMalformed, parts[0])
	}
	secs, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Info{}, fmt.Errorf("%w: bad timestamp %q", ErrMalformed, parts[1])
	}
	return Info{PID: pid, Acquired: time.Unix(secs, 0), Holder: parts[2]}, nil
}
