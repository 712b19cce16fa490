package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// lockWait bounds how long a preferences update waits for another vizex
// process to finish its own update.
const lockWait = 5 * time.Second

// lockGrace is how long a lock file without a readable owner is assumed
// to belong to a process that has created it but not yet written its pid.
const lockGrace = 2 * time.Second

var errLocked = errors.New("preferences are locked by another process")

// lockFile takes an exclusive lock on target by creating target.lock
// holding our pid. A lock whose owner is gone is removed and retaken.
func lockFile(target string, wait time.Duration) (unlock func() error, err error) {
	lock := target + ".lock"
	if err := os.MkdirAll(filepath.Dir(lock), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	deadline := time.Now().Add(wait)
	for {
		f, err := os.OpenFile(lock, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			_, werr := fmt.Fprintf(f, "%s %d", time.Now().Format(time.RFC3339), os.Getpid())
			f.Close()
			if werr != nil {
				os.Remove(lock)
				return nil, fmt.Errorf("failed to write lock file: %w", werr)
			}
			return func() error { return os.Remove(lock) }, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}

		if stale(lock) {
			// If someone else already removed it the next create simply
			// races for it.
			os.Remove(lock)
			continue
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s", errLocked, lock)
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// stale reports whether lock can be taken over: its owner is gone, or it
// has held no readable pid for longer than lockGrace.
func stale(lock string) bool {
	if owner, ok := lockOwner(lock); ok {
		return !pidAlive(owner)
	}
	info, err := os.Stat(lock)
	if err != nil {
		return errors.Is(err, os.ErrNotExist)
	}
	return time.Since(info.ModTime()) > lockGrace
}

// lockOwner returns the pid recorded in a lock file.
func lockOwner(lock string) (int, bool) {
	content, err := os.ReadFile(lock)
	if err != nil {
		return 0, false
	}
	fields := strings.Fields(string(content))
	if len(fields) < 2 {
		return 0, false
	}
	pid, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return 0, false
	}
	return pid, true
}

func pidAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	if errors.Is(err, syscall.ESRCH) || errors.Is(err, os.ErrProcessDone) {
		return false
	}
	// EPERM: the process exists but belongs to someone else.
	return true
}
