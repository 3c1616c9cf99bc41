package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	ps "github.com/mitchellh/go-ps"
)

type mockProcess struct {
	pid int
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return "tracklit" }

var lockNow = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

// stubEnv makes this process pid 100 and treats the pids in live as running.
func stubEnv(t *testing.T, live ...int) {
	t.Helper()
	oldFind, oldNow, oldPid := findProcessFunc, nowFunc, pidFunc
	t.Cleanup(func() { findProcessFunc, nowFunc, pidFunc = oldFind, oldNow, oldPid })

	running := make(map[int]bool, len(live))
	for _, pid := range live {
		running[pid] = true
	}
	findProcessFunc = func(pid int) (ps.Process, error) {
		if running[pid] {
			return &mockProcess{pid: pid}, nil
		}
		return nil, nil
	}
	nowFunc = func() time.Time { return lockNow }
	pidFunc = func() int { return 100 }
}

func writeLock(t *testing.T, path string, pid int, at time.Time) {
	t.Helper()
	content := fmt.Sprintf("%d|%d|tracklit tui", pid, at.Unix())
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestAcquireAndRelease(t *testing.T) {
	stubEnv(t)
	path := Path(t.TempDir())

	l, err := Acquire(path, "tracklit tui")
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if l.Info().PID != 100 {
		t.Errorf("lock pid = %d, want 100", l.Info().PID)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("lock file not written: %v", err)
	}
	want := fmt.Sprintf("100|%d|tracklit tui", lockNow.Unix())
	if string(data) != want {
		t.Errorf("lock content = %q, want %q", data, want)
	}

	if err := l.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("lock file should be gone after Release")
	}
	if err := l.Release(); err != nil {
		t.Errorf("second Release should be a no-op: %v", err)
	}
}

func TestAcquireHeldByLiveProcess(t *testing.T) {
	stubEnv(t, 4242)
	path := Path(t.TempDir())
	writeLock(t, path, 4242, lockNow.Add(-time.Minute))

	_, err := Acquire(path, "tracklit tui")
	if !IsHeld(err) {
		t.Fatalf("Acquire error = %v, want HeldError", err)
	}

	info, err := Check(path)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if info == nil || info.PID != 4242 || info.Holder != "tracklit tui" {
		t.Errorf("Check = %+v, want holder pid 4242", info)
	}
}

func TestStaleLocksAreReplaced(t *testing.T) {
	tests := []struct {
		name    string
		content func(path string)
	}{
		{"dead process", func(path string) { writeLock(t, path, 4242, lockNow.Add(-time.Minute)) }},
		{"too old", func(path string) { writeLock(t, path, 5555, lockNow.Add(-13*time.Hour)) }},
		{"own pid", func(path string) { writeLock(t, path, 100, lockNow.Add(-time.Minute)) }},
		{"malformed", func(path string) { os.WriteFile(path, []byte("garbage"), 0600) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubEnv(t, 5555)
			path := filepath.Join(t.TempDir(), "tracklit.lock")
			tt.content(path)

			l, err := Acquire(path, "tracklit tui")
			if err != nil {
				t.Fatalf("Acquire failed: %v", err)
			}
			defer l.Release()
			if l.Info().PID != 100 {
				t.Errorf("lock pid = %d, want 100", l.Info().PID)
			}
		})
	}
}

func TestCheckFree(t *testing.T) {
	stubEnv(t)
	info, err := Check(Path(t.TempDir()))
	if err != nil || info != nil {
		t.Errorf("Check on missing file = %+v, %v; want nil, nil", info, err)
	}
}

func TestReleaseLeavesForeignLock(t *testing.T) {
	stubEnv(t)
	path := Path(t.TempDir())

	l, err := Acquire(path, "tracklit tui")
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	writeLock(t, path, 777, lockNow)

	if err := l.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error("Release removed a lock owned by another process")
	}
}
