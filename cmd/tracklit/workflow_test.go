package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestEndToEndWorkflow drives a built binary through a full session. Build it
// first and point TRACKLIT_BIN at it:
//
//	go build -o bin/tracklit ./cmd/tracklit && TRACKLIT_BIN=$PWD/bin/tracklit go test ./cmd/tracklit
func TestEndToEndWorkflow(t *testing.T) {
	cliPath := os.Getenv("TRACKLIT_BIN")
	if cliPath == "" {
		t.Skip("TRACKLIT_BIN not set")
	}
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Fatalf("CLI binary not found at %s. Please build it first.", cliPath)
	}

	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "tracklit", "tracklit.db")

	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "XDG_CONFIG_HOME=") || strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "TRACKLIT_") {
			continue
		}
		env = append(env, e)
	}
	env = append(env,
		fmt.Sprintf("XDG_CONFIG_HOME=%s", tempDir),
		fmt.Sprintf("HOME=%s", tempDir),
		fmt.Sprintf("TRACKLIT_DB=%s", dbPath),
	)

	run := func(args ...string) string {
		t.Helper()
		return runCmd(t, cliPath, env, args...)
	}

	run("init")
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("database not created: %v", err)
	}

	run("tracker", "add", "Run", "--category", "Health", "--emoji", "🏃")
	run("tracker", "add", "Read", "--schedule", "weekdays", "--pin")
	run("category", "add", "Someday")

	out := run("tracker", "list")
	for _, want := range []string{"Run", "Read", "Health"} {
		if !strings.Contains(out, want) {
			t.Errorf("tracker list missing %q:\n%s", want, out)
		}
	}

	run("mark", "Run")
	run("mark", "Run", "--date", "yesterday")

	out = run("today", "--filter", "completed")
	if !strings.Contains(out, "Run") || strings.Contains(out, "Read") {
		t.Errorf("completed filter shows the wrong trackers:\n%s", out)
	}

	out = run("stats")
	if !strings.Contains(out, "Completed trackers") || !strings.Contains(out, "2 days") {
		t.Errorf("unexpected stats:\n%s", out)
	}

	exportPath := filepath.Join(tempDir, "export.json")
	run("export", "--output", exportPath)

	run("tracker", "delete", "Run", "--yes")
	out = run("tracker", "list")
	if strings.Contains(out, "Run") {
		t.Errorf("Run still listed after delete:\n%s", out)
	}

	run("import", exportPath, "--yes")
	out = run("tracker", "show", "Run")
	if !strings.Contains(out, "2 days") {
		t.Errorf("history not restored by import:\n%s", out)
	}

	run("backup", "create")
	out = run("backup", "list")
	if !strings.Contains(out, "Available backups") {
		t.Errorf("no backups listed:\n%s", out)
	}

	out = run("doctor")
	if !strings.Contains(out, "All checks passed.") {
		t.Errorf("doctor reported problems:\n%s", out)
	}
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}
