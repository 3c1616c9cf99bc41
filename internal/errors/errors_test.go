package errors

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "not found error",
			err:      NotFound("tracker", "abc"),
			expected: `Error: tracker "abc" not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestTaxonomyMatching(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantValidation bool
		wantNotFound   bool
		wantStore      bool
	}{
		{
			name:           "validation",
			err:            Validation("name", "must not be empty"),
			wantValidation: true,
		},
		{
			name:         "not found",
			err:          NotFound("tracker", "t-1"),
			wantNotFound: true,
		},
		{
			name:      "store",
			err:       Store("toggle completion", sql.ErrConnDone),
			wantStore: true,
		},
		{
			name:         "wrapped not found",
			err:          fmt.Errorf("toggle: %w", NotFound("tracker", "t-1")),
			wantNotFound: true,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidation(tt.err); got != tt.wantValidation {
				t.Errorf("IsValidation() = %v, want %v", got, tt.wantValidation)
			}
			if got := IsNotFound(tt.err); got != tt.wantNotFound {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.wantNotFound)
			}
			if got := IsStore(tt.err); got != tt.wantStore {
				t.Errorf("IsStore() = %v, want %v", got, tt.wantStore)
			}
		})
	}
}

func TestStorePassesThroughTypedErrors(t *testing.T) {
	if Store("op", nil) != nil {
		t.Error("Store(nil) should return nil")
	}

	nf := NotFound("tracker", "x")
	if got := Store("op", nf); got != nf {
		t.Errorf("Store() should not rewrap a NotFoundError, got %v", got)
	}

	wrapped := Store("load", sql.ErrConnDone)
	if !errors.Is(wrapped, sql.ErrConnDone) {
		t.Error("StoreError should unwrap to the driver error")
	}
	var se *StoreError
	if !errors.As(wrapped, &se) || se.Op != "load" {
		t.Errorf("expected *StoreError with op 'load', got %#v", wrapped)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := Validation("emoji", "must be a single character, got %d", 3)
	want := "validation failed: emoji must be a single character, got 3"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

// TestFatal tests the Fatal function using exec helper process
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		if !strings.Contains(stderr.String(), "Error: test error") {
			t.Errorf("Fatal() stderr = %q, want to contain %q", stderr.String(), "Error: test error")
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

// TestFatal_NilError tests that Fatal does nothing when passed a nil error
func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_NilError")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")

	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}
