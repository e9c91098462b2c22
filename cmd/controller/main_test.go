package main

import (
	"testing"

	"github.com/genricoloni/mediabridge/internal/controller"
	"go.uber.org/fx"
)

// TestAppGraphValidity verifies that the dependency graph is resolvable.
func TestAppGraphValidity(t *testing.T) {
	err := fx.ValidateApp(
		AppOptions,
		fx.Invoke(func(*controller.Dispatcher) {}),
	)
	if err != nil {
		t.Errorf("Dependency graph is not valid: %v", err)
	}
}

func TestNewLogger(t *testing.T) {
	v, err := newViper()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(v)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	if logger == nil {
		t.Fatal("Logger should not be nil")
	}
	logger.Info("Test logger initialization")
}

// Usage errors never reach the OS, so they are safe to run end to end
func TestExecute_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"No Command", nil},
		{"Unknown Command", []string{"rewind"}},
		{"Invalid Seek", []string{"seek", "abc"}},
		{"Flag Like Token", []string{"--help"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := execute(tt.args); code != 1 {
				t.Errorf("expected exit 1, got %d", code)
			}
		})
	}
}
