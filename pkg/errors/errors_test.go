package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "plugin not found")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "plugin not found" {
		t.Errorf("expected message 'plugin not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, "operation failed", cause)

	if err.Code != ErrCodeInternal {
		t.Errorf("expected code %s, got %s", ErrCodeInternal, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("boom")
	ctx := map[string]any{
		"plugin": "analyzer",
		"path":   "/work/analyzer",
	}

	err := WrapWithContext(ErrCodePluginLoad, "cannot load plugin", cause, ctx)

	if err.Code != ErrCodePluginLoad {
		t.Errorf("expected code %s, got %s", ErrCodePluginLoad, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["plugin"] != "analyzer" {
		t.Errorf("expected plugin to be analyzer")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeNotFound, "not found"),
			expected: "[NOT_FOUND] not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrCodeInternal, "wrapped", cause)

	unwrapped := err.Unwrap()
	if !errors.Is(unwrapped, cause) {
		t.Errorf("expected unwrapped error to be original cause")
	}

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should work with Unwrap")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", errors.New("flag provided but not defined"), ExitGeneral},
		{"invalid request", New(ErrCodeInvalidRequest, "no entry"), ExitPipeline},
		{"invalid config", New(ErrCodeInvalidConfig, "not an object"), ExitPipeline},
		{"not found", New(ErrCodeNotFound, "cannot resolve plugin"), ExitPipeline},
		{"plugin load", Wrap(ErrCodePluginLoad, "cannot load", errors.New("x")), ExitPipeline},
		{"wrapped by fmt", fmt.Errorf("convert: %w", New(ErrCodeInvalidRequest, "no output")), ExitPipeline},
		{"internal", New(ErrCodeInternal, "bug"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Errorf("CodeOf(plain) = %q, want empty", got)
	}
	err := fmt.Errorf("outer: %w", New(ErrCodeTimeout, "slow"))
	if got := CodeOf(err); got != ErrCodeTimeout {
		t.Errorf("CodeOf() = %q, want %q", got, ErrCodeTimeout)
	}
}
