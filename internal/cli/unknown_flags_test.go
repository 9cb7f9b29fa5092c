package cli

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestUnknownFlagProducesUsageError(t *testing.T) {
	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"generate", "--nope"})

	err := root.Execute()
	if err == nil {
		t.Fatalf("expected error for unknown flag")
	}
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(err.Error(), "unknown flag") {
		t.Fatalf("error should mention the unknown flag, got: %v", err)
	}
	if !strings.Contains(err.Error(), "Usage:") {
		t.Fatalf("error should embed usage text, got: %v", err)
	}
}
