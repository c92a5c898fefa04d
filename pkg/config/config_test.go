package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExportFirstExistingLoadsFirstCandidate(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "careline.env")
	second := filepath.Join(dir, ".env")
	if err := os.WriteFile(first, []byte("CARELINE_TEST_PRIMARY=from_primary\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	if err := os.WriteFile(second, []byte("CARELINE_TEST_PRIMARY=from_secondary\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("CARELINE_TEST_PRIMARY", "")

	if err := exportFirstExisting(first, second); err != nil {
		t.Fatalf("exportFirstExisting: %v", err)
	}
	if got := os.Getenv("CARELINE_TEST_PRIMARY"); got != "from_primary" {
		t.Fatalf("CARELINE_TEST_PRIMARY = %q", got)
	}
}

func TestExportFirstExistingSkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	if err := exportFirstExisting(filepath.Join(dir, "careline.env"), filepath.Join(dir, ".env")); err != nil {
		t.Fatalf("exportFirstExisting: %v", err)
	}
}
