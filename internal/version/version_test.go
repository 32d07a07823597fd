package version

import (
	"strings"
	"testing"
)

func TestVersionIsSet(t *testing.T) {
	if strings.TrimSpace(Version) == "" {
		t.Fatal("Version must not be empty")
	}
	if !strings.HasSuffix(Version, "-dev") {
		t.Fatalf("development builds carry the -dev suffix, got %q", Version)
	}
}
