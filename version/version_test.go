package version

import (
	"strings"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	info := Get()
	if info.Version == "" {
		t.Fatal("expected a version string")
	}
	if !strings.HasPrefix(info.GoVersion, "go") {
		t.Errorf("expected a go version, got %q", info.GoVersion)
	}
}

func TestShortIncludesCommit(t *testing.T) {
	orig := GitCommit
	defer func() { GitCommit = orig }()

	GitCommit = "abc1234"
	if got := Short(); got != Version+"-abc1234" {
		t.Fatalf("unexpected short version: %q", got)
	}
}
