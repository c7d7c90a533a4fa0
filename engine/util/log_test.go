package util

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLogFiltersByLevelAndCategory(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	oldLevel, oldCats := GLOBAL_LOG_LEVEL, GLOBAL_LOG_CATEGORIES
	defer func() {
		SetLogOutput(os.Stderr)
		GLOBAL_LOG_LEVEL, GLOBAL_LOG_CATEGORIES = oldLevel, oldCats
	}()

	GLOBAL_LOG_LEVEL = LogLevelInfo
	GLOBAL_LOG_CATEGORIES = LogNetwork

	LogNetworkInfo("peer %d joined", 7)
	LogNetworkDebug("hidden debug")
	LogVoxelInfo("hidden category")

	out := buf.String()
	if !strings.Contains(out, "peer 7 joined") {
		t.Fatalf("expected info line, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("filtered lines leaked: %q", out)
	}
}

func TestParseLogCategories(t *testing.T) {
	mask, unknown := ParseLogCategories([]string{"voxel", "network", "bogus"})
	if mask != LogVoxel|LogNetwork {
		t.Fatalf("unexpected mask %b", mask)
	}
	if len(unknown) != 1 || unknown[0] != "bogus" {
		t.Fatalf("unexpected unknown list %v", unknown)
	}
	if lvl, ok := ParseLogLevel("debug"); !ok || lvl != LogLevelDebug {
		t.Fatalf("unexpected level %v %v", lvl, ok)
	}
}
