package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/memmaker/voxelpeers/config"
	"github.com/memmaker/voxelpeers/engine/util"
	"github.com/memmaker/voxelpeers/game"
)

func TestApplyLogConfig(t *testing.T) {
	level, categories := util.GLOBAL_LOG_LEVEL, util.GLOBAL_LOG_CATEGORIES
	defer func() {
		util.GLOBAL_LOG_LEVEL, util.GLOBAL_LOG_CATEGORIES = level, categories
	}()

	if err := applyLogConfig(config.Log{Level: "loud", Categories: []string{"all"}}, false); err == nil {
		t.Fatal("expected unknown level to fail")
	}
	if err := applyLogConfig(config.Log{Level: "info", Categories: []string{"sound"}}, false); err == nil {
		t.Fatal("expected unknown category to fail")
	}
	if err := applyLogConfig(config.Log{Level: "error", Categories: []string{"network"}}, true); err != nil {
		t.Fatal(err)
	}
	if util.GLOBAL_LOG_LEVEL != util.LogLevelDebug {
		t.Fatalf("-v should raise the level to debug, got %v", util.GLOBAL_LOG_LEVEL)
	}
	if util.GLOBAL_LOG_CATEGORIES != util.LogNetwork {
		t.Fatalf("unexpected categories %v", util.GLOBAL_LOG_CATEGORIES)
	}
}

func TestRunExport(t *testing.T) {
	cfg := config.Defaults()
	cfg.World.GridSize = 1
	out := filepath.Join(t.TempDir(), "world.glb")
	if err := runExport(cfg, out); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Fatal("export wrote an empty file")
	}
}

func TestOpenLoopbackSession(t *testing.T) {
	cfg := config.Defaults().Network
	cfg.Transport = config.TransportLoopback
	cfg.LocalID = 7
	session, err := openSession(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer session.Close()
	if session.LocalID() != 7 {
		t.Fatalf("expected id 7, got %d", session.LocalID())
	}

	cfg.Transport = "carrier-pigeon"
	if _, err := openSession(context.Background(), cfg); err == nil {
		t.Fatal("expected unknown transport to fail")
	}
}

func TestIdleInputStartsGame(t *testing.T) {
	in := idleInput(true)
	if !in.Poll().StartGame {
		t.Fatal("first frame should start the game")
	}
	if in.Poll() != (game.Input{}) {
		t.Fatal("later frames should be idle")
	}
}
