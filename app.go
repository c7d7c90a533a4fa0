package main

import (
	"context"

	"github.com/faiface/mainthread"
	"github.com/memmaker/voxelpeers/config"
	"github.com/memmaker/voxelpeers/engine/util"
	"github.com/memmaker/voxelpeers/engine/voxel"
	"github.com/memmaker/voxelpeers/game"
	"github.com/memmaker/voxelpeers/server"
	"github.com/pkg/errors"
)

func applyLogConfig(cfg config.Log, verbose bool) error {
	level, ok := util.ParseLogLevel(cfg.Level)
	if !ok {
		return errors.Errorf("unknown log.level %q", cfg.Level)
	}
	categories, unknown := util.ParseLogCategories(cfg.Categories)
	if len(unknown) > 0 {
		return errors.Errorf("unknown log.categories %v", unknown)
	}
	if verbose {
		level = util.LogLevelDebug
	}
	util.GLOBAL_LOG_LEVEL = level
	util.GLOBAL_LOG_CATEGORIES = categories
	return nil
}

func buildWorld(cfg config.World) *voxel.World {
	terrain := voxel.NewTerrain(cfg.Seed, cfg.NoiseFrequency, cfg.HeightScale)
	return voxel.NewWorld(terrain, cfg.GridSize)
}

func openSession(ctx context.Context, cfg config.Network) (game.Session, error) {
	inboxSize := cfg.MaxDrainPerFrame * 2
	switch cfg.Transport {
	case config.TransportUDP:
		session, err := game.NewUDPSession(cfg.LocalID, cfg.Listen, cfg.Peers, inboxSize)
		if err != nil {
			return nil, err
		}
		return session, nil
	case config.TransportRelay:
		session, err := game.DialRelay(ctx, cfg.RelayURL, cfg.LocalID, inboxSize)
		if err != nil {
			return nil, err
		}
		return session, nil
	case config.TransportLoopback:
		return game.NewLoopbackHub(inboxSize).Join(cfg.LocalID), nil
	}
	return nil, errors.Errorf("unknown transport %q", cfg.Transport)
}

// mainThreadRenderer hands every frame to the OS main thread, where window
// and GPU calls have to happen.
type mainThreadRenderer struct {
	inner game.Renderer
}

func (m mainThreadRenderer) Size() (int, int) {
	var w, h int
	mainthread.Call(func() {
		w, h = m.inner.Size()
	})
	return w, h
}

func (m mainThreadRenderer) RenderFrame(frame game.RenderFrame) {
	mainthread.Call(func() {
		m.inner.RenderFrame(frame)
	})
}

// idleInput starts the game and then stands still. It stands in for a
// device-backed InputSource in headless runs.
func idleInput(startInMenu bool) game.InputSource {
	if startInMenu {
		return game.NewScriptedInput(game.Input{StartGame: true}, game.Input{})
	}
	return game.NewScriptedInput()
}

func runPeer(ctx context.Context, cfg config.Config) error {
	world := buildWorld(cfg.World)
	session, err := openSession(ctx, cfg.Network)
	if err != nil {
		return err
	}
	defer session.Close()

	renderer := mainThreadRenderer{inner: game.NewHeadlessRenderer(800, 600)}
	client := game.NewClient(cfg, world, session, renderer, idleInput(cfg.Client.StartInMenu))
	return client.Run(ctx)
}

func runRelay(ctx context.Context, listen string) error {
	relay := server.NewRelay(0)
	return relay.ListenAndServe(ctx, listen)
}

func runExport(cfg config.Config, outPath string) error {
	world := buildWorld(cfg.World)
	return world.ExportGLB(outPath)
}
