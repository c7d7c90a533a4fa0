package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/faiface/mainthread"
	"github.com/memmaker/voxelpeers/config"
	"github.com/memmaker/voxelpeers/engine/util"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a yaml config (defaults are used when empty)")
		mode       = flag.String("mode", "peer", "peer | relay | export")
		peerID     = flag.Uint64("id", 0, "override network.local_id")
		listen     = flag.String("listen", "", "override the listen address (udp transport or relay)")
		outPath    = flag.String("out", "world.glb", "output file for -mode export")
		verbose    = flag.Bool("v", false, "log at debug level")
	)
	flag.Parse()

	cfg := config.Defaults()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			util.LogSystemError("[main] %v", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *peerID != 0 {
		cfg.Network.LocalID = *peerID
	}
	if *listen != "" {
		cfg.Network.Listen = *listen
	}
	if err := applyLogConfig(cfg.Log, *verbose); err != nil {
		util.LogSystemError("[main] %v", err)
		os.Exit(1)
	}

	ctx, cancel := signalContext()
	defer cancel()

	var err error
	switch *mode {
	case "peer":
		mainthread.Run(func() {
			err = runPeer(ctx, cfg)
		})
	case "relay":
		err = runRelay(ctx, cfg.Network.Listen)
	case "export":
		err = runExport(cfg, *outPath)
	default:
		util.LogSystemError("[main] unknown mode %q", *mode)
		os.Exit(2)
	}
	if err != nil && err != context.Canceled {
		util.LogSystemError("[main] %v", err)
		os.Exit(1)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}
