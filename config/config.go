package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	TransportUDP      = "udp"
	TransportRelay    = "relay"
	TransportLoopback = "loopback"
)

type Config struct {
	World   World   `yaml:"world"`
	Player  Player  `yaml:"player"`
	Network Network `yaml:"network"`
	Client  Client  `yaml:"client"`
	Log     Log     `yaml:"log"`
}

type World struct {
	Seed           int64   `yaml:"seed"`
	GridSize       int32   `yaml:"grid_size"`
	NoiseFrequency float32 `yaml:"noise_frequency"`
	HeightScale    float32 `yaml:"height_scale"`
}

type Player struct {
	Spawn           [3]float32 `yaml:"spawn"`
	MaxSpeed        float32    `yaml:"max_speed"`
	JumpImpulse     float32    `yaml:"jump_impulse"`
	Gravity         float32    `yaml:"gravity"`
	StepHeight      float32    `yaml:"step_height"`
	HalfWidth       float32    `yaml:"half_width"`
	Height          float32    `yaml:"height"`
	EyeHeight       float32    `yaml:"eye_height"`
	LookSensitivity float32    `yaml:"look_sensitivity"`
	GroundBias      float32    `yaml:"ground_bias"`
}

type Peer struct {
	ID   uint64 `yaml:"id"`
	Addr string `yaml:"addr"`
}

type Network struct {
	LocalID          uint64        `yaml:"local_id"`
	TickRateHz       float32       `yaml:"tick_rate_hz"`
	SmoothFactor     float32       `yaml:"smooth_factor"`
	MaxDrainPerFrame int           `yaml:"max_drain_per_frame"`
	Transport        string        `yaml:"transport"`
	Listen           string        `yaml:"listen"`
	RelayURL         string        `yaml:"relay_url"`
	Peers            []Peer        `yaml:"peers"`
	StaleAfter       time.Duration `yaml:"stale_after"`
	ShortestArc      bool          `yaml:"shortest_arc"`
}

type Client struct {
	FrameRateHz float32 `yaml:"frame_rate_hz"`
	StartInMenu bool    `yaml:"start_in_menu"`
}

type Log struct {
	Level      string   `yaml:"level"`
	Categories []string `yaml:"categories"`
}

// Defaults returns the reference tunables. Every field Load does not find in
// the file keeps its default.
func Defaults() Config {
	return Config{
		World: World{
			Seed:           1337,
			GridSize:       4,
			NoiseFrequency: 0.05,
			HeightScale:    8,
		},
		Player: Player{
			Spawn:           [3]float32{8, 30, 8},
			MaxSpeed:        5,
			JumpImpulse:     5,
			Gravity:         -15,
			StepHeight:      1,
			HalfWidth:       0.3,
			Height:          1.8,
			EyeHeight:       1.62,
			LookSensitivity: 0.1,
			GroundBias:      -0.1,
		},
		Network: Network{
			LocalID:          1,
			TickRateHz:       30,
			SmoothFactor:     10,
			MaxDrainPerFrame: 256,
			Transport:        TransportLoopback,
			Listen:           ":7777",
			RelayURL:         "ws://127.0.0.1:7778/v1/relay",
		},
		Client: Client{
			FrameRateHz: 60,
			StartInMenu: true,
		},
		Log: Log{
			Level:      "info",
			Categories: []string{"all"},
		},
	}
}

func Load(path string) (Config, error) {
	cfg := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "invalid %s", path)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.World.GridSize < 1:
		return errors.Errorf("world.grid_size must be at least 1, got %d", c.World.GridSize)
	case c.World.NoiseFrequency <= 0:
		return errors.New("world.noise_frequency must be positive")
	case c.Player.HalfWidth <= 0 || c.Player.HalfWidth >= 0.5:
		return errors.Errorf("player.half_width must be in (0, 0.5), got %v", c.Player.HalfWidth)
	case c.Player.Height <= 0:
		return errors.New("player.height must be positive")
	case c.Player.Gravity >= 0:
		return errors.New("player.gravity must be negative")
	case c.Player.StepHeight < 0:
		return errors.New("player.step_height must not be negative")
	case c.Network.TickRateHz <= 0:
		return errors.Errorf("network.tick_rate_hz must be positive, got %v", c.Network.TickRateHz)
	case c.Network.SmoothFactor <= 0:
		return errors.New("network.smooth_factor must be positive")
	case c.Network.MaxDrainPerFrame < 1:
		return errors.New("network.max_drain_per_frame must be at least 1")
	case c.Network.StaleAfter < 0:
		return errors.New("network.stale_after must not be negative")
	case c.Client.FrameRateHz <= 0:
		return errors.New("client.frame_rate_hz must be positive")
	}
	switch c.Network.Transport {
	case TransportUDP:
		if c.Network.Listen == "" {
			return errors.New("network.listen is required for udp transport")
		}
	case TransportRelay:
		if c.Network.RelayURL == "" {
			return errors.New("network.relay_url is required for relay transport")
		}
	case TransportLoopback:
	default:
		return errors.Errorf("unknown network.transport %q", c.Network.Transport)
	}
	seen := make(map[uint64]bool)
	for _, p := range c.Network.Peers {
		if p.ID == c.Network.LocalID {
			return errors.Errorf("peer id %d collides with network.local_id", p.ID)
		}
		if seen[p.ID] {
			return errors.Errorf("duplicate peer id %d", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}
