// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// ErrInvalidConfig is returned, wrapped, for any configuration that fails
// schema or semantic validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// GameConfig contains configuration for an asteroids game. It is read once at
// startup and never mutated by the simulation.
type GameConfig struct {
	World     WorldConfig    `json:"world" yaml:"world"`
	Ship      ShipConfig     `json:"ship" yaml:"ship"`
	Bullet    BulletConfig   `json:"bullet" yaml:"bullet"`
	Asteroids AsteroidConfig `json:"asteroids" yaml:"asteroids"`
	Loop      LoopConfig     `json:"loop" yaml:"loop"`
	// Seed for the asteroid RNG; 0 picks one from the clock.
	Seed uint64 `json:"seed" yaml:"seed"`
}

// WorldConfig contains the size of the toroidal play field
type WorldConfig struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// ShipConfig contains ship handling configuration
type ShipConfig struct {
	Radius       float64 `json:"radius" yaml:"radius"`
	Thrust       float64 `json:"thrust" yaml:"thrust"`             // units/s²
	TopSpeed     float64 `json:"topSpeed" yaml:"topSpeed"`         // units/s
	SpeedDecay   float64 `json:"speedDecay" yaml:"speedDecay"`     // fraction of velocity lost per second
	TurnRate     float64 `json:"turnRate" yaml:"turnRate"`         // radians/s
	FireInterval float64 `json:"fireInterval" yaml:"fireInterval"` // seconds between shots
}

// BulletConfig contains bullet configuration
type BulletConfig struct {
	Radius      float64 `json:"radius" yaml:"radius"`
	Speed       float64 `json:"speed" yaml:"speed"`
	SpawnOffset float64 `json:"spawnOffset" yaml:"spawnOffset"`
}

// AsteroidConfig contains asteroid seeding and splitting configuration
type AsteroidConfig struct {
	InitialCount   int     `json:"initialCount" yaml:"initialCount"`
	MinRadius      float64 `json:"minRadius" yaml:"minRadius"`
	MaxRadius      float64 `json:"maxRadius" yaml:"maxRadius"`
	MinSpeed       float64 `json:"minSpeed" yaml:"minSpeed"`
	MaxSpeed       float64 `json:"maxSpeed" yaml:"maxSpeed"`
	SpawnClearance float64 `json:"spawnClearance" yaml:"spawnClearance"`
}

// LoopConfig contains frame loop configuration
type LoopConfig struct {
	MaxTimeStep float64 `json:"maxTimeStep" yaml:"maxTimeStep"` // seconds
	TargetFPS   int     `json:"targetFPS" yaml:"targetFPS"`
	BroadPhase  bool    `json:"broadPhase" yaml:"broadPhase"`
}

// LoadConfig loads a configuration from a file. Files ending in .yaml or
// .yml are read as YAML, anything else as JSON. The document is checked
// against the embedded schema before it is decoded, and fields it omits
// keep their default values.
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	jsonData := data
	if isYAML(path) {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		// The schema validator and the decoder below both work on JSON.
		if jsonData, err = json.Marshal(doc); err != nil {
			return nil, fmt.Errorf("failed to convert config file: %w", err)
		}
	}

	if err := validateDocument(jsonData); err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(jsonData, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig saves a configuration to a file, as YAML or JSON by extension
func SaveConfig(config *GameConfig, path string) error {
	if config == nil {
		return fmt.Errorf("failed to marshal config: %w", ErrInvalidConfig)
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		World: WorldConfig{
			Width:  800,
			Height: 600,
		},
		Ship: ShipConfig{
			Radius:       20,
			Thrust:       100,
			TopSpeed:     500,
			SpeedDecay:   0.2,
			TurnRate:     math.Pi,
			FireInterval: 0.25,
		},
		Bullet: BulletConfig{
			Radius:      3,
			Speed:       400,
			SpawnOffset: 2,
		},
		Asteroids: AsteroidConfig{
			InitialCount:   4,
			MinRadius:      10,
			MaxRadius:      40,
			MinSpeed:       20,
			MaxSpeed:       80,
			SpawnClearance: 120,
		},
		Loop: LoopConfig{
			MaxTimeStep: 0.1,
			TargetFPS:   30,
			BroadPhase:  false,
		},
	}
}

// Validate performs the semantic checks the schema cannot express and
// reports every violation at once.
func (c *GameConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.World.Width > 0 && c.World.Height > 0, "world size must be positive, got %gx%g", c.World.Width, c.World.Height)
	check(c.Ship.Radius > 0, "ship.radius must be positive")
	check(c.Ship.TopSpeed > 0, "ship.topSpeed must be positive")
	check(c.Ship.SpeedDecay >= 0, "ship.speedDecay must not be negative")
	check(c.Ship.FireInterval >= 0, "ship.fireInterval must not be negative")
	check(c.Bullet.Radius > 0, "bullet.radius must be positive")
	check(c.Bullet.Speed >= 0, "bullet.speed must not be negative")
	check(c.Bullet.SpawnOffset >= 0, "bullet.spawnOffset must not be negative")
	check(c.Asteroids.InitialCount >= 0, "asteroids.initialCount must not be negative")
	check(c.Asteroids.MinRadius > 0, "asteroids.minRadius must be positive")
	check(c.Asteroids.MinRadius < c.Asteroids.MaxRadius,
		"asteroids.minRadius (%g) must be below asteroids.maxRadius (%g)", c.Asteroids.MinRadius, c.Asteroids.MaxRadius)
	check(c.Asteroids.MinSpeed >= 0 && c.Asteroids.MinSpeed <= c.Asteroids.MaxSpeed,
		"asteroids speed range [%g, %g] is invalid", c.Asteroids.MinSpeed, c.Asteroids.MaxSpeed)
	check(c.Asteroids.SpawnClearance >= 0, "asteroids.spawnClearance must not be negative")
	check(c.Loop.MaxTimeStep > 0, "loop.maxTimeStep must be positive")
	check(c.Loop.TargetFPS > 0, "loop.targetFPS must be positive")

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// Bounds returns the world dimensions.
func (c *GameConfig) Bounds() physics.Bounds {
	return physics.Bounds{Width: c.World.Width, Height: c.World.Height}
}

// Tuning returns the constants the entity behaviors read every frame.
func (c *GameConfig) Tuning() entity.Tuning {
	return entity.Tuning{
		Bounds:            c.Bounds(),
		ShipRadius:        c.Ship.Radius,
		Thrust:            c.Ship.Thrust,
		TopSpeed:          c.Ship.TopSpeed,
		SpeedDecay:        c.Ship.SpeedDecay,
		TurnRate:          c.Ship.TurnRate,
		FireInterval:      c.Ship.FireInterval,
		BulletRadius:      c.Bullet.Radius,
		BulletSpeed:       c.Bullet.Speed,
		BulletSpawnOffset: c.Bullet.SpawnOffset,
		MinAsteroidRadius: c.Asteroids.MinRadius,
		MaxAsteroidRadius: c.Asteroids.MaxRadius,
		AsteroidMinSpeed:  c.Asteroids.MinSpeed,
		AsteroidMaxSpeed:  c.Asteroids.MaxSpeed,
	}
}
