// pkg/config/env.go
package config

import (
	"os"
	"strconv"
	"time"
)

// Environment variables recognised by ApplyEnvironmentOverrides.
const (
	EnvWorldWidth       = "ASTEROIDS_WORLD_WIDTH"
	EnvWorldHeight      = "ASTEROIDS_WORLD_HEIGHT"
	EnvMaxTimeStep      = "ASTEROIDS_MAX_TIME_STEP" // Go duration, e.g. "100ms"
	EnvTargetFPS        = "ASTEROIDS_TARGET_FPS"
	EnvInitialAsteroids = "ASTEROIDS_INITIAL_ASTEROIDS"
	EnvBroadPhase       = "ASTEROIDS_BROAD_PHASE"
	EnvSeed             = "ASTEROIDS_SEED"
)

// ApplyEnvironmentOverrides replaces config values with any set environment
// variables and revalidates the result. Unparseable values are ignored.
func ApplyEnvironmentOverrides(config *GameConfig) error {
	config.World.Width = getEnvAsFloatOrDefault(EnvWorldWidth, config.World.Width)
	config.World.Height = getEnvAsFloatOrDefault(EnvWorldHeight, config.World.Height)

	if step := getEnvAsDurationOrDefault(EnvMaxTimeStep, 0); step != 0 {
		config.Loop.MaxTimeStep = step.Seconds()
	}

	config.Loop.TargetFPS = getEnvAsIntOrDefault(EnvTargetFPS, config.Loop.TargetFPS)
	config.Loop.BroadPhase = getEnvAsBoolOrDefault(EnvBroadPhase, config.Loop.BroadPhase)
	config.Asteroids.InitialCount = getEnvAsIntOrDefault(EnvInitialAsteroids, config.Asteroids.InitialCount)
	config.Seed = getEnvAsUint64OrDefault(EnvSeed, config.Seed)

	return config.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnvOrDefault(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsUint64OrDefault(key string, defaultValue uint64) uint64 {
	if value, err := strconv.ParseUint(getEnvOrDefault(key, ""), 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnvOrDefault(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnvOrDefault(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnvOrDefault(key, "")); err == nil {
		return value
	}
	return defaultValue
}
