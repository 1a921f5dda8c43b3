package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/uyouii/waveform-polarity/common"
)

const (
	EnvLogLevel  = "WAVECLASS_LOG_LEVEL"
	EnvWorkers   = "WAVECLASS_WORKERS"
	EnvUnitsPath = "WAVECLASS_UNITS_PATH"
	EnvRound     = "WAVECLASS_ROUND"

	DefaultLogLevel  = "info"
	DefaultUnitsPath = "units"
	DefaultRound     = 6
)

// Config holds the process settings of the classifier CLI.
type Config struct {
	LogLevel  string
	Workers   int
	UnitsPath string
	// decimals kept in exported values, -1 keeps full precision
	Round int32
}

// Load reads the configuration from the environment after loading envFiles,
// or .env when none are given. A missing .env is not an error. Variables
// already set in the environment win over the files.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading env file: %w", err)
	}

	workers, err := getEnvIntOrDefault(EnvWorkers, runtime.NumCPU())
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		return nil, fmt.Errorf("%w: %s must be positive, got %d", common.ErrorInvalidValue, EnvWorkers, workers)
	}

	round, err := getEnvIntOrDefault(EnvRound, DefaultRound)
	if err != nil {
		return nil, err
	}
	if round < -1 {
		return nil, fmt.Errorf("%w: %s must be -1 or more, got %d", common.ErrorInvalidValue, EnvRound, round)
	}

	return &Config{
		LogLevel:  getEnvOrDefault(EnvLogLevel, DefaultLogLevel),
		Workers:   workers,
		UnitsPath: getEnvOrDefault(EnvUnitsPath, DefaultUnitsPath),
		Round:     int32(round),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	res, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", common.ErrorInvalidValue, key, value)
	}
	return res, nil
}
