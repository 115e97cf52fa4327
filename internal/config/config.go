package config

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"qstateprep/pkg/stateprep"
)

// Config holds application configuration
type Config struct {
	LogLevel       string
	LogFile        string
	LogPretty      bool
	NormTolerance  float64
	AngleTolerance float64
	SkipZero       bool // drop all-zero cascades instead of keeping 2^n - 2 CNOTs
	Wires          int  // register size the explorer starts with
	ExportDir      string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:       getEnv("QSTATEPREP_LOG_LEVEL", "info"),
		LogFile:        getEnv("QSTATEPREP_LOG_FILE", "qstateprep.log"),
		LogPretty:      getEnvAsBool("QSTATEPREP_LOG_PRETTY", false),
		NormTolerance:  getEnvAsFloat("QSTATEPREP_NORM_TOLERANCE", stateprep.DefaultNormTolerance),
		AngleTolerance: getEnvAsFloat("QSTATEPREP_ANGLE_TOLERANCE", stateprep.DefaultAngleTolerance),
		SkipZero:       getEnvAsBool("QSTATEPREP_SKIP_ZERO_CASCADES", false),
		Wires:          getEnvAsInt("QSTATEPREP_WIRES", 3),
		ExportDir:      getEnv("QSTATEPREP_EXPORT_DIR", "."),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that every value is usable
func (c *Config) Validate() error {
	if c.LogFile == "" {
		return fmt.Errorf("QSTATEPREP_LOG_FILE is required")
	}
	if c.ExportDir == "" {
		return fmt.Errorf("QSTATEPREP_EXPORT_DIR is required")
	}
	if !(c.NormTolerance >= 0) || math.IsInf(c.NormTolerance, 0) {
		return fmt.Errorf("QSTATEPREP_NORM_TOLERANCE must be a finite non-negative number, got %v", c.NormTolerance)
	}
	if !(c.AngleTolerance >= 0) || math.IsInf(c.AngleTolerance, 0) {
		return fmt.Errorf("QSTATEPREP_ANGLE_TOLERANCE must be a finite non-negative number, got %v", c.AngleTolerance)
	}
	if c.Wires < 1 || c.Wires > MaxExplorerWires {
		return fmt.Errorf("QSTATEPREP_WIRES must be between 1 and %d, got %d", MaxExplorerWires, c.Wires)
	}
	return nil
}

// MaxExplorerWires bounds the register the explorer simulates and draws.
const MaxExplorerWires = 10

// Options returns the synthesis options the configuration selects.
func (c *Config) Options() []stateprep.Option {
	opts := []stateprep.Option{
		stateprep.WithNormTolerance(c.NormTolerance),
		stateprep.WithAngleTolerance(c.AngleTolerance),
	}
	if c.SkipZero {
		opts = append(opts, stateprep.WithSkipZeroCascades())
	}
	return opts
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
