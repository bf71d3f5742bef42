package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	ProgramName string
	DBPath      string
	ServerPort  string
	LogLevel    string
	GazetteURL  string
	RNGSeed     uint64
	AllowBump   bool
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	seed, err := strconv.ParseUint(getEnv("RNG_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RNG_SEED: %w", err)
	}
	allowBump, err := strconv.ParseBool(getEnv("ALLOW_BUMP", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid ALLOW_BUMP: %w", err)
	}

	cfg := &Config{
		ProgramName: getEnv("PROGRAM_NAME", ""),
		DBPath:      getEnv("DB_PATH", "wrestling.db"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		GazetteURL:  getEnv("GAZETTE_URL", ""),
		RNGSeed:     seed,
		AllowBump:   allowBump,
	}

	if cfg.ProgramName == "" {
		return nil, fmt.Errorf("PROGRAM_NAME is required")
	}

	logger.Info().
		Str("program", cfg.ProgramName).
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Bool("gazette", cfg.GazetteURL != "").
		Uint64("rng_seed", cfg.RNGSeed).
		Bool("allow_bump", cfg.AllowBump).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
