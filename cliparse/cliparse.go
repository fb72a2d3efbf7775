package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port              int
	DatabaseURL       string
	DatabaseType      string
	AffiliationSecret string
	SessionSecret     string
	AtCoderBaseURL    string
}

// ParseFlags validates flags and fills in environment fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("editorial-voting", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or sqlite path")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.AtCoderBaseURL, "atcoder-url", "", "AtCoder base URL")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AffiliationSecret, "affiliation-secret", "", "Affiliation token secret (prefer env)")
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Session token secret (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3950 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.AtCoderBaseURL == "" {
		cfg.AtCoderBaseURL = os.Getenv("ATCODER_BASE_URL")
		if cfg.AtCoderBaseURL == "" {
			cfg.AtCoderBaseURL = "https://atcoder.jp"
		}
	}

	// Secrets - MUST be provided, and must differ per token kind
	if cfg.AffiliationSecret == "" {
		cfg.AffiliationSecret = os.Getenv("AFFILIATION_TOKEN_SECRET")
	}
	if cfg.AffiliationSecret == "" {
		return Config{}, errors.New("AFFILIATION_TOKEN_SECRET required")
	}

	if cfg.SessionSecret == "" {
		cfg.SessionSecret = os.Getenv("SESSION_TOKEN_SECRET")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_TOKEN_SECRET required")
	}
	if cfg.SessionSecret == cfg.AffiliationSecret {
		return Config{}, errors.New("SESSION_TOKEN_SECRET must differ from AFFILIATION_TOKEN_SECRET")
	}

	return cfg, nil
}
