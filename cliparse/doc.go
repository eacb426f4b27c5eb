// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: connection string or SQLite file (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - SeedFile: JSON file used to fill an empty entry table
  - LogLevel: debug, info (default), warn or error

# CLI Flags

	-p         Server port
	-d         Database URL
	-t         Database type
	-seed      Seed file
	-log-level Log level
	-env-file  dotenv file (default: .env)

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	SEED_FILE     → -seed
	LOG_LEVEL     → -log-level

CLI flags take precedence over environment variables, and environment
variables take precedence over the dotenv file. A missing dotenv file is
not an error.

# Logging

	level, err := cliparse.ParseLogLevel(cfg.LogLevel)
	slog.SetDefault(cliparse.NewLogger(os.Stderr, level))

NewLogger writes text to a terminal and JSON otherwise.
*/
package cliparse
