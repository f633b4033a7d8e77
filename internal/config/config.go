// Package config provides functionality for managing configuration options
// for the challenge binaries using command-line flags, an optional JSON
// file, a .env file and environment variables.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// FlagFile is the path of the file disclosed by the readit challenge.
	FlagFile string `json:"flag_file"`

	// Address is the TCP listen address (ip:port) of the challenge server.
	Address string `json:"address"`

	// HTTPAddress enables the HTTP API when not empty.
	HTTPAddress string `json:"http_address"`

	// Challenge selects the challenge served over TCP.
	Challenge string `json:"challenge"`

	// DatabaseDSN holds the attempt log connection string. Attempts are kept
	// in memory when it is empty.
	DatabaseDSN string `json:"database_dsn"`

	// LogLevel is the minimum zap level.
	LogLevel string `json:"log_level"`

	// AttemptRetention is how long recorded attempts are kept.
	AttemptRetention time.Duration `json:"-"`

	// Config is the path to the JSON config file.
	Config string `json:"-"`

	// EnvFile is the path to the .env file.
	EnvFile string `json:"-"`

	// ShowVersion prints build metadata and exits.
	ShowVersion bool `json:"-"`
}

// Parse parses os.Args. It exits the process on invalid flags, like the
// flag package does.
func Parse() *Options {
	opts, err := ParseArgs(os.Args[0], os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return opts
}

// ParseArgs builds Options from defaults, the JSON config file, explicitly
// set flags and finally environment variables, each overriding the previous.
func ParseArgs(name string, args []string, output io.Writer) (*Options, error) {
	opts := &Options{}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.FlagFile, "flag", "./flag", "path to the flag file")
	fs.StringVar(&opts.Address, "a", ":5000", "serve challenge on ip:port")
	fs.StringVar(&opts.HTTPAddress, "http", "", "serve HTTP API on ip:port (disabled when empty)")
	fs.StringVar(&opts.Challenge, "challenge", "readit", "challenge served over TCP: readit | lockbox")
	fs.StringVar(&opts.DatabaseDSN, "d", "", "attempt log database DSN")
	fs.StringVar(&opts.LogLevel, "l", "warn", "log level")
	fs.DurationVar(&opts.AttemptRetention, "retention", 30*24*time.Hour, "how long attempts are kept")
	fs.StringVar(&opts.Config, "config", "", "path to config file")
	fs.StringVar(&opts.Config, "c", "", "path to config file (shorthand)")
	fs.StringVar(&opts.EnvFile, "env", ".env", "path to .env file")
	fs.BoolVar(&opts.ShowVersion, "version", false, "show build version and date")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error while loading env file: %w", err)
	}

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		opts.Config = configPath
	}

	if opts.Config != "" {
		explicit := explicitFlags(fs)
		data, err := os.ReadFile(opts.Config)
		if err != nil {
			return nil, fmt.Errorf("error while reading config file: %w", err)
		}
		if err := json.Unmarshal(data, opts); err != nil {
			return nil, fmt.Errorf("error while parsing config file: %w", err)
		}
		// Flags given on the command line win over the file.
		for name, value := range explicit {
			if err := fs.Set(name, value); err != nil {
				return nil, err
			}
		}
	}

	overrideFromEnv(&opts.FlagFile, "FLAG_FILE")
	overrideFromEnv(&opts.Address, "SERVER_ADDRESS")
	overrideFromEnv(&opts.HTTPAddress, "HTTP_ADDRESS")
	overrideFromEnv(&opts.Challenge, "CHALLENGE")
	overrideFromEnv(&opts.DatabaseDSN, "DATABASE_DSN")
	overrideFromEnv(&opts.LogLevel, "LOG_LEVEL")

	if v := os.Getenv("ATTEMPT_RETENTION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ATTEMPT_RETENTION: %w", err)
		}
		opts.AttemptRetention = d
	}

	return opts, nil
}

// explicitFlags snapshots the values of the flags set on the command line.
func explicitFlags(fs *flag.FlagSet) map[string]string {
	set := map[string]string{}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "config" || f.Name == "c" {
			return
		}
		set[f.Name] = f.Value.String()
	})
	return set
}

func overrideFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
