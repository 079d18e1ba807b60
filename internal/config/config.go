// Package config reads settings from an optional .env file, TASKROOM_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "TASKROOM"

// DefaultServer is used when no backend address is configured.
const DefaultServer = "http://localhost:5000"

type Config struct {
	Server  string
	DBPath  string
	LogPath string
	Refresh time.Duration

	// Set from the command line only.
	Room       string
	Name       string
	HTML       bool
	Plain      bool
	ImportFile string
}

// Load reads envFiles (".env" when none are given) and the environment.
// Missing env files are not an error.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("server", DefaultServer)
	v.SetDefault("db", "")
	v.SetDefault("log", "")
	v.SetDefault("refresh", time.Minute)

	cfg := Config{
		Server:  v.GetString("server"),
		DBPath:  v.GetString("db"),
		LogPath: v.GetString("log"),
		Refresh: v.GetDuration("refresh"),
	}
	cfg.Normalize()
	return cfg, cfg.Validate()
}

// RegisterFlags binds flags to cfg, using the current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Server, "server", c.Server, "Backend base URL")
	fs.StringVar(&c.DBPath, "db", c.DBPath, "Path to the session database")
	fs.StringVar(&c.LogPath, "log", c.LogPath, "Write debug logs to this file")
	fs.DurationVar(&c.Refresh, "refresh", c.Refresh, "Board refresh interval")
	fs.StringVar(&c.Room, "room", "", "Room code (remembered for next time)")
	fs.StringVar(&c.Name, "name", "", "Your name (remembered for next time)")
	fs.BoolVar(&c.HTML, "html", false, "Print the board as HTML and exit")
	fs.BoolVar(&c.Plain, "plain", false, "Print the board as text and exit")
	fs.StringVar(&c.ImportFile, "import", "", "Create tasks from a YAML file and exit")
}

// Normalize cleans values that may come from any source. Call it again after
// parsing flags.
func (c *Config) Normalize() {
	c.Server = strings.TrimRight(strings.TrimSpace(c.Server), "/")
}

// Validate checks values that would otherwise fail later in confusing ways.
func (c Config) Validate() error {
	if c.Server == "" {
		return errors.New("server address is empty")
	}
	if c.Refresh <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %s", c.Refresh)
	}
	return nil
}
