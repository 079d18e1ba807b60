package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestLoad_Defaults(t *testing.T) {
	is := is.New(t)
	t.Setenv("TASKROOM_SERVER", "")
	t.Setenv("TASKROOM_REFRESH", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	is.NoErr(err)
	is.Equal(cfg.Server, DefaultServer)
	is.Equal(cfg.Refresh, time.Minute)
}

func TestLoad_Environment(t *testing.T) {
	is := is.New(t)
	t.Setenv("TASKROOM_SERVER", "http://tasks.example.com/")
	t.Setenv("TASKROOM_REFRESH", "15s")
	t.Setenv("TASKROOM_DB", "/tmp/x.db")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	is.NoErr(err)
	is.Equal(cfg.Server, "http://tasks.example.com")
	is.Equal(cfg.Refresh, 15*time.Second)
	is.Equal(cfg.DBPath, "/tmp/x.db")
}

func TestLoad_EnvFile(t *testing.T) {
	is := is.New(t)
	t.Setenv("TASKROOM_LOG", "")
	os.Unsetenv("TASKROOM_LOG") // godotenv never overrides variables that are already set

	path := filepath.Join(t.TempDir(), ".env")
	is.NoErr(os.WriteFile(path, []byte("TASKROOM_LOG=/tmp/taskroom.log\n"), 0o600))

	cfg, err := Load(path)
	is.NoErr(err)
	is.Equal(cfg.LogPath, "/tmp/taskroom.log")
}

func TestLoad_InvalidRefresh(t *testing.T) {
	is := is.New(t)
	t.Setenv("TASKROOM_REFRESH", "-1s")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	is.True(err != nil)
}

func TestRegisterFlags(t *testing.T) {
	is := is.New(t)
	cfg := Config{Server: "http://env", Refresh: time.Minute}

	fs := flag.NewFlagSet("taskroom", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	is.NoErr(fs.Parse([]string{"-server", "http://flag", "-room", "abc", "-name", "Alice", "-html"}))

	is.Equal(cfg.Server, "http://flag")
	is.Equal(cfg.Refresh, time.Minute) // untouched flags keep the environment value
	is.Equal(cfg.Room, "abc")
	is.Equal(cfg.Name, "Alice")
	is.True(cfg.HTML)
}

func TestNormalize_FlagServer(t *testing.T) {
	is := is.New(t)
	cfg := Config{Server: "http://env", Refresh: time.Minute}

	fs := flag.NewFlagSet("taskroom", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	is.NoErr(fs.Parse([]string{"-server", " http://host/ "}))
	cfg.Normalize()

	is.Equal(cfg.Server, "http://host") // same origin key as TASKROOM_SERVER=http://host
	is.NoErr(cfg.Validate())
}
