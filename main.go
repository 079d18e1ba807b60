package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nissyi-gh/taskroom/internal/api"
	"github.com/nissyi-gh/taskroom/internal/board"
	"github.com/nissyi-gh/taskroom/internal/config"
	"github.com/nissyi-gh/taskroom/internal/importer"
	"github.com/nissyi-gh/taskroom/internal/model"
	"github.com/nissyi-gh/taskroom/internal/render"
	"github.com/nissyi-gh/taskroom/internal/store"
	"github.com/nissyi-gh/taskroom/internal/ui"
)

const oneShotTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("in flags: %w", err)
	}

	if cfg.LogPath != "" {
		f, err := tea.LogToFile(cfg.LogPath, "taskroom")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	sessions, err := store.NewSessionStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sessions.Close()

	sess, err := sessions.Resolve(cfg.Server, cfg.Room, cfg.Name)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}
	client := api.NewClient(cfg.Server)

	switch {
	case cfg.ImportFile != "":
		return runImport(client, sess, cfg.ImportFile)
	case cfg.HTML || cfg.Plain:
		return runPrint(os.Stdout, client, sess, cfg.HTML)
	}

	p := tea.NewProgram(ui.NewModel(client, sessions, sess, cfg.Refresh), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

var errNoSession = errors.New("room and name are required, pass -room and -name once")

func runImport(c *api.Client, sess model.Session, path string) error {
	if !sess.Ready() {
		return errNoSession
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), oneShotTimeout)
	defer cancel()
	n, err := importer.Import(ctx, c, sess, string(data))
	if err != nil {
		return fmt.Errorf("importing after %d task(s): %w", n, err)
	}
	fmt.Printf("Imported %d task(s) into room %s\n", n, sess.Room)
	return nil
}

func runPrint(w io.Writer, c *api.Client, sess model.Session, html bool) error {
	if !sess.Ready() {
		return errNoSession
	}
	ctx, cancel := context.WithTimeout(context.Background(), oneShotTimeout)
	defer cancel()

	room, err := c.Room(ctx, sess)
	if err != nil {
		return fmt.Errorf("loading room: %w", err)
	}
	tasks, err := c.Tasks(ctx, sess, model.Filter{})
	if err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}
	stats, err := c.Stats(ctx, sess)
	if err != nil {
		return fmt.Errorf("loading stats: %w", err)
	}

	b := board.Build(tasks, time.Now(), board.DefaultOptions())
	if !html {
		return ui.RenderPlain(w, b, stats)
	}
	if err := render.Members(w, room, sess.User); err != nil {
		return err
	}
	return render.HTML(w, b, stats)
}
