// Command gptty is the terminal chat client's entry point: it wires
// together configuration, the persistent store, the stream engine, and
// the session, then dispatches to one of the list/new/resume/delete/clear
// subcommands.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/keagud/gptty/internal/config"
	"github.com/keagud/gptty/internal/logger"
	"github.com/keagud/gptty/internal/paths"
	"github.com/keagud/gptty/internal/session"
	"github.com/keagud/gptty/internal/store"
	"github.com/keagud/gptty/internal/streamengine"
)

// env is the shared set of collaborators every subcommand needs. It is
// assembled once in main and threaded through cli.Context.App.Metadata
// rather than as package-level globals, so tests can construct their own.
type env struct {
	sess   *session.Session
	engine *streamengine.Engine
	cfg    *config.Config
	log    *logger.Logger
	store  *store.Store
}

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "gptty:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	app := &cli.App{
		Name:  "gptty",
		Usage: "a terminal chat client for streaming LLM endpoints",
		Commands: []*cli.Command{
			listCommand(),
			newCommand(),
			resumeCommand(),
			deleteCommand(),
			clearCommand(),
		},
		Before: func(c *cli.Context) error {
			e, err := setupEnv()
			if err != nil {
				return err
			}
			c.App.Metadata["env"] = e
			return nil
		},
		After: func(c *cli.Context) error {
			e, ok := envFrom(c)
			if !ok {
				return nil
			}
			return e.store.Close()
		},
	}
	app.Metadata = map[string]interface{}{}

	return app.RunContext(context.Background(), args)
}

// setupEnv resolves config/store paths, loads configuration, opens the
// store, and constructs the session. Any failure here is unrecoverable
// and aborts before any UI loop starts.
func setupEnv() (*env, error) {
	configFile, err := paths.ConfigFile()
	if err != nil {
		return nil, fmt.Errorf("resolve config file: %w", err)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	apiKey, err := cfg.APIKey()
	if err != nil {
		return nil, err
	}

	dbFile, err := paths.DatabaseFile()
	if err != nil {
		return nil, fmt.Errorf("resolve database file: %w", err)
	}

	st, err := store.Open(dbFile)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	// Logs go to a file: stdout and stderr belong to the TUI once the
	// alternate screen is up. A failure to open the log file is not
	// fatal; the logger falls back to stderr.
	var logOut *os.File
	if logFile, err := paths.LogFile(); err == nil {
		if f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			logOut = f
		}
	}

	log := logger.New(logger.Config{Output: logOut})
	engine := streamengine.New(apiKey)

	sess, err := session.New(st, engine, log)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load session: %w", err)
	}

	return &env{sess: sess, engine: engine, cfg: cfg, log: log, store: st}, nil
}

// requireTerminal rejects the chat-UI subcommands when stdin/stdout are
// not an interactive terminal: the UI loop cannot enter raw mode or the
// alternate screen against a pipe, and failing here is the clearer error.
func requireTerminal() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("an interactive terminal is required for the chat UI")
	}
	return nil
}

func envFrom(c *cli.Context) (*env, bool) {
	e, ok := c.App.Metadata["env"].(*env)
	return e, ok
}
