package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/wardtrain/internal/assessment"
	"github.com/abhisek/wardtrain/internal/config"
	"github.com/abhisek/wardtrain/internal/progress"
	"github.com/abhisek/wardtrain/internal/registry"
	"github.com/abhisek/wardtrain/internal/screen"
	"github.com/abhisek/wardtrain/internal/store"
)

// runtime is the wired set of services a command works with.
type runtime struct {
	cfg      config.Config
	registry *registry.Registry
	catalog  *assessment.Catalog
	progress *progress.Store
	kv       progress.KV
	db       *store.Store // nil when ephemeral
	closers  []io.Closer
}

// loadConfig reads the environment and applies command-line overrides:
// --db, then --bank (appended), then --ephemeral.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if banks, _ := cmd.Flags().GetStringArray("bank"); len(banks) > 0 {
		cfg.Banks = append(cfg.Banks, banks...)
	}
	if cmd.Flags().Changed("ephemeral") {
		cfg.Ephemeral, _ = cmd.Flags().GetBool("ephemeral")
	}
	return cfg, nil
}

// openRuntime builds the registry and question banks, opens the key-value
// backend and loads saved progress. The caller must Close the result.
func openRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg, registry: registry.Builtin()}

	rt.catalog, err = assessment.BuiltinCatalog()
	if err != nil {
		return nil, fmt.Errorf("load question banks: %w", err)
	}
	for _, p := range cfg.Banks {
		if p == "" {
			continue
		}
		if _, err := rt.catalog.LoadFile(p, rt.registry); err != nil {
			return nil, fmt.Errorf("load question bank: %w", err)
		}
	}

	logger, closer := openLogger(cfg)
	if closer != nil {
		rt.closers = append(rt.closers, closer)
	}

	if cfg.Ephemeral {
		rt.kv = store.NewMemoryKV()
	} else {
		dbPath, err := cfg.ResolveDBPath()
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("open store: %w", err)
		}
		rt.db = st
		rt.kv = st.KV()
		rt.closers = append(rt.closers, st)
	}

	rt.progress = progress.NewStore(rt.registry, rt.kv, progress.Config{
		Key:    cfg.ProgressKey,
		Logger: logger,
	})
	rt.progress.Load(cmd.Context())
	return rt, nil
}

// openLogger returns the logger for store warnings. The TUI owns the
// terminal, so warnings go to the log file. Ephemeral runs write nothing to
// disk and discard warnings unless a log path was set explicitly. Stderr is
// used only when the log file cannot be opened.
func openLogger(cfg config.Config) (*log.Logger, io.Closer) {
	if cfg.Ephemeral && cfg.LogPath == "" {
		return log.New(io.Discard, "wardtrain ", 0), nil
	}
	logger, closer, err := cfg.OpenLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v; logging to stderr\n", err)
		return log.New(os.Stderr, "wardtrain ", 0), nil
	}
	return logger, closer
}

// deps returns the services handed to the TUI screens.
func (rt *runtime) deps() screen.Deps {
	return screen.Deps{
		Registry: rt.registry,
		Progress: rt.progress,
		Catalog:  rt.catalog,
	}
}

// Close releases the database and log file.
func (rt *runtime) Close() error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		errs = append(errs, rt.closers[i].Close())
	}
	rt.closers = nil
	return errors.Join(errs...)
}

// lookupModule returns the registered module with id or a helpful error.
func (rt *runtime) lookupModule(id string) (registry.Module, error) {
	m, ok := rt.registry.ByID(id)
	if !ok {
		return registry.Module{}, fmt.Errorf("unknown module %q (known: %v)", id, rt.registry.IDs())
	}
	return m, nil
}
