package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/dayboard/internal/credential"
	"github.com/nhle/dayboard/internal/httpclient"
	"github.com/nhle/dayboard/internal/logging"
	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/store"
	"github.com/nhle/dayboard/internal/todo"
	"github.com/nhle/dayboard/internal/todoapi"
)

// errNoBaseURL is returned by commands that need the server when none is
// configured.
var errNoBaseURL = errors.New("api.base_url is not set, add it to the config file or set DAYBOARD_API_BASE_URL")

// Options are resolved from the root command's flags before a subcommand
// runs.
type Options struct {
	ConfigPath string

	// Interactive is set for the terminal board, whose log must not
	// share the screen.
	Interactive bool
}

// Opener builds the Env a command runs against.
type Opener func(opts Options) (*Env, error)

// Env holds every collaborator the commands use. The todo store is
// hydrated from the local snapshot and mirrors its changes back.
type Env struct {
	Config *model.AppConfig
	Logger *zap.Logger
	Store  store.Store
	Creds  *credential.Store
	Todos  *todo.Store
	Ops    *todo.Operations
	Now    func() time.Time

	stopMirror func()
	closeOnce  sync.Once
}

// NewEnv wires the todo store and operations on top of already opened
// persistence and credentials.
func NewEnv(cfg *model.AppConfig, logger *zap.Logger, st store.Store, creds *credential.Store) (*Env, error) {
	logger = logging.OrNop(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	initial, found, err := st.LoadTodoState(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading todo snapshot: %w", err)
	}
	logger.Debug("todo state loaded",
		zap.Bool("from_snapshot", found),
		zap.Int("todos", len(initial.Todos)))

	todos := todo.NewStore(initial, logger)
	http := httpclient.NewClient(creds, time.Duration(cfg.API.TimeoutSec)*time.Second, logger)
	api := todoapi.NewClient(http, cfg.API.BaseURL)

	return &Env{
		Config:     cfg,
		Logger:     logger,
		Store:      st,
		Creds:      creds,
		Todos:      todos,
		Ops:        todo.NewOperations(api, todos, logger),
		Now:        time.Now,
		stopMirror: st.MirrorTodoState(todos, logger),
	}, nil
}

// Open is the production Opener: config file, zap logger, SQLite database
// and the system keyring.
func Open(opts Options) (*Env, error) {
	path := opts.ConfigPath
	if path == "" {
		path = model.DefaultConfigPath()
	}

	cfg, err := model.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	var logPaths []string
	if opts.Interactive && cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		logPaths = []string{cfg.Log.File}
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development, logPaths...)
	if err != nil {
		return nil, err
	}

	st, err := store.NewSQLiteStore(cfg.Storage.DBPath)
	if err != nil {
		return nil, err
	}

	creds, err := credential.Open(cfg.Keyring.Service, cfg.Keyring.FileDir)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	env, err := NewEnv(cfg, logger, st, creds)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return env, nil
}

// Close stops mirroring, closes the store and the database, and flushes
// the logger. It is safe to call more than once.
func (e *Env) Close() {
	e.closeOnce.Do(func() {
		if e.stopMirror != nil {
			e.stopMirror()
		}
		e.Todos.Close()
		if err := e.Store.Close(); err != nil {
			e.Logger.Warn("closing database", zap.Error(err))
		}
		_ = e.Logger.Sync()
	})
}

// remote returns a context bounded by the API timeout, or errNoBaseURL.
func (e *Env) remote(parent context.Context) (context.Context, context.CancelFunc, error) {
	if e.Config.API.BaseURL == "" {
		return nil, nil, errNoBaseURL
	}
	ctx, cancel := context.WithTimeout(parent, time.Duration(e.Config.API.TimeoutSec)*time.Second)
	return ctx, cancel, nil
}
