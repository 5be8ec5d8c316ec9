package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/berktools/berk/internal/api"
	"github.com/berktools/berk/internal/auth"
	"github.com/berktools/berk/internal/config"
	"github.com/berktools/berk/internal/logging"
	"github.com/berktools/berk/internal/prefs"
	"github.com/berktools/berk/internal/storage"
	"github.com/berktools/berk/internal/ui"
	"github.com/berktools/berk/internal/workflow"
)

// Options configure the berk application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/berk/prefs.toml
	BackendURL string // overrides backend_url when set
	Scheme     string // overrides auth_scheme when set
	Ephemeral  bool   // keep credentials and the saved-words mirror in memory
	Version    string
	LogStderr  bool // log to stderr instead of the log file
	Debug      bool // debug level; console encoder when logging to stderr
}

// Deps holds the wired components shared by the TUI and the commands.
type Deps struct {
	Config   config.Config
	Logger   *zap.Logger
	Storage  storage.Storage
	Store    auth.Store
	Client   *api.Client
	Workflow *workflow.Workflow
}

// Build loads configuration and wires storage, auth, the API client and the
// workflow. Callers must Close the result.
func Build(opts Options) (*Deps, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if backend := strings.TrimSpace(opts.BackendURL); backend != "" {
		cfg.BackendURL = strings.TrimRight(backend, "/")
	}
	if scheme := strings.TrimSpace(opts.Scheme); scheme != "" {
		cfg.AuthScheme = strings.ToLower(scheme)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logPath := cfg.LogPath()
	if opts.LogStderr {
		logPath = ""
	}
	level := cfg.LogLevel
	if opts.Debug {
		level = "debug"
	}
	logger, err := logging.New(logging.Options{
		Path:  logPath,
		Level: level,
		Debug: opts.Debug && logPath == "",
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	var kv storage.Storage
	if opts.Ephemeral {
		kv = storage.NewMemory()
	} else {
		kv, err = storage.Open(cfg)
		if err != nil {
			_ = logger.Sync()
			return nil, fmt.Errorf("open storage: %w", err)
		}
	}

	store, err := auth.NewStore(cfg.AuthScheme, kv, logger)
	if err != nil {
		closeStorage(kv)
		return nil, fmt.Errorf("init auth store: %w", err)
	}

	clientOpts := []api.Option{
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(logger),
	}
	if opts.Version != "" {
		clientOpts = append(clientOpts, api.WithVersion(opts.Version))
	}
	client, err := api.NewClient(cfg.BackendURL, store, clientOpts...)
	if err != nil {
		closeStorage(kv)
		return nil, fmt.Errorf("init api client: %w", err)
	}

	flow := workflow.New(client, workflow.NewStorageMirror(kv, logger), logger)

	logger.Info("berk starting",
		zap.String("version", opts.Version),
		zap.String("backend", client.BaseURL()),
		zap.String("auth_scheme", cfg.AuthScheme),
		zap.String("storage", cfg.StorageDriver),
		zap.Bool("ephemeral", opts.Ephemeral),
	)

	return &Deps{
		Config:   cfg,
		Logger:   logger,
		Storage:  kv,
		Store:    store,
		Client:   client,
		Workflow: flow,
	}, nil
}

// Close releases storage and flushes the logger.
func (d *Deps) Close() error {
	closeStorage(d.Storage)
	if err := d.Logger.Sync(); err != nil && !isSyncNoise(err) {
		return err
	}
	return nil
}

// Users returns the account resolver for schemes that have one. Basic auth
// has no /auth/me round trip; the username comes from the store.
func (d *Deps) Users() ui.UserFetcher {
	if d.Config.AuthScheme == config.SchemeBearer {
		return d.Client
	}
	return nil
}

// Run boots the berk TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	deps, err := Build(opts)
	if err != nil {
		return err
	}
	defer deps.Close()

	uiOpts := ui.Options{
		Context:        ctx,
		Workflow:       deps.Workflow,
		Store:          deps.Store,
		Signer:         deps.Client,
		Users:          deps.Users(),
		Prefs:          prefs.Load(opts.PrefsPath),
		PrefsPath:      opts.PrefsPath,
		Logger:         deps.Logger,
		RequestTimeout: 2 * deps.Config.RequestTimeout,
	}
	if uiOpts.PrefsPath == "" {
		uiOpts.PrefsPath = prefs.DefaultPath()
	}
	return ui.Run(uiOpts)
}

func closeStorage(kv storage.Storage) {
	if c, ok := kv.(io.Closer); ok {
		_ = c.Close()
	}
}

// isSyncNoise reports the errors zap returns when syncing stderr on a terminal.
func isSyncNoise(err error) bool {
	return errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY)
}
