package platform

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/edubrinca/pkg/core"
	"github.com/aretw0/edubrinca/pkg/generator"
)

// options holds the internal configuration for an EduBrinca application.
type options struct {
	repository core.Repository
	logger     *slog.Logger
	adapter    string
	path       string
	format     string
	systemDir  string
	readOnly   bool
	devSafety  bool
	tempDir    bool

	watcherErrorHandler func(error)

	remote    generator.Remote
	apiKey    string
	model     string
	timeout   time.Duration
	grounding bool
	offline   bool
	online    func(ctx context.Context) bool
}

// Option defines a functional option for configuring EduBrinca.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter:   "fs",
		devSafety: true,
		timeout:   generator.DefaultTimeout,
		grounding: true,
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository injects a storage adapter (e.g. a fake in tests).
// If provided, the adapter selected by name is skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithAdapter selects the storage adapter by name: "fs" (default), "sqlite" or "memory".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithPath sets the store location used when New is called with an empty uri.
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithFormat selects the fs adapter encoding ("json" or "yaml") for new stores.
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithSystemDir sets the fs adapter's hidden directory name.
// Defaults to ".edubrinca".
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.systemDir = name
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Put and Delete return ErrReadOnly, so generation and import fail at persistence.
// 2. No directory or database file is created.
// 3. The dev sandbox is bypassed (the real path is used).
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or `go test`.
// By default (true), the store is re-rooted into a temporary directory.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithForceTemp forces the use of a temporary directory.
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.tempDir = force
	}
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures
// which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.watcherErrorHandler = fn
	}
}

// WithRemote injects the generator backend, replacing the Gemini adapter.
func WithRemote(remote generator.Remote) Option {
	return func(o *options) {
		o.remote = remote
	}
}

// WithAPIKey sets the Gemini credential. It wins over the environment.
func WithAPIKey(key string) Option {
	return func(o *options) {
		o.apiKey = key
	}
}

// WithModel sets the Gemini model name.
func WithModel(model string) Option {
	return func(o *options) {
		o.model = model
	}
}

// WithRemoteTimeout bounds the single remote attempt. Zero keeps the default.
func WithRemoteTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithGrounding enables web-search sources for lesson plans.
func WithGrounding(enabled bool) Option {
	return func(o *options) {
		o.grounding = enabled
	}
}

// WithOffline skips the remote entirely; every request uses the local templates.
func WithOffline(offline bool) Option {
	return func(o *options) {
		o.offline = offline
	}
}

// WithOnlineCheck sets the connectivity probe consulted before each remote attempt.
func WithOnlineCheck(fn func(ctx context.Context) bool) Option {
	return func(o *options) {
		o.online = fn
	}
}
