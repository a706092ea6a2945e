package edubrinca

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/edubrinca/internal/platform"
	"github.com/aretw0/edubrinca/pkg/backup"
	"github.com/aretw0/edubrinca/pkg/core"
	"github.com/aretw0/edubrinca/pkg/generator"
	"github.com/aretw0/edubrinca/pkg/typed"
)

// --- Types ---

// App is the wired application returned by New.
type App = platform.App

// Config is the YAML configuration file.
type Config = platform.Config

// LessonPlanRequest describes a lesson plan to generate.
type LessonPlanRequest = generator.LessonPlanRequest

// ActivityRequest describes an activity sheet to generate.
type ActivityRequest = generator.ActivityRequest

// Remote is a hosted generation backend.
type Remote = generator.Remote

// Collection is the typed, newest-first view of one entity collection.
type Collection[E any, P interface {
	*E
	core.Entity
}] = typed.Collection[E, P]

// Report summarizes an import.
type Report = backup.Report

// --- Configuration ---

// Option defines a functional option for configuring EduBrinca.
type Option = platform.Option

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter selects the storage adapter by name ("fs", "sqlite", "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithPath sets the store location used when New is called with an empty uri.
func WithPath(path string) Option {
	return platform.WithPath(path)
}

// WithFormat selects the fs encoding ("json" or "yaml") for new stores.
func WithFormat(format string) Option {
	return platform.WithFormat(format)
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".edubrinca").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithReadOnly opens the store without write access.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithDevSafety controls the temporary-directory sandbox used under `go run`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithWatcherErrorHandler receives runtime watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithRemote replaces the Gemini backend.
func WithRemote(remote Remote) Option {
	return platform.WithRemote(remote)
}

// WithAPIKey sets the Gemini credential.
func WithAPIKey(key string) Option {
	return platform.WithAPIKey(key)
}

// WithModel sets the Gemini model name.
func WithModel(model string) Option {
	return platform.WithModel(model)
}

// WithRemoteTimeout bounds the single remote attempt.
func WithRemoteTimeout(d time.Duration) Option {
	return platform.WithRemoteTimeout(d)
}

// WithGrounding enables web-search sources for lesson plans.
func WithGrounding(enabled bool) Option {
	return platform.WithGrounding(enabled)
}

// WithOffline forces the local templates.
func WithOffline(offline bool) Option {
	return platform.WithOffline(offline)
}

// WithOnlineCheck sets the connectivity probe.
func WithOnlineCheck(fn func(ctx context.Context) bool) Option {
	return platform.WithOnlineCheck(fn)
}

// LoadConfig reads a YAML configuration file. Use Config.Options to apply it.
func LoadConfig(path string) (Config, error) {
	return platform.LoadConfig(path)
}

// --- Factory ---

// New wires an application. The store opens lazily on first use.
func New(uri string, opts ...Option) (*App, error) {
	return platform.New(uri, opts...)
}

// Init opens a store explicitly and upgrades its schema.
func Init(uri string, opts ...Option) (core.Repository, error) {
	return platform.Init(uri, opts...)
}

// --- Safety & Utils ---

// DefaultPath is the store location used when none is configured.
func DefaultPath() string {
	return platform.DefaultPath()
}

// ResolveStorePath determines the actual store path based on safety rules.
func ResolveStorePath(userPath string, forceTemp bool) string {
	return platform.ResolveStorePath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindStoreRoot recursively looks upwards for a store root indicator.
func FindStoreRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// ExportFileName returns the dated backup file name.
func ExportFileName(t time.Time) string {
	return backup.ExportFileName(t)
}
