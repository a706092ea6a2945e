package platform

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/edubrinca/pkg/adapters/fs"
	"github.com/aretw0/edubrinca/pkg/adapters/gemini"
	"github.com/aretw0/edubrinca/pkg/adapters/memory"
	"github.com/aretw0/edubrinca/pkg/adapters/sqlite"
	"github.com/aretw0/edubrinca/pkg/backup"
	"github.com/aretw0/edubrinca/pkg/core"
	"github.com/aretw0/edubrinca/pkg/generator"
	"github.com/aretw0/edubrinca/pkg/typed"
)

// App is the wired application: one store handle shared by the generator,
// the library views and the backup importer/exporter.
type App struct {
	Service    *core.Service
	Plans      *typed.Collection[core.LessonPlan, *core.LessonPlan]
	Activities *typed.Collection[core.ActivitySheet, *core.ActivitySheet]
	Generator  *generator.Generator
	Importer   *backup.Importer
	Exporter   *backup.Exporter
	Logger     *slog.Logger
}

// New wires an application. The uri is adapter-specific: a directory for
// "fs", a directory or database file for "sqlite", ignored for "memory".
// An empty uri falls back to WithPath, then DefaultPath.
//
// No I/O happens here; the store opens on first use.
func New(uri string, opts ...Option) (*App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	repo, err := build(uri, o)
	if err != nil {
		return nil, err
	}

	svc := core.NewService(newHandle(repo), o.logger)

	remote := o.remote
	if remote == nil && !o.offline {
		remote = gemini.New(gemini.Config{
			APIKey: o.apiKey,
			Model:  o.model,
			Logger: o.logger,
		})
	}
	online := o.online
	if o.offline {
		online = func(context.Context) bool { return false }
	}

	return &App{
		Service:    svc,
		Plans:      typed.NewCollection[core.LessonPlan](svc),
		Activities: typed.NewCollection[core.ActivitySheet](svc),
		Generator: generator.New(svc, generator.Config{
			Remote:    remote,
			Online:    online,
			Timeout:   o.timeout,
			Grounding: o.grounding,
			Logger:    o.logger,
		}),
		Importer: backup.NewImporter(svc),
		Exporter: backup.NewExporter(svc),
		Logger:   o.logger,
	}, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.Service.Close()
}

// Init opens a store explicitly: directories or tables are created and the
// schema is upgraded. It returns the configured core.Repository.
func Init(uri string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	repo, err := build(uri, o)
	if err != nil {
		return nil, err
	}
	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

// build selects the adapter without touching storage.
func build(uri string, o *options) (core.Repository, error) {
	if o.repository != nil {
		return o.repository, nil
	}

	switch o.adapter {
	case "fs":
		return fs.NewRepository(fs.Config{
			Path:         resolvePath(uri, o),
			Format:       o.format,
			ReadOnly:     o.readOnly,
			Logger:       o.logger,
			SystemDir:    o.systemDir,
			ErrorHandler: o.watcherErrorHandler,
		}), nil
	case "sqlite":
		return sqlite.NewRepository(sqlite.Config{
			Path:     resolvePath(uri, o),
			ReadOnly: o.readOnly,
			Logger:   o.logger,
		}), nil
	case "memory":
		return memory.NewRepository(), nil
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}

// resolvePath applies the dev sandbox. Read-only stores are inherently safe
// and always use the real path.
func resolvePath(uri string, o *options) string {
	path := uri
	if path == "" {
		path = o.path
	}

	bypass := o.readOnly || !o.devSafety
	useTemp := o.tempDir || (IsDevRun() && !bypass)
	resolved := ResolveStorePath(path, useTemp)

	if o.logger != nil && useTemp && resolved != path {
		o.logger.Warn("running in SAFE MODE (dev sandbox)", "original_path", path, "resolved_path", resolved)
	}
	return resolved
}
