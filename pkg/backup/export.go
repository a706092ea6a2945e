package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/aretw0/edubrinca/pkg/adapters/fs"
	"github.com/aretw0/edubrinca/pkg/core"
	"github.com/aretw0/edubrinca/pkg/typed"
)

// Document is the native backup shape.
type Document struct {
	Plans      []*core.LessonPlan    `json:"plans"`
	Activities []*core.ActivitySheet `json:"activities"`
}

// ExportFileName returns the conventional backup file name for day t.
func ExportFileName(t time.Time) string {
	return "backup-professora-" + t.Format(time.DateOnly) + ".json"
}

// Exporter writes the whole store as a native backup document.
type Exporter struct {
	plans      *typed.Collection[core.LessonPlan, *core.LessonPlan]
	activities *typed.Collection[core.ActivitySheet, *core.ActivitySheet]
}

// NewExporter creates an Exporter reading through svc.
func NewExporter(svc *core.Service) *Exporter {
	return &Exporter{
		plans:      typed.NewCollection[core.LessonPlan](svc),
		activities: typed.NewCollection[core.ActivitySheet](svc),
	}
}

// Snapshot reads every entity, newest first. Read faults are returned so a
// damaged store never produces a silently empty backup.
func (ex *Exporter) Snapshot(ctx context.Context) (Document, error) {
	plans, err := ex.plans.List(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("export plans: %w", err)
	}
	activities, err := ex.activities.List(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("export activities: %w", err)
	}
	return Document{Plans: plans, Activities: activities}, nil
}

// Export writes the indented backup document to w.
func (ex *Exporter) Export(ctx context.Context, w io.Writer) (Document, error) {
	doc, data, err := ex.encode(ctx)
	if err != nil {
		return Document{}, err
	}
	if _, err := w.Write(data); err != nil {
		return Document{}, fmt.Errorf("export: %w", err)
	}
	return doc, nil
}

// ExportFile writes the backup to path only once the whole store has been
// read and encoded. An existing file is replaced atomically and is left
// untouched when the export fails.
func (ex *Exporter) ExportFile(ctx context.Context, path string) (Document, error) {
	doc, data, err := ex.encode(ctx)
	if err != nil {
		return Document{}, err
	}
	if err := fs.WriteFileAtomic(path, data, 0644); err != nil {
		return Document{}, fmt.Errorf("export: %w", err)
	}
	return doc, nil
}

func (ex *Exporter) encode(ctx context.Context) (Document, []byte, error) {
	doc, err := ex.Snapshot(ctx)
	if err != nil {
		return Document{}, nil, err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return Document{}, nil, fmt.Errorf("export: %w", err)
	}
	return doc, append(data, '\n'), nil
}
