// Package backup restores entities from arbitrary JSON documents and writes
// the native backup document that restores them again.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/edubrinca/pkg/core"
	"github.com/aretw0/edubrinca/pkg/typed"
)

// Format names the strategy that recovered the entities.
type Format string

const (
	FormatRepository Format = "repository"
	FormatNative     Format = "native"
	FormatScan       Format = "scan"
)

// Report summarizes one import.
type Report struct {
	Format     Format
	Plans      int // plans persisted
	Activities int // activities persisted
}

// Total is the number of persisted entities.
func (r Report) Total() int {
	return r.Plans + r.Activities
}

// Importer recovers entities from untrusted JSON and persists them one at a time.
type Importer struct {
	svc    *core.Service
	logger *slog.Logger
	now    func() int64
}

// NewImporter creates an Importer writing through svc.
func NewImporter(svc *core.Service) *Importer {
	return &Importer{svc: svc, logger: svc.Logger(), now: core.NowMillis}
}

// ImportFile reads and imports one file.
func (im *Importer) ImportFile(ctx context.Context, path string) (Report, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %w", core.ErrInvalidFormat, err)
	}
	return im.importBytes(ctx, raw)
}

// Import reads the whole document from r and imports it.
func (im *Importer) Import(ctx context.Context, r io.Reader) (Report, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %w", core.ErrInvalidFormat, err)
	}
	return im.importBytes(ctx, raw)
}

func (im *Importer) importBytes(ctx context.Context, raw []byte) (Report, error) {
	plans, activities, format, err := im.Recover(raw)
	if err != nil {
		return Report{}, err
	}
	im.logger.Info("importing backup", "format", format, "plans", len(plans), "activities", len(activities))

	report := Report{Format: format}
	for _, p := range plans {
		if err := typed.Put(ctx, im.svc, p); err != nil {
			return report, fmt.Errorf("import aborted after %d entities: %w", report.Total(), err)
		}
		report.Plans++
	}
	for _, a := range activities {
		if err := typed.Put(ctx, im.svc, a); err != nil {
			return report, fmt.Errorf("import aborted after %d entities: %w", report.Total(), err)
		}
		report.Activities++
	}
	return report, nil
}

// Recover parses raw and extracts entities without persisting them.
// Every returned entity has an id and a creation time.
func (im *Importer) Recover(raw []byte) ([]*core.LessonPlan, []*core.ActivitySheet, Format, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, "", fmt.Errorf("%w: %w", core.ErrInvalidFormat, err)
	}
	switch doc.(type) {
	case map[string]any, []any:
	default:
		return nil, nil, "", fmt.Errorf("%w: top level is neither an object nor a list", core.ErrInvalidFormat)
	}

	now := im.now()
	var plans []*core.LessonPlan
	var activities []*core.ActivitySheet
	var format Format

	obj := object(doc)
	switch {
	case isRepositoryFormat(obj):
		format = FormatRepository
		plans, activities = convertRepository(obj, now)
	default:
		format = FormatNative
		plans, activities = im.native(obj)
		if len(plans)+len(activities) == 0 {
			format = FormatScan
			plans, activities = im.scanned(doc)
		}
	}

	if len(plans)+len(activities) == 0 {
		return nil, nil, format, fmt.Errorf("%w; structure: [%s]",
			core.ErrNoCompatibleData, strings.Join(topLevelKeys(raw), ", "))
	}

	for _, p := range plans {
		complete(p, now)
	}
	for _, a := range activities {
		complete(a, now)
		for i := range a.Questions {
			if a.Questions[i].ID == "" {
				a.Questions[i].ID = core.NewID()
			}
		}
	}
	return plans, activities, format, nil
}

// native passes through top-level plans and activities lists.
func (im *Importer) native(obj map[string]any) ([]*core.LessonPlan, []*core.ActivitySheet) {
	if obj == nil {
		return nil, nil
	}
	var plans []*core.LessonPlan
	var activities []*core.ActivitySheet
	if items, ok := list(obj["plans"]); ok {
		for _, item := range items {
			if node := object(item); node != nil {
				if p := im.decodePlan(node); p != nil {
					plans = append(plans, p)
				}
			}
		}
	}
	if items, ok := list(obj["activities"]); ok {
		for _, item := range items {
			if node := object(item); node != nil {
				if a := im.decodeActivity(node); a != nil {
					activities = append(activities, a)
				}
			}
		}
	}
	return plans, activities
}

func (im *Importer) scanned(doc any) ([]*core.LessonPlan, []*core.ActivitySheet) {
	planNodes, activityNodes := scan(doc)
	var plans []*core.LessonPlan
	var activities []*core.ActivitySheet
	for _, node := range planNodes {
		if p := im.decodePlan(node); p != nil {
			plans = append(plans, p)
		}
	}
	for _, node := range activityNodes {
		if a := im.decodeActivity(node); a != nil {
			activities = append(activities, a)
		}
	}
	return plans, activities
}

func (im *Importer) decodePlan(node map[string]any) *core.LessonPlan {
	var p core.LessonPlan
	if err := decodeLenient(withTextIDs(node), &p); err != nil {
		im.logger.Warn("skipping undecodable plan", "error", err)
		return nil
	}
	return &p
}

func (im *Importer) decodeActivity(node map[string]any) *core.ActivitySheet {
	var a core.ActivitySheet
	if err := decodeLenient(withTextIDs(node), &a); err != nil {
		im.logger.Warn("skipping undecodable activity", "error", err)
		return nil
	}
	return &a
}

// complete assigns a missing id and creation time.
func complete(e core.Entity, now int64) {
	if e.EntityID() == "" {
		e.SetEntityID(core.NewID())
	}
	if e.Created() == 0 {
		e.SetCreated(now)
	}
}
