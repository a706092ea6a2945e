// Package generator produces lesson plans and activity sheets. It makes at most
// one attempt against a Remote backend and otherwise falls back to local
// templates, so a request only fails on invalid input or a storage fault.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/edubrinca/pkg/core"
	"github.com/aretw0/edubrinca/pkg/typed"
)

// DefaultTimeout bounds the single remote attempt.
const DefaultTimeout = 45 * time.Second

// Mode tells which branch produced an entity.
type Mode string

const (
	ModeRemote   Mode = "remote"
	ModeFallback Mode = "fallback"
)

// State is a step of the per-request state machine.
type State string

const (
	StateInit          State = "Init"
	StateAttemptRemote State = "AttemptRemote"
	StateSuccess       State = "Success"
	StateRemoteFailed  State = "RemoteFailed"
	StateFallbackLocal State = "FallbackLocal"
	StatePersisted     State = "Persisted"
	StateDone          State = "Done"
)

// Config wires the generator's collaborators.
type Config struct {
	// Remote is optional; without it every request uses the local templates.
	Remote Remote
	// Online reports connectivity. Nil presumes online.
	Online func(ctx context.Context) bool
	// Timeout bounds the remote attempt. Zero means DefaultTimeout.
	Timeout time.Duration
	// Grounding enables web-search sources for lesson plans.
	Grounding bool
	Logger    *slog.Logger
}

// Generator turns requests into persisted entities.
type Generator struct {
	remote    Remote
	online    func(ctx context.Context) bool
	timeout   time.Duration
	grounding bool
	logger    *slog.Logger

	plans      *typed.Collection[core.LessonPlan, *core.LessonPlan]
	activities *typed.Collection[core.ActivitySheet, *core.ActivitySheet]
}

// New creates a Generator that persists through svc.
func New(svc *core.Service, cfg Config) *Generator {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Generator{
		remote:     cfg.Remote,
		online:     cfg.Online,
		timeout:    cfg.Timeout,
		grounding:  cfg.Grounding,
		logger:     cfg.Logger,
		plans:      typed.NewCollection[core.LessonPlan](svc),
		activities: typed.NewCollection[core.ActivitySheet](svc),
	}
}

// GeneratePlan produces, persists and returns a lesson plan.
func (g *Generator) GeneratePlan(ctx context.Context, req LessonPlanRequest) (*core.LessonPlan, Mode, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}
	log := g.logger.With("kind", core.KindLessonPlan, "theme", req.Theme)

	plan, mode := run(ctx, g, log,
		RemoteCall{Kind: core.KindLessonPlan, Prompt: planPrompt(req), Grounding: g.grounding},
		func(res RemoteResult) (*core.LessonPlan, error) { return remotePlan(req, res) },
		func() *core.LessonPlan { return localPlan(req) },
	)

	plan.ID = core.NewID()
	plan.CreatedAt = core.NowMillis()
	if err := g.plans.Put(ctx, plan); err != nil {
		return nil, mode, err
	}
	log.Debug("generator transition", "state", StatePersisted, "id", plan.ID)
	log.Debug("generator transition", "state", StateDone, "mode", mode)
	return plan, mode, nil
}

// GenerateActivity produces, persists and returns an activity sheet.
func (g *Generator) GenerateActivity(ctx context.Context, req ActivityRequest) (*core.ActivitySheet, Mode, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}
	log := g.logger.With("kind", core.KindActivitySheet, "theme", req.Theme)

	sheet, mode := run(ctx, g, log,
		RemoteCall{Kind: core.KindActivitySheet, Prompt: activityPrompt(req)},
		func(res RemoteResult) (*core.ActivitySheet, error) { return remoteActivity(req, res) },
		func() *core.ActivitySheet { return localActivity(req) },
	)

	sheet.ID = core.NewID()
	sheet.CreatedAt = core.NowMillis()
	for i := range sheet.Questions {
		if sheet.Questions[i].ID == "" {
			sheet.Questions[i].ID = core.NewID()
		}
	}
	if err := g.activities.Put(ctx, sheet); err != nil {
		return nil, mode, err
	}
	log.Debug("generator transition", "state", StatePersisted, "id", sheet.ID)
	log.Debug("generator transition", "state", StateDone, "mode", mode)
	return sheet, mode, nil
}

// run drives Init → AttemptRemote → (Success | RemoteFailed → FallbackLocal).
// It never fails: any remote fault ends in the local branch.
func run[T any](ctx context.Context, g *Generator, log *slog.Logger, call RemoteCall,
	accept func(RemoteResult) (T, error), fallback func() T) (T, Mode) {

	log.Debug("generator transition", "state", StateInit)
	if err := g.available(ctx); err != nil {
		log.Debug("generator transition", "state", StateFallbackLocal, "reason", err)
		return fallback(), ModeFallback
	}

	log.Debug("generator transition", "state", StateAttemptRemote)
	out, err := attempt(ctx, g, call, accept)
	if err == nil {
		log.Debug("generator transition", "state", StateSuccess)
		return out, ModeRemote
	}

	log.Warn("remote generation failed, using local templates", "state", StateRemoteFailed, "error", err)
	log.Debug("generator transition", "state", StateFallbackLocal)
	return fallback(), ModeFallback
}

func (g *Generator) available(ctx context.Context) error {
	if g.remote == nil {
		return fmt.Errorf("%w: not configured", core.ErrRemoteUnavailable)
	}
	if g.online != nil && !g.online(ctx) {
		return fmt.Errorf("%w: offline", core.ErrRemoteUnavailable)
	}
	if err := g.remote.Ready(ctx); err != nil {
		return fmt.Errorf("%w: %w", core.ErrRemoteUnavailable, err)
	}
	return nil
}

func attempt[T any](ctx context.Context, g *Generator, call RemoteCall, accept func(RemoteResult) (T, error)) (T, error) {
	var zero T
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	res, err := g.remote.Generate(callCtx, call)
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", g.timeout, err)
		}
		return zero, fmt.Errorf("%w: %w", core.ErrRemoteCallFailed, err)
	}
	out, err := accept(res)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", core.ErrRemoteCallFailed, err)
	}
	return out, nil
}

func remotePlan(req LessonPlanRequest, res RemoteResult) (*core.LessonPlan, error) {
	var p planPayload
	if err := decodePayload(res.Text, &p); err != nil {
		return nil, err
	}
	sources := res.Sources
	if sources == nil {
		sources = []core.Source{}
	}
	plan := &core.LessonPlan{
		Subject:         req.Subject,
		Theme:           req.Theme,
		GradeLevel:      req.GradeLevel,
		Duration:        req.Duration,
		Level:           req.Level,
		Objective:       p.Objective,
		Materials:       p.Materials,
		Steps:           p.Steps,
		Differentiation: p.Differentiation,
		Sources:         sources,
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return plan, nil
}

func remoteActivity(req ActivityRequest, res RemoteResult) (*core.ActivitySheet, error) {
	var p activityPayload
	if err := decodePayload(res.Text, &p); err != nil {
		return nil, err
	}
	questions := make([]core.Question, len(p.Questions))
	for i, q := range p.Questions {
		questions[i] = core.Question{ID: core.NewID(), Instruction: q.Instruction, Content: q.Content, Answer: q.Answer}
	}
	sources := res.Sources
	if sources == nil {
		sources = []core.Source{}
	}
	sheet := &core.ActivitySheet{
		Subject:      req.Subject,
		Theme:        req.Theme,
		GradeLevel:   req.GradeLevel,
		Type:         req.Type,
		Level:        req.Level,
		SchoolHeader: fullHeader,
		Questions:    questions,
		Sources:      sources,
	}
	if err := sheet.Validate(); err != nil {
		return nil, err
	}
	return sheet, nil
}
