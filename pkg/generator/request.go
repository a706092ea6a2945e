package generator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/edubrinca/pkg/core"
)

// Bounds accepted for generation requests.
const (
	MinDuration = 1
	MaxDuration = 600
	MinCount    = 1
	MaxCount    = 50
)

// LessonPlanRequest describes the lesson plan to produce.
type LessonPlanRequest struct {
	Subject    core.Subject
	Theme      string
	Duration   int // minutes
	Level      core.ClassLevel
	GradeLevel core.GradeLevel
	// Objective, when set, replaces the generated objective.
	Objective string
}

// Validate reports every problem with the request, wrapped in core.ErrInvalidRequest.
func (r LessonPlanRequest) Validate() error {
	var errs []error
	if !r.Subject.Valid() {
		errs = append(errs, fmt.Errorf("unknown subject %q", r.Subject))
	}
	if strings.TrimSpace(r.Theme) == "" {
		errs = append(errs, errors.New("theme is empty"))
	}
	if r.Duration < MinDuration || r.Duration > MaxDuration {
		errs = append(errs, fmt.Errorf("duration %d out of range [%d, %d]", r.Duration, MinDuration, MaxDuration))
	}
	if !r.Level.Valid() {
		errs = append(errs, fmt.Errorf("unknown class level %q", r.Level))
	}
	if !r.GradeLevel.Valid() {
		errs = append(errs, fmt.Errorf("unknown grade level %q", r.GradeLevel))
	}
	return invalid(errs)
}

// ActivityRequest describes the activity sheet to produce.
type ActivityRequest struct {
	Subject    core.Subject
	Theme      string
	Type       core.ActivityType
	Count      int
	Level      core.ClassLevel
	GradeLevel core.GradeLevel
	// Guideline is an optional free-text hint passed to the remote generator.
	Guideline string
}

// Validate reports every problem with the request, wrapped in core.ErrInvalidRequest.
func (r ActivityRequest) Validate() error {
	var errs []error
	if !r.Subject.Valid() {
		errs = append(errs, fmt.Errorf("unknown subject %q", r.Subject))
	}
	if strings.TrimSpace(r.Theme) == "" {
		errs = append(errs, errors.New("theme is empty"))
	}
	if !r.Type.Valid() {
		errs = append(errs, fmt.Errorf("unknown activity type %q", r.Type))
	}
	if r.Count < MinCount || r.Count > MaxCount {
		errs = append(errs, fmt.Errorf("count %d out of range [%d, %d]", r.Count, MinCount, MaxCount))
	}
	if !r.Level.Valid() {
		errs = append(errs, fmt.Errorf("unknown class level %q", r.Level))
	}
	if !r.GradeLevel.Valid() {
		errs = append(errs, fmt.Errorf("unknown grade level %q", r.GradeLevel))
	}
	return invalid(errs)
}

func invalid(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", core.ErrInvalidRequest, errors.Join(errs...))
}
