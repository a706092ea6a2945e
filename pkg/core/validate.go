package core

import (
	"errors"
	"fmt"
	"strings"
)

// Valid reports whether s is a known subject.
func (s Subject) Valid() bool {
	for _, v := range Subjects {
		if v == s {
			return true
		}
	}
	return false
}

// Valid reports whether g is a known grade level.
func (g GradeLevel) Valid() bool {
	for _, v := range GradeLevels {
		if v == g {
			return true
		}
	}
	return false
}

// Index returns the position of g in GradeLevels, or 0 if unknown.
func (g GradeLevel) Index() int {
	for i, v := range GradeLevels {
		if v == g {
			return i
		}
	}
	return 0
}

// Valid reports whether l is a known class level.
func (l ClassLevel) Valid() bool {
	for _, v := range ClassLevels {
		if v == l {
			return true
		}
	}
	return false
}

// Valid reports whether t is a known activity type.
func (t ActivityType) Valid() bool {
	for _, v := range ActivityTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ParseSubject matches s case-insensitively against the known subjects.
func ParseSubject(s string) (Subject, error) {
	for _, v := range Subjects {
		if strings.EqualFold(string(v), strings.TrimSpace(s)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown subject %q", s)
}

// ParseGradeLevel accepts the full label ("3º Ano") or just the year ("3").
func ParseGradeLevel(s string) (GradeLevel, error) {
	s = strings.TrimSpace(s)
	for _, v := range GradeLevels {
		if strings.EqualFold(string(v), s) || strings.HasPrefix(string(v), s+"º") {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown grade level %q", s)
}

// ParseClassLevel matches s case-insensitively against the known class levels.
func ParseClassLevel(s string) (ClassLevel, error) {
	for _, v := range ClassLevels {
		if strings.EqualFold(string(v), strings.TrimSpace(s)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown class level %q", s)
}

// ParseActivityType matches s case-insensitively against the known activity types.
func ParseActivityType(s string) (ActivityType, error) {
	for _, v := range ActivityTypes {
		if strings.EqualFold(string(v), strings.TrimSpace(s)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown activity type %q", s)
}

// Validate checks that every field a printable plan needs is present.
func (p *LessonPlan) Validate() error {
	var errs []error
	if strings.TrimSpace(p.Objective) == "" {
		errs = append(errs, errors.New("objective is empty"))
	}
	if len(p.Materials) == 0 {
		errs = append(errs, errors.New("materials are empty"))
	}
	if len(p.Steps) == 0 {
		errs = append(errs, errors.New("steps are empty"))
	}
	for i, s := range p.Steps {
		if s.Time == "" || s.Title == "" || s.Description == "" {
			errs = append(errs, fmt.Errorf("step %d is incomplete", i+1))
		}
	}
	if p.Differentiation.Remedial == "" || p.Differentiation.Advanced == "" {
		errs = append(errs, errors.New("differentiation is incomplete"))
	}
	return errors.Join(errs...)
}

// Validate checks that the sheet has at least one complete question.
func (a *ActivitySheet) Validate() error {
	var errs []error
	if len(a.Questions) == 0 {
		errs = append(errs, errors.New("questions are empty"))
	}
	for i, q := range a.Questions {
		if q.ID == "" {
			errs = append(errs, fmt.Errorf("question %d has no id", i+1))
		}
		if q.Instruction == "" || q.Content == "" {
			errs = append(errs, fmt.Errorf("question %d is incomplete", i+1))
		}
	}
	return errors.Join(errs...)
}
