package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/aretw0/edubrinca/pkg/core"
)

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// collectionArg accepts "plan", "plans", "activity", "activities" or "atividades".
func collectionArg(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plan", "plans", "plano", "planos":
		return core.CollectionPlans, nil
	case "activity", "activities", "atividade", "atividades":
		return core.CollectionActivities, nil
	}
	return "", fmt.Errorf("unknown collection %q (want plans or activities)", s)
}

func created(ms int64) string {
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}

func writePlan(w io.Writer, p *core.LessonPlan) {
	fmt.Fprintf(w, "%s | %s | %s | %d min | %s\n", p.Theme, p.Subject, p.GradeLevel, p.Duration, p.Level)
	fmt.Fprintf(w, "\nObjetivo: %s\n", p.Objective)
	fmt.Fprintf(w, "Materiais: %s\n\n", strings.Join(p.Materials, ", "))
	for i, s := range p.Steps {
		fmt.Fprintf(w, "%d. %s (%s)\n   %s\n", i+1, s.Title, s.Time, s.Description)
	}
	fmt.Fprintf(w, "\nReforço: %s\nAvançado: %s\n", p.Differentiation.Remedial, p.Differentiation.Advanced)
	writeSources(w, p.Sources)
}

func writeActivity(w io.Writer, a *core.ActivitySheet) {
	fmt.Fprintf(w, "%s | %s | %s | %s | %s\n\n", a.Theme, a.Subject, a.GradeLevel, a.Type, a.Level)
	for _, q := range a.Questions {
		fmt.Fprintf(w, "%s\n%s\n\n", q.Instruction, q.Content)
	}
	var answers []string
	for i, q := range a.Questions {
		if q.Answer != "" {
			answers = append(answers, fmt.Sprintf("%d) %s", i+1, q.Answer))
		}
	}
	if len(answers) > 0 {
		fmt.Fprintf(w, "Gabarito: %s\n", strings.Join(answers, "  "))
	}
	writeSources(w, a.Sources)
}

func writeSources(w io.Writer, sources []core.Source) {
	if len(sources) == 0 {
		return
	}
	fmt.Fprintln(w, "\nFontes:")
	for _, s := range sources {
		fmt.Fprintf(w, "- %s <%s>\n", s.Title, s.URI)
	}
}

func writeTable(w io.Writer, plans []*core.LessonPlan, activities []*core.ActivitySheet) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tID\tCREATED\tSUBJECT\tGRADE\tTHEME")
	for _, p := range plans {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", p.Kind(), p.ID, created(p.CreatedAt), p.Subject, p.GradeLevel, p.Theme)
	}
	for _, a := range activities {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", a.Kind(), a.ID, created(a.CreatedAt), a.Subject, a.GradeLevel, a.Theme)
	}
	return tw.Flush()
}
