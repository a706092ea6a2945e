// Package edubrinca is the Composition Root for the EduBrinca application.
//
// It connects the content generator, the local store adapters and the backup
// importer using the Hexagonal Architecture pattern.
//
// EduBrinca produces lesson plans and printable activity sheets for early
// primary school. Generation makes at most one attempt against a hosted model
// (Google Gemini) and otherwise falls back to deterministic local templates,
// so a teacher always gets a complete result, online or not. Every generated
// or imported entity is persisted in a local store: a directory of JSON/YAML
// files by default, or a single SQLite database.
//
// Usage:
//
//	app, err := edubrinca.New("", edubrinca.WithAdapter("sqlite"))
//	if err != nil {
//		return err
//	}
//	defer app.Close()
//
//	plan, mode, err := app.Generator.GeneratePlan(ctx, edubrinca.LessonPlanRequest{
//		Subject:    core.SubjectCiencias,
//		Theme:      "Ciclo da Água",
//		Duration:   50,
//		Level:      core.LevelRegular,
//		GradeLevel: core.Grade3,
//	})
//
//	// Re-read the library, newest first.
//	plans := app.Plans.ListAll(ctx)
package edubrinca
