package backup

import (
	"fmt"
	"strings"

	"github.com/aretw0/edubrinca/pkg/core"
)

// The category repository export nests category → age bracket → lessons and
// exercises, with Portuguese field names.

// isRepositoryFormat detects the category repository export by its meta marker
// and its categorias list.
func isRepositoryFormat(doc map[string]any) bool {
	if doc == nil || !truthy(doc["meta"]) {
		return false
	}
	_, ok := list(doc["categorias"])
	return ok
}

type subjectRule struct {
	keywords []string
	subject  core.Subject
}

// subjectRules map a category theme to a subject; the first match wins.
var subjectRules = []subjectRule{
	{[]string{"matemática", "números"}, core.SubjectMatematica},
	{[]string{"ciências", "corpo", "animais"}, core.SubjectCiencias},
	{[]string{"história", "tempo", "rotina"}, core.SubjectHistoria},
	{[]string{"geografia", "espaço", "mapa"}, core.SubjectGeografia},
}

func subjectFor(theme string) core.Subject {
	t := strings.ToLower(theme)
	for _, r := range subjectRules {
		for _, kw := range r.keywords {
			if strings.Contains(t, kw) {
				return r.subject
			}
		}
	}
	return core.SubjectPortugues
}

// gradeFor maps an age bracket to a school year.
func gradeFor(bracket string) core.GradeLevel {
	switch bracket {
	case "4-6":
		return core.Grade2
	case "7-9":
		return core.Grade3
	default:
		return core.Grade4
	}
}

var importedDifferentiation = core.Differentiation{
	Remedial: "Apoio individualizado e uso de materiais concretos.",
	Advanced: "Incentivar registro detalhado e ajuda aos colegas.",
}

const (
	importedStepTime      = "10 min"
	importedDuration      = 50
	associationSeparator  = " ----------- "
	blankAnswer           = "____"
	instructionChoice     = "Marque a opção correta:"
	instructionOpenAnswer = "Responda:"
)

// convertRepository turns a category repository export into entities.
func convertRepository(doc map[string]any, now int64) ([]*core.LessonPlan, []*core.ActivitySheet) {
	var plans []*core.LessonPlan
	var activities []*core.ActivitySheet

	categories, _ := list(doc["categorias"])
	for _, c := range categories {
		cat := object(c)
		if cat == nil {
			continue
		}
		theme := text(cat["tema"])
		subject := subjectFor(theme)

		brackets, _ := list(cat["faixas_etarias"])
		for _, b := range brackets {
			bracket := object(b)
			if bracket == nil {
				continue
			}
			grade := gradeFor(text(bracket["faixa_etaria"]))

			lessons, _ := list(bracket["aulas"])
			for _, l := range lessons {
				if lesson := object(l); lesson != nil {
					plans = append(plans, convertLesson(lesson, subject, grade, now))
				}
			}

			if exercises, _ := list(bracket["exercicios"]); len(exercises) > 0 {
				activities = append(activities, convertExercises(exercises, theme, subject, grade, now))
			}
		}
	}
	return plans, activities
}

func convertLesson(lesson map[string]any, subject core.Subject, grade core.GradeLevel, now int64) *core.LessonPlan {
	theme := text(lesson["titulo"])
	if theme == "" {
		theme = "Aula Importada"
	}
	level := core.LevelRegular
	if text(lesson["nivel_dificuldade"]) == "facil" {
		level = core.LevelRemedial
	}

	objective := "Objetivo importado"
	if goal, ok := lesson["meta_pedagogica"].(string); ok {
		objective = goal
	} else if goals, _ := list(lesson["objetivos"]); len(goals) > 0 && truthy(goals[0]) {
		objective = text(goals[0])
	}

	materials := []string{"Caderno", "Lápis"}
	if items, ok := list(lesson["materiais"]); ok {
		materials = make([]string, 0, len(items))
		for _, m := range items {
			materials = append(materials, text(m))
		}
	}

	steps := []core.Step{}
	if lines, ok := list(lesson["passo_a_passo"]); ok {
		for i, line := range lines {
			steps = append(steps, core.Step{
				Time:        importedStepTime,
				Title:       fmt.Sprintf("Passo %d", i+1),
				Description: text(line),
			})
		}
	}

	return &core.LessonPlan{
		ID:              text(lesson["id"]),
		CreatedAt:       now,
		Subject:         subject,
		Theme:           theme,
		GradeLevel:      grade,
		Duration:        importedDuration,
		Level:           level,
		Objective:       objective,
		Materials:       materials,
		Steps:           steps,
		Differentiation: importedDifferentiation,
		Sources:         []core.Source{},
	}
}

// convertExercises batches every exercise of one age bracket into a single sheet.
func convertExercises(exercises []any, theme string, subject core.Subject, grade core.GradeLevel, now int64) *core.ActivitySheet {
	questions := make([]core.Question, 0, len(exercises))
	for _, e := range exercises {
		ex := object(e)
		if ex == nil {
			continue
		}
		questions = append(questions, convertExercise(ex))
	}

	sheetTheme := "Exercícios"
	if theme != "" {
		sheetTheme = theme + " - Exercícios"
	}
	return &core.ActivitySheet{
		CreatedAt:    now,
		Subject:      subject,
		Theme:        sheetTheme,
		GradeLevel:   grade,
		Type:         core.ActivityAvaliativa,
		Level:        core.LevelRegular,
		SchoolHeader: core.SchoolHeader{StudentName: true, Date: true, TeacherName: true},
		Questions:    questions,
		Sources:      []core.Source{},
	}
}

func convertExercise(ex map[string]any) core.Question {
	kind := text(ex["tipo"])
	prompt := text(ex["pergunta"])
	content := prompt

	options, hasOptions := list(ex["opcoes"])
	pairs, hasPairs := list(ex["itens"])
	switch {
	case kind == "multipla_escolha" && hasOptions:
		lines := make([]string, len(options))
		for i, opt := range options {
			lines[i] = "(   ) " + text(opt)
		}
		content = prompt + "\n\n" + strings.Join(lines, "\n")
	case kind == "associacao" && hasPairs:
		lines := make([]string, 0, len(pairs))
		for _, p := range pairs {
			pair := object(p)
			answer := text(pair["letra_correta"])
			if answer == "" {
				answer = blankAnswer
			}
			lines = append(lines, text(pair["figura"])+associationSeparator+answer)
		}
		content = prompt + "\n\n" + strings.Join(lines, "\n")
	}

	instruction := instructionOpenAnswer
	if kind == "multipla_escolha" {
		instruction = instructionChoice
	}
	return core.Question{
		ID:          text(ex["id"]),
		Instruction: instruction,
		Content:     content,
		Answer:      text(ex["resposta"]),
	}
}
