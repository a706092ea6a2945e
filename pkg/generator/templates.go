package generator

import (
	"fmt"
	"strings"

	"github.com/aretw0/edubrinca/pkg/core"
)

// LocalObjectives are the offline objectives, per subject.
var LocalObjectives = map[core.Subject][]string{
	core.SubjectPortugues: {
		"Desenvolver a fluência leitora e compreensão de textos curtos.",
		"Identificar substantivos e adjetivos em frases simples.",
		"Praticar a escrita ortográfica e o uso de pontuação básica.",
		"Ampliar o vocabulário através de contos e fábulas.",
	},
	core.SubjectMatematica: {
		"Resolver situações-problema envolvendo adição e subtração.",
		"Identificar figuras geométricas e suas características.",
		"Compreender o sistema de numeração decimal (unidade, dezena).",
		"Introduzir conceitos de medidas de tempo e comprimento.",
	},
	core.SubjectCiencias: {
		"Classificar animais vertebrados e invertebrados.",
		"Identificar as partes das plantas e suas funções.",
		"Compreender a importância da reciclagem e preservação ambiental.",
		"Observar os estados físicos da água na natureza.",
	},
	core.SubjectHistoria: {
		"Identificar mudanças e permanências na história da família.",
		"Compreender a importância das datas comemorativas locais.",
		"Explorar a história do bairro e da comunidade escolar.",
		"Conhecer profissões do passado e do presente.",
	},
	core.SubjectGeografia: {
		"Identificar diferentes tipos de paisagens (natural e cultural).",
		"Localizar pontos de referência no trajeto casa-escola.",
		"Compreender a relação entre campo e cidade.",
		"Explorar os diferentes meios de transporte e comunicação.",
	},
}

// LocalMaterials is the material list of every offline plan.
var LocalMaterials = []string{"Caderno", "Lápis", "Quadro", "Recursos do professor"}

// LocalDifferentiation is the differentiation of every offline plan.
var LocalDifferentiation = core.Differentiation{
	Remedial: "Apoio visual e repetição de comandos.",
	Advanced: "Desafio de criação autônoma sobre o tema.",
}

// themePlaceholder is replaced by the request theme in step descriptions.
const themePlaceholder = "[TEMA]"

type stepTemplate struct {
	minutes     int
	title       string
	description string
}

// stepTemplates add up to referenceDuration.
var stepTemplates = []stepTemplate{
	{10, "Acolhida e Roda de Conversa", "Receber os alunos com uma música temática e perguntar o que eles já sabem sobre [TEMA]."},
	{15, "Explicação Teórica", "Apresentar os conceitos fundamentais de [TEMA] de forma visual, usando cartazes ou o quadro."},
	{20, "Atividade Prática", "Realizar exercícios de fixação em grupo ou duplas para aplicar o conteúdo de [TEMA]."},
	{5, "Encerramento", "Revisar os pontos principais e esclarecer dúvidas finais dos alunos."},
}

const referenceDuration = 50

// localObjective picks the objective deterministically from the grade.
func localObjective(subject core.Subject, grade core.GradeLevel, theme string) string {
	options := LocalObjectives[subject]
	if len(options) == 0 {
		return fmt.Sprintf("Explorar o tema %s.", theme)
	}
	return fmt.Sprintf("%s (Foco: %s)", options[grade.Index()%len(options)], theme)
}

// localSteps scales the step templates to duration. Every step gets at least
// one minute and the last step absorbs the rounding remainder.
func localSteps(theme string, duration int) []core.Step {
	steps := make([]core.Step, len(stepTemplates))
	used := 0
	for i, tpl := range stepTemplates {
		minutes := tpl.minutes * duration / referenceDuration
		if i == len(stepTemplates)-1 {
			minutes = duration - used
		}
		if minutes < 1 {
			minutes = 1
		}
		used += minutes
		steps[i] = core.Step{
			Time:        fmt.Sprintf("%d min", minutes),
			Title:       tpl.title,
			Description: strings.ReplaceAll(tpl.description, themePlaceholder, theme),
		}
	}
	return steps
}

func localPlan(req LessonPlanRequest) *core.LessonPlan {
	objective := req.Objective
	if objective == "" {
		objective = localObjective(req.Subject, req.GradeLevel, req.Theme)
	}
	materials := make([]string, len(LocalMaterials))
	copy(materials, LocalMaterials)

	return &core.LessonPlan{
		Subject:         req.Subject,
		Theme:           req.Theme,
		GradeLevel:      req.GradeLevel,
		Duration:        req.Duration,
		Level:           req.Level,
		Objective:       objective,
		Materials:       materials,
		Steps:           localSteps(req.Theme, req.Duration),
		Differentiation: LocalDifferentiation,
		Sources:         []core.Source{},
	}
}

// instructionTemplates hold one instruction per activity type; %s is the theme.
var instructionTemplates = map[core.ActivityType]string{
	core.ActivityComplete:        "Complete as lacunas sobre %s.",
	core.ActivityLigue:           "Ligue cada item à sua definição sobre %s.",
	core.ActivityMultiplaEscolha: "Marque a opção correta sobre %s.",
	core.ActivityVerdadeiroFalso: "Escreva V para verdadeiro ou F para falso sobre %s.",
	core.ActivityDesenheEscreva:  "Desenhe e escreva sobre %s.",
	core.ActivityCacaPalavras:    "Encontre e circule palavras ligadas a %s.",
	core.ActivityProbleminhas:    "Resolva o probleminha sobre %s.",
}

const (
	writingLine     = "____________________________________________________"
	localAnswer     = "Resposta pessoal baseada no conteúdo de sala."
	defaultTemplate = "Exercício sobre %s."
)

func localQuestions(theme string, activity core.ActivityType, count int) []core.Question {
	tpl, ok := instructionTemplates[activity]
	if !ok {
		tpl = defaultTemplate
	}
	questions := make([]core.Question, count)
	for i := range questions {
		questions[i] = core.Question{
			Instruction: fmt.Sprintf("%d. %s", i+1, fmt.Sprintf(tpl, theme)),
			Content: fmt.Sprintf("Baseado no que estudamos hoje, escreva ou desenhe sobre %s no espaço abaixo.\n%s\n%s",
				theme, writingLine, writingLine),
			Answer: localAnswer,
		}
	}
	return questions
}

func localActivity(req ActivityRequest) *core.ActivitySheet {
	return &core.ActivitySheet{
		Subject:      req.Subject,
		Theme:        req.Theme,
		GradeLevel:   req.GradeLevel,
		Type:         req.Type,
		Level:        req.Level,
		SchoolHeader: fullHeader,
		Questions:    localQuestions(req.Theme, req.Type, req.Count),
		Sources:      []core.Source{},
	}
}

var fullHeader = core.SchoolHeader{StudentName: true, Date: true, TeacherName: true}
