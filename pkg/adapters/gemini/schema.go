package gemini

import (
	"encoding/json"

	"google.golang.org/genai"

	"github.com/aretw0/edubrinca/pkg/core"
)

func str(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

var planSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"objective": str("Objetivo pedagógico claro"),
		"materials": {
			Type:        genai.TypeArray,
			Items:       str(""),
			Description: "Lista de materiais necessários",
		},
		"steps": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"time":        str("Tempo estimado (ex: 10 min)"),
					"title":       str("Título da etapa"),
					"description": str("Explicação detalhada da atividade"),
				},
				Required: []string{"time", "title", "description"},
			},
		},
		"differentiation": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"remedial": str("Dica para alunos com dificuldade"),
				"advanced": str("Desafio para alunos avançados"),
			},
			Required: []string{"remedial", "advanced"},
		},
	},
	Required: []string{"objective", "materials", "steps", "differentiation"},
}

var activitySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"questions": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"instruction": str("O comando da questão (ex: Ligue os pontos)"),
					"content":     str("O corpo da questão ou os itens"),
					"answer":      str("Gabarito para o professor"),
				},
				Required: []string{"instruction", "content", "answer"},
			},
		},
	},
	Required: []string{"questions"},
}

var responseSchemas = map[core.Kind]*genai.Schema{
	core.KindLessonPlan:    planSchema,
	core.KindActivitySheet: activitySchema,
}

// schemaInstruction renders the kind's schema as a prompt suffix.
func schemaInstruction(kind core.Kind) string {
	raw, err := json.Marshal(responseSchemas[kind])
	if err != nil {
		return "Responda apenas com um objeto JSON."
	}
	return "Responda apenas com um objeto JSON que siga este schema: " + string(raw)
}
