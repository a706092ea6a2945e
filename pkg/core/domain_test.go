package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/edubrinca/pkg/core"
)

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	last := make(map[byte]bool)
	for i := 0; i < 1000; i++ {
		id := core.NewID()
		require.Len(t, id, 13)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		last[id[12]] = true
	}
	// No position holds the fixed UUID version nibble.
	assert.Greater(t, len(last), 1, "final character never varies")
}

func TestKind_Collection(t *testing.T) {
	assert.Equal(t, core.CollectionPlans, (&core.LessonPlan{}).Kind().Collection())
	assert.Equal(t, core.CollectionActivities, (&core.ActivitySheet{}).Kind().Collection())
	assert.Empty(t, core.Kind("other").Collection())
}

func TestParseEnums(t *testing.T) {
	s, err := core.ParseSubject("matematica")
	require.NoError(t, err)
	assert.Equal(t, core.SubjectMatematica, s)

	g, err := core.ParseGradeLevel("3")
	require.NoError(t, err)
	assert.Equal(t, core.Grade3, g)

	g, err = core.ParseGradeLevel("4º Ano")
	require.NoError(t, err)
	assert.Equal(t, core.Grade4, g)

	l, err := core.ParseClassLevel("reforço")
	require.NoError(t, err)
	assert.Equal(t, core.LevelRemedial, l)

	a, err := core.ParseActivityType("ligue")
	require.NoError(t, err)
	assert.Equal(t, core.ActivityLigue, a)

	_, err = core.ParseSubject("Artes")
	assert.Error(t, err)
}

func TestLessonPlan_Validate(t *testing.T) {
	plan := &core.LessonPlan{
		Objective: "Ler",
		Materials: []string{"Lápis"},
		Steps:     []core.Step{{Time: "10 min", Title: "Início", Description: "Roda"}},
		Differentiation: core.Differentiation{
			Remedial: "Apoio",
			Advanced: "Desafio",
		},
	}
	require.NoError(t, plan.Validate())

	plan.Steps = nil
	assert.ErrorContains(t, plan.Validate(), "steps are empty")

	plan.Steps = []core.Step{{Title: "sem tempo"}}
	plan.Differentiation.Advanced = ""
	err := plan.Validate()
	assert.ErrorContains(t, err, "step 1 is incomplete")
	assert.ErrorContains(t, err, "differentiation is incomplete")
}

func TestActivitySheet_Validate(t *testing.T) {
	sheet := &core.ActivitySheet{}
	assert.ErrorContains(t, sheet.Validate(), "questions are empty")

	sheet.Questions = []core.Question{{Instruction: "Responda", Content: "1+1"}}
	assert.ErrorContains(t, sheet.Validate(), "question 1 has no id")

	sheet.Questions[0].ID = "q1"
	assert.NoError(t, sheet.Validate())
}
