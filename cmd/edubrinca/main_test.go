package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/edubrinca"
	"github.com/aretw0/edubrinca/pkg/core"
)

func run(t *testing.T, args ...string) {
	t.Helper()
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
}

func TestCollectionArg(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plans", core.CollectionPlans},
		{"Plan", core.CollectionPlans},
		{"planos", core.CollectionPlans},
		{"activities", core.CollectionActivities},
		{"atividade", core.CollectionActivities},
	}
	for _, tt := range tests {
		got, err := collectionArg(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := collectionArg("notes")
	assert.Error(t, err)
}

func TestStoreURI(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "turma", "a")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.Mkdir(filepath.Join(root, ".edubrinca"), 0755))
	t.Chdir(nested)

	storePath = ""
	assert.Equal(t, root, storeURI(false))
	assert.Empty(t, storeURI(true))

	storePath = "/srv/escola"
	defer func() { storePath = "" }()
	assert.Equal(t, "/srv/escola", storeURI(false))
}

func TestCommands_GenerateListExportImport(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	backupFile := filepath.Join(t.TempDir(), "backup.json")

	run(t, "--path", src, "--offline", "plan", "--theme", "Água", "--subject", "ciências", "--grade", "2")
	run(t, "--path", src, "--offline", "activity", "--theme", "Frações", "--subject", "Matematica", "--type", "ligue", "--count", "3")
	run(t, "--path", src, "export", "--out", backupFile)
	run(t, "--path", dst, "--store", "sqlite", "import", backupFile)

	ctx := context.Background()
	app, err := edubrinca.New(dst, edubrinca.WithAdapter("sqlite"), edubrinca.WithOffline(true))
	require.NoError(t, err)
	defer app.Close()

	plans := app.Plans.ListAll(ctx)
	require.Len(t, plans, 1)
	assert.Equal(t, "Água", plans[0].Theme)
	assert.Equal(t, core.Grade2, plans[0].GradeLevel)

	sheets := app.Activities.ListAll(ctx)
	require.Len(t, sheets, 1)
	assert.Len(t, sheets[0].Questions, 3)

	run(t, "--path", dst, "--store", "sqlite", "delete", "plans", plans[0].ID)
	assert.Empty(t, app.Plans.ListAll(ctx))
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	plans := []*core.LessonPlan{{ID: "p1", Subject: core.SubjectHistoria, GradeLevel: core.Grade4, Theme: "Minha Família"}}
	activities := []*core.ActivitySheet{{ID: "a1", Subject: core.SubjectPortugues, GradeLevel: core.Grade2, Theme: "Vogais"}}

	require.NoError(t, writeTable(&buf, plans, activities))
	out := buf.String()
	assert.Contains(t, out, "KIND")
	assert.Contains(t, out, "plan")
	assert.Contains(t, out, "Minha Família")
	assert.Contains(t, out, "activity")
	assert.Contains(t, out, "Vogais")
}

func TestWriteActivity_AnswerKey(t *testing.T) {
	var buf bytes.Buffer
	writeActivity(&buf, &core.ActivitySheet{
		Theme: "Somas",
		Questions: []core.Question{
			{Instruction: "1. Resolva:", Content: "2 + 2 = ____", Answer: "4"},
			{Instruction: "2. Resolva:", Content: "3 + 1 = ____"},
		},
		Sources: []core.Source{{URI: "https://example.org", Title: "Exemplo"}},
	})
	out := buf.String()
	assert.Contains(t, out, "Gabarito: 1) 4")
	assert.Contains(t, out, "- Exemplo <https://example.org>")
}
