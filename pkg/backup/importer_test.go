package backup_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/edubrinca/pkg/adapters/memory"
	"github.com/aretw0/edubrinca/pkg/backup"
	"github.com/aretw0/edubrinca/pkg/core"
	"github.com/aretw0/edubrinca/pkg/typed"
)

func setup(t *testing.T) (*backup.Importer, *core.Service, *memory.Repository) {
	t.Helper()
	repo := memory.NewRepository()
	svc := core.NewService(repo, nil)
	return backup.NewImporter(svc), svc, repo
}

func importString(t *testing.T, im *backup.Importer, doc string) (backup.Report, error) {
	t.Helper()
	return im.Import(context.Background(), strings.NewReader(doc))
}

func lists(t *testing.T, svc *core.Service) ([]*core.LessonPlan, []*core.ActivitySheet) {
	t.Helper()
	ctx := context.Background()
	return typed.NewCollection[core.LessonPlan](svc).ListAll(ctx),
		typed.NewCollection[core.ActivitySheet](svc).ListAll(ctx)
}

const repositoryDoc = `{
	"meta": {},
	"categorias": [{
		"tema": "Matemática",
		"faixas_etarias": [{
			"faixa_etaria": "4-6",
			"aulas": [{"titulo": "Contagem", "passo_a_passo": ["Passo um"]}],
			"exercicios": [{"tipo": "multipla_escolha", "pergunta": "Quanto é 1+1?", "opcoes": ["1", "2", "3"], "resposta": "2"}]
		}]
	}]
}`

func TestImport_RepositoryFormat(t *testing.T) {
	im, svc, _ := setup(t)

	report, err := importString(t, im, repositoryDoc)
	require.NoError(t, err)
	assert.Equal(t, backup.Report{Format: backup.FormatRepository, Plans: 1, Activities: 1}, report)

	plans, activities := lists(t, svc)
	require.Len(t, plans, 1)
	plan := plans[0]
	assert.Equal(t, core.SubjectMatematica, plan.Subject)
	assert.Equal(t, core.Grade2, plan.GradeLevel)
	assert.Equal(t, "Contagem", plan.Theme)
	assert.Equal(t, 50, plan.Duration)
	assert.Equal(t, core.LevelRegular, plan.Level)
	assert.Equal(t, []core.Step{{Time: "10 min", Title: "Passo 1", Description: "Passo um"}}, plan.Steps)
	assert.Equal(t, []string{"Caderno", "Lápis"}, plan.Materials)
	assert.NotEmpty(t, plan.ID)
	assert.NotZero(t, plan.CreatedAt)

	require.Len(t, activities, 1)
	sheet := activities[0]
	assert.Equal(t, core.ActivityAvaliativa, sheet.Type)
	assert.Equal(t, "Matemática - Exercícios", sheet.Theme)
	require.Len(t, sheet.Questions, 1)
	q := sheet.Questions[0]
	assert.Equal(t, "Marque a opção correta:", q.Instruction)
	assert.Equal(t, "Quanto é 1+1?\n\n(   ) 1\n(   ) 2\n(   ) 3", q.Content)
	assert.Equal(t, "2", q.Answer)
	assert.NotEmpty(t, q.ID)
}

func TestImport_RepositoryFormatDetails(t *testing.T) {
	im, svc, _ := setup(t)

	doc := `{
		"meta": {"versao": 2},
		"categorias": [
			{"tema": "Animais do Brasil", "faixas_etarias": [
				{"faixa_etaria": "7-9",
				 "aulas": [{"id": "aula-1", "titulo": "Onça", "nivel_dificuldade": "facil",
				            "objetivos": ["Conhecer a onça"], "materiais": ["Lupa"]}],
				 "exercicios": [
					{"tipo": "associacao", "pergunta": "Ligue:", "itens": [
						{"figura": "Onça", "letra_correta": "B"}, {"figura": "Arara"}]},
					{"tipo": "aberta", "pergunta": "Quantas patas?", "resposta": 4}
				 ]}
			]},
			{"tema": "Mapa da escola", "faixas_etarias": [
				{"faixa_etaria": "10-12", "aulas": [{"meta_pedagogica": "Ler mapas"}]}
			]}
		]
	}`
	report, err := importString(t, im, doc)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Plans)
	assert.Equal(t, 1, report.Activities)

	ctx := context.Background()
	onca, err := typed.NewCollection[core.LessonPlan](svc).Get(ctx, "aula-1")
	require.NoError(t, err)
	assert.Equal(t, core.SubjectCiencias, onca.Subject)
	assert.Equal(t, core.Grade3, onca.GradeLevel)
	assert.Equal(t, core.LevelRemedial, onca.Level)
	assert.Equal(t, "Conhecer a onça", onca.Objective)
	assert.Equal(t, []string{"Lupa"}, onca.Materials)
	assert.Empty(t, onca.Steps)

	plans, activities := lists(t, svc)
	var mapa *core.LessonPlan
	for _, p := range plans {
		if p.ID != "aula-1" {
			mapa = p
		}
	}
	require.NotNil(t, mapa)
	assert.Equal(t, "Aula Importada", mapa.Theme)
	assert.Equal(t, core.SubjectGeografia, mapa.Subject)
	assert.Equal(t, core.Grade4, mapa.GradeLevel)
	assert.Equal(t, "Ler mapas", mapa.Objective)

	require.Len(t, activities, 1)
	qs := activities[0].Questions
	require.Len(t, qs, 2)
	assert.Equal(t, "Responda:", qs[0].Instruction)
	assert.Equal(t, "Ligue:\n\nOnça ----------- B\nArara ----------- ____", qs[0].Content)
	assert.Equal(t, "Quantas patas?", qs[1].Content)
	assert.Equal(t, "4", qs[1].Answer)
	assert.NotEqual(t, qs[0].ID, qs[1].ID)
}

func TestImport_NativeRoundTrip(t *testing.T) {
	_, src, _ := setup(t)
	ctx := context.Background()

	plan := &core.LessonPlan{
		ID: "p1", CreatedAt: 1718000000000, Subject: core.SubjectHistoria, Theme: "Minha família",
		GradeLevel: core.Grade2, Duration: 50, Level: core.LevelAdvanced, Objective: "Árvore genealógica",
		Materials: []string{"Fotos"}, Steps: []core.Step{{Time: "50 min", Title: "Roda", Description: "Conversa"}},
		Differentiation: core.Differentiation{Remedial: "r", Advanced: "a"},
		Sources:         []core.Source{{URI: "https://example.org", Title: "Ex"}},
	}
	sheet := &core.ActivitySheet{
		ID: "a1", CreatedAt: 1718000000500, Subject: core.SubjectPortugues, Theme: "Rimas",
		GradeLevel: core.Grade2, Type: core.ActivityComplete, Level: core.LevelRegular,
		SchoolHeader: core.SchoolHeader{StudentName: true, Date: true, TeacherName: true},
		Questions:    []core.Question{{ID: "q1", Instruction: "Complete", Content: "Gato rima com ____", Answer: "pato"}},
		Sources:      []core.Source{},
	}
	require.NoError(t, typed.Put(ctx, src, plan))
	require.NoError(t, typed.Put(ctx, src, sheet))

	var buf bytes.Buffer
	_, err := backup.NewExporter(src).Export(ctx, &buf)
	require.NoError(t, err)

	im, dst, _ := setup(t)
	report, err := im.Import(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, backup.Report{Format: backup.FormatNative, Plans: 1, Activities: 1}, report)

	plans, activities := lists(t, dst)
	require.Len(t, plans, 1)
	require.Len(t, activities, 1)
	if diff := cmp.Diff(plan, plans[0]); diff != "" {
		t.Errorf("plan changed across export/import (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(sheet, activities[0]); diff != "" {
		t.Errorf("sheet changed across export/import (-want +got):\n%s", diff)
	}
}

func TestImport_NativeFillsMissingIdentity(t *testing.T) {
	im, svc, _ := setup(t)

	report, err := importString(t, im, `{"plans":[{"theme":"Sem id"}],"activities":[{"theme":"Q","questions":[{"instruction":"i","content":"c"}]}]}`)
	require.NoError(t, err)
	assert.Equal(t, backup.FormatNative, report.Format)

	plans, activities := lists(t, svc)
	require.Len(t, plans, 1)
	assert.NotEmpty(t, plans[0].ID)
	assert.NotZero(t, plans[0].CreatedAt)
	require.Len(t, activities, 1)
	assert.NotEmpty(t, activities[0].Questions[0].ID)
}

func TestImport_NumericIDs(t *testing.T) {
	im, svc, _ := setup(t)
	doc := `{
		"plans": [{"id": 42, "theme": "Horta", "objective": "Plantar"}],
		"activities": [{"id": "a7", "theme": "Contas", "questions": [
			{"id": 1, "instruction": "Some", "content": "1 + 1"},
			{"id": 2.5, "instruction": "Some", "content": "2 + 2"}
		]}]
	}`

	for range 2 {
		report, err := importString(t, im, doc)
		require.NoError(t, err)
		assert.Equal(t, backup.FormatNative, report.Format)
	}

	plans, activities := lists(t, svc)
	require.Len(t, plans, 1)
	assert.Equal(t, "42", plans[0].ID)
	require.Len(t, activities, 1)
	require.Len(t, activities[0].Questions, 2)
	assert.Equal(t, "1", activities[0].Questions[0].ID)
	assert.Equal(t, "2.5", activities[0].Questions[1].ID)
}

func TestImport_ScanNumericID(t *testing.T) {
	im, svc, _ := setup(t)
	doc := `{"turma": {"aula": {"id": 7, "theme": "Relevo", "steps": []}}}`

	for range 2 {
		_, err := importString(t, im, doc)
		require.NoError(t, err)
	}

	plans, _ := lists(t, svc)
	require.Len(t, plans, 1)
	assert.Equal(t, "7", plans[0].ID)
}

func TestImport_Scan(t *testing.T) {
	t.Run("Classification Exclusivity", func(t *testing.T) {
		im, svc, _ := setup(t)
		report, err := importString(t, im, `{"items":[{"theme":"t","steps":[{"time":"1 min","title":"a","description":"b"}],"questions":[{"instruction":"i","content":"c"}]}]}`)
		require.NoError(t, err)
		assert.Equal(t, backup.Report{Format: backup.FormatScan, Plans: 0, Activities: 1}, report)

		plans, activities := lists(t, svc)
		assert.Empty(t, plans)
		assert.Len(t, activities, 1)
	})

	t.Run("Depth Bound", func(t *testing.T) {
		im, svc, _ := setup(t)
		_, err := importString(t, im, `{"a":{"b":{"c":{"d":{"theme":"t","objective":"o"}}}}}`)
		assert.ErrorIs(t, err, core.ErrNoCompatibleData)

		plans, activities := lists(t, svc)
		assert.Empty(t, plans)
		assert.Empty(t, activities)
	})

	t.Run("Top Level Array", func(t *testing.T) {
		im, _, _ := setup(t)
		report, err := importString(t, im, `[{"theme":"Plano","subject":"Geografia"},{"theme":"Folha","questions":[]}]`)
		require.NoError(t, err)
		assert.Equal(t, backup.Report{Format: backup.FormatScan, Plans: 1, Activities: 1}, report)
	})

	t.Run("Empty Native Lists Fall Through", func(t *testing.T) {
		im, _, _ := setup(t)
		report, err := importString(t, im, `{"plans":[],"activities":[],"legacy":{"theme":"t","objective":"o"}}`)
		require.NoError(t, err)
		assert.Equal(t, backup.FormatScan, report.Format)
		assert.Equal(t, 1, report.Plans)
	})

	t.Run("Bad Field Types Are Dropped", func(t *testing.T) {
		im, svc, _ := setup(t)
		_, err := importString(t, im, `{"x":{"theme":"t","objective":"o","duration":"cinquenta","id":7}}`)
		require.NoError(t, err)

		plans, _ := lists(t, svc)
		require.Len(t, plans, 1)
		assert.Equal(t, "o", plans[0].Objective)
		assert.Zero(t, plans[0].Duration)
		assert.NotEmpty(t, plans[0].ID)
	})
}

func TestImport_Failures(t *testing.T) {
	t.Run("No Compatible Data", func(t *testing.T) {
		im, _, _ := setup(t)
		_, err := importString(t, im, `{"foo": 1, "bar": 2}`)
		require.ErrorIs(t, err, core.ErrNoCompatibleData)
		assert.Contains(t, err.Error(), "foo, bar")
	})

	t.Run("No Compatible Data In Array", func(t *testing.T) {
		im, _, _ := setup(t)
		_, err := importString(t, im, `[1, 2, 3]`)
		require.ErrorIs(t, err, core.ErrNoCompatibleData)
		assert.Contains(t, err.Error(), "[Array]")
	})

	t.Run("Repository Format Without Entities", func(t *testing.T) {
		im, _, _ := setup(t)
		_, err := importString(t, im, `{"meta":{},"categorias":[]}`)
		require.ErrorIs(t, err, core.ErrNoCompatibleData)
		assert.Contains(t, err.Error(), "meta, categorias")
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		im, _, _ := setup(t)
		_, err := importString(t, im, `{"plans": [`)
		assert.ErrorIs(t, err, core.ErrInvalidFormat)
	})

	t.Run("Scalar Document", func(t *testing.T) {
		im, _, _ := setup(t)
		for _, doc := range []string{`null`, `42`, `"texto"`} {
			_, err := importString(t, im, doc)
			assert.ErrorIs(t, err, core.ErrInvalidFormat, doc)
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		im, _, _ := setup(t)
		_, err := im.ImportFile(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
		assert.ErrorIs(t, err, core.ErrInvalidFormat)
	})

	t.Run("Storage Failure Aborts", func(t *testing.T) {
		im, _, repo := setup(t)
		repo.FailPut = errors.New("quota exceeded")
		report, err := importString(t, im, repositoryDoc)
		assert.ErrorIs(t, err, core.ErrStorageFailure)
		assert.Zero(t, report.Total())
	})
}

func TestImportFile(t *testing.T) {
	im, svc, _ := setup(t)
	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, os.WriteFile(path, []byte(repositoryDoc), 0644))

	report, err := im.ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Total())

	plans, activities := lists(t, svc)
	assert.Len(t, plans, 1)
	assert.Len(t, activities, 1)
}

func TestExportFileName(t *testing.T) {
	day := time.Date(2024, time.March, 7, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "backup-professora-2024-03-07.json", backup.ExportFileName(day))
}

func TestExport_NewestFirst(t *testing.T) {
	_, svc, _ := setup(t)
	ctx := context.Background()
	created := map[string]int64{"old": 1, "new": 3, "mid": 2}
	for id, at := range created {
		require.NoError(t, typed.Put(ctx, svc, &core.LessonPlan{ID: id, CreatedAt: at, Theme: id}))
	}

	doc, err := backup.NewExporter(svc).Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, doc.Plans, 3)
	assert.Equal(t, "new", doc.Plans[0].ID)
	assert.Equal(t, "old", doc.Plans[2].ID)
	assert.NotNil(t, doc.Activities)
}

func TestExport_ReadFailure(t *testing.T) {
	_, svc, repo := setup(t)
	repo.FailList = errors.New("corrupt")

	var buf bytes.Buffer
	_, err := backup.NewExporter(svc).Export(context.Background(), &buf)
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestExportFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "backup.json")

	t.Run("Writes Native Document", func(t *testing.T) {
		_, svc, _ := setup(t)
		require.NoError(t, typed.Put(ctx, svc, &core.LessonPlan{ID: "p1", CreatedAt: 1, Theme: "Água"}))

		doc, err := backup.NewExporter(svc).ExportFile(ctx, path)
		require.NoError(t, err)
		assert.Len(t, doc.Plans, 1)

		im, dst, _ := setup(t)
		report, err := im.ImportFile(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Plans)
		plans, _ := lists(t, dst)
		require.Len(t, plans, 1)
		assert.Equal(t, "p1", plans[0].ID)
	})

	t.Run("Read Failure Keeps Previous Backup", func(t *testing.T) {
		before, err := os.ReadFile(path)
		require.NoError(t, err)

		_, svc, repo := setup(t)
		repo.FailList = errors.New("corrupt")
		_, err = backup.NewExporter(svc).ExportFile(ctx, path)
		require.Error(t, err)

		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("Read Failure Creates Nothing", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "novo.json")
		_, svc, repo := setup(t)
		repo.FailList = errors.New("corrupt")

		_, err := backup.NewExporter(svc).ExportFile(ctx, missing)
		require.Error(t, err)
		assert.NoFileExists(t, missing)
	})
}
