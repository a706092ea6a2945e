package platform_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/edubrinca/internal/platform"
	"github.com/aretw0/edubrinca/pkg/adapters/fs"
	"github.com/aretw0/edubrinca/pkg/adapters/memory"
	"github.com/aretw0/edubrinca/pkg/adapters/sqlite"
	"github.com/aretw0/edubrinca/pkg/core"
	"github.com/aretw0/edubrinca/pkg/generator"
)

type cannedRemote struct {
	text  string
	calls int
}

func (r *cannedRemote) Ready(ctx context.Context) error { return nil }

func (r *cannedRemote) Generate(ctx context.Context, call generator.RemoteCall) (generator.RemoteResult, error) {
	r.calls++
	return generator.RemoteResult{Text: r.text}, nil
}

func planRequest() generator.LessonPlanRequest {
	return generator.LessonPlanRequest{
		Subject:    core.SubjectGeografia,
		Theme:      "Mapas do Bairro",
		Duration:   50,
		Level:      core.LevelRegular,
		GradeLevel: core.Grade2,
	}
}

func activityRequest() generator.ActivityRequest {
	return generator.ActivityRequest{
		Subject:    core.SubjectPortugues,
		Theme:      "Sílabas",
		Type:       core.ActivityLigue,
		Count:      4,
		Level:      core.LevelAdvanced,
		GradeLevel: core.Grade3,
	}
}

func TestNew_Adapters(t *testing.T) {
	adapters := []string{"fs", "sqlite", "memory"}

	for _, name := range adapters {
		t.Run(name, func(t *testing.T) {
			app, err := platform.New(t.TempDir(), platform.WithAdapter(name), platform.WithOffline(true))
			require.NoError(t, err)
			defer app.Close()
			ctx := context.Background()

			plan, mode, err := app.Generator.GeneratePlan(ctx, planRequest())
			require.NoError(t, err)
			assert.Equal(t, generator.ModeFallback, mode)

			sheet, _, err := app.Generator.GenerateActivity(ctx, activityRequest())
			require.NoError(t, err)

			plans := app.Plans.ListAll(ctx)
			require.Len(t, plans, 1)
			if diff := cmp.Diff(plan, plans[0]); diff != "" {
				t.Errorf("stored plan mismatch (-want +got):\n%s", diff)
			}

			sheets := app.Activities.ListAll(ctx)
			require.Len(t, sheets, 1)
			if diff := cmp.Diff(sheet, sheets[0]); diff != "" {
				t.Errorf("stored sheet mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNew_AdapterSelection(t *testing.T) {
	dir := t.TempDir()

	repo, err := platform.Init(dir, platform.WithAdapter("fs"))
	require.NoError(t, err)
	fsRepo, ok := repo.(*fs.Repository)
	require.True(t, ok)
	assert.Equal(t, dir, fsRepo.Path)
	_, err = os.Stat(filepath.Join(dir, core.CollectionPlans))
	assert.NoError(t, err)

	repo, err = platform.Init(dir, platform.WithAdapter("sqlite"))
	require.NoError(t, err)
	defer repo.Close()
	_, ok = repo.(*sqlite.Repository)
	assert.True(t, ok)
	_, err = os.Stat(filepath.Join(dir, sqlite.DefaultFileName))
	assert.NoError(t, err)

	_, err = platform.New(dir, platform.WithAdapter("s3"))
	assert.ErrorContains(t, err, "unknown adapter")
}

func TestNew_InjectedCollaborators(t *testing.T) {
	repo := memory.NewRepository()
	remote := &cannedRemote{text: `{
		"objective": "Ler um mapa simples",
		"materials": ["Mapa"],
		"steps": [{"time": "50 min", "title": "Leitura", "description": "Localizar a escola"}],
		"differentiation": {"remedial": "Legenda ilustrada", "advanced": "Criar um mapa"}
	}`}

	app, err := platform.New("", platform.WithRepository(repo), platform.WithRemote(remote))
	require.NoError(t, err)

	plan, mode, err := app.Generator.GeneratePlan(context.Background(), planRequest())
	require.NoError(t, err)
	assert.Equal(t, generator.ModeRemote, mode)
	assert.Equal(t, "Ler um mapa simples", plan.Objective)
	assert.Equal(t, 1, remote.calls)

	_, err = repo.Get(context.Background(), core.CollectionPlans, plan.ID)
	assert.NoError(t, err)
}

func TestNew_OfflineSkipsRemote(t *testing.T) {
	remote := &cannedRemote{text: "{}"}
	app, err := platform.New("", platform.WithAdapter("memory"), platform.WithRemote(remote), platform.WithOffline(true))
	require.NoError(t, err)

	_, mode, err := app.Generator.GeneratePlan(context.Background(), planRequest())
	require.NoError(t, err)
	assert.Equal(t, generator.ModeFallback, mode)
	assert.Zero(t, remote.calls)
}

func TestNew_MissingKeyFallsBack(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")

	app, err := platform.New("", platform.WithAdapter("memory"))
	require.NoError(t, err)

	plan, mode, err := app.Generator.GeneratePlan(context.Background(), planRequest())
	require.NoError(t, err)
	assert.Equal(t, generator.ModeFallback, mode)
	assert.NotEmpty(t, plan.Steps)
}

func TestNew_ReadOnlySurfacesStorageFailure(t *testing.T) {
	dir := t.TempDir()
	_, err := platform.Init(dir)
	require.NoError(t, err)

	app, err := platform.New(dir, platform.WithReadOnly(true), platform.WithOffline(true))
	require.NoError(t, err)

	_, _, err = app.Generator.GeneratePlan(context.Background(), planRequest())
	assert.ErrorIs(t, err, core.ErrStorageFailure)
	assert.ErrorIs(t, err, core.ErrReadOnly)
}

func TestNew_DevSandbox(t *testing.T) {
	repo, err := platform.Init("/definitely/not/writable/escola", platform.WithForceTemp(true))
	require.NoError(t, err)

	fsRepo := repo.(*fs.Repository)
	assert.Equal(t, filepath.Join(os.TempDir(), "edubrinca-dev", "escola"), fsRepo.Path)
	t.Cleanup(func() { os.RemoveAll(fsRepo.Path) })
}

func TestBackup_RoundTripAcrossAdapters(t *testing.T) {
	ctx := context.Background()

	src, err := platform.New(t.TempDir(), platform.WithAdapter("fs"), platform.WithOffline(true))
	require.NoError(t, err)
	_, _, err = src.Generator.GeneratePlan(ctx, planRequest())
	require.NoError(t, err)
	_, _, err = src.Generator.GenerateActivity(ctx, activityRequest())
	require.NoError(t, err)

	var buf bytes.Buffer
	doc, err := src.Exporter.Export(ctx, &buf)
	require.NoError(t, err)

	dst, err := platform.New(t.TempDir(), platform.WithAdapter("sqlite"), platform.WithOffline(true))
	require.NoError(t, err)
	defer dst.Close()

	report, err := dst.Importer.Import(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Total())

	if diff := cmp.Diff(doc.Plans, dst.Plans.ListAll(ctx)); diff != "" {
		t.Errorf("plans mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(doc.Activities, dst.Activities.ListAll(ctx)); diff != "" {
		t.Errorf("activities mismatch (-want +got):\n%s", diff)
	}
}
