package repositories

import (
	"context"
	"load-route-service/internal/domain"
	"load-route-service/internal/platform/db"
	"load-route-service/internal/ports"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *SqliteRunRepository {
	t.Helper()

	ctx := context.Background()
	conn, err := db.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(ctx, conn))
	// Running it twice must be harmless.
	require.NoError(t, InitSchema(ctx, conn))

	return NewSqliteRunRepository(conn)
}

func sampleRun(id string, startedAt time.Time) domain.Run {
	return domain.Run{
		ID:          id,
		Source:      "cli",
		Seed:        -42,
		Restarts:    2,
		LoadCount:   3,
		Cost:        540.5,
		Drivers:     1,
		Segments:    [][]int{{1, 2}, {3}},
		Iterations:  4000,
		Evaluations: 40000,
		StartedAt:   startedAt,
		Duration:    1500 * time.Millisecond,
	}
}

// checkRunRepository is the behaviour both run stores share. It returns the
// ids it wrote so shared databases can be cleaned up.
func checkRunRepository(t *testing.T, repo ports.RunRepository) []string {
	t.Helper()
	ctx := context.Background()

	// Far in the future so the rows sort first even in a shared database;
	// microseconds are the finest precision Postgres keeps.
	base := time.Now().UTC().AddDate(150, 0, 0).Truncate(time.Microsecond)
	older := sampleRun("older-"+uuid.NewString(), base)
	newer := sampleRun("newer-"+uuid.NewString(), base.Add(time.Hour))
	newer.Segments = [][]int{{3, 1}, {2}}

	require.NoError(t, repo.SaveRun(ctx, older))
	require.NoError(t, repo.SaveRun(ctx, newer))

	runs, err := repo.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assertRunEqual(t, newer, runs[0])
	assertRunEqual(t, older, runs[1])

	// Saving a run id again replaces its result.
	newer.Cost = 1060
	newer.Drivers = 2
	require.NoError(t, repo.SaveRun(ctx, newer))

	runs, err = repo.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assertRunEqual(t, newer, runs[0])

	return []string{older.ID, newer.ID}
}

func assertRunEqual(t *testing.T, want, got domain.Run) {
	t.Helper()

	assert.True(t, want.StartedAt.Equal(got.StartedAt), "started_at: want %s, got %s", want.StartedAt, got.StartedAt)
	got.StartedAt = want.StartedAt
	assert.Equal(t, want, got)
}

func TestSqliteRunRepositoryRoundTrip(t *testing.T) {
	checkRunRepository(t, openTestDB(t))
}

// Runs against a real Postgres only when TEST_DATABASE_URL points at one.
func TestSQLRunRepositoryRoundTrip(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, InitPostgresSchema(ctx, conn))

	ids := checkRunRepository(t, NewSQLRunRepository(conn))
	t.Cleanup(func() {
		_, _ = conn.ExecContext(context.Background(), `DELETE FROM runs WHERE run_id = ANY($1)`, ids)
	})
}

func TestSqliteRunRepositoryLimit(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t)

	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.SaveRun(ctx, sampleRun(id, base.Add(time.Duration(i)*time.Minute))))
	}

	runs, err := repo.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)
}

func TestSqliteRunRepositoryRejectsEmptyID(t *testing.T) {
	repo := openTestDB(t)
	err := repo.SaveRun(context.Background(), sampleRun("", time.Now()))
	assert.Error(t, err)
}

func TestRepositoriesRequireDB(t *testing.T) {
	ctx := context.Background()

	_, err := NewSqliteRunRepository(nil).ListRuns(ctx, 1)
	assert.Error(t, err)
	_, err = NewSQLRunRepository(nil).ListRuns(ctx, 1)
	assert.Error(t, err)
	assert.Error(t, NewSQLRunRepository(nil).SaveRun(ctx, sampleRun("x", time.Now())))
	assert.Error(t, InitSchema(ctx, nil))
}
