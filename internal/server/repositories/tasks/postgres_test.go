package tasks

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/models"
	"github.com/stretchr/testify/require"
)

// passthrough lets slice arguments reach the mock the way pgx receives them.
type passthrough struct{}

func (passthrough) ConvertValue(v any) (driver.Value, error) { return v, nil }

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp),
		sqlmock.ValueConverterOption(passthrough{}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"id", "text", "completed"}).
		AddRow("t2", "newer", false).
		AddRow("t1", "older", true)
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*text,\s*completed\s+FROM\s+tasks\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+seq\s+DESC`).
		WithArgs("u1").
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, []models.Task{
		{ID: "t2", Text: "newer"},
		{ID: "t1", Text: "older", Completed: true},
	}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_EmptyIsNotNil(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`SELECT`).WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "completed"}))

	got, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestList_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("boom"))

	_, err := repo.List(context.Background(), "u1")
	require.ErrorContains(t, err, "db error")
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+tasks\s*\(id,\s*user_id,\s*text,\s*completed\)`).
		WithArgs("t1", "u1", "milk", false).
		WillReturnResult(sqlmock.NewResult(1, 1))

	got, err := repo.Create(context.Background(), "u1", models.Task{ID: "t1", Text: "milk"})
	require.NoError(t, err)
	require.Equal(t, models.Task{ID: "t1", Text: "milk"}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	done := true
	mock.ExpectQuery(`(?s)^UPDATE\s+tasks\s+SET\s+text\s*=\s*COALESCE\(\$3::text,\s*text\),\s*completed\s*=\s*COALESCE\(\$4::boolean,\s*completed\)`).
		WithArgs("u1", "t1", sql.NullString{}, sql.NullBool{Bool: true, Valid: true}).
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "completed"}).AddRow("t1", "milk", true))

	got, err := repo.Update(context.Background(), "u1", "t1", models.TaskPatch{Completed: &done})
	require.NoError(t, err)
	require.Equal(t, models.Task{ID: "t1", Text: "milk", Completed: true}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	text := "x"
	mock.ExpectQuery(`UPDATE`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), "u1", "missing", models.TaskPatch{Text: &text})
	require.ErrorIs(t, err, common.ErrTaskNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+tasks\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+id\s*=\s*\$2`).
		WithArgs("u1", "t1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "u1", "t1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(`DELETE`).WithArgs("u1", "t1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.Delete(context.Background(), "u1", "t1"), common.ErrTaskNotFound)
}

func TestDeleteMany(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	ids := []string{"t1", "t2"}
	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+tasks\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+id\s*=\s*ANY\(\$2\)`).
		WithArgs("u1", ids).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.DeleteMany(context.Background(), "u1", ids)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMany_NoIDsSkipsQuery(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	n, err := repo.DeleteMany(context.Background(), "u1", nil)
	require.NoError(t, err)
	require.Zero(t, n)
	require.NoError(t, mock.ExpectationsWereMet())
}
