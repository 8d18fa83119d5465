package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gradetrack-api/internal/models"
)

var subjectCols = []string{"id", "user_id", "name", "color", "target_grade", "assessment_count", "created_at", "updated_at"}

func TestSubjectListWithSearch(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(subjectCols).
		AddRow("s1", "u1", "Algebra", "#ff0000", 1.5, 3, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE s.user_id = $1 AND LOWER(s.name) LIKE $2 GROUP BY s.id ORDER BY s.name ASC LIMIT 20 OFFSET 0")).
		WithArgs("u1", "%alg%").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM subjects s WHERE s.user_id = $1 AND LOWER(s.name) LIKE $2")).
		WithArgs("u1", "%alg%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	subjects, total, err := repo.List(context.Background(), models.SubjectFilter{UserID: "u1", Search: "Alg"})
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, 3, subjects[0].AssessmentCount)
	require.NotNil(t, subjects[0].TargetGrade)
	assert.Equal(t, 1.5, *subjects[0].TargetGrade)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectFindByUserScopesOwner(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE s.id = $1 AND s.user_id = $2")).
		WithArgs("s1", "intruder").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUser(context.Background(), "intruder", "s1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectExec("INSERT INTO subjects").WillReturnResult(sqlmock.NewResult(1, 1))

	subject := &models.Subject{UserID: "u1", Name: "Physics"}
	require.NoError(t, repo.Create(context.Background(), subject))
	assert.NotEmpty(t, subject.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectUpdateMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectExec("UPDATE subjects SET").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Subject{ID: "s1", UserID: "u1", Name: "Physics"})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectDelete(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM subjects WHERE id = $1 AND user_id = $2")).
		WithArgs("s1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "u1", "s1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
