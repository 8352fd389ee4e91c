package userrepo

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QaMarcosEd/calcadosAraujo/internal/domain"
	apperror "github.com/QaMarcosEd/calcadosAraujo/internal/errors"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/logger"
)

func TestSave_DuplicateNameIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewUserRepository(db, time.Second, logger.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("Diana", "hash", domain.RoleFuncionario).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err = repo.Save(context.Background(), domain.User{Name: "Diana", PasswordHash: "hash", Role: domain.RoleFuncionario})

	var cErr *apperror.ConflictError
	assert.ErrorAs(t, err, &cErr)
}

func TestFindByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewUserRepository(db, time.Second, logger.NewNop())
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE name = $1")).
		WithArgs("ca.ltda").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "password_hash", "role", "created_at", "updated_at"}).
			AddRow(1, "ca.ltda", "hash", "ADMIN", now, now))

	u, err := repo.FindByName(context.Background(), "ca.ltda")

	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, domain.RoleAdmin, u.Role)
}
