package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/class-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/class-scheduler-api/pkg/errors"
)

type mockUserRepo struct {
	*mockAuthRepo
	listErr    error
	lastLimit  int
	lastOffset int
}

func (m *mockUserRepo) List(ctx context.Context, limit, offset int) ([]models.User, int, error) {
	m.lastLimit, m.lastOffset = limit, offset
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	names := make([]string, 0, len(m.users))
	for name := range m.users {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]models.User, 0)
	for i := offset; i < len(names) && i < offset+limit; i++ {
		out = append(out, *m.users[names[i]])
	}
	return out, len(names), nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	for name, u := range m.users {
		if u.ID == id {
			delete(m.users, name)
			return nil
		}
	}
	return sql.ErrNoRows
}

func newMockUserRepo(users ...*models.User) *mockUserRepo {
	return &mockUserRepo{mockAuthRepo: newMockAuthRepo(users...)}
}

func TestUserServiceCreate(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo, nil, nil)

	info, err := svc.Create(context.Background(), CreateUserRequest{Username: " planner ", Password: "secret", Role: models.RoleViewer})
	require.NoError(t, err)
	assert.Equal(t, "planner", info.Username)
	assert.Equal(t, models.RoleViewer, info.Role)

	require.Len(t, repo.created, 1)
	stored := repo.created[0]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret")))
}

func TestUserServiceCreateRejectsDuplicatesAndBadRoles(t *testing.T) {
	repo := newMockUserRepo(&models.User{ID: "u1", Username: "admin", Role: models.RoleAdmin})
	svc := NewUserService(repo, nil, nil)

	_, err := svc.Create(context.Background(), CreateUserRequest{Username: "admin", Password: "secret", Role: models.RoleAdmin})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)

	_, err = svc.Create(context.Background(), CreateUserRequest{Username: "root", Password: "secret", Role: "SUPERUSER"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUserServiceListClampsPaging(t *testing.T) {
	repo := newMockUserRepo(
		&models.User{ID: "u1", Username: "admin", Role: models.RoleAdmin},
		&models.User{ID: "u2", Username: "viewer", Role: models.RoleViewer},
	)
	svc := NewUserService(repo, nil, nil)

	users, page, err := svc.List(context.Background(), 0, 500)
	require.NoError(t, err)
	assert.Equal(t, maxUserPageSize, repo.lastLimit)
	assert.Equal(t, 0, repo.lastOffset)
	assert.Equal(t, &models.Pagination{Page: 1, PageSize: maxUserPageSize, TotalCount: 2}, page)
	require.Len(t, users, 2)
	assert.Equal(t, "admin", users[0].Username)

	repo.listErr = errors.New("db down")
	_, _, err = svc.List(context.Background(), 1, 10)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestUserServiceDelete(t *testing.T) {
	repo := newMockUserRepo(
		&models.User{ID: "u1", Username: "admin", Role: models.RoleAdmin},
		&models.User{ID: "u2", Username: "viewer", Role: models.RoleViewer},
	)
	svc := NewUserService(repo, nil, nil)

	err := svc.Delete(context.Background(), "u1", "u1")
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	require.NoError(t, svc.Delete(context.Background(), "u2", "u1"))
	_, stillThere := repo.users["viewer"]
	assert.False(t, stillThere)

	err = svc.Delete(context.Background(), "u2", "u1")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
