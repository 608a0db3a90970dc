package services

import (
	"context"
	"testing"

	"github.com/schoolcup/tournament-backend/models"
	"github.com/schoolcup/tournament-backend/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byEmail map[string]*models.User
	nextID  int
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return repositories.ErrUserEmailConflict
	}
	f.nextID++
	user.ID = f.nextID
	stored := *user
	f.byEmail[user.Email] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{byEmail: make(map[string]*models.User)})

	user, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Ana",
		LastName:  "Pérez",
		Email:     "ana@example.com",
		Password:  "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RolePlayer, user.Role)
	assert.Empty(t, user.PasswordHash)

	logged, err := svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.Empty(t, logged.PasswordHash)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{byEmail: make(map[string]*models.User)})

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "short"})
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{byEmail: make(map[string]*models.User)})

	_, err := svc.Register(context.Background(), RegisterInput{Email: "ana@example.com", Password: "correct horse"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{Email: "ana@example.com", Password: "correct horse"})
	require.ErrorIs(t, err, ErrUserEmailConflict)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{byEmail: make(map[string]*models.User)})

	_, err := svc.Register(context.Background(), RegisterInput{Email: "ana@example.com", Password: "correct horse"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "wrong horse"})
	require.ErrorIs(t, err, ErrAuthInvalidCredentials)

	_, err = svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "correct horse"})
	require.ErrorIs(t, err, ErrAuthInvalidCredentials)
}
