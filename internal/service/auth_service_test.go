package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"facturo/internal/config"
	"facturo/internal/domain"
	"facturo/internal/service"
	"facturo/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret-at-least-32-chars-long!",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "facturo-test",
	}
}

func activeUser(orgID uuid.UUID, password string) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &domain.User{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Email:          "jeanne@dupont-compta.fr",
		PasswordHash:   string(hash),
		Role:           domain.RoleAccountant,
		IsActive:       true,
	}
}

func TestLogin_TokenRoundTrip(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	orgRepo := new(mocks.MockOrganizationRepo)
	svc := service.NewAuthService(userRepo, orgRepo, testJWTConfig())

	org := &domain.Organization{ID: uuid.New(), Slug: "dupont-compta", IsActive: true}
	user := activeUser(org.ID, "supersecret99")

	orgRepo.On("GetBySlug", mock.Anything, "dupont-compta").Return(org, nil)
	userRepo.On("GetByEmail", mock.Anything, org.ID, user.Email).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		OrganizationSlug: "dupont-compta",
		Email:            user.Email,
		Password:         "supersecret99",
	})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, org.ID, claims.OrganizationID)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleAccountant, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	orgRepo := new(mocks.MockOrganizationRepo)
	svc := service.NewAuthService(userRepo, orgRepo, testJWTConfig())

	org := &domain.Organization{ID: uuid.New(), Slug: "dupont-compta", IsActive: true}
	user := activeUser(org.ID, "supersecret99")

	orgRepo.On("GetBySlug", mock.Anything, "dupont-compta").Return(org, nil)
	userRepo.On("GetByEmail", mock.Anything, org.ID, user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		OrganizationSlug: "dupont-compta",
		Email:            user.Email,
		Password:         "not-the-password",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_InactiveOrganization(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	orgRepo := new(mocks.MockOrganizationRepo)
	svc := service.NewAuthService(userRepo, orgRepo, testJWTConfig())

	org := &domain.Organization{ID: uuid.New(), Slug: "dupont-compta", IsActive: false}
	orgRepo.On("GetBySlug", mock.Anything, "dupont-compta").Return(org, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		OrganizationSlug: "dupont-compta",
		Email:            "jeanne@dupont-compta.fr",
		Password:         "supersecret99",
	})
	assert.ErrorIs(t, err, domain.ErrOrganizationInactive)
}

func TestValidateToken_RejectsRefreshTokenAsAccess(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	orgRepo := new(mocks.MockOrganizationRepo)
	svc := service.NewAuthService(userRepo, orgRepo, testJWTConfig())

	org := &domain.Organization{ID: uuid.New(), Slug: "dupont-compta", IsActive: true}
	user := activeUser(org.ID, "supersecret99")
	orgRepo.On("GetBySlug", mock.Anything, "dupont-compta").Return(org, nil)
	userRepo.On("GetByEmail", mock.Anything, org.ID, user.Email).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		OrganizationSlug: "dupont-compta",
		Email:            user.Email,
		Password:         "supersecret99",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestRefreshToken_IssuesNewPair(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	orgRepo := new(mocks.MockOrganizationRepo)
	svc := service.NewAuthService(userRepo, orgRepo, testJWTConfig())

	org := &domain.Organization{ID: uuid.New(), Slug: "dupont-compta", IsActive: true}
	user := activeUser(org.ID, "supersecret99")
	orgRepo.On("GetBySlug", mock.Anything, "dupont-compta").Return(org, nil)
	userRepo.On("GetByEmail", mock.Anything, org.ID, user.Email).Return(user, nil)
	userRepo.On("GetByID", mock.Anything, org.ID, user.ID).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		OrganizationSlug: "dupont-compta",
		Email:            user.Email,
		Password:         "supersecret99",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	claims, err := svc.ValidateToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	orgRepo := new(mocks.MockOrganizationRepo)
	svc := service.NewAuthService(userRepo, orgRepo, testJWTConfig())

	org := &domain.Organization{ID: uuid.New(), Slug: "dupont-compta", IsActive: true}
	user := activeUser(org.ID, "supersecret99")
	orgRepo.On("GetBySlug", mock.Anything, "dupont-compta").Return(org, nil)
	userRepo.On("GetByEmail", mock.Anything, org.ID, user.Email).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		OrganizationSlug: "dupont-compta",
		Email:            user.Email,
		Password:         "supersecret99",
	})
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
