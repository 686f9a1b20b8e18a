package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/projectrack-api/internal/models"
	appErrors "github.com/noah-isme/projectrack-api/pkg/errors"
)

type mockAuthRepo struct {
	userByEmail      *models.User
	userByID         *models.User
	findByEmailErr   error
	findByIDErr      error
	emailExists      bool
	rollNumberExists bool
	created          *models.User
	profileUpdated   bool
	auditLogs        []*models.AuditLog
}

func (m *mockAuthRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = "new-user"
	m.created = user
	return nil
}

func (m *mockAuthRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailErr != nil {
		return nil, m.findByEmailErr
	}
	return m.userByEmail, nil
}

func (m *mockAuthRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if m.findByIDErr != nil {
		return nil, m.findByIDErr
	}
	if m.userByID != nil {
		return m.userByID, nil
	}
	return m.userByEmail, nil
}

func (m *mockAuthRepo) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	return m.emailExists, nil
}

func (m *mockAuthRepo) ExistsByRollNumber(ctx context.Context, rollNumber, excludeID string) (bool, error) {
	return m.rollNumberExists, nil
}

func (m *mockAuthRepo) UpdateProfile(ctx context.Context, user *models.User) error {
	m.profileUpdated = true
	return nil
}

func (m *mockAuthRepo) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.auditLogs = append(m.auditLogs, log)
	return nil
}

func newAuthService(repo *mockAuthRepo) *AuthService {
	return NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{
		TokenSecret: "secret",
		TokenExpiry: time.Hour,
		Issuer:      "projectrack",
	})
}

func TestRegisterStudentSuccess(t *testing.T) {
	repo := &mockAuthRepo{}
	svc := newAuthService(repo)

	year := 3
	user, err := svc.Register(context.Background(), models.SignupRequest{
		Email:      "alice@uni.edu",
		Password:   "password",
		Name:       "Alice",
		Role:       models.RoleStudent,
		RollNumber: "CS-042",
		Program:    "CS",
		Year:       &year,
	})
	require.NoError(t, err)
	assert.Equal(t, "new-user", user.ID)
	require.NotNil(t, user.RollNumber)
	assert.Equal(t, "CS-042", *user.RollNumber)
	assert.NotEqual(t, "password", user.PasswordHash)
	require.Len(t, repo.auditLogs, 1)
	assert.Equal(t, models.AuditActionSignup, repo.auditLogs[0].Action)
}

func TestRegisterStudentMissingRoleFields(t *testing.T) {
	svc := newAuthService(&mockAuthRepo{})

	_, err := svc.Register(context.Background(), models.SignupRequest{
		Email:    "alice@uni.edu",
		Password: "password",
		Name:     "Alice",
		Role:     models.RoleStudent,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRegisterTeacherMissingRoleFields(t *testing.T) {
	svc := newAuthService(&mockAuthRepo{})

	_, err := svc.Register(context.Background(), models.SignupRequest{
		Email:    "bob@uni.edu",
		Password: "password",
		Name:     "Bob",
		Role:     models.RoleTeacher,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := &mockAuthRepo{emailExists: true}
	svc := newAuthService(repo)

	year := 1
	_, err := svc.Register(context.Background(), models.SignupRequest{
		Email:      "alice@uni.edu",
		Password:   "password",
		Name:       "Alice",
		Role:       models.RoleStudent,
		RollNumber: "CS-042",
		Program:    "CS",
		Year:       &year,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestLoginSuccess(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	repo := &mockAuthRepo{userByEmail: &models.User{ID: "u1", Email: "alice@uni.edu", PasswordHash: string(hash), Role: models.RoleStudent}}
	svc := newAuthService(repo)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "alice@uni.edu", Password: "password"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, int64(3600), res.ExpiresIn)
	require.Len(t, repo.auditLogs, 1)
	assert.Equal(t, models.AuditActionLogin, repo.auditLogs[0].Action)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	repo := &mockAuthRepo{userByEmail: &models.User{ID: "u1", Email: "alice@uni.edu", PasswordHash: string(hash)}}
	svc := newAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "alice@uni.edu", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRoundTrip(t *testing.T) {
	svc := newAuthService(&mockAuthRepo{})
	user := &models.User{ID: "u1", Email: "alice@uni.edu", Role: models.RoleStudent, Name: "Alice"}

	token, _, err := svc.generateToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.Role)
}

func TestValidateTokenExpired(t *testing.T) {
	repo := &mockAuthRepo{}
	expired := NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{
		TokenSecret: "secret",
		TokenExpiry: -time.Hour,
	})
	user := &models.User{ID: "u1", Email: "alice@uni.edu", Role: models.RoleStudent}

	token, _, err := expired.generateToken(user)
	require.NoError(t, err)

	_, err = expired.ValidateToken(token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrTokenExpired.Code, appErrors.FromError(err).Code)
}

func TestResolveSessionDeletedUser(t *testing.T) {
	repo := &mockAuthRepo{findByIDErr: sql.ErrNoRows}
	svc := newAuthService(repo)
	user := &models.User{ID: "ghost", Email: "ghost@uni.edu", Role: models.RoleStudent}

	token, _, err := svc.generateToken(user)
	require.NoError(t, err)

	_, err = svc.ResolveSession(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestUpdateProfileNoFields(t *testing.T) {
	svc := newAuthService(&mockAuthRepo{})
	user := &models.User{ID: "u1", Email: "alice@uni.edu", Role: models.RoleStudent}

	_, err := svc.UpdateProfile(context.Background(), user, models.UpdateProfileRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	repo := &mockAuthRepo{emailExists: true}
	svc := newAuthService(repo)
	user := &models.User{ID: "u1", Email: "alice@uni.edu", Role: models.RoleStudent}

	newEmail := "taken@uni.edu"
	_, err := svc.UpdateProfile(context.Background(), user, models.UpdateProfileRequest{Email: &newEmail})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.False(t, repo.profileUpdated)
}

func TestUpdateProfileIgnoresOtherRoleFields(t *testing.T) {
	repo := &mockAuthRepo{}
	svc := newAuthService(repo)
	user := &models.User{ID: "t1", Email: "bob@uni.edu", Role: models.RoleTeacher}

	roll := "CS-999"
	_, err := svc.UpdateProfile(context.Background(), user, models.UpdateProfileRequest{RollNumber: &roll})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Nil(t, user.RollNumber)
}
