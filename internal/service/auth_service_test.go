package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/openflea/fleamarket-backend/internal/common"
	"github.com/openflea/fleamarket-backend/internal/domain"
	"github.com/openflea/fleamarket-backend/pkg/jwt"
)

func testJWTManager() *jwt.Manager {
	return jwt.NewManager("test-secret", 15*time.Minute, 24*time.Hour)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestRegister_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, testJWTManager())

	userRepo.On("ExistsByUsername", "alice").Return(false, nil)
	userRepo.On("ExistsByEmail", "alice@example.com").Return(false, nil)
	userRepo.On("Create", mock.MatchedBy(func(u *domain.User) bool {
		// password must never be stored in the clear
		return u.Username == "alice" && u.Password != "hunter2secret"
	})).Return(nil)

	user, err := svc.Register(&domain.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter2secret",
		Nickname: "Alice",
		IsSeller: true,
	})
	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.True(t, user.IsSeller)
	userRepo.AssertExpectations(t)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, testJWTManager())

	userRepo.On("ExistsByUsername", "alice").Return(true, nil)

	_, err := svc.Register(&domain.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "hunter2secret", Nickname: "Alice",
	})
	assert.ErrorIs(t, err, common.ErrUserAlreadyExists)
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, testJWTManager())

	userRepo.On("ExistsByUsername", "alice").Return(false, nil)
	userRepo.On("ExistsByEmail", "alice@example.com").Return(true, nil)

	_, err := svc.Register(&domain.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "hunter2secret", Nickname: "Alice",
	})
	assert.ErrorIs(t, err, common.ErrEmailAlreadyUsed)
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	manager := testJWTManager()
	svc := NewAuthService(userRepo, manager)

	userRepo.On("FindByUsername", "alice").Return(&domain.User{
		ID:       1,
		Username: "alice",
		Nickname: "Alice",
		Password: hashPassword(t, "hunter2secret"),
		IsSeller: true,
	}, nil)

	result, err := svc.Login("alice", "hunter2secret")
	assert.NoError(t, err)
	assert.Equal(t, "alice", result.User.Username)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)

	claims, err := manager.VerifyToken(result.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "1", claims.UserID)
	assert.True(t, claims.IsSeller)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, testJWTManager())

	userRepo.On("FindByUsername", "alice").Return(&domain.User{
		ID: 1, Username: "alice", Password: hashPassword(t, "hunter2secret"),
	}, nil)

	_, err := svc.Login("alice", "wrong-password")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, testJWTManager())

	userRepo.On("FindByUsername", "nobody").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login("nobody", "whatever")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestRefreshToken_IssuesNewPair(t *testing.T) {
	userRepo := new(mockUserRepo)
	manager := testJWTManager()
	svc := NewAuthService(userRepo, manager)

	refresh, err := manager.GenerateRefreshToken("1")
	assert.NoError(t, err)

	userRepo.On("FindByID", uint64(1)).Return(&domain.User{ID: 1, Username: "alice"}, nil)

	pair, err := svc.RefreshToken(refresh)
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestRefreshToken_Invalid(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, testJWTManager())

	_, err := svc.RefreshToken("not-a-token")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestUpdateProfile_EmailConflict(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, testJWTManager())

	userRepo.On("FindByID", uint64(1)).Return(&domain.User{
		ID: 1, Username: "alice", Email: "alice@example.com",
	}, nil)
	userRepo.On("ExistsByEmail", "taken@example.com").Return(true, nil)

	taken := "taken@example.com"
	_, err := svc.UpdateProfile(1, &domain.UpdateProfileRequest{Email: &taken})
	assert.ErrorIs(t, err, common.ErrEmailAlreadyUsed)
	userRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestUpdateProfile_PartialEdit(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, testJWTManager())

	userRepo.On("FindByID", uint64(1)).Return(&domain.User{
		ID: 1, Username: "alice", Email: "alice@example.com", Nickname: "Alice",
	}, nil)
	userRepo.On("Update", mock.MatchedBy(func(u *domain.User) bool {
		return u.Nickname == "Allie" && u.Email == "alice@example.com"
	})).Return(nil)

	nick := "Allie"
	user, err := svc.UpdateProfile(1, &domain.UpdateProfileRequest{Nickname: &nick})
	assert.NoError(t, err)
	assert.Equal(t, "Allie", user.Nickname)
	userRepo.AssertExpectations(t)
}
