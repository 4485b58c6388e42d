package service

import (
	"context"
	"eduhub_backend/internal/config"
	"eduhub_backend/internal/model"
	"eduhub_backend/internal/repository"
	"eduhub_backend/internal/util"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memoryTokenStore 测试用的进程内令牌存储，不依赖 Redis
type memoryTokenStore struct {
	tokens map[string]uint
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{tokens: make(map[string]uint)}
}

func (s *memoryTokenStore) Issue(ctx context.Context, userID uint, ttl time.Duration) (string, error) {
	token := uuid.New().String()
	s.tokens[token] = userID
	return token, nil
}

func (s *memoryTokenStore) Consume(ctx context.Context, token string) (uint, bool) {
	userID, ok := s.tokens[token]
	if ok {
		delete(s.tokens, token)
	}
	return userID, ok
}

func newAuthService(db *gorm.DB, tokens ResetTokenStore) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-0123456789abcdef0123456789"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Server.BaseURL = "http://localhost:3000"
	return NewAuthService(repository.NewUserRepository(db), tokens, nil, cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, newMemoryTokenStore())

	user := &model.User{Email: "a@example.com", Name: "Alice", Password: "password123", Role: model.RoleStudent}
	require.NoError(t, svc.Register(user))

	// 密码落库前必须哈希
	var stored model.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.NotEqual(t, "password123", stored.Password)

	token, err := svc.Login("a@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := util.ParseJWT(token, "test-secret-0123456789abcdef0123456789")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.RoleStudent, claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, newMemoryTokenStore())

	first := &model.User{Email: "a@example.com", Password: "password123"}
	require.NoError(t, svc.Register(first))

	second := &model.User{Email: "a@example.com", Password: "password456"}
	assert.ErrorIs(t, svc.Register(second), util.ErrEmailRegistered)
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, newMemoryTokenStore())

	user := &model.User{Email: "a@example.com", Password: "password123"}
	require.NoError(t, svc.Register(user))

	_, err := svc.Login("a@example.com", "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestPasswordResetFlow(t *testing.T) {
	db := newTestDB(t)
	tokens := newMemoryTokenStore()
	svc := newAuthService(db, tokens)
	ctx := context.Background()

	user := &model.User{Email: "a@example.com", Password: "password123"}
	require.NoError(t, svc.Register(user))

	require.NoError(t, svc.RequestPasswordReset(ctx, "a@example.com"))
	require.Len(t, tokens.tokens, 1)

	var token string
	for k := range tokens.tokens {
		token = k
	}

	require.NoError(t, svc.ResetPassword(ctx, token, "newpassword456"))

	_, err := svc.Login("a@example.com", "password123")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	_, err = svc.Login("a@example.com", "newpassword456")
	assert.NoError(t, err)

	// 令牌一次性，重放失败
	assert.ErrorIs(t, svc.ResetPassword(ctx, token, "another"), util.ErrTokenExpired)
}

func TestPasswordResetUnknownEmailIsSilent(t *testing.T) {
	db := newTestDB(t)
	tokens := newMemoryTokenStore()
	svc := newAuthService(db, tokens)

	// 不暴露邮箱是否注册
	assert.NoError(t, svc.RequestPasswordReset(context.Background(), "nobody@example.com"))
	assert.Empty(t, tokens.tokens)
}
