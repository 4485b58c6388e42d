package service

import (
	"context"
	"eduhub_backend/internal/config"
	"eduhub_backend/internal/model"
	"eduhub_backend/internal/repository"
	"eduhub_backend/internal/util"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetTokenTTL = time.Hour

type AuthService struct {
	UserRepo *repository.UserRepository
	Tokens   ResetTokenStore
	Mail     *MailService
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, tokens ResetTokenStore, mail *MailService, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Tokens:   tokens,
		Mail:     mail,
		Cfg:      cfg,
	}
}

func (s *AuthService) Register(user *model.User) error {
	_, err := s.UserRepo.FindByEmail(user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)

	if err := s.UserRepo.Create(user); err != nil {
		return err
	}

	if s.Mail != nil {
		s.Mail.SendWelcome(user.Email, user.Name)
	}
	return nil
}

func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

// RequestPasswordReset 签发重置令牌并发邮件。
// 邮箱不存在时静默成功，避免暴露注册状态
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token, err := s.Tokens.Issue(ctx, user.ID, resetTokenTTL)
	if err != nil {
		return err
	}

	if s.Mail != nil {
		resetLink := fmt.Sprintf("%s/auth/reset-password?token=%s", s.Cfg.Server.BaseURL, token)
		s.Mail.SendPasswordReset(user.Email, user.Name, resetLink)
	}
	return nil
}

// ResetPassword 消费令牌并写入新密码
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, ok := s.Tokens.Consume(ctx, token)
	if !ok {
		return util.ErrTokenExpired
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.UserRepo.UpdatePassword(userID, string(hashedPassword))
}

func (s *AuthService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
