package service

import (
	"context"
	"eduhub_backend/internal/model"
	"eduhub_backend/internal/repository"
	"eduhub_backend/internal/util"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxAvatarSize = 2 << 20 // 2MB

var allowedAvatarTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Storage:  storage,
	}
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(userID uint, name string) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	user.Name = name
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadAvatar 校验类型和大小后上传头像并回写用户记录
func (s *UserService) UploadAvatar(ctx context.Context, userID uint, reader io.Reader, size int64, contentType string) (string, error) {
	ext, ok := allowedAvatarTypes[contentType]
	if !ok {
		return "", fmt.Errorf("unsupported avatar type %q", contentType)
	}
	if size > maxAvatarSize {
		return "", fmt.Errorf("avatar too large: %d bytes (max %d)", size, maxAvatarSize)
	}

	user, err := s.GetProfile(userID)
	if err != nil {
		return "", err
	}

	filename := filepath.Join("avatars", fmt.Sprintf("%d_%d_%s%s", userID, time.Now().Unix(), uuid.New().String()[:8], ext))
	url, err := s.Storage.Upload(ctx, filename, reader, size, contentType)
	if err != nil {
		return "", err
	}

	user.Avatar = url
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}
	return url, nil
}
