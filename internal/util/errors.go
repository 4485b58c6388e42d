package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrAlreadyEnrolled    = errors.New("already enrolled")
	ErrNotEnrolled        = errors.New("not enrolled in this course")
	ErrTokenExpired       = errors.New("token expired or invalid")
	ErrDuplicateOrder     = errors.New("lesson order already taken in this course")
	ErrSlugTaken          = errors.New("slug already taken")
)
