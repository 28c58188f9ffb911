package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrClassNotFound      = errors.New("class not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrAttemptUsed        = errors.New("assignment does not allow another attempt")

	ErrTestNotStarted     = errors.New("test not started")
	ErrNoActiveQuestion   = errors.New("no active question")
	ErrQuestionExpired    = errors.New("time for this question has expired")
	ErrPracticeNotStarted = errors.New("practice session not started")

	// ErrCacheMiss 会话存储中不存在对应键
	ErrCacheMiss = errors.New("cache: key not found")
)
