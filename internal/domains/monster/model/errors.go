package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeMonsterNotFound  = "MON001"
	ErrCodeInsufficientGold = "MON002"
	ErrCodeValidation       = "MON003"
	ErrCodeUnauthorized     = "MON004"
)

// Sentinel errors raised by the repository layer.
var (
	ErrMonsterNotFound  = errors.New("monster not found")
	ErrInsufficientGold = errors.New("monster does not have enough gold")
	ErrLikeNotFound     = errors.New("monster like not found")
	ErrInvalidSortField = errors.New("unsupported sort field")
)

// MonsterError is the coded error services raise towards the HTTP boundary.
type MonsterError struct {
	Code    string
	Message string
	Err     error
}

func (e *MonsterError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *MonsterError) Unwrap() error {
	return e.Err
}

func NewMonsterNotFoundError() *MonsterError {
	return &MonsterError{
		Code:    ErrCodeMonsterNotFound,
		Message: "Monster not found",
		Err:     ErrMonsterNotFound,
	}
}

func NewInsufficientGoldError() *MonsterError {
	return &MonsterError{
		Code:    ErrCodeInsufficientGold,
		Message: "Monster does not have enough gold to retire",
		Err:     ErrInsufficientGold,
	}
}

func NewValidationError(err error) *MonsterError {
	return &MonsterError{
		Code:    ErrCodeValidation,
		Message: err.Error(),
		Err:     err,
	}
}
