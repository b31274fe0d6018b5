// Package store wraps the database behind small, explicitly constructed
// handles. Handlers and middleware never reach for a package-level connection
package store

import (
	"fmt"

	"gorm.io/gorm"

	"dormhub/room-api/internal/model"
)

type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// ByID returns the user with the given ID, or nil when no such user exists.
// A nil user with a nil error is the "not found" outcome, not a failure
func (s *Users) ByID(id string) (*model.User, error) {
	var u model.User

	err := s.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to fetch user by id, %w", err)
	}

	return &u, nil
}

func (s *Users) ByEmail(email string) (*model.User, error) {
	var u model.User

	err := s.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to fetch user by email, %w", err)
	}

	return &u, nil
}

func (s *Users) Create(u *model.User) error {
	if err := s.db.Create(u).Error; err != nil {
		return fmt.Errorf("failed to create user, %w", err)
	}

	return nil
}

// MarkVerified flips the verified flag, stores the share code and returns the
// updated user. The flag is only ever flipped to true by this call
func (s *Users) MarkVerified(id, shareCode string) (*model.User, error) {
	err := s.db.Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"verified":   true,
			"share_code": shareCode,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to mark user verified, %w", err)
	}

	return s.ByID(id)
}
