package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when the addressed record does not exist
var ErrNotFound = errors.New("record not found")

// translate maps gorm's not-found error onto ErrNotFound
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// affected turns a zero-row write into ErrNotFound
func affected(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
