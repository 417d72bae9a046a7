// Package contact provides CRUD operations for contact form submissions.
package contact

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/vikascatering/catering-admin/internal/db/models"
)

var (
	// ErrSubmissionNotFound is returned when a submission id does not exist.
	ErrSubmissionNotFound = errors.New("contact submission not found")
	// ErrInvalidStatus is returned for a status outside the known enum.
	ErrInvalidStatus = errors.New("invalid contact status")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create stores a new submission with status new.
func Create(db *gorm.DB, sub *models.ContactSubmission) error {
	if db == nil {
		return ErrDBNil
	}

	sub.Status = models.ContactStatusNew
	sub.SubmittedAt = time.Now()

	return db.Create(sub).Error
}

// List returns all submissions, newest first.
func List(db *gorm.DB) ([]models.ContactSubmission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var subs []models.ContactSubmission
	result := db.Order("submitted_at DESC").Find(&subs)
	if result.Error != nil {
		return nil, result.Error
	}

	return subs, nil
}

// UpdateStatus sets the status of a submission to one of the enum values.
func UpdateStatus(db *gorm.DB, id uint64, status models.ContactStatus) (*models.ContactSubmission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if !models.ValidContactStatus(status) {
		return nil, ErrInvalidStatus
	}

	var sub models.ContactSubmission
	result := db.First(&sub, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, result.Error
	}

	sub.Status = status
	if err := db.Save(&sub).Error; err != nil {
		return nil, err
	}

	return &sub, nil
}

// Delete hard-deletes a submission by id.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.ContactSubmission{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubmissionNotFound
	}

	return nil
}
