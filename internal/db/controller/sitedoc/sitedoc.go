// Package sitedoc provides access to the single site content document.
package sitedoc

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/vikascatering/catering-admin/internal/db/models"
)

const keyQueryPattern = "data_key = ?"

var (
	// ErrDocumentNotFound is returned when no site document has been stored yet.
	ErrDocumentNotFound = errors.New("site document not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves the authoritative site document.
func Get(db *gorm.DB) (*models.SiteDocument, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var doc models.SiteDocument
	result := db.Where(keyQueryPattern, models.MainDataKey).First(&doc)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, result.Error
	}

	return &doc, nil
}

// Upsert stores data verbatim under the main key, creating the document if
// it does not exist yet. The document's shape is not validated; concurrent
// writers overwrite each other (last write wins).
func Upsert(db *gorm.DB, data datatypes.JSON) (*models.SiteDocument, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var doc models.SiteDocument
	result := db.Where(keyQueryPattern, models.MainDataKey).First(&doc)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		doc = models.SiteDocument{
			DataKey:   models.MainDataKey,
			Data:      data,
			UpdatedAt: time.Now(),
		}

		if err := db.Create(&doc).Error; err != nil {
			return nil, err
		}

		return &doc, nil
	}

	if result.Error != nil {
		return nil, result.Error
	}

	doc.Data = data
	doc.UpdatedAt = time.Now()

	if err := db.Save(&doc).Error; err != nil {
		return nil, err
	}

	return &doc, nil
}

// Delete removes the document entirely so that subsequent reads report it
// missing and clients substitute their defaults. Deleting an already absent
// document is not an error.
func Delete(db *gorm.DB) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Where(keyQueryPattern, models.MainDataKey).
		Delete(&models.SiteDocument{}).Error
}
