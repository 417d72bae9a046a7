// Package models contains database model definitions.
package models

import (
	"time"

	"gorm.io/datatypes"
)

// MainDataKey is the key under which the single authoritative site document
// is stored. There is exactly one such document per deployment.
const MainDataKey = "main"

// SiteDocument holds the entire editable site content as one JSON document,
// addressed by a fixed key. The shape of Data is not validated server-side;
// whatever the editor saves is stored verbatim and clients merge it with
// their embedded defaults on read. Concurrent writers overwrite each other
// (last write wins).
type SiteDocument struct {
	ID uint64 `gorm:"primaryKey"`
	// DataKey addresses the document; only MainDataKey is used.
	DataKey string `gorm:"unique;size:64;not null"`
	// Data is the untyped nested content structure.
	Data datatypes.JSON `gorm:"not null"`
	// UpdatedAt is stamped on every upsert.
	UpdatedAt time.Time
}
