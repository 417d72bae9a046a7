package models

import (
	"time"
)

// ContactStatus is the moderation state of a contact submission.
type ContactStatus string

const (
	// ContactStatusNew is the default state for fresh submissions.
	ContactStatusNew ContactStatus = "new"
	// ContactStatusRead marks a submission an administrator has seen.
	ContactStatusRead ContactStatus = "read"
	// ContactStatusResponded marks a submission that has been answered.
	ContactStatusResponded ContactStatus = "responded"
)

// ValidContactStatus reports whether s is one of the known status values.
func ValidContactStatus(s ContactStatus) bool {
	switch s {
	case ContactStatusNew, ContactStatusRead, ContactStatusResponded:
		return true
	}

	return false
}

// ContactSubmission is one public contact-form submission. Created by the
// public form, mutated (status) and deleted only by an administrator.
type ContactSubmission struct {
	ID      uint64 `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:255;not null" json:"name"`
	Email   string `gorm:"size:255;not null" json:"email"`
	Phone   string `gorm:"size:64;not null" json:"phone"`
	People  string `gorm:"size:64" json:"people"`
	Message string `gorm:"type:text;not null" json:"message"`
	// Status is one of new, read or responded.
	Status      ContactStatus `gorm:"type:varchar(20);not null;default:'new'" json:"status"`
	SubmittedAt time.Time     `gorm:"index" json:"submittedAt"`
}
