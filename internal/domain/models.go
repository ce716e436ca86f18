// Package domain defines the persistence model for form submissions.
// The type is mapped with GORM and forms the core data layer of the
// record service.
package domain

import "time"

// Submission represents one row captured from the entry form. The triple
// username/email/phone is always present; presence is enforced by the
// service layer before any write.
//
// Fields:
//   - ID: store-assigned integer primary key, unique and immutable.
//   - Username / Email / Phone: required text fields; the only mutable state.
//   - CreatedAt: set once at insertion, never modified afterwards.
//   - UpdatedAt: managed by GORM on field updates; storage-only (omitted from
//     JSON) and used by conditional GET support to cheaply detect changes.
//
// Rows are destroyed permanently on delete. There is no soft deletion,
// no versioning, and no relationship to other tables.
type Submission struct {
	ID        uint      `json:"id"         gorm:"primaryKey;autoIncrement"`
	Username  string    `json:"username"   gorm:"type:varchar(255);not null"`
	Email     string    `json:"email"      gorm:"type:varchar(255);not null"`
	Phone     string    `json:"phone"      gorm:"type:varchar(50);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the database table name for Submission.
func (Submission) TableName() string { return "submissions" }
