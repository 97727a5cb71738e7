package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProgressRecord is a per-student, per-local-object completion flag. It is
// created when a student first engages an object and flips to done=true on
// completion; this engine never flips it back. Externally hosted objects have
// no progress rows.
type ProgressRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID     uuid.UUID `gorm:"type:uuid;column:student_id;not null;index:idx_progress_student_object,unique,priority:1" json:"student_id"`
	LocalObjectID uuid.UUID `gorm:"type:uuid;column:local_object_id;not null;index:idx_progress_student_object,unique,priority:2" json:"local_object_id"`

	Done   bool       `gorm:"column:done;not null;default:false" json:"done"`
	DoneAt *time.Time `gorm:"column:done_at" json:"done_at,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ProgressRecord) TableName() string { return "progress_record" }
