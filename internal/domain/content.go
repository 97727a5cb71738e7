package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Origin names the backing store that owns a content record.
type Origin string

const (
	OriginLocal    Origin = "local"
	OriginExternal Origin = "external"
)

// LearningObject is a locally authored content unit. Rows are owned and
// mutated only by their creator.
type LearningObject struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	HrUID       string    `gorm:"column:hruid;not null;index:idx_object_triple,unique,priority:1" json:"hruid"`
	Language    string    `gorm:"column:language;not null;index:idx_object_triple,unique,priority:2" json:"language"`
	Version     int       `gorm:"column:version;not null;index:idx_object_triple,unique,priority:3" json:"version"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`

	TeacherExclusive bool `gorm:"column:teacher_exclusive;not null;default:false" json:"teacher_exclusive"`
	Available        bool `gorm:"column:available;not null;default:true" json:"available"`

	CreatorID uuid.UUID      `gorm:"type:uuid;column:creator_id;not null;index" json:"creator_id"`
	Metadata  datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (LearningObject) TableName() string { return "learning_object" }

// ContentRecord is the normalized view of a content item handed to callers,
// regardless of which store resolved it. External records are never persisted;
// they live for the duration of one request.
type ContentRecord struct {
	Origin      Origin     `json:"origin"`
	LocalID     *uuid.UUID `json:"local_id,omitempty"`
	HrUID       string     `json:"hruid"`
	Language    string     `json:"language"`
	Version     int        `json:"version"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`

	TeacherExclusive bool `json:"teacher_exclusive"`
	Available        bool `json:"available"`
}

func (o *LearningObject) Record() *ContentRecord {
	id := o.ID
	return &ContentRecord{
		Origin:           OriginLocal,
		LocalID:          &id,
		HrUID:            o.HrUID,
		Language:         o.Language,
		Version:          o.Version,
		Title:            o.Title,
		Description:      o.Description,
		TeacherExclusive: o.TeacherExclusive,
		Available:        o.Available,
	}
}
