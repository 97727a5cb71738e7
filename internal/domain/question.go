package domain

import (
	"time"

	"github.com/google/uuid"
)

// Question is a student question attached to one content item. Its reference
// columns follow the same union discipline as PathNode and are validated
// before the row is written.
type Question struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID uuid.UUID `gorm:"type:uuid;column:author_id;not null;index" json:"author_id"`
	Body     string    `gorm:"column:body;type:text;not null" json:"body"`

	IsExternal       bool       `gorm:"column:is_external;not null;default:false" json:"is_external"`
	LocalObjectID    *uuid.UUID `gorm:"type:uuid;column:local_object_id;index" json:"local_object_id,omitempty"`
	ExternalHrUID    *string    `gorm:"column:external_hruid" json:"external_hruid,omitempty"`
	ExternalLanguage *string    `gorm:"column:external_language" json:"external_language,omitempty"`
	ExternalVersion  *int       `gorm:"column:external_version" json:"external_version,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Question) TableName() string { return "question" }

func (q *Question) SetReference(ref ContentReference) {
	if triple, ok := ref.External(); ok {
		hruid, lang, version := triple.HrUID, triple.Language, triple.Version
		q.IsExternal = true
		q.LocalObjectID = nil
		q.ExternalHrUID = &hruid
		q.ExternalLanguage = &lang
		q.ExternalVersion = &version
		return
	}
	if id, ok := ref.LocalID(); ok {
		localID := id
		q.IsExternal = false
		q.LocalObjectID = &localID
		q.ExternalHrUID = nil
		q.ExternalLanguage = nil
		q.ExternalVersion = nil
	}
}
