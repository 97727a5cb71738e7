package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LearningPath is an ordered curriculum assembled out of learning objects.
// NumNodes is a cached count maintained by the node graph manager: after any
// committed node mutation it equals the number of node rows owned by the path.
type LearningPath struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	HrUID    string    `gorm:"column:hruid;not null;index" json:"hruid"`
	Title    string    `gorm:"column:title;not null" json:"title"`
	Language string    `gorm:"column:language;not null" json:"language"`

	NumNodes  int            `gorm:"column:num_nodes;not null;default:0" json:"num_nodes"`
	CreatorID uuid.UUID      `gorm:"type:uuid;column:creator_id;not null;index" json:"creator_id"`
	Metadata  datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (LearningPath) TableName() string { return "learning_path" }

// PathNode points a path entry at exactly one content item. The reference
// columns mirror the ContentReference union: when IsExternal is set the local
// columns are null, and the other way around.
type PathNode struct {
	ID     uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	PathID uuid.UUID     `gorm:"type:uuid;not null;index" json:"path_id"`
	Path   *LearningPath `gorm:"constraint:OnDelete:CASCADE;foreignKey:PathID;references:ID" json:"path,omitempty"`

	IsExternal       bool       `gorm:"column:is_external;not null;default:false" json:"is_external"`
	LocalObjectID    *uuid.UUID `gorm:"type:uuid;column:local_object_id;index" json:"local_object_id,omitempty"`
	ExternalHrUID    *string    `gorm:"column:external_hruid" json:"external_hruid,omitempty"`
	ExternalLanguage *string    `gorm:"column:external_language" json:"external_language,omitempty"`
	ExternalVersion  *int       `gorm:"column:external_version" json:"external_version,omitempty"`

	StartNode bool `gorm:"column:start_node;not null;default:false" json:"start_node"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (PathNode) TableName() string { return "path_node" }

// Reference rebuilds the union from the row columns.
func (n *PathNode) Reference() (ContentReference, error) {
	const op = "PathNode.Reference"
	if n.IsExternal {
		if n.ExternalHrUID == nil || n.ExternalLanguage == nil || n.ExternalVersion == nil {
			return ContentReference{}, InvalidReference(op, "external node row is missing triple columns")
		}
		ref := ExternalRef(*n.ExternalHrUID, *n.ExternalLanguage, *n.ExternalVersion)
		return ref, ref.CheckWellFormed(op)
	}
	if n.LocalObjectID == nil {
		return ContentReference{}, InvalidReference(op, "local node row is missing local_object_id")
	}
	return LocalRef(*n.LocalObjectID), nil
}

// SetReference writes the union into the row, clearing every column of the
// other variant so a variant swap can never leave stale fields behind.
func (n *PathNode) SetReference(ref ContentReference) {
	if triple, ok := ref.External(); ok {
		hruid, lang, version := triple.HrUID, triple.Language, triple.Version
		n.IsExternal = true
		n.LocalObjectID = nil
		n.ExternalHrUID = &hruid
		n.ExternalLanguage = &lang
		n.ExternalVersion = &version
		return
	}
	if id, ok := ref.LocalID(); ok {
		localID := id
		n.IsExternal = false
		n.LocalObjectID = &localID
		n.ExternalHrUID = nil
		n.ExternalLanguage = nil
		n.ExternalVersion = nil
	}
}

// ReferenceColumns is the updates-map form of SetReference, for repo-level
// column updates.
func ReferenceColumns(ref ContentReference) map[string]interface{} {
	if triple, ok := ref.External(); ok {
		return map[string]interface{}{
			"is_external":       true,
			"local_object_id":   nil,
			"external_hruid":    triple.HrUID,
			"external_language": triple.Language,
			"external_version":  triple.Version,
		}
	}
	id, _ := ref.LocalID()
	return map[string]interface{}{
		"is_external":       false,
		"local_object_id":   id,
		"external_hruid":    nil,
		"external_language": nil,
		"external_version":  nil,
	}
}
