package domain

import (
	"time"

	"github.com/google/uuid"
)

// Assignment binds teams of students to a learning path.
type Assignment struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PathID uuid.UUID `gorm:"type:uuid;column:path_id;not null;index" json:"path_id"`
	Title  string    `gorm:"column:title;not null" json:"title"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Assignment) TableName() string { return "assignment" }

type Team struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AssignmentID uuid.UUID `gorm:"type:uuid;column:assignment_id;not null;index" json:"assignment_id"`
	Name         string    `gorm:"column:name;not null" json:"name"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Team) TableName() string { return "team" }

type TeamMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TeamID    uuid.UUID `gorm:"type:uuid;column:team_id;not null;index:idx_team_member,unique,priority:1" json:"team_id"`
	StudentID uuid.UUID `gorm:"type:uuid;column:student_id;not null;index:idx_team_member,unique,priority:2" json:"student_id"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (TeamMember) TableName() string { return "team_member" }
