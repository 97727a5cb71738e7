package db

import (
	"gorm.io/gorm"

	types "github.com/studyweave/studyweave-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Local content store
		&types.LearningObject{},
		&types.LearningPath{},
		&types.PathNode{},

		// Engagement
		&types.ProgressRecord{},
		&types.Question{},

		// Rosters
		&types.Assignment{},
		&types.Team{},
		&types.TeamMember{},
	)
}
