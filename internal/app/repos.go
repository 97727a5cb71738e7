package app

import (
	"gorm.io/gorm"

	contentrepo "github.com/studyweave/studyweave-backend/internal/data/repos/content"
	pathrepo "github.com/studyweave/studyweave-backend/internal/data/repos/path"
	progressrepo "github.com/studyweave/studyweave-backend/internal/data/repos/progress"
	"github.com/studyweave/studyweave-backend/internal/platform/logger"
)

type Repos struct {
	Objects   contentrepo.LearningObjectRepo
	Questions contentrepo.QuestionRepo
	Paths     pathrepo.PathRepo
	PathNodes pathrepo.PathNodeRepo
	Progress  progressrepo.ProgressRepo
	Directory progressrepo.DirectoryRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		Objects:   contentrepo.NewLearningObjectRepo(db, log),
		Questions: contentrepo.NewQuestionRepo(db, log),
		Paths:     pathrepo.NewPathRepo(db, log),
		PathNodes: pathrepo.NewPathNodeRepo(db, log),
		Progress:  progressrepo.NewProgressRepo(db, log),
		Directory: progressrepo.NewDirectoryRepo(db, log),
	}
}
