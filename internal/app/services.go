package app

import (
	"gorm.io/gorm"

	redisclient "github.com/studyweave/studyweave-backend/internal/clients/redis"
	"github.com/studyweave/studyweave-backend/internal/platform/catalog"
	"github.com/studyweave/studyweave-backend/internal/platform/logger"
	"github.com/studyweave/studyweave-backend/internal/services"
)

type Services struct {
	Resolver   services.ResolverService
	Validator  services.ValidatorService
	PathGraph  services.PathGraphService
	Aggregator services.ProgressAggregatorService
	Objects    services.ObjectService
	Questions  services.QuestionService
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos, cat catalog.Client, bus redisclient.CompletionBus) Services {
	validator := services.NewValidatorService(db, log, reposet.Objects, cat)
	resolver := services.NewResolverService(db, log, reposet.Objects, reposet.PathNodes, cat)
	graph := services.NewPathGraphService(db, log, reposet.Paths, reposet.PathNodes, validator)
	aggregator := services.NewProgressAggregatorService(db, log, graph, reposet.Progress, reposet.Directory)
	objects := services.NewObjectService(db, log, reposet.Objects, reposet.Progress, bus)
	questions := services.NewQuestionService(db, log, reposet.Questions, validator)

	return Services{
		Resolver:   resolver,
		Validator:  validator,
		PathGraph:  graph,
		Aggregator: aggregator,
		Objects:    objects,
		Questions:  questions,
	}
}
