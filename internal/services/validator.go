package services

import (
	"context"

	"gorm.io/gorm"

	contentrepo "github.com/studyweave/studyweave-backend/internal/data/repos/content"
	types "github.com/studyweave/studyweave-backend/internal/domain"
	"github.com/studyweave/studyweave-backend/internal/platform/catalog"
	"github.com/studyweave/studyweave-backend/internal/platform/dbctx"
	"github.com/studyweave/studyweave-backend/internal/platform/logger"
)

// ValidatorService confirms a reference points at something before it is
// stored anywhere. Existence only: visibility is the resolver's concern.
type ValidatorService interface {
	Validate(ctx context.Context, ref types.ContentReference) error
}

type validatorService struct {
	db      *gorm.DB
	log     *logger.Logger
	objects contentrepo.LearningObjectRepo
	catalog catalog.Client
}

func NewValidatorService(
	db *gorm.DB,
	log *logger.Logger,
	objects contentrepo.LearningObjectRepo,
	cat catalog.Client,
) ValidatorService {
	return &validatorService{
		db:      db,
		log:     log.With("service", "ValidatorService"),
		objects: objects,
		catalog: cat,
	}
}

func (s *validatorService) Validate(ctx context.Context, ref types.ContentReference) error {
	const op = "validator.Validate"
	if err := ref.CheckWellFormed(op); err != nil {
		return err
	}

	if triple, ok := ref.External(); ok {
		if _, err := s.catalog.GetByTriple(ctx, triple.HrUID, triple.Language, triple.Version); err != nil {
			return types.AsNetwork(op, err)
		}
		return nil
	}

	id, _ := ref.LocalID()
	exists, err := s.objects.ExistsByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return err
	}
	if !exists {
		return types.NotFound(op, "local object "+id.String()+" does not exist")
	}
	return nil
}
