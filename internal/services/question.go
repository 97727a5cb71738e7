package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	contentrepo "github.com/studyweave/studyweave-backend/internal/data/repos/content"
	types "github.com/studyweave/studyweave-backend/internal/domain"
	"github.com/studyweave/studyweave-backend/internal/platform/dbctx"
	"github.com/studyweave/studyweave-backend/internal/platform/logger"
)

// QuestionService attaches student questions to content. The reference is
// validated before the row is written, so a question can never dangle.
type QuestionService interface {
	CreateQuestion(ctx context.Context, authorID uuid.UUID, body string, ref types.ContentReference) (*types.Question, error)
	ListForLocalObject(ctx context.Context, objectID uuid.UUID) ([]*types.Question, error)
}

type questionService struct {
	db        *gorm.DB
	log       *logger.Logger
	questions contentrepo.QuestionRepo
	validator ValidatorService
}

func NewQuestionService(
	db *gorm.DB,
	log *logger.Logger,
	questions contentrepo.QuestionRepo,
	validator ValidatorService,
) QuestionService {
	return &questionService{
		db:        db,
		log:       log.With("service", "QuestionService"),
		questions: questions,
		validator: validator,
	}
}

func (s *questionService) CreateQuestion(ctx context.Context, authorID uuid.UUID, body string, ref types.ContentReference) (*types.Question, error) {
	const op = "question.CreateQuestion"
	if strings.TrimSpace(body) == "" {
		return nil, types.InvalidReference(op, "question body is empty")
	}
	if err := s.validator.Validate(ctx, ref); err != nil {
		return nil, err
	}

	row := &types.Question{ID: uuid.New(), AuthorID: authorID, Body: body}
	row.SetReference(ref)
	if _, err := s.questions.Create(dbctx.Context{Ctx: ctx}, []*types.Question{row}); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *questionService) ListForLocalObject(ctx context.Context, objectID uuid.UUID) ([]*types.Question, error) {
	return s.questions.ListByLocalObjectID(dbctx.Context{Ctx: ctx}, objectID)
}
