package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	redisclient "github.com/studyweave/studyweave-backend/internal/clients/redis"
	contentrepo "github.com/studyweave/studyweave-backend/internal/data/repos/content"
	progressrepo "github.com/studyweave/studyweave-backend/internal/data/repos/progress"
	types "github.com/studyweave/studyweave-backend/internal/domain"
	"github.com/studyweave/studyweave-backend/internal/platform/dbctx"
	"github.com/studyweave/studyweave-backend/internal/platform/logger"
)

type CreateObjectInput struct {
	HrUID            string
	Language         string
	Version          int
	Title            string
	Description      string
	TeacherExclusive bool
	Available        bool
}

// ObjectService is the mutable side of the local content store plus student
// engagement (progress flags live on local objects only).
type ObjectService interface {
	CreateObject(ctx context.Context, creatorID uuid.UUID, in CreateObjectInput) (*types.LearningObject, error)
	UpdateObject(ctx context.Context, creatorID, objectID uuid.UUID, updates map[string]interface{}) (*types.LearningObject, error)
	DeleteObject(ctx context.Context, creatorID, objectID uuid.UUID) error
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*types.LearningObject, error)

	Engage(ctx context.Context, studentID, objectID uuid.UUID) error
	MarkDone(ctx context.Context, studentID, objectID uuid.UUID) error
}

type objectService struct {
	db       *gorm.DB
	log      *logger.Logger
	objects  contentrepo.LearningObjectRepo
	progress progressrepo.ProgressRepo
	bus      redisclient.CompletionBus
}

// NewObjectService accepts a nil bus; completion events are then skipped.
func NewObjectService(
	db *gorm.DB,
	log *logger.Logger,
	objects contentrepo.LearningObjectRepo,
	progress progressrepo.ProgressRepo,
	bus redisclient.CompletionBus,
) ObjectService {
	return &objectService{
		db:       db,
		log:      log.With("service", "ObjectService"),
		objects:  objects,
		progress: progress,
		bus:      bus,
	}
}

func (s *objectService) CreateObject(ctx context.Context, creatorID uuid.UUID, in CreateObjectInput) (*types.LearningObject, error) {
	row := &types.LearningObject{
		ID:               uuid.New(),
		HrUID:            in.HrUID,
		Language:         in.Language,
		Version:          in.Version,
		Title:            in.Title,
		Description:      in.Description,
		TeacherExclusive: in.TeacherExclusive,
		Available:        in.Available,
		CreatorID:        creatorID,
	}
	if _, err := s.objects.Create(dbctx.Context{Ctx: ctx}, []*types.LearningObject{row}); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *objectService) UpdateObject(ctx context.Context, creatorID, objectID uuid.UUID, updates map[string]interface{}) (*types.LearningObject, error) {
	const op = "object.UpdateObject"
	row, err := s.requireOwned(ctx, op, creatorID, objectID)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return row, nil
	}
	if err := s.objects.UpdateFields(dbctx.Context{Ctx: ctx}, objectID, updates); err != nil {
		return nil, err
	}
	return s.objects.GetByID(dbctx.Context{Ctx: ctx}, objectID)
}

// DeleteObject destroys the object and its progress rows together.
func (s *objectService) DeleteObject(ctx context.Context, creatorID, objectID uuid.UUID) error {
	const op = "object.DeleteObject"
	if _, err := s.requireOwned(ctx, op, creatorID, objectID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(txx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: txx}
		if err := s.progress.FullDeleteByObjectIDs(dbc, []uuid.UUID{objectID}); err != nil {
			return err
		}
		return s.objects.FullDeleteByIDs(dbc, []uuid.UUID{objectID})
	})
}

func (s *objectService) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*types.LearningObject, error) {
	return s.objects.ListByCreator(dbctx.Context{Ctx: ctx}, creatorID)
}

func (s *objectService) Engage(ctx context.Context, studentID, objectID uuid.UUID) error {
	const op = "object.Engage"
	if err := s.requireExists(ctx, op, objectID); err != nil {
		return err
	}
	_, err := s.progress.Engage(dbctx.Context{Ctx: ctx}, studentID, objectID)
	return err
}

func (s *objectService) MarkDone(ctx context.Context, studentID, objectID uuid.UUID) error {
	const op = "object.MarkDone"
	if err := s.requireExists(ctx, op, objectID); err != nil {
		return err
	}
	row, err := s.progress.MarkDone(dbctx.Context{Ctx: ctx}, studentID, objectID)
	if err != nil {
		return err
	}
	if s.bus != nil && row != nil && row.DoneAt != nil {
		ev := redisclient.CompletionEvent{StudentID: studentID, ObjectID: objectID, DoneAt: *row.DoneAt}
		if pubErr := s.bus.Publish(ctx, ev); pubErr != nil {
			// The completion is committed; a dropped event is log-only.
			s.log.Warn("completion event publish failed", "error", pubErr, "object_id", objectID)
		}
	}
	return nil
}

func (s *objectService) requireOwned(ctx context.Context, op string, creatorID, objectID uuid.UUID) (*types.LearningObject, error) {
	row, err := s.objects.GetByID(dbctx.Context{Ctx: ctx}, objectID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, types.NotFound(op, "object "+objectID.String()+" does not exist")
	}
	if row.CreatorID != creatorID {
		return nil, types.AccessDenied(op, "object belongs to another creator")
	}
	return row, nil
}

func (s *objectService) requireExists(ctx context.Context, op string, objectID uuid.UUID) error {
	exists, err := s.objects.ExistsByID(dbctx.Context{Ctx: ctx}, objectID)
	if err != nil {
		return err
	}
	if !exists {
		return types.NotFound(op, "object "+objectID.String()+" does not exist")
	}
	return nil
}
