package progress

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/studyweave/studyweave-backend/internal/domain"
	"github.com/studyweave/studyweave-backend/internal/platform/dbctx"
	"github.com/studyweave/studyweave-backend/internal/platform/logger"
)

type ProgressRepo interface {
	// Engage creates the (student, object) row when the student first opens
	// an object; an existing row is left untouched.
	Engage(dbc dbctx.Context, studentID, objectID uuid.UUID) (*types.ProgressRecord, error)
	// MarkDone flips the row to done=true, creating it if absent. Done rows
	// never flip back.
	MarkDone(dbc dbctx.Context, studentID, objectID uuid.UUID) (*types.ProgressRecord, error)

	GetByStudentAndObjectIDs(dbc dbctx.Context, studentID uuid.UUID, objectIDs []uuid.UUID) ([]*types.ProgressRecord, error)
	CountDone(dbc dbctx.Context, studentID uuid.UUID, objectIDs []uuid.UUID) (int64, error)

	FullDeleteByObjectIDs(dbc dbctx.Context, objectIDs []uuid.UUID) error
}

type progressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	return &progressRepo{db: db, log: baseLog.With("repo", "ProgressRepo")}
}

func (r *progressRepo) Engage(dbc dbctx.Context, studentID, objectID uuid.UUID) (*types.ProgressRecord, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if studentID == uuid.Nil || objectID == uuid.Nil {
		return nil, nil
	}
	row := &types.ProgressRecord{
		ID:            uuid.New(),
		StudentID:     studentID,
		LocalObjectID: objectID,
	}
	if err := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "local_object_id"}},
			DoNothing: true,
		}).
		Create(row).Error; err != nil {
		return nil, err
	}
	return r.getOne(dbc, studentID, objectID)
}

func (r *progressRepo) MarkDone(dbc dbctx.Context, studentID, objectID uuid.UUID) (*types.ProgressRecord, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if studentID == uuid.Nil || objectID == uuid.Nil {
		return nil, nil
	}
	now := time.Now().UTC()
	row := &types.ProgressRecord{
		ID:            uuid.New(),
		StudentID:     studentID,
		LocalObjectID: objectID,
		Done:          true,
		DoneAt:        &now,
	}
	if err := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "local_object_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"done": true, "done_at": now, "updated_at": now}),
		}).
		Create(row).Error; err != nil {
		return nil, err
	}
	return r.getOne(dbc, studentID, objectID)
}

func (r *progressRepo) getOne(dbc dbctx.Context, studentID, objectID uuid.UUID) (*types.ProgressRecord, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row types.ProgressRecord
	err := t.WithContext(dbc.Ctx).
		Where("student_id = ? AND local_object_id = ?", studentID, objectID).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *progressRepo) GetByStudentAndObjectIDs(dbc dbctx.Context, studentID uuid.UUID, objectIDs []uuid.UUID) ([]*types.ProgressRecord, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.ProgressRecord
	if studentID == uuid.Nil || len(objectIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("student_id = ? AND local_object_id IN ?", studentID, objectIDs).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *progressRepo) CountDone(dbc dbctx.Context, studentID uuid.UUID, objectIDs []uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if studentID == uuid.Nil || len(objectIDs) == 0 {
		return 0, nil
	}
	var n int64
	if err := t.WithContext(dbc.Ctx).
		Model(&types.ProgressRecord{}).
		Where("student_id = ? AND local_object_id IN ? AND done = ?", studentID, objectIDs, true).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *progressRepo) FullDeleteByObjectIDs(dbc dbctx.Context, objectIDs []uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(objectIDs) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Where("local_object_id IN ?", objectIDs).
		Delete(&types.ProgressRecord{}).Error
}
