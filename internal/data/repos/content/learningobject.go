package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/studyweave/studyweave-backend/internal/domain"
	"github.com/studyweave/studyweave-backend/internal/platform/dbctx"
	"github.com/studyweave/studyweave-backend/internal/platform/logger"
)

type LearningObjectRepo interface {
	Create(dbc dbctx.Context, rows []*types.LearningObject) ([]*types.LearningObject, error)

	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.LearningObject, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.LearningObject, error)
	GetByTriple(dbc dbctx.Context, hruid, language string, version int) (*types.LearningObject, error)
	ListByCreator(dbc dbctx.Context, creatorID uuid.UUID) ([]*types.LearningObject, error)
	ExistsByID(dbc dbctx.Context, id uuid.UUID) (bool, error)

	Update(dbc dbctx.Context, row *types.LearningObject) error
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error

	FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type learningObjectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningObjectRepo(db *gorm.DB, baseLog *logger.Logger) LearningObjectRepo {
	return &learningObjectRepo{db: db, log: baseLog.With("repo", "LearningObjectRepo")}
}

func (r *learningObjectRepo) Create(dbc dbctx.Context, rows []*types.LearningObject) ([]*types.LearningObject, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.LearningObject{}, nil
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *learningObjectRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.LearningObject, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	rows, err := r.GetByIDs(dbc, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *learningObjectRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.LearningObject, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.LearningObject
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *learningObjectRepo) GetByTriple(dbc dbctx.Context, hruid, language string, version int) (*types.LearningObject, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row types.LearningObject
	err := t.WithContext(dbc.Ctx).
		Where("hruid = ? AND language = ? AND version = ?", hruid, language, version).
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

func (r *learningObjectRepo) ListByCreator(dbc dbctx.Context, creatorID uuid.UUID) ([]*types.LearningObject, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.LearningObject
	if creatorID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *learningObjectRepo) ExistsByID(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return false, nil
	}
	var n int64
	if err := t.WithContext(dbc.Ctx).
		Model(&types.LearningObject{}).
		Where("id = ?", id).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *learningObjectRepo) Update(dbc dbctx.Context, row *types.LearningObject) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil
	}
	return t.WithContext(dbc.Ctx).Save(row).Error
}

func (r *learningObjectRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	return t.WithContext(dbc.Ctx).
		Model(&types.LearningObject{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *learningObjectRepo) FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).Unscoped().Where("id IN ?", ids).Delete(&types.LearningObject{}).Error
}
