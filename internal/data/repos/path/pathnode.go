package path

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/studyweave/studyweave-backend/internal/domain"
	"github.com/studyweave/studyweave-backend/internal/platform/dbctx"
	"github.com/studyweave/studyweave-backend/internal/platform/logger"
)

type PathNodeRepo interface {
	Create(dbc dbctx.Context, rows []*types.PathNode) ([]*types.PathNode, error)

	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.PathNode, error)
	GetByPathIDs(dbc dbctx.Context, pathIDs []uuid.UUID) ([]*types.PathNode, error)
	CountByPathID(dbc dbctx.Context, pathID uuid.UUID) (int64, error)

	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error

	FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
	FullDeleteByPathIDs(dbc dbctx.Context, pathIDs []uuid.UUID) error
}

type pathNodeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPathNodeRepo(db *gorm.DB, baseLog *logger.Logger) PathNodeRepo {
	return &pathNodeRepo{db: db, log: baseLog.With("repo", "PathNodeRepo")}
}

func (r *pathNodeRepo) Create(dbc dbctx.Context, rows []*types.PathNode) ([]*types.PathNode, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.PathNode{}, nil
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

func (r *pathNodeRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.PathNode, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.PathNode
	err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *pathNodeRepo) GetByPathIDs(dbc dbctx.Context, pathIDs []uuid.UUID) ([]*types.PathNode, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.PathNode
	if len(pathIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("path_id IN ?", pathIDs).
		Order("path_id ASC, created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *pathNodeRepo) CountByPathID(dbc dbctx.Context, pathID uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if pathID == uuid.Nil {
		return 0, nil
	}
	var n int64
	if err := t.WithContext(dbc.Ctx).
		Model(&types.PathNode{}).
		Where("path_id = ?", pathID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *pathNodeRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.PathNode{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *pathNodeRepo) FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).Unscoped().Where("id IN ?", ids).Delete(&types.PathNode{}).Error
}

func (r *pathNodeRepo) FullDeleteByPathIDs(dbc dbctx.Context, pathIDs []uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(pathIDs) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).Unscoped().Where("path_id IN ?", pathIDs).Delete(&types.PathNode{}).Error
}
