package progress

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/studyweave/studyweave-backend/internal/domain"
	"github.com/studyweave/studyweave-backend/internal/platform/dbctx"
	"github.com/studyweave/studyweave-backend/internal/platform/logger"
)

// DirectoryRepo is the team/assignment roster the aggregator consumes.
type DirectoryRepo interface {
	CreateAssignment(dbc dbctx.Context, row *types.Assignment) (*types.Assignment, error)
	CreateTeam(dbc dbctx.Context, row *types.Team) (*types.Team, error)
	AddMember(dbc dbctx.Context, teamID, studentID uuid.UUID) error

	AssignmentByID(dbc dbctx.Context, id uuid.UUID) (*types.Assignment, error)
	TeamByID(dbc dbctx.Context, id uuid.UUID) (*types.Team, error)
	TeamMembers(dbc dbctx.Context, teamID uuid.UUID) ([]uuid.UUID, error)
	TeamsForAssignment(dbc dbctx.Context, assignmentID uuid.UUID) ([]uuid.UUID, error)
}

type directoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDirectoryRepo(db *gorm.DB, baseLog *logger.Logger) DirectoryRepo {
	return &directoryRepo{db: db, log: baseLog.With("repo", "DirectoryRepo")}
}

func (r *directoryRepo) CreateAssignment(dbc dbctx.Context, row *types.Assignment) (*types.Assignment, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil, nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if err := t.WithContext(dbc.Ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *directoryRepo) CreateTeam(dbc dbctx.Context, row *types.Team) (*types.Team, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil, nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if err := t.WithContext(dbc.Ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *directoryRepo) AddMember(dbc dbctx.Context, teamID, studentID uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if teamID == uuid.Nil || studentID == uuid.Nil {
		return nil
	}
	row := &types.TeamMember{ID: uuid.New(), TeamID: teamID, StudentID: studentID}
	return t.WithContext(dbc.Ctx).Create(row).Error
}

func (r *directoryRepo) AssignmentByID(dbc dbctx.Context, id uuid.UUID) (*types.Assignment, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Assignment
	err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *directoryRepo) TeamByID(dbc dbctx.Context, id uuid.UUID) (*types.Team, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Team
	err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *directoryRepo) TeamMembers(dbc dbctx.Context, teamID uuid.UUID) ([]uuid.UUID, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []uuid.UUID
	if teamID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Model(&types.TeamMember{}).
		Where("team_id = ?", teamID).
		Order("created_at ASC").
		Pluck("student_id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *directoryRepo) TeamsForAssignment(dbc dbctx.Context, assignmentID uuid.UUID) ([]uuid.UUID, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []uuid.UUID
	if assignmentID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Model(&types.Team{}).
		Where("assignment_id = ?", assignmentID).
		Order("created_at ASC").
		Pluck("id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
