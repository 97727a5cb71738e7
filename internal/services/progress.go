package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	progressrepo "github.com/studyweave/studyweave-backend/internal/data/repos/progress"
	types "github.com/studyweave/studyweave-backend/internal/domain"
	"github.com/studyweave/studyweave-backend/internal/platform/dbctx"
	"github.com/studyweave/studyweave-backend/internal/platform/logger"
)

// ProgressAggregatorService derives completion percentages from raw progress
// flags and the node graph. Reads are not transactional against concurrent
// node mutations; a percentage may be stale by one node.
type ProgressAggregatorService interface {
	StudentPathProgress(ctx context.Context, studentID, pathID uuid.UUID) (float64, error)
	TeamPathProgress(ctx context.Context, teamID, pathID uuid.UUID) (float64, error)
	AssignmentAverageProgress(ctx context.Context, assignmentID uuid.UUID) (float64, error)
}

type progressAggregatorService struct {
	db        *gorm.DB
	log       *logger.Logger
	graph     PathGraphService
	progress  progressrepo.ProgressRepo
	directory progressrepo.DirectoryRepo
}

func NewProgressAggregatorService(
	db *gorm.DB,
	log *logger.Logger,
	graph PathGraphService,
	progress progressrepo.ProgressRepo,
	directory progressrepo.DirectoryRepo,
) ProgressAggregatorService {
	return &progressAggregatorService{
		db:        db,
		log:       log.With("service", "ProgressAggregatorService"),
		graph:     graph,
		progress:  progress,
		directory: directory,
	}
}

// StudentPathProgress returns done/total*100 over the path's nodes. External
// nodes count toward the denominator but can never be done, so a path with
// external nodes tops out below 100% here; that limitation is inherited from
// progress being tracked for local objects only.
func (s *progressAggregatorService) StudentPathProgress(ctx context.Context, studentID, pathID uuid.UUID) (float64, error) {
	const op = "progress.StudentPathProgress"

	nodes, err := s.graph.ListNodes(ctx, pathID)
	if err != nil {
		return 0, err
	}
	totalNodes := len(nodes)
	if totalNodes == 0 {
		return 0, types.NotFound(op, "path "+pathID.String()+" has no nodes")
	}

	seen := make(map[uuid.UUID]struct{}, totalNodes)
	localIDs := make([]uuid.UUID, 0, totalNodes)
	for _, node := range nodes {
		if node.IsExternal || node.LocalObjectID == nil {
			continue
		}
		if _, dup := seen[*node.LocalObjectID]; dup {
			continue
		}
		seen[*node.LocalObjectID] = struct{}{}
		localIDs = append(localIDs, *node.LocalObjectID)
	}

	doneCount, err := s.progress.CountDone(dbctx.Context{Ctx: ctx}, studentID, localIDs)
	if err != nil {
		return 0, err
	}
	// Unrounded; presentation decides about rounding.
	return float64(doneCount) / float64(totalNodes) * 100, nil
}

// TeamPathProgress is the best member's progress, not the average. A team
// with no members reports 0 rather than failing.
func (s *progressAggregatorService) TeamPathProgress(ctx context.Context, teamID, pathID uuid.UUID) (float64, error) {
	const op = "progress.TeamPathProgress"

	team, err := s.directory.TeamByID(dbctx.Context{Ctx: ctx}, teamID)
	if err != nil {
		return 0, err
	}
	if team == nil {
		return 0, types.NotFound(op, "team "+teamID.String()+" does not exist")
	}

	members, err := s.directory.TeamMembers(dbctx.Context{Ctx: ctx}, teamID)
	if err != nil {
		return 0, err
	}
	if len(members) == 0 {
		return 0, nil
	}

	var (
		mu   sync.Mutex
		best float64
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, member := range members {
		memberID := member
		g.Go(func() error {
			p, err := s.StudentPathProgress(gctx, memberID, pathID)
			if err != nil {
				return err
			}
			mu.Lock()
			if p > best {
				best = p
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return best, nil
}

// AssignmentAverageProgress is the arithmetic mean over the assignment's
// teams. Zero teams is NotFound, unlike the zero-member team case above.
func (s *progressAggregatorService) AssignmentAverageProgress(ctx context.Context, assignmentID uuid.UUID) (float64, error) {
	const op = "progress.AssignmentAverageProgress"

	assignment, err := s.directory.AssignmentByID(dbctx.Context{Ctx: ctx}, assignmentID)
	if err != nil {
		return 0, err
	}
	if assignment == nil {
		return 0, types.NotFound(op, "assignment "+assignmentID.String()+" does not exist")
	}

	teams, err := s.directory.TeamsForAssignment(dbctx.Context{Ctx: ctx}, assignmentID)
	if err != nil {
		return 0, err
	}
	if len(teams) == 0 {
		return 0, types.NotFound(op, "assignment "+assignmentID.String()+" has no teams")
	}

	var sum float64
	for _, teamID := range teams {
		p, err := s.TeamPathProgress(ctx, teamID, assignment.PathID)
		if err != nil {
			return 0, err
		}
		sum += p
	}
	return sum / float64(len(teams)), nil
}
