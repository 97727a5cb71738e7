package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pathrepo "github.com/studyweave/studyweave-backend/internal/data/repos/path"
	types "github.com/studyweave/studyweave-backend/internal/domain"
	"github.com/studyweave/studyweave-backend/internal/platform/dbctx"
	"github.com/studyweave/studyweave-backend/internal/platform/logger"
)

// PathGraphService owns the node rows of a path and the path's cached
// num_nodes count. Create and delete run the row mutation and a recount from
// actual rows inside one transaction, serialized per path by a row lock on
// the path itself; no committed state ever shows a drifted count.
//
// Ownership of the path is the caller's concern and is assumed checked before
// any mutating call lands here.
type PathGraphService interface {
	CreateNode(ctx context.Context, pathID uuid.UUID, ref types.ContentReference, startNode bool) (*types.PathNode, error)
	UpdateNode(ctx context.Context, pathID, nodeID uuid.UUID, newRef *types.ContentReference, startNode *bool) (*types.PathNode, error)
	DeleteNode(ctx context.Context, pathID, nodeID uuid.UUID) error
	ListNodes(ctx context.Context, pathID uuid.UUID) ([]*types.PathNode, error)
}

type pathGraphService struct {
	db        *gorm.DB
	log       *logger.Logger
	paths     pathrepo.PathRepo
	nodes     pathrepo.PathNodeRepo
	validator ValidatorService
}

func NewPathGraphService(
	db *gorm.DB,
	log *logger.Logger,
	paths pathrepo.PathRepo,
	nodes pathrepo.PathNodeRepo,
	validator ValidatorService,
) PathGraphService {
	return &pathGraphService{
		db:        db,
		log:       log.With("service", "PathGraphService"),
		paths:     paths,
		nodes:     nodes,
		validator: validator,
	}
}

func (s *pathGraphService) CreateNode(ctx context.Context, pathID uuid.UUID, ref types.ContentReference, startNode bool) (*types.PathNode, error) {
	const op = "pathgraph.CreateNode"

	if err := ref.CheckWellFormed(op); err != nil {
		return nil, err
	}
	// Validation can hit the network, so it happens before the transaction
	// opens; no DB state is held while waiting on the catalog.
	if err := s.validator.Validate(ctx, ref); err != nil {
		return nil, err
	}

	node := &types.PathNode{ID: uuid.New(), PathID: pathID, StartNode: startNode}
	node.SetReference(ref)

	err := s.db.WithContext(ctx).Transaction(func(txx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: txx}

		locked, err := s.paths.GetByIDForUpdate(dbc, pathID)
		if err != nil {
			return err
		}
		if locked == nil {
			return types.NotFound(op, "path "+pathID.String()+" does not exist")
		}
		if _, err := s.nodes.Create(dbc, []*types.PathNode{node}); err != nil {
			return err
		}
		return s.storeRecount(dbc, pathID)
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}

func (s *pathGraphService) UpdateNode(ctx context.Context, pathID, nodeID uuid.UUID, newRef *types.ContentReference, startNode *bool) (*types.PathNode, error) {
	const op = "pathgraph.UpdateNode"

	node, err := s.nodes.GetByID(dbctx.Context{Ctx: ctx}, nodeID)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, types.NotFound(op, "node "+nodeID.String()+" does not exist")
	}
	if node.PathID != pathID {
		return nil, types.InvalidRelation(op, "node "+nodeID.String()+" does not belong to path "+pathID.String())
	}

	updates := map[string]interface{}{}
	if newRef != nil {
		if err := newRef.CheckWellFormed(op); err != nil {
			return nil, err
		}
		// The new reference must hold up before the old one is overwritten.
		if err := s.validator.Validate(ctx, *newRef); err != nil {
			return nil, err
		}
		for k, v := range types.ReferenceColumns(*newRef) {
			updates[k] = v
		}
	}
	if startNode != nil {
		updates["start_node"] = *startNode
	}
	if len(updates) == 0 {
		return node, nil
	}

	// One Updates call writes every column of the new variant and nulls the
	// other variant together; num_nodes is untouched.
	if err := s.nodes.UpdateFields(dbctx.Context{Ctx: ctx}, nodeID, updates); err != nil {
		return nil, err
	}
	return s.nodes.GetByID(dbctx.Context{Ctx: ctx}, nodeID)
}

func (s *pathGraphService) DeleteNode(ctx context.Context, pathID, nodeID uuid.UUID) error {
	const op = "pathgraph.DeleteNode"

	return s.db.WithContext(ctx).Transaction(func(txx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: txx}

		locked, err := s.paths.GetByIDForUpdate(dbc, pathID)
		if err != nil {
			return err
		}
		if locked == nil {
			return types.NotFound(op, "path "+pathID.String()+" does not exist")
		}

		node, err := s.nodes.GetByID(dbc, nodeID)
		if err != nil {
			return err
		}
		if node == nil {
			return types.NotFound(op, "node "+nodeID.String()+" does not exist")
		}
		if node.PathID != pathID {
			return types.InvalidRelation(op, "node "+nodeID.String()+" does not belong to path "+pathID.String())
		}

		if err := s.nodes.FullDeleteByIDs(dbc, []uuid.UUID{nodeID}); err != nil {
			return err
		}
		return s.storeRecount(dbc, pathID)
	})
}

func (s *pathGraphService) ListNodes(ctx context.Context, pathID uuid.UUID) ([]*types.PathNode, error) {
	return s.nodes.GetByPathIDs(dbctx.Context{Ctx: ctx}, []uuid.UUID{pathID})
}

// storeRecount recomputes num_nodes from actual rows inside the caller's
// transaction. Counting rows instead of bumping a counter keeps the cache
// honest even when a concurrent mutation aborted halfway.
func (s *pathGraphService) storeRecount(dbc dbctx.Context, pathID uuid.UUID) error {
	n, err := s.nodes.CountByPathID(dbc, pathID)
	if err != nil {
		return err
	}
	return s.paths.UpdateFields(dbc, pathID, map[string]interface{}{"num_nodes": n})
}
