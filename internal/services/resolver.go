package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	contentrepo "github.com/studyweave/studyweave-backend/internal/data/repos/content"
	pathrepo "github.com/studyweave/studyweave-backend/internal/data/repos/path"
	types "github.com/studyweave/studyweave-backend/internal/domain"
	"github.com/studyweave/studyweave-backend/internal/platform/catalog"
	"github.com/studyweave/studyweave-backend/internal/platform/dbctx"
	"github.com/studyweave/studyweave-backend/internal/platform/logger"
)

// ResolverService answers "give me this content" against whichever store owns
// the reference. A typed reference never falls through to the other store;
// only the bare-id lookup walks the external-then-local chain.
type ResolverService interface {
	Resolve(ctx context.Context, ref types.ContentReference, viewerIsTeacher bool) (*types.ContentRecord, error)
	ResolveByID(ctx context.Context, id string, viewerIsTeacher bool) (*types.ContentRecord, error)
	ResolveForPath(ctx context.Context, pathID uuid.UUID, viewerIsTeacher bool) ([]*types.ContentRecord, error)
	ResolveExternalPathNodes(ctx context.Context, catalogPathID string) ([]catalog.NodeDescriptor, error)
}

type resolverService struct {
	db      *gorm.DB
	log     *logger.Logger
	objects contentrepo.LearningObjectRepo
	nodes   pathrepo.PathNodeRepo
	catalog catalog.Client
}

func NewResolverService(
	db *gorm.DB,
	log *logger.Logger,
	objects contentrepo.LearningObjectRepo,
	nodes pathrepo.PathNodeRepo,
	cat catalog.Client,
) ResolverService {
	return &resolverService{
		db:      db,
		log:     log.With("service", "ResolverService"),
		objects: objects,
		nodes:   nodes,
		catalog: cat,
	}
}

func (s *resolverService) Resolve(ctx context.Context, ref types.ContentReference, viewerIsTeacher bool) (*types.ContentRecord, error) {
	const op = "resolver.Resolve"
	if err := ref.CheckWellFormed(op); err != nil {
		return nil, err
	}

	if triple, ok := ref.External(); ok {
		raw, err := s.catalog.GetByTriple(ctx, triple.HrUID, triple.Language, triple.Version)
		if err != nil {
			return nil, types.AsNetwork(op, err)
		}
		return checkVisibility(op, externalRecord(raw), viewerIsTeacher)
	}

	id, _ := ref.LocalID()
	row, err := s.objects.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, types.NotFound(op, "local object "+id.String()+" does not exist")
	}
	return checkVisibility(op, row.Record(), viewerIsTeacher)
}

// ResolveByID serves callers holding an opaque id of unknown origin: the
// external catalog is asked first, the local store second, and only a NotFound
// moves the chain along. Typed lookups never get this fallback.
func (s *resolverService) ResolveByID(ctx context.Context, id string, viewerIsTeacher bool) (*types.ContentRecord, error) {
	const op = "resolver.ResolveByID"

	raw, err := s.catalog.GetByID(ctx, id)
	switch {
	case err == nil:
		return checkVisibility(op, externalRecord(raw), viewerIsTeacher)
	case types.IsKind(err, types.KindNotFound):
		// fall through to the local store
	default:
		return nil, types.AsNetwork(op, err)
	}

	localID, parseErr := uuid.Parse(id)
	if parseErr != nil {
		return nil, types.NotFound(op, "no store owns id "+id)
	}
	row, err := s.objects.GetByID(dbctx.Context{Ctx: ctx}, localID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, types.NotFound(op, "no store owns id "+id)
	}
	return checkVisibility(op, row.Record(), viewerIsTeacher)
}

// ResolveForPath resolves every node of a path. A node whose content is
// missing, forbidden, or unavailable is dropped from the result instead of
// failing the call; a catalog outage still aborts.
func (s *resolverService) ResolveForPath(ctx context.Context, pathID uuid.UUID, viewerIsTeacher bool) ([]*types.ContentRecord, error) {
	const op = "resolver.ResolveForPath"
	nodes, err := s.nodes.GetByPathIDs(dbctx.Context{Ctx: ctx}, []uuid.UUID{pathID})
	if err != nil {
		return nil, err
	}

	out := make([]*types.ContentRecord, 0, len(nodes))
	for _, node := range nodes {
		ref, refErr := node.Reference()
		if refErr != nil {
			return nil, refErr
		}
		rec, resErr := s.Resolve(ctx, ref, viewerIsTeacher)
		if resErr != nil {
			switch types.KindOf(resErr) {
			case types.KindNotFound, types.KindAccessDenied, types.KindUnavailable:
				s.log.Debug("skipping unresolvable path node",
					"path_id", pathID, "node_id", node.ID, "reference", ref.String(), "kind", string(types.KindOf(resErr)))
				continue
			default:
				return nil, resErr
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *resolverService) ResolveExternalPathNodes(ctx context.Context, catalogPathID string) ([]catalog.NodeDescriptor, error) {
	const op = "resolver.ResolveExternalPathNodes"
	nodes, err := s.catalog.ListForPathID(ctx, catalogPathID)
	if err != nil {
		return nil, types.AsNetwork(op, err)
	}
	return nodes, nil
}

// checkVisibility applies the visibility policy uniformly across both
// origins: teacher-exclusive content is refused to non-teachers, unavailable
// content is refused to everyone on direct fetch.
func checkVisibility(op string, rec *types.ContentRecord, viewerIsTeacher bool) (*types.ContentRecord, error) {
	if rec.TeacherExclusive && !viewerIsTeacher {
		return nil, types.AccessDenied(op, "content is teacher exclusive")
	}
	if !rec.Available {
		return nil, types.Unavailable(op, "content is currently unavailable")
	}
	return rec, nil
}

func externalRecord(raw *catalog.Record) *types.ContentRecord {
	return &types.ContentRecord{
		Origin:           types.OriginExternal,
		HrUID:            raw.HrUID,
		Language:         raw.Language,
		Version:          raw.Version,
		Title:            raw.Title,
		Description:      raw.Description,
		TeacherExclusive: raw.TeacherExclusive,
		Available:        raw.Available,
	}
}
