package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	contentrepo "github.com/studyweave/studyweave-backend/internal/data/repos/content"
	pathrepo "github.com/studyweave/studyweave-backend/internal/data/repos/path"
	progressrepo "github.com/studyweave/studyweave-backend/internal/data/repos/progress"
	"github.com/studyweave/studyweave-backend/internal/data/repos/testutil"
	types "github.com/studyweave/studyweave-backend/internal/domain"
	"github.com/studyweave/studyweave-backend/internal/platform/catalog"
	"github.com/studyweave/studyweave-backend/internal/platform/dbctx"
	"github.com/studyweave/studyweave-backend/internal/services"
)

func dbcOf(ctx context.Context) dbctx.Context { return dbctx.Context{Ctx: ctx} }

func nodeFor(pathID uuid.UUID, ref types.ContentReference) *types.PathNode {
	n := &types.PathNode{ID: uuid.New(), PathID: pathID}
	n.SetReference(ref)
	return n
}

// fakeCatalog stands in for the external catalog. Records are registered per
// test; an injected error makes every call fail, simulating an outage.
type fakeCatalog struct {
	mu      sync.Mutex
	byID    map[string]*catalog.Record
	byKey   map[string]*catalog.Record
	byPath  map[string][]catalog.NodeDescriptor
	callErr error
	calls   int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		byID:   map[string]*catalog.Record{},
		byKey:  map[string]*catalog.Record{},
		byPath: map[string][]catalog.NodeDescriptor{},
	}
}

func tripleKey(hruid, language string, version int) string {
	return fmt.Sprintf("%s|%s|%d", hruid, language, version)
}

func (f *fakeCatalog) add(rec catalog.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := rec
	if cp.ID != "" {
		f.byID[cp.ID] = &cp
	}
	f.byKey[tripleKey(cp.HrUID, cp.Language, cp.Version)] = &cp
}

func (f *fakeCatalog) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callErr = err
}

func (f *fakeCatalog) GetByID(ctx context.Context, id string) (*catalog.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.callErr != nil {
		return nil, f.callErr
	}
	rec, ok := f.byID[id]
	if !ok {
		return nil, types.NotFound("catalog.GetByID", "no record for id "+id)
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeCatalog) GetByTriple(ctx context.Context, hruid, language string, version int) (*catalog.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.callErr != nil {
		return nil, f.callErr
	}
	rec, ok := f.byKey[tripleKey(hruid, language, version)]
	if !ok {
		return nil, types.NotFound("catalog.GetByTriple", "no record for "+tripleKey(hruid, language, version))
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeCatalog) ListForPathID(ctx context.Context, pathID string) ([]catalog.NodeDescriptor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.callErr != nil {
		return nil, f.callErr
	}
	nodes, ok := f.byPath[pathID]
	if !ok {
		return nil, types.NotFound("catalog.ListForPathID", "no path "+pathID)
	}
	return nodes, nil
}

type env struct {
	db        *gorm.DB
	cat       *fakeCatalog
	objects   contentrepo.LearningObjectRepo
	questions contentrepo.QuestionRepo
	paths     pathrepo.PathRepo
	nodes     pathrepo.PathNodeRepo
	progress  progressrepo.ProgressRepo
	directory progressrepo.DirectoryRepo

	validator  services.ValidatorService
	resolver   services.ResolverService
	graph      services.PathGraphService
	aggregator services.ProgressAggregatorService
	objectsvc  services.ObjectService
	questsvc   services.QuestionService
}

// newEnv wires the real repos and services over the shared test database with
// the catalog faked out. Graph mutations commit, so seeded rows are removed in
// cleanup instead of rolled back.
func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	cat := newFakeCatalog()

	e := &env{
		db:        db,
		cat:       cat,
		objects:   contentrepo.NewLearningObjectRepo(db, log),
		questions: contentrepo.NewQuestionRepo(db, log),
		paths:     pathrepo.NewPathRepo(db, log),
		nodes:     pathrepo.NewPathNodeRepo(db, log),
		progress:  progressrepo.NewProgressRepo(db, log),
		directory: progressrepo.NewDirectoryRepo(db, log),
	}
	e.validator = services.NewValidatorService(db, log, e.objects, cat)
	e.resolver = services.NewResolverService(db, log, e.objects, e.nodes, cat)
	e.graph = services.NewPathGraphService(db, log, e.paths, e.nodes, e.validator)
	e.aggregator = services.NewProgressAggregatorService(db, log, e.graph, e.progress, e.directory)
	e.objectsvc = services.NewObjectService(db, log, e.objects, e.progress, nil)
	e.questsvc = services.NewQuestionService(db, log, e.questions, e.validator)
	return e
}

func (e *env) seedPath(t *testing.T) *types.LearningPath {
	t.Helper()
	p := testutil.SeedPath(t, e.db, uuid.New())
	t.Cleanup(func() {
		e.db.Unscoped().Where("path_id = ?", p.ID).Delete(&types.PathNode{})
		e.db.Unscoped().Where("id = ?", p.ID).Delete(&types.LearningPath{})
	})
	return p
}

func (e *env) seedObject(t *testing.T, mutate ...func(*types.LearningObject)) *types.LearningObject {
	t.Helper()
	o := testutil.SeedObject(t, e.db, uuid.New(), mutate...)
	t.Cleanup(func() {
		e.db.Unscoped().Where("local_object_id = ?", o.ID).Delete(&types.ProgressRecord{})
		e.db.Unscoped().Where("id = ?", o.ID).Delete(&types.LearningObject{})
	})
	return o
}

func (e *env) pathNumNodes(t *testing.T, pathID uuid.UUID) int {
	t.Helper()
	var row types.LearningPath
	if err := e.db.Where("id = ?", pathID).Limit(1).Find(&row).Error; err != nil {
		t.Fatalf("reload path: %v", err)
	}
	return row.NumNodes
}

func (e *env) nodeCount(t *testing.T, pathID uuid.UUID) int64 {
	t.Helper()
	var n int64
	if err := e.db.Model(&types.PathNode{}).Where("path_id = ?", pathID).Count(&n).Error; err != nil {
		t.Fatalf("count nodes: %v", err)
	}
	return n
}
