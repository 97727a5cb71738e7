package path_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	pathrepo "github.com/studyweave/studyweave-backend/internal/data/repos/path"
	"github.com/studyweave/studyweave-backend/internal/data/repos/testutil"
	types "github.com/studyweave/studyweave-backend/internal/domain"
	"github.com/studyweave/studyweave-backend/internal/platform/dbctx"
)

func TestPathNodeCreateAndCount(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := pathrepo.NewPathNodeRepo(db, testutil.Logger(t))

	creator := uuid.New()
	p := testutil.SeedPath(t, tx, creator)
	obj := testutil.SeedObject(t, tx, creator)

	testutil.SeedNode(t, tx, p.ID, types.LocalRef(obj.ID))
	testutil.SeedNode(t, tx, p.ID, types.ExternalRef("org_intro", "en", 1))

	n, err := repo.CountByPathID(dbc, p.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 nodes, got %d", n)
	}

	rows, err := repo.GetByPathIDs(dbc, []uuid.UUID{p.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
}

func TestPathNodeUpdateFieldsSwapsVariant(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := pathrepo.NewPathNodeRepo(db, testutil.Logger(t))

	creator := uuid.New()
	p := testutil.SeedPath(t, tx, creator)
	obj := testutil.SeedObject(t, tx, creator)
	node := testutil.SeedNode(t, tx, p.ID, types.LocalRef(obj.ID))

	if err := repo.UpdateFields(dbc, node.ID, types.ReferenceColumns(types.ExternalRef("org_intro", "en", 2))); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(dbc, node.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !got.IsExternal {
		t.Fatal("expected external variant after swap")
	}
	if got.LocalObjectID != nil {
		t.Fatal("local id survived the swap")
	}
	if got.ExternalHrUID == nil || *got.ExternalHrUID != "org_intro" {
		t.Fatalf("triple not written: %+v", got)
	}
}

func TestPathNodeFullDelete(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := pathrepo.NewPathNodeRepo(db, testutil.Logger(t))

	creator := uuid.New()
	p := testutil.SeedPath(t, tx, creator)
	node := testutil.SeedNode(t, tx, p.ID, types.ExternalRef("org_intro", "en", 1))

	if err := repo.FullDeleteByIDs(dbc, []uuid.UUID{node.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	n, err := repo.CountByPathID(dbc, p.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 nodes after delete, got %d", n)
	}

	got, err := repo.GetByID(dbc, node.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got != nil {
		t.Fatal("deleted node still readable")
	}
}

func TestPathGetByIDMissing(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := pathrepo.NewPathRepo(db, testutil.Logger(t))

	got, err := repo.GetByID(dbc, uuid.New())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil for an unknown path")
	}
}
