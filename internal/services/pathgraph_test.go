package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	types "github.com/studyweave/studyweave-backend/internal/domain"
	"github.com/studyweave/studyweave-backend/internal/platform/catalog"
)

func TestCreateNodeUpdatesCount(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.seedPath(t)
	obj := e.seedObject(t)
	e.cat.add(catalog.Record{HrUID: "org_intro", Language: "en", Version: 1, Title: "intro", Available: true})

	node, err := e.graph.CreateNode(ctx, p.ID, types.LocalRef(obj.ID), true)
	if err != nil {
		t.Fatalf("create local node: %v", err)
	}
	if node.IsExternal || node.LocalObjectID == nil {
		t.Fatalf("local node stored wrong: %+v", node)
	}
	if got := e.pathNumNodes(t, p.ID); got != 1 {
		t.Fatalf("num_nodes = %d after first create", got)
	}

	if _, err := e.graph.CreateNode(ctx, p.ID, types.ExternalRef("org_intro", "en", 1), false); err != nil {
		t.Fatalf("create external node: %v", err)
	}
	if got := e.pathNumNodes(t, p.ID); got != 2 {
		t.Fatalf("num_nodes = %d after second create", got)
	}
	if n := e.nodeCount(t, p.ID); n != 2 {
		t.Fatalf("node rows = %d", n)
	}
}

func TestCreateNodeRejectsBrokenReference(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.seedPath(t)

	_, err := e.graph.CreateNode(ctx, p.ID, types.ContentReference{}, false)
	if !types.IsKind(err, types.KindInvalidReference) {
		t.Fatalf("expected invalid_reference, got %v", err)
	}
	if got := e.pathNumNodes(t, p.ID); got != 0 {
		t.Fatalf("num_nodes moved on a rejected create: %d", got)
	}
	if e.cat.calls != 0 {
		t.Fatal("catalog was called for an ill-formed reference")
	}
}

func TestCreateNodeRejectsDanglingReference(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.seedPath(t)

	_, err := e.graph.CreateNode(ctx, p.ID, types.LocalRef(uuid.New()), false)
	if !types.IsKind(err, types.KindNotFound) {
		t.Fatalf("expected not_found for a dangling local ref, got %v", err)
	}

	_, err = e.graph.CreateNode(ctx, p.ID, types.ExternalRef("nope", "en", 1), false)
	if !types.IsKind(err, types.KindNotFound) {
		t.Fatalf("expected not_found for a dangling external ref, got %v", err)
	}

	if n := e.nodeCount(t, p.ID); n != 0 {
		t.Fatalf("rejected creates left %d rows behind", n)
	}
}

func TestCreateNodeUnknownPath(t *testing.T) {
	e := newEnv(t)
	obj := e.seedObject(t)

	_, err := e.graph.CreateNode(context.Background(), uuid.New(), types.LocalRef(obj.ID), false)
	if !types.IsKind(err, types.KindNotFound) {
		t.Fatalf("expected not_found for an unknown path, got %v", err)
	}
}

func TestDeleteNodeUpdatesCount(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.seedPath(t)
	obj := e.seedObject(t)

	node, err := e.graph.CreateNode(ctx, p.ID, types.LocalRef(obj.ID), false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := e.graph.DeleteNode(ctx, p.ID, node.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := e.pathNumNodes(t, p.ID); got != 0 {
		t.Fatalf("num_nodes = %d after delete", got)
	}

	if err := e.graph.DeleteNode(ctx, p.ID, node.ID); !types.IsKind(err, types.KindNotFound) {
		t.Fatalf("expected not_found on double delete, got %v", err)
	}
}

func TestDeleteNodeWrongPath(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p1 := e.seedPath(t)
	p2 := e.seedPath(t)
	obj := e.seedObject(t)

	node, err := e.graph.CreateNode(ctx, p1.ID, types.LocalRef(obj.ID), false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := e.graph.DeleteNode(ctx, p2.ID, node.ID); !types.IsKind(err, types.KindInvalidRelation) {
		t.Fatalf("expected invalid_relation, got %v", err)
	}
	if got := e.pathNumNodes(t, p1.ID); got != 1 {
		t.Fatalf("num_nodes = %d after refused delete", got)
	}
}

func TestUpdateNodeSwapsVariantCleanly(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.seedPath(t)
	obj := e.seedObject(t)
	e.cat.add(catalog.Record{HrUID: "org_intro", Language: "en", Version: 2, Title: "intro", Available: true})

	node, err := e.graph.CreateNode(ctx, p.ID, types.LocalRef(obj.ID), false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	ref := types.ExternalRef("org_intro", "en", 2)
	updated, err := e.graph.UpdateNode(ctx, p.ID, node.ID, &ref, nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.IsExternal {
		t.Fatal("expected the external variant")
	}
	if updated.LocalObjectID != nil {
		t.Fatal("local id survived the swap")
	}
	if updated.ExternalHrUID == nil || *updated.ExternalHrUID != "org_intro" {
		t.Fatalf("triple missing after swap: %+v", updated)
	}
	if got := e.pathNumNodes(t, p.ID); got != 1 {
		t.Fatalf("num_nodes changed on an update: %d", got)
	}

	back := types.LocalRef(obj.ID)
	updated, err = e.graph.UpdateNode(ctx, p.ID, node.ID, &back, nil)
	if err != nil {
		t.Fatalf("swap back: %v", err)
	}
	if updated.IsExternal || updated.ExternalHrUID != nil || updated.ExternalVersion != nil {
		t.Fatalf("external columns survived the swap back: %+v", updated)
	}
}

func TestUpdateNodeRejectsDanglingReference(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.seedPath(t)
	obj := e.seedObject(t)

	node, err := e.graph.CreateNode(ctx, p.ID, types.LocalRef(obj.ID), false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	bad := types.LocalRef(uuid.New())
	if _, err := e.graph.UpdateNode(ctx, p.ID, node.ID, &bad, nil); !types.IsKind(err, types.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}

	// The old reference must still be intact.
	got, err := e.graph.ListNodes(ctx, p.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].LocalObjectID == nil || *got[0].LocalObjectID != obj.ID {
		t.Fatalf("old reference lost after a refused update: %+v", got)
	}
}

func TestUpdateNodeStartFlagOnly(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.seedPath(t)
	obj := e.seedObject(t)

	node, err := e.graph.CreateNode(ctx, p.ID, types.LocalRef(obj.ID), false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	start := true
	updated, err := e.graph.UpdateNode(ctx, p.ID, node.ID, nil, &start)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.StartNode {
		t.Fatal("start flag not set")
	}
	if e.cat.calls != 0 {
		t.Fatal("catalog was called for a flag-only update")
	}
}

func TestConcurrentCreatesKeepCountExact(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.seedPath(t)
	obj := e.seedObject(t)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.graph.CreateNode(ctx, p.ID, types.LocalRef(obj.ID), false)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("worker %d: %v", i, err)
		}
	}
	if got := e.pathNumNodes(t, p.ID); got != workers {
		t.Fatalf("num_nodes = %d, want %d", got, workers)
	}
	if n := e.nodeCount(t, p.ID); n != workers {
		t.Fatalf("node rows = %d, want %d", n, workers)
	}
}
