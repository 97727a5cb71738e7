package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	types "github.com/studyweave/studyweave-backend/internal/domain"
	"github.com/studyweave/studyweave-backend/internal/platform/catalog"
)

func TestValidateLocal(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	obj := e.seedObject(t)

	if err := e.validator.Validate(ctx, types.LocalRef(obj.ID)); err != nil {
		t.Fatalf("validate existing object: %v", err)
	}
	if err := e.validator.Validate(ctx, types.LocalRef(uuid.New())); !types.IsKind(err, types.KindNotFound) {
		t.Fatalf("expected not_found for a dangling local ref, got %v", err)
	}
	if e.cat.calls != 0 {
		t.Fatal("catalog was called for local references")
	}
}

func TestValidateExternal(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.cat.add(catalog.Record{HrUID: "org_intro", Language: "en", Version: 1, Available: true})

	if err := e.validator.Validate(ctx, types.ExternalRef("org_intro", "en", 1)); err != nil {
		t.Fatalf("validate existing triple: %v", err)
	}
	if err := e.validator.Validate(ctx, types.ExternalRef("org_intro", "en", 99)); !types.IsKind(err, types.KindNotFound) {
		t.Fatalf("expected not_found for an unknown version, got %v", err)
	}
}

func TestValidateExistenceOnly(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	// Validation checks existence, not visibility: hidden and exclusive
	// content is still a legal reference target.
	hidden := e.seedObject(t, func(o *types.LearningObject) { o.Available = false })
	exclusive := e.seedObject(t, func(o *types.LearningObject) { o.TeacherExclusive = true })

	if err := e.validator.Validate(ctx, types.LocalRef(hidden.ID)); err != nil {
		t.Fatalf("hidden object rejected: %v", err)
	}
	if err := e.validator.Validate(ctx, types.LocalRef(exclusive.ID)); err != nil {
		t.Fatalf("exclusive object rejected: %v", err)
	}
}

func TestValidateIllFormed(t *testing.T) {
	e := newEnv(t)

	if err := e.validator.Validate(context.Background(), types.ContentReference{}); !types.IsKind(err, types.KindInvalidReference) {
		t.Fatalf("expected invalid_reference, got %v", err)
	}
}

func TestValidateCatalogOutage(t *testing.T) {
	e := newEnv(t)
	e.cat.fail(errors.New("no route to host"))

	err := e.validator.Validate(context.Background(), types.ExternalRef("org_intro", "en", 1))
	if !types.IsKind(err, types.KindNetwork) {
		t.Fatalf("expected network, got %v", err)
	}
}
