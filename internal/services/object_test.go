package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	types "github.com/studyweave/studyweave-backend/internal/domain"
	"github.com/studyweave/studyweave-backend/internal/services"
)

func TestObjectOwnership(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	creator, stranger := uuid.New(), uuid.New()

	obj, err := e.objectsvc.CreateObject(ctx, creator, services.CreateObjectInput{
		HrUID: "ws-" + uuid.NewString()[:8], Language: "en", Version: 1, Title: "intro", Available: true,
	})
	if err != nil {
		t.Fatalf("create object: %v", err)
	}
	t.Cleanup(func() {
		e.db.Unscoped().Where("id = ?", obj.ID).Delete(&types.LearningObject{})
	})

	if _, err := e.objectsvc.UpdateObject(ctx, stranger, obj.ID, map[string]interface{}{"title": "stolen"}); !types.IsKind(err, types.KindAccessDenied) {
		t.Fatalf("expected access_denied for a stranger, got %v", err)
	}
	if err := e.objectsvc.DeleteObject(ctx, stranger, obj.ID); !types.IsKind(err, types.KindAccessDenied) {
		t.Fatalf("expected access_denied on delete, got %v", err)
	}

	updated, err := e.objectsvc.UpdateObject(ctx, creator, obj.ID, map[string]interface{}{"title": "revised"})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Title != "revised" {
		t.Fatalf("title = %q", updated.Title)
	}
}

func TestDeleteObjectRemovesProgress(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	creator, student := uuid.New(), uuid.New()

	obj, err := e.objectsvc.CreateObject(ctx, creator, services.CreateObjectInput{
		HrUID: "ws-" + uuid.NewString()[:8], Language: "en", Version: 1, Title: "intro", Available: true,
	})
	if err != nil {
		t.Fatalf("create object: %v", err)
	}
	if err := e.objectsvc.MarkDone(ctx, student, obj.ID); err != nil {
		t.Fatalf("mark done: %v", err)
	}

	if err := e.objectsvc.DeleteObject(ctx, creator, obj.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var n int64
	if err := e.db.Model(&types.ProgressRecord{}).Where("local_object_id = ?", obj.ID).Count(&n).Error; err != nil {
		t.Fatalf("count progress: %v", err)
	}
	if n != 0 {
		t.Fatalf("%d progress rows survived the delete", n)
	}
}

func TestEngageUnknownObject(t *testing.T) {
	e := newEnv(t)

	if err := e.objectsvc.Engage(context.Background(), uuid.New(), uuid.New()); !types.IsKind(err, types.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
	if err := e.objectsvc.MarkDone(context.Background(), uuid.New(), uuid.New()); !types.IsKind(err, types.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestCreateQuestionValidatesReference(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	obj := e.seedObject(t)
	author := uuid.New()

	q, err := e.questsvc.CreateQuestion(ctx, author, "why is the sky blue", types.LocalRef(obj.ID))
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	t.Cleanup(func() {
		e.db.Unscoped().Where("id = ?", q.ID).Delete(&types.Question{})
	})

	if _, err := e.questsvc.CreateQuestion(ctx, author, "dangling", types.LocalRef(uuid.New())); !types.IsKind(err, types.KindNotFound) {
		t.Fatalf("expected not_found for a dangling reference, got %v", err)
	}
	if _, err := e.questsvc.CreateQuestion(ctx, author, "  ", types.LocalRef(obj.ID)); err == nil {
		t.Fatal("expected an error for an empty body")
	}

	list, err := e.questsvc.ListForLocalObject(ctx, obj.ID)
	if err != nil {
		t.Fatalf("list questions: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 question, got %d", len(list))
	}
}
