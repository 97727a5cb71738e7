package testutil

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/studyweave/studyweave-backend/internal/domain"
)

func SeedPath(tb testing.TB, tx *gorm.DB, creatorID uuid.UUID) *types.LearningPath {
	tb.Helper()
	row := &types.LearningPath{
		ID:        uuid.New(),
		HrUID:     "p-" + uuid.NewString()[:8],
		Title:     "path",
		Language:  "en",
		CreatorID: creatorID,
	}
	if err := tx.Create(row).Error; err != nil {
		tb.Fatalf("seed path: %v", err)
	}
	return row
}

func SeedObject(tb testing.TB, tx *gorm.DB, creatorID uuid.UUID, mutate ...func(*types.LearningObject)) *types.LearningObject {
	tb.Helper()
	row := &types.LearningObject{
		ID:        uuid.New(),
		HrUID:     "o-" + uuid.NewString()[:8],
		Language:  "en",
		Version:   1,
		Title:     "object",
		Available: true,
		CreatorID: creatorID,
	}
	for _, m := range mutate {
		m(row)
	}
	if err := tx.Create(row).Error; err != nil {
		tb.Fatalf("seed object: %v", err)
	}
	return row
}

func SeedNode(tb testing.TB, tx *gorm.DB, pathID uuid.UUID, ref types.ContentReference) *types.PathNode {
	tb.Helper()
	row := &types.PathNode{ID: uuid.New(), PathID: pathID}
	row.SetReference(ref)
	if err := tx.Create(row).Error; err != nil {
		tb.Fatalf("seed node: %v", err)
	}
	return row
}
