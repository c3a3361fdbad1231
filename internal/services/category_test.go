package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/clausedesk/clausedesk-backend/internal/cache"
	"github.com/clausedesk/clausedesk-backend/internal/repos"
	"github.com/clausedesk/clausedesk-backend/internal/types"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&types.Clause{},
		&types.Category{},
		&types.CategoryMember{},
	)
	if err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// Assignment order must survive the persist/reload cycle even when it
// disagrees with clause storage order.
func TestCategoryAssignmentOrderSurvivesReload(t *testing.T) {
	db := testDB(t)
	log := testLogger(t)
	categoryRepo := repos.NewCategoryRepo(db, log)
	clauseRepo := repos.NewClauseRepo(db, log)
	svc := NewCategoryService(db, log, cache.NoopCache{}, categoryRepo, clauseRepo)
	ctx := context.Background()

	contractID := uuid.New()
	_, err := clauseRepo.Create(ctx, nil, []*types.Clause{
		{ContractID: contractID, ClauseNumber: "1.1", Position: 0},
		{ContractID: contractID, ClauseNumber: "9.9", Position: 1},
	})
	if err != nil {
		t.Fatalf("seed clauses: %v", err)
	}

	if r := svc.CreateCategory(ctx, contractID, "Payments"); !r.Success {
		t.Fatalf("create category: %+v", r)
	}
	if r := svc.AssignClause(ctx, contractID, "9.9", "Payments"); !r.Success {
		t.Fatalf("assign 9.9: %+v", r)
	}
	if r := svc.AssignClause(ctx, contractID, "1.1", "Payments"); !r.Success {
		t.Fatalf("assign 1.1: %+v", r)
	}

	// ShowCategory rebuilds the engine from storage; the stored ranks, not
	// clause positions, decide the order.
	members, r := svc.ShowCategory(ctx, contractID, "Payments")
	if !r.Success {
		t.Fatalf("show category: %+v", r)
	}
	want := []string{"9.9", "1.1"}
	if len(members) != len(want) {
		t.Fatalf("members=%v, want %v", members, want)
	}
	for i := range want {
		if members[i] != want[i] {
			t.Fatalf("members=%v, want %v", members, want)
		}
	}

	// A further mutation persists without disturbing the earlier order.
	if r := svc.CreateCategory(ctx, contractID, "Time"); !r.Success {
		t.Fatalf("create second category: %+v", r)
	}
	members, r = svc.ShowCategory(ctx, contractID, "Payments")
	if !r.Success {
		t.Fatalf("show after second persist: %+v", r)
	}
	if len(members) != 2 || members[0] != "9.9" || members[1] != "1.1" {
		t.Fatalf("members after second persist=%v, want [9.9 1.1]", members)
	}
}
