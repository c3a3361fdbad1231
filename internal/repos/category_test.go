package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/clausedesk/clausedesk-backend/internal/types"
)

func TestReplaceMembersRankRoundTrip(t *testing.T) {
	db := testDB(t)
	repo := NewCategoryRepo(db, testLogger(t))
	ctx := context.Background()

	cat := &types.Category{ContractID: uuid.New(), Name: "Payments"}
	if _, err := repo.Create(ctx, nil, cat); err != nil {
		t.Fatalf("create category: %v", err)
	}

	// Assignment order differs from numeric order; ranks must preserve it.
	if err := repo.ReplaceMembers(ctx, nil, cat.ID, []string{"9.9", "1.1"}); err != nil {
		t.Fatalf("replace members: %v", err)
	}

	members, err := repo.GetMembersByCategoryIDs(ctx, nil, []uuid.UUID{cat.ID})
	if err != nil {
		t.Fatalf("get members: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("members=%d, want 2", len(members))
	}
	if members[0].ClauseNumber != "9.9" || members[0].Rank != 0 {
		t.Fatalf("first member=%+v, want 9.9 at rank 0", members[0])
	}
	if members[1].ClauseNumber != "1.1" || members[1].Rank != 1 {
		t.Fatalf("second member=%+v, want 1.1 at rank 1", members[1])
	}

	// A replacement rewrites rather than accumulates.
	if err := repo.ReplaceMembers(ctx, nil, cat.ID, []string{"1.1"}); err != nil {
		t.Fatalf("second replace: %v", err)
	}
	members, err = repo.GetMembersByCategoryIDs(ctx, nil, []uuid.UUID{cat.ID})
	if err != nil {
		t.Fatalf("get members again: %v", err)
	}
	if len(members) != 1 || members[0].ClauseNumber != "1.1" {
		t.Fatalf("members after rewrite=%+v, want only 1.1", members)
	}
}

func TestFullDeleteByIDRemovesMembers(t *testing.T) {
	db := testDB(t)
	repo := NewCategoryRepo(db, testLogger(t))
	ctx := context.Background()

	contractID := uuid.New()
	cat := &types.Category{ContractID: contractID, Name: "Time"}
	if _, err := repo.Create(ctx, nil, cat); err != nil {
		t.Fatalf("create category: %v", err)
	}
	if err := repo.ReplaceMembers(ctx, nil, cat.ID, []string{"4.1"}); err != nil {
		t.Fatalf("replace members: %v", err)
	}

	if err := repo.FullDeleteByID(ctx, nil, cat.ID); err != nil {
		t.Fatalf("full delete: %v", err)
	}

	cats, err := repo.GetByContractID(ctx, nil, contractID)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(cats) != 0 {
		t.Fatalf("categories=%d, want 0", len(cats))
	}
	members, err := repo.GetMembersByCategoryIDs(ctx, nil, []uuid.UUID{cat.ID})
	if err != nil {
		t.Fatalf("get members: %v", err)
	}
	if len(members) != 0 {
		t.Fatalf("members=%d, want 0 after delete", len(members))
	}
}
