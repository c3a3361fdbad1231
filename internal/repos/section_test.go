package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/clausedesk/clausedesk-backend/internal/types"
)

func TestReplaceItemsRewritesPositions(t *testing.T) {
	db := testDB(t)
	repo := NewSectionRepo(db, testLogger(t))
	ctx := context.Background()

	section := &types.ContractSection{
		ContractID: uuid.New(),
		Name:       "General Conditions",
		Kind:       types.SectionKindGeneral,
	}
	if err := repo.Create(ctx, nil, []*types.ContractSection{section}); err != nil {
		t.Fatalf("create section: %v", err)
	}

	a, b, c := uuid.New(), uuid.New(), uuid.New()
	first := []*types.SectionItem{
		{ItemType: types.ItemTypeClause, ClauseID: &a},
		{ItemType: types.ItemTypeClause, ClauseID: &b},
	}
	if err := repo.ReplaceItems(ctx, nil, section.ID, first); err != nil {
		t.Fatalf("first replace: %v", err)
	}

	second := []*types.SectionItem{
		{ItemType: types.ItemTypeClause, ClauseID: &c},
		{ItemType: types.ItemTypeClause, ClauseID: &a},
		{ItemType: types.ItemTypeParagraph},
	}
	if err := repo.ReplaceItems(ctx, nil, section.ID, second); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	items, err := repo.GetItemsBySectionIDs(ctx, nil, []uuid.UUID{section.ID})
	if err != nil {
		t.Fatalf("get items: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("items=%d, want 3 (old rows rewritten)", len(items))
	}
	for i, item := range items {
		if item.Position != i {
			t.Fatalf("item[%d].Position=%d, want %d", i, item.Position, i)
		}
	}
	if items[0].ClauseID == nil || *items[0].ClauseID != c {
		t.Fatalf("item[0]=%+v, want clause ref %s", items[0], c)
	}
	if items[2].ItemType != types.ItemTypeParagraph {
		t.Fatalf("item[2].ItemType=%q, want paragraph", items[2].ItemType)
	}
}
