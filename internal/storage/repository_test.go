package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "fiets.db"))
	if err != nil {
		t.Fatalf("NewRepository returned error: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	return repo
}

func TestRepository_RecordAndListActions(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := Action{
		Kind:    ActionMarkRead,
		PostIDs: []int64{1, 2},
		At:      time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC),
	}
	second := Action{
		Kind:    ActionAddBookmark,
		PostIDs: []int64{3},
		Detail:  "/add-bookmark?post=3",
		Err:     "toggle bookmark failed with status 500",
		At:      time.Date(2026, 10, 1, 10, 5, 0, 0, time.UTC),
	}
	if err := repo.RecordAction(ctx, first); err != nil {
		t.Fatalf("RecordAction returned error: %v", err)
	}
	if err := repo.RecordAction(ctx, second); err != nil {
		t.Fatalf("RecordAction returned error: %v", err)
	}

	listed, err := repo.ListActions(ctx, 10)
	if err != nil {
		t.Fatalf("ListActions returned error: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(listed))
	}
	if listed[0].Kind != ActionAddBookmark || listed[0].Succeeded() {
		t.Fatalf("expected newest failed bookmark action first, got %+v", listed[0])
	}
	if listed[1].Kind != ActionMarkRead || len(listed[1].PostIDs) != 2 || listed[1].PostIDs[1] != 2 {
		t.Fatalf("unexpected mark-read action: %+v", listed[1])
	}
	if !listed[1].At.Equal(first.At) {
		t.Fatalf("unexpected time: %s", listed[1].At)
	}
}

func TestRepository_ListActionsLimit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := repo.RecordAction(ctx, Action{Kind: ActionDeleteFilter}); err != nil {
			t.Fatalf("RecordAction returned error: %v", err)
		}
	}
	listed, err := repo.ListActions(ctx, 3)
	if err != nil {
		t.Fatalf("ListActions returned error: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(listed))
	}
	if listed[0].PostIDs == nil || len(listed[0].PostIDs) != 0 {
		t.Fatalf("expected empty post id list, got %#v", listed[0].PostIDs)
	}
}

func TestRepository_BoolPreferences(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	got, err := repo.LoadBoolPreference(ctx, "compact", true)
	if err != nil {
		t.Fatalf("LoadBoolPreference returned error: %v", err)
	}
	if !got {
		t.Fatal("expected fallback for missing preference")
	}

	if err := repo.SaveBoolPreference(ctx, "compact", false); err != nil {
		t.Fatalf("SaveBoolPreference returned error: %v", err)
	}
	if err := repo.SaveBoolPreference(ctx, "compact", false); err != nil {
		t.Fatalf("SaveBoolPreference upsert returned error: %v", err)
	}
	got, err = repo.LoadBoolPreference(ctx, "compact", true)
	if err != nil {
		t.Fatalf("LoadBoolPreference returned error: %v", err)
	}
	if got {
		t.Fatal("expected saved preference")
	}
}

func TestRepository_CheckWritable(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.CheckWritable(context.Background()); err != nil {
		t.Fatalf("CheckWritable returned error: %v", err)
	}
}
