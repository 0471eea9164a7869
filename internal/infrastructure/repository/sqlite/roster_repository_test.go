package sqlite

import (
	"testing"

	"github.com/riskibarqy/team-draw/internal/domain/roster"
)

func newTestRepository(t *testing.T) *RosterRepository {
	t.Helper()

	repo, err := New(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestRosterRepository_UpsertAndList(t *testing.T) {
	repo := newTestRepository(t)

	written, err := repo.Upsert(t.Context(), []roster.Player{
		{Name: "Rafael", Position: "G", Skill: 7.5, Rated: true},
		{Name: " Hulk ", Position: "A", Skill: 9, Rated: true},
		{Name: "Dudu", Position: "M/A"},
		{Name: "  "},
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if written != 3 {
		t.Fatalf("expected 3 rows written, got %d", written)
	}

	got, err := repo.List(t.Context())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 players, got %+v", got)
	}
	if got[0].Name != "Rafael" || got[1].Name != "Hulk" || got[2].Name != "Dudu" {
		t.Fatalf("expected file order to be kept, got %+v", got)
	}
	if got[2].Rated {
		t.Fatalf("expected Dudu unrated, got %+v", got[2])
	}
}

func TestRosterRepository_UpsertUpdatesByNameKey(t *testing.T) {
	repo := newTestRepository(t)

	if _, err := repo.Upsert(t.Context(), []roster.Player{{Name: "Hulk", Position: "A", Skill: 9, Rated: true}}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if _, err := repo.Upsert(t.Context(), []roster.Player{{Name: "HULK", Position: "S", Skill: 8, Rated: true}}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := repo.List(t.Context())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Position != "S" || got[0].Skill != 8 {
		t.Fatalf("expected updated row, got %+v", got)
	}
}

func TestRosterRepository_Delete(t *testing.T) {
	repo := newTestRepository(t)

	if _, err := repo.Upsert(t.Context(), []roster.Player{
		{Name: "Hulk", Position: "A", Skill: 9, Rated: true},
		{Name: "Ganso", Position: "M", Skill: 8, Rated: true},
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	deleted, err := repo.Delete(t.Context(), []string{"hulk", "nobody"})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 deleted row, got %d", deleted)
	}

	got, err := repo.List(t.Context())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Ganso" {
		t.Fatalf("unexpected roster after delete: %+v", got)
	}
}
