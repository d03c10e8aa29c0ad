package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/puzzle-arcade/internal/scoring"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustUser(t *testing.T, store *Store, name string) User {
	t.Helper()
	u, err := store.CreateUser(context.Background(), name, name+"@example.com", "hash")
	if err != nil {
		t.Fatalf("CreateUser(%q) failed: %v", name, err)
	}
	return u
}

func mustSave(t *testing.T, store *Store, userID int64, sub scoring.Submission) scoring.Record {
	t.Helper()
	rec, err := store.SaveScore(context.Background(), userID, sub)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	return rec
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	u := mustUser(t, store, "alice")
	mustSave(t, store, u.ID, scoring.Submission{Game: scoring.GameMemory, Difficulty: "easy", Score: 700})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	scores, err := store.TopScores(ctx, scoring.GameMemory, "", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Username != "alice" {
		t.Errorf("got %+v after reopen, want alice's score", scores)
	}
}

func TestCreateUser(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	u := mustUser(t, store, "alice")
	if u.ID == 0 || u.Username != "alice" || u.Email != "alice@example.com" {
		t.Errorf("got %+v", u)
	}
	if u.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	tests := []struct {
		name     string
		username string
		email    string
	}{
		{"same username", "alice", "other@example.com"},
		{"same email", "bob", "alice@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.CreateUser(ctx, tt.username, tt.email, "hash")
			if !errors.Is(err, ErrDuplicate) {
				t.Errorf("got %v, want ErrDuplicate", err)
			}
		})
	}

	n, err := store.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("got %d users, want 1", n)
	}
}

func TestUserLookup(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	u := mustUser(t, store, "alice")

	byName, err := store.UserByUsername(ctx, "alice")
	if err != nil || byName.ID != u.ID {
		t.Errorf("UserByUsername: got %+v, %v", byName, err)
	}
	byEmail, err := store.UserByEmail(ctx, "alice@example.com")
	if err != nil || byEmail.ID != u.ID {
		t.Errorf("UserByEmail: got %+v, %v", byEmail, err)
	}
	if byEmail.PasswordHash != "hash" {
		t.Errorf("got hash %q, want %q", byEmail.PasswordHash, "hash")
	}

	if _, err := store.UserByID(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestEnsureLocalUser(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first, err := store.EnsureLocalUser(ctx, "player")
	if err != nil {
		t.Fatalf("EnsureLocalUser() failed: %v", err)
	}
	second, err := store.EnsureLocalUser(ctx, "player")
	if err != nil {
		t.Fatalf("EnsureLocalUser() failed: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("got IDs %d and %d, want the same account", first.ID, second.ID)
	}
	if first.PasswordHash != localPasswordHash {
		t.Errorf("got hash %q, want local marker", first.PasswordHash)
	}
}

func TestSaveScoreValidates(t *testing.T) {
	store := openTestStore(t)
	u := mustUser(t, store, "alice")

	_, err := store.SaveScore(context.Background(), u.ID, scoring.Submission{Game: "tetris", Score: 1})
	if !errors.Is(err, scoring.ErrUnknownGame) {
		t.Errorf("got %v, want ErrUnknownGame", err)
	}
}

func TestSaveScoreReturnsRecord(t *testing.T) {
	store := openTestStore(t)
	u := mustUser(t, store, "alice")

	rec := mustSave(t, store, u.ID, scoring.Submission{
		Game: scoring.GameSliding, Difficulty: "medium", Score: 848, Moves: 30, TimeSeconds: 40,
	})
	if rec.ID == 0 || rec.UserID != u.ID {
		t.Errorf("got %+v", rec)
	}
	if rec.Game != scoring.GameSliding || rec.Difficulty != "medium" || rec.Score != 848 || rec.Moves != 30 || rec.TimeSeconds != 40 {
		t.Errorf("got %+v", rec)
	}
	if rec.PlayedAt.IsZero() {
		t.Error("PlayedAt not set")
	}
}

func TestTopScores(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	alice := mustUser(t, store, "alice")
	bob := mustUser(t, store, "bob")

	mustSave(t, store, alice.ID, scoring.Submission{Game: scoring.GameMinesweeper, Difficulty: "easy", Score: 100, TimeSeconds: 90})
	mustSave(t, store, bob.ID, scoring.Submission{Game: scoring.GameMinesweeper, Difficulty: "easy", Score: 300, TimeSeconds: 70})
	mustSave(t, store, alice.ID, scoring.Submission{Game: scoring.GameMinesweeper, Difficulty: "hard", Score: 300, TimeSeconds: 50})
	mustSave(t, store, bob.ID, scoring.Submission{Game: scoring.GameMinesweeper, Difficulty: "medium", Score: 200, TimeSeconds: 60})
	mustSave(t, store, bob.ID, scoring.Submission{Game: scoring.Game2048, Difficulty: "standard", Score: 5000})

	t.Run("ordering", func(t *testing.T) {
		scores, err := store.TopScores(ctx, scoring.GameMinesweeper, "", 10)
		if err != nil {
			t.Fatalf("TopScores() failed: %v", err)
		}
		if len(scores) != 4 {
			t.Fatalf("got %d scores, want 4", len(scores))
		}
		// Equal scores rank the faster game first.
		want := []struct {
			user       string
			difficulty string
			score      int
		}{
			{"alice", "hard", 300},
			{"bob", "easy", 300},
			{"bob", "medium", 200},
			{"alice", "easy", 100},
		}
		for i, w := range want {
			got := scores[i]
			if got.Rank != i+1 || got.Username != w.user || got.Difficulty != w.difficulty || got.Score != w.score {
				t.Errorf("row %d: got %+v, want rank %d %+v", i, got, i+1, w)
			}
		}
	})

	t.Run("difficulty filter", func(t *testing.T) {
		scores, err := store.TopScores(ctx, scoring.GameMinesweeper, "easy", 10)
		if err != nil {
			t.Fatalf("TopScores() failed: %v", err)
		}
		if len(scores) != 2 {
			t.Fatalf("got %d scores, want 2", len(scores))
		}
		for _, s := range scores {
			if s.Difficulty != "easy" {
				t.Errorf("got difficulty %q, want easy", s.Difficulty)
			}
		}
	})

	t.Run("limit", func(t *testing.T) {
		scores, err := store.TopScores(ctx, scoring.GameMinesweeper, "", 2)
		if err != nil {
			t.Fatalf("TopScores() failed: %v", err)
		}
		if len(scores) != 2 {
			t.Errorf("got %d scores, want 2", len(scores))
		}
	})

	t.Run("empty game", func(t *testing.T) {
		scores, err := store.TopScores(ctx, scoring.GameMemory, "", 10)
		if err != nil {
			t.Fatalf("TopScores() failed: %v", err)
		}
		if scores == nil || len(scores) != 0 {
			t.Errorf("got %v, want empty non-nil slice", scores)
		}
	})
}

func TestUserScoresAndBest(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	alice := mustUser(t, store, "alice")
	bob := mustUser(t, store, "bob")

	mustSave(t, store, alice.ID, scoring.Submission{Game: scoring.GameMemory, Difficulty: "easy", Score: 500})
	mustSave(t, store, alice.ID, scoring.Submission{Game: scoring.GameMemory, Difficulty: "easy", Score: 800})
	last := mustSave(t, store, alice.ID, scoring.Submission{Game: scoring.Game2048, Difficulty: "standard", Score: 1200})
	mustSave(t, store, bob.ID, scoring.Submission{Game: scoring.GameMemory, Difficulty: "hard", Score: 2000})

	all, err := store.UserScores(ctx, alice.ID, "", 0)
	if err != nil {
		t.Fatalf("UserScores() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d scores, want 3", len(all))
	}
	if all[0].ID != last.ID {
		t.Errorf("got newest ID %d, want %d", all[0].ID, last.ID)
	}

	memory, err := store.UserScores(ctx, alice.ID, scoring.GameMemory, 0)
	if err != nil {
		t.Fatalf("UserScores() failed: %v", err)
	}
	if len(memory) != 2 {
		t.Errorf("got %d memory scores, want 2", len(memory))
	}

	best, err := store.UserBestScores(ctx, alice.ID, "")
	if err != nil {
		t.Fatalf("UserBestScores() failed: %v", err)
	}
	want := map[scoring.GameID]int{scoring.GameMemory: 800, scoring.Game2048: 1200}
	if len(best) != len(want) {
		t.Fatalf("got %v, want %v", best, want)
	}
	for _, b := range best {
		if want[b.Game] != b.BestScore {
			t.Errorf("%s: got best %d, want %d", b.Game, b.BestScore, want[b.Game])
		}
	}
}

func TestHighScore(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	high, err := store.HighScore(ctx, scoring.GameSliding)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("got %d for empty game, want 0", high)
	}

	u := mustUser(t, store, "alice")
	for _, s := range []int{100, 300, 200} {
		mustSave(t, store, u.ID, scoring.Submission{Game: scoring.GameSliding, Score: s})
	}

	high, err = store.HighScore(ctx, scoring.GameSliding)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("got %d, want 300", high)
	}
}

func TestStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	alice := mustUser(t, store, "alice")
	bob := mustUser(t, store, "bob")

	mustSave(t, store, alice.ID, scoring.Submission{Game: scoring.GameMemory, Score: 100})
	mustSave(t, store, alice.ID, scoring.Submission{Game: scoring.GameMemory, Score: 200})
	mustSave(t, store, bob.ID, scoring.Submission{Game: scoring.GameMemory, Score: 600})
	for i := 0; i < 4; i++ {
		mustSave(t, store, bob.ID, scoring.Submission{Game: scoring.GameSliding, Score: 500})
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if len(stats.Games) != 2 {
		t.Fatalf("got %d game rows, want 2", len(stats.Games))
	}

	mem := stats.Games[0]
	if mem.Game != scoring.GameMemory {
		t.Fatalf("got first game %q, want memory", mem.Game)
	}
	if mem.TotalGames != 3 || mem.UniquePlayers != 2 || mem.HighestScore != 600 || mem.AverageScore != 300 {
		t.Errorf("got %+v", mem)
	}

	if len(stats.Recent) != 5 {
		t.Errorf("got %d recent games, want 5", len(stats.Recent))
	}
	if stats.Recent[0].Username != "bob" {
		t.Errorf("got newest player %q, want bob", stats.Recent[0].Username)
	}
}

func TestClearScores(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	u := mustUser(t, store, "alice")

	mustSave(t, store, u.ID, scoring.Submission{Game: scoring.GameMemory, Score: 100})
	mustSave(t, store, u.ID, scoring.Submission{Game: scoring.GameMemory, Score: 200})
	mustSave(t, store, u.ID, scoring.Submission{Game: scoring.GameSliding, Score: 300})

	if err := store.ClearScores(ctx, scoring.GameMemory); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	memory, _ := store.TopScores(ctx, scoring.GameMemory, "", 10)
	if len(memory) != 0 {
		t.Errorf("got %d memory scores after clear, want 0", len(memory))
	}
	sliding, _ := store.TopScores(ctx, scoring.GameSliding, "", 10)
	if len(sliding) != 1 {
		t.Error("sliding scores should not be affected by clearing memory")
	}
}

func TestRecordScore(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	sub := scoring.Submission{Game: scoring.GameMinesweeper, Difficulty: "easy", Score: 900, Moves: 10, TimeSeconds: 10}
	rec, err := store.RecordScore(ctx, "player", sub)
	if err != nil {
		t.Fatalf("RecordScore() failed: %v", err)
	}

	u, err := store.UserByUsername(ctx, "player")
	if err != nil {
		t.Fatalf("local user not created: %v", err)
	}
	if rec.UserID != u.ID {
		t.Errorf("got user %d, want %d", rec.UserID, u.ID)
	}

	var rs scoring.Recorder = store
	if _, err := rs.RecordScore(ctx, "player", sub); err != nil {
		t.Fatalf("second RecordScore() failed: %v", err)
	}
	n, _ := store.CountUsers(ctx)
	if n != 1 {
		t.Errorf("got %d users, want 1", n)
	}
}
