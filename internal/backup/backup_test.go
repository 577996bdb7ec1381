package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/habitcore/internal/storage/sqlite"
	"github.com/julianstephens/habitcore/internal/storage/storagetest"
)

func setupTestDB(t *testing.T) (*sqlite.Store, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "habitcore.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if err := store.AddHabit(storagetest.Habit("h1", "alice", "Read")); err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	return store, dbPath
}

func newManager(dbPath string, start time.Time) *Manager {
	m := NewManager(dbPath)
	clock := start
	m.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return m
}

func TestCreate(t *testing.T) {
	_, dbPath := setupTestDB(t)
	m := newManager(dbPath, time.Date(2025, 6, 10, 9, 0, 0, 0, time.Local))

	path, err := m.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if filepath.Base(path) != "habitcore-20250610-090100.db" {
		t.Errorf("backup name = %s", filepath.Base(path))
	}
	if filepath.Dir(path) != m.Dir() {
		t.Errorf("backup dir = %s, want %s", filepath.Dir(path), m.Dir())
	}

	restored := sqlite.NewStore(path)
	if err := restored.Load(); err != nil {
		t.Fatalf("Load backup: %v", err)
	}
	defer restored.Close()
	if _, err := restored.GetHabit("h1"); err != nil {
		t.Errorf("habit missing from backup: %v", err)
	}
}

func TestCreate_MissingDatabase(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := m.Create(); err == nil {
		t.Error("expected an error for a missing database")
	}
}

func TestCreate_SameSecond(t *testing.T) {
	_, dbPath := setupTestDB(t)
	m := NewManager(dbPath)
	fixed := time.Date(2025, 6, 10, 9, 0, 0, 0, time.Local)
	m.now = func() time.Time { return fixed }

	first, err := m.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := m.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first == second {
		t.Fatal("second backup overwrote the first")
	}
	if filepath.Base(second) != "habitcore-20250610-090000-1.db" {
		t.Errorf("second backup name = %s", filepath.Base(second))
	}
}

func TestListAndRotate(t *testing.T) {
	_, dbPath := setupTestDB(t)
	m := newManager(dbPath, time.Date(2025, 6, 10, 9, 0, 0, 0, time.Local))
	m.keep = 2

	var paths []string
	for i := 0; i < 4; i++ {
		p, err := m.Create()
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		paths = append(paths, p)
	}

	// Unrelated files are ignored
	if err := os.WriteFile(filepath.Join(m.Dir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(backups) != 2 {
		t.Fatalf("backups = %d, want 2", len(backups))
	}
	if backups[0].Path != paths[3] || backups[1].Path != paths[2] {
		t.Errorf("kept %s, %s; want the two newest", backups[0].Path, backups[1].Path)
	}
	if backups[0].Size == 0 {
		t.Error("Size should be set")
	}
}

func TestList_NoDirectory(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "habitcore.db"))
	backups, err := m.List()
	if err != nil || len(backups) != 0 {
		t.Errorf("List = %v, %v; want empty", backups, err)
	}
}

func TestRestore(t *testing.T) {
	store, dbPath := setupTestDB(t)
	m := newManager(dbPath, time.Date(2025, 6, 10, 9, 0, 0, 0, time.Local))

	snapshot, err := m.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.AddHabit(storagetest.Habit("h2", "alice", "Run")); err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	store.Close()

	previous, err := m.Restore(snapshot)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if previous == "" {
		t.Error("expected the current database to be backed up first")
	}

	reopened := sqlite.NewStore(dbPath)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer reopened.Close()
	habits, err := reopened.GetHabitsForUser("alice")
	if err != nil {
		t.Fatalf("GetHabitsForUser: %v", err)
	}
	if len(habits) != 1 || habits[0].Name != "Read" {
		t.Errorf("habits after restore = %+v, want only Read", habits)
	}
}

func TestRestore_Invalid(t *testing.T) {
	_, dbPath := setupTestDB(t)
	m := NewManager(dbPath)

	if _, err := m.Restore(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("expected an error for a missing backup")
	}

	junk := filepath.Join(t.TempDir(), "junk.db")
	if err := os.WriteFile(junk, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Restore(junk); err == nil {
		t.Error("expected an error for an invalid backup")
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"habitcore-20250610-090000.db", true},
		{"habitcore-20250610-090000-3.db", true},
		{"other-20250610-090000.db", false},
		{"habitcore-latest.db", false},
		{"habitcore-20250610-090000.txt", false},
	}
	for _, tt := range tests {
		if _, ok := parseName(tt.name); ok != tt.ok {
			t.Errorf("parseName(%q) ok = %v, want %v", tt.name, ok, tt.ok)
		}
	}
}
