package storage

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"go-reusable-content/internal/model"

	"github.com/google/uuid"
)

// Helper function to create a sample record for testing
func createSampleRecord(title string) *model.ContentRecord {
	now := time.Now()
	info := model.NewReusableContentInfoWithFile(title, "General", true, false, "footer.html", "GSoft.Dynamite")
	info.Content = "<div class=\"footer\">" + title + "</div>"
	return &model.ContentRecord{
		ID:          uuid.New().String(),
		Info:        *info,
		CreatedAt:   now,
		LastUpdated: now,
	}
}

func assertSameRecord(t *testing.T, got, want *model.ContentRecord) {
	t.Helper()
	if got.ID != want.ID {
		t.Errorf("ID = %q, want %q", got.ID, want.ID)
	}
	if !reflect.DeepEqual(got.Info, want.Info) {
		t.Errorf("Info mismatch.\nGot:  %+v\nWant: %+v", got.Info, want.Info)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) || !got.LastUpdated.Equal(want.LastUpdated) {
		t.Errorf("timestamps mismatch: got (%v, %v), want (%v, %v)", got.CreatedAt, got.LastUpdated, want.CreatedAt, want.LastUpdated)
	}
}

// runStoreTests exercises the DataStore contract against a fresh store per subtest.
func runStoreTests(t *testing.T, newStore func(t *testing.T) DataStore) {
	t.Run("SaveLoad", func(t *testing.T) {
		store := newStore(t)
		original := createSampleRecord("Footer")

		if err := store.SaveContent(original); err != nil {
			t.Fatalf("SaveContent() failed: %v", err)
		}
		loaded, err := store.LoadContent("Footer")
		if err != nil {
			t.Fatalf("LoadContent() failed: %v", err)
		}
		assertSameRecord(t, loaded, original)
	})

	t.Run("SaveReplacesSameTitle", func(t *testing.T) {
		store := newStore(t)
		first := createSampleRecord("Footer")
		if err := store.SaveContent(first); err != nil {
			t.Fatalf("SaveContent() failed: %v", err)
		}

		second := *first
		second.Info.Content = "<p>changed</p>"
		second.Info.IsShowInRibbon = true
		if err := store.SaveContent(&second); err != nil {
			t.Fatalf("SaveContent() second time failed: %v", err)
		}

		titles, err := store.GetAllTitles()
		if err != nil {
			t.Fatalf("GetAllTitles() failed: %v", err)
		}
		if !reflect.DeepEqual(titles, []string{"Footer"}) {
			t.Errorf("GetAllTitles() = %v, want [Footer]", titles)
		}
		loaded, err := store.LoadContent("Footer")
		if err != nil {
			t.Fatalf("LoadContent() failed: %v", err)
		}
		assertSameRecord(t, loaded, &second)
	})

	t.Run("TitlesAreCaseSensitiveKeys", func(t *testing.T) {
		store := newStore(t)
		for _, title := range []string{"Footer", "footer", "Footer!"} {
			if err := store.SaveContent(createSampleRecord(title)); err != nil {
				t.Fatalf("SaveContent(%q) failed: %v", title, err)
			}
		}
		titles, err := store.GetAllTitles()
		if err != nil {
			t.Fatalf("GetAllTitles() failed: %v", err)
		}
		want := []string{"Footer", "Footer!", "footer"}
		if !reflect.DeepEqual(titles, want) {
			t.Errorf("GetAllTitles() = %v, want %v", titles, want)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		store := newStore(t)
		_, err := store.LoadContent("does-not-exist")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("LoadContent() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("EmptyTitle", func(t *testing.T) {
		store := newStore(t)
		if err := store.SaveContent(createSampleRecord("")); !errors.Is(err, ErrEmptyTitle) {
			t.Errorf("SaveContent(empty title) error = %v, want ErrEmptyTitle", err)
		}
		if _, err := store.LoadContent(""); !errors.Is(err, ErrEmptyTitle) {
			t.Errorf("LoadContent(\"\") error = %v, want ErrEmptyTitle", err)
		}
		if err := store.DeleteContent(""); !errors.Is(err, ErrEmptyTitle) {
			t.Errorf("DeleteContent(\"\") error = %v, want ErrEmptyTitle", err)
		}
	})

	t.Run("WhitespaceTitleAccepted", func(t *testing.T) {
		store := newStore(t)
		if err := store.SaveContent(createSampleRecord("   ")); err != nil {
			t.Fatalf("SaveContent(whitespace title) failed: %v", err)
		}
		if _, err := store.LoadContent("   "); err != nil {
			t.Errorf("LoadContent(whitespace title) failed: %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		store := newStore(t)
		if err := store.SaveContent(createSampleRecord("Header")); err != nil {
			t.Fatalf("Setup failed: SaveContent() failed: %v", err)
		}
		if err := store.DeleteContent("Header"); err != nil {
			t.Fatalf("DeleteContent() failed: %v", err)
		}
		if _, err := store.LoadContent("Header"); !errors.Is(err, ErrNotFound) {
			t.Errorf("LoadContent() after delete error = %v, want ErrNotFound", err)
		}
		// Idempotent
		if err := store.DeleteContent("Header"); err != nil {
			t.Errorf("DeleteContent() on missing title returned error: %v", err)
		}
	})

	t.Run("ReadAllSorted", func(t *testing.T) {
		store := newStore(t)
		saved := map[string]*model.ContentRecord{}
		for _, title := range []string{"Zeta", "Alpha", "Mid"} {
			r := createSampleRecord(title)
			saved[title] = r
			if err := store.SaveContent(r); err != nil {
				t.Fatalf("Setup failed: SaveContent(%q) failed: %v", title, err)
			}
		}

		records, err := store.ReadAll()
		if err != nil {
			t.Fatalf("ReadAll() failed: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("ReadAll() returned %d records, want 3", len(records))
		}
		for i, want := range []string{"Alpha", "Mid", "Zeta"} {
			if records[i].Title() != want {
				t.Errorf("ReadAll()[%d].Title() = %q, want %q", i, records[i].Title(), want)
			}
			assertSameRecord(t, records[i], saved[want])
		}
	})

	t.Run("ReadAllEmpty", func(t *testing.T) {
		store := newStore(t)
		records, err := store.ReadAll()
		if err != nil {
			t.Fatalf("ReadAll() failed: %v", err)
		}
		if len(records) != 0 {
			t.Errorf("ReadAll() on empty store returned %d records", len(records))
		}
	})
}
