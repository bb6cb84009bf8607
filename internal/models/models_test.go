package models

import "testing"

func TestNewSong(t *testing.T) {
	t.Run("Valid Input", func(t *testing.T) {
		song, err := NewSong("The Beatles", "Hey Jude")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if song.Artist != "The Beatles" {
			t.Errorf("expected artist 'The Beatles', got %s", song.Artist)
		}
		if song.Title != "Hey Jude" {
			t.Errorf("expected title 'Hey Jude', got %s", song.Title)
		}
	})

	t.Run("Trims Whitespace", func(t *testing.T) {
		song, err := NewSong("  Radiohead  ", "\tCreep\n")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if song.Artist != "Radiohead" || song.Title != "Creep" {
			t.Errorf("expected trimmed fields, got %q / %q", song.Artist, song.Title)
		}
	})

	t.Run("Empty Artist", func(t *testing.T) {
		if _, err := NewSong("", "Hey Jude"); err == nil {
			t.Error("expected error for empty artist")
		}
	})

	t.Run("Empty Title", func(t *testing.T) {
		if _, err := NewSong("The Beatles", ""); err == nil {
			t.Error("expected error for empty title")
		}
	})

	t.Run("Whitespace Only", func(t *testing.T) {
		if _, err := NewSong("   ", "Hey Jude"); err == nil {
			t.Error("expected error for whitespace-only artist")
		}
		if _, err := NewSong("The Beatles", " \t "); err == nil {
			t.Error("expected error for whitespace-only title")
		}
	})
}

func TestSongIdentity(t *testing.T) {
	t.Run("Case Insensitive Equality", func(t *testing.T) {
		a, _ := NewSong("The Beatles", "Hey Jude")
		b, _ := NewSong("the beatles", "HEY JUDE")

		if !a.Equal(b) {
			t.Error("expected songs to be equal regardless of case")
		}
		if a.Key() != b.Key() {
			t.Error("expected identical keys regardless of case")
		}
	})

	t.Run("Different Songs", func(t *testing.T) {
		a, _ := NewSong("The Beatles", "Hey Jude")
		b, _ := NewSong("The Beatles", "Let It Be")

		if a.Equal(b) {
			t.Error("expected songs with different titles to differ")
		}
	})

	t.Run("String Format", func(t *testing.T) {
		song, _ := NewSong("The Beatles", "Hey Jude")
		if song.String() != "The Beatles - Hey Jude" {
			t.Errorf("unexpected string: %s", song.String())
		}
	})
}
