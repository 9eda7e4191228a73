package models

import (
	"testing"
	"time"
)

func TestDefaultAlbumName(t *testing.T) {
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	if got := DefaultAlbumName(now); got != "Album-20240506070809" {
		t.Errorf("DefaultAlbumName() = %q", got)
	}
}

func TestAlbumsForUserOrdering(t *testing.T) {
	db := testDB(t)
	user, err := UserCreate(db, "Ann", "ann@x.com", "pw123")
	if err != nil {
		t.Fatal(err)
	}
	older := Album{UserID: user.ID, Name: "Older", CreatedAt: 1000}
	newer := Album{UserID: user.ID, Name: "Newer", CreatedAt: 2000}
	if err := db.Create(&older).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&newer).Error; err != nil {
		t.Fatal(err)
	}

	albums, err := AlbumsForUser(db, user.ID)
	if err != nil {
		t.Fatalf("AlbumsForUser() error = %v", err)
	}
	if len(albums) != 2 {
		t.Fatalf("albums = %d, want 2", len(albums))
	}
	if albums[0].Name != "Newer" || albums[1].Name != "Older" {
		t.Errorf("albums out of order: %q, %q", albums[0].Name, albums[1].Name)
	}
	if other, _ := AlbumsForUser(db, user.ID+1); len(other) != 0 {
		t.Errorf("albums leaked to another user: %d", len(other))
	}
}

func TestPhotosForAlbum(t *testing.T) {
	db := testDB(t)
	user, err := UserCreate(db, "Ann", "ann@x.com", "pw123")
	if err != nil {
		t.Fatal(err)
	}
	album := Album{UserID: user.ID, Name: "Trip"}
	if err := db.Create(&album).Error; err != nil {
		t.Fatal(err)
	}
	second := Photo{AlbumID: album.ID, Filename: "b.png", CreatedAt: 2000}
	first := Photo{AlbumID: album.ID, Filename: "a.png", CreatedAt: 1000}
	if err := db.Create(&second).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&first).Error; err != nil {
		t.Fatal(err)
	}

	photos, err := PhotosForAlbum(db, album.ID)
	if err != nil {
		t.Fatalf("PhotosForAlbum() error = %v", err)
	}
	if len(photos) != 2 || photos[0].Filename != "a.png" || photos[1].Filename != "b.png" {
		t.Errorf("photos out of upload order: %+v", photos)
	}

	count, err := PhotoCountForAlbum(db, album.ID)
	if err != nil || count != 2 {
		t.Errorf("PhotoCountForAlbum() = %d, %v, want 2", count, err)
	}

	if err := DeletePhotosForAlbum(db, album.ID); err != nil {
		t.Fatalf("DeletePhotosForAlbum() error = %v", err)
	}
	count, _ = PhotoCountForAlbum(db, album.ID)
	if count != 0 {
		t.Errorf("photo rows after delete = %d, want 0", count)
	}
}
