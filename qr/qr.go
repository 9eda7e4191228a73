package qr

import (
	"bytes"
	"fmt"

	"qralbum/storage"

	qrcode "github.com/skip2/go-qrcode"
)

const imageSize = 512 // pixels, square

// Generator writes QR PNG images pointing at public album views into
// its own disk tree.
type Generator struct {
	Disk    *storage.Disk
	BaseURL string
}

// FileName is the name of the QR image for one album, relative to the
// QR tree.
func FileName(albumID uint64) string {
	return fmt.Sprintf("qr_album_%d.png", albumID)
}

// AlbumURL is the externally-resolvable view URL that gets encoded
// into the QR image.
func (g *Generator) AlbumURL(albumID uint64) string {
	return fmt.Sprintf("%s/album/view/%d", g.BaseURL, albumID)
}

// GenerateForAlbum encodes the album's public URL and saves the image,
// returning its path relative to the QR tree.
func (g *Generator) GenerateForAlbum(albumID uint64) (string, error) {
	png, err := qrcode.Encode(g.AlbumURL(albumID), qrcode.Medium, imageSize)
	if err != nil {
		return "", err
	}
	name := FileName(albumID)
	if _, err = g.Disk.Save(name, bytes.NewReader(png)); err != nil {
		return "", err
	}
	return name, nil
}
