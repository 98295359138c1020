package uploads

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"storefront/models"
	"storefront/utils"

	"github.com/disintegration/imaging"
)

// Largest edge kept after resize.
const maxEdge = 1200

// Media stores processed images and serves back public URLs.
type Media interface {
	SaveImage(r io.Reader, folder string) (*models.Upload, error)
	DeleteImage(folder, publicID string) error
}

// LocalMedia keeps images on the local disk under a single root and
// addresses them by folder and public id. Everything is re-encoded as
// JPEG, which also strips whatever metadata came in.
type LocalMedia struct {
	root    string
	baseURL string
}

func NewLocalMedia(root, baseURL string) *LocalMedia {
	return &LocalMedia{root: root, baseURL: baseURL}
}

func (m *LocalMedia) SaveImage(r io.Reader, folder string) (*models.Upload, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxEdge || bounds.Dy() > maxEdge {
		img = imaging.Fit(img, maxEdge, maxEdge, imaging.Lanczos)
		bounds = img.Bounds()
	}

	publicID := utils.NewID()
	dir := filepath.Join(m.root, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}

	path := filepath.Join(dir, publicID+".jpg")
	if err := imaging.Save(img, path, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("save image: %w", err)
	}

	return &models.Upload{
		PublicID: publicID,
		URL:      fmt.Sprintf("%s/%s/%s.jpg", m.baseURL, folder, publicID),
		Folder:   folder,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
	}, nil
}

func (m *LocalMedia) DeleteImage(folder, publicID string) error {
	err := os.Remove(filepath.Join(m.root, folder, publicID+".jpg"))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
