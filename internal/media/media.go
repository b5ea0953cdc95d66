// Package media resolves the photo and video gallery of an event.
package media

import (
	"io/fs"
	"os"
	"path"
	"strconv"
	"strings"

	"mmpstats/internal/models"
)

// Scan limits.
const (
	MaxScanIndex = 12
	MaxFound      = 8
)

// galleryExtensions are tried in order for every index.
var galleryExtensions = []string{"jpg", "jpeg", "png", "webp", "gif", "mp4", "webm"}

// Resolver builds galleries from declared file names or by scanning a media tree laid out as
// img/{id}/{n}.{ext} or assets/img/{id}/{n}.{ext}.
type Resolver struct {
	fsys fs.FS
}

// NewResolver creates a resolver rooted at dir. An empty dir disables probing.
func NewResolver(dir string) *Resolver {
	if dir == "" {
		return &Resolver{}
	}

	return NewResolverFS(os.DirFS(dir))
}

// NewResolverFS creates a resolver over fsys, which may be nil.
func NewResolverFS(fsys fs.FS) *Resolver {
	return &Resolver{fsys: fsys}
}

// Gallery returns the media of e. URLs are relative to the media root.
func (r *Resolver) Gallery(e models.Event) []models.MediaItem {
	if len(e.Media) > 0 {
		return declared(e)
	}

	return r.scan(e.ID)
}

func declared(e models.Event) []models.MediaItem {
	items := make([]models.MediaItem, 0, len(e.Media))
	base := "img/" + strconv.Itoa(e.ID)

	for _, name := range e.Media {
		name = path.Base(strings.TrimSpace(name))
		if name == "." || name == "/" || name == ".." {
			continue
		}

		items = append(items, models.MediaItem{URL: base + "/" + name, Type: TypeOf(name)})
	}

	return items
}

func (r *Resolver) scan(id int) []models.MediaItem {
	items := []models.MediaItem{}
	if r.fsys == nil {
		return items
	}

	bases := []string{
		"img/" + strconv.Itoa(id),
		"assets/img/" + strconv.Itoa(id),
	}

	for i := 1; i <= MaxScanIndex && len(items) < MaxFound; i++ {
		if url, ok := r.firstExisting(bases, strconv.Itoa(i)); ok {
			items = append(items, models.MediaItem{URL: url, Type: TypeOf(url)})
		}
	}

	return items
}

func (r *Resolver) firstExisting(bases []string, stem string) (string, bool) {
	for _, ext := range galleryExtensions {
		for _, base := range bases {
			name := base + "/" + stem + "." + ext

			info, err := fs.Stat(r.fsys, name)
			if err == nil && info.Mode().IsRegular() {
				return name, true
			}
		}
	}

	return "", false
}

// TypeOf classifies a file name by extension.
func TypeOf(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".mp4", ".webm":
		return models.MediaVideo
	default:
		return models.MediaImage
	}
}
