package assets

import (
	"image"
	"path/filepath"

	"chosenoffset.com/spacetaxi/internal/render"
)

// Picture is a decoded image together with its drawable upload.
type Picture struct {
	Pixels image.Image
	Image  render.Image
}

// Provider loads and caches pictures. Relative paths are resolved against
// the asset root.
type Provider struct {
	root    string
	catalog Catalog
	loader  render.ResourceLoader
	cache   map[string]*Picture
}

// NewProvider returns a provider reading through loader.
func NewProvider(catalog Catalog, loader render.ResourceLoader) *Provider {
	return &Provider{
		catalog: catalog,
		loader:  loader,
		cache:   make(map[string]*Picture),
	}
}

// WithRoot sets the directory relative paths are read from.
func (p *Provider) WithRoot(root string) *Provider {
	p.root = root
	return p
}

// Resolve returns path as it is opened on disk.
func (p *Provider) Resolve(path string) string {
	if p.root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.root, path)
}

// Catalog returns the provider's catalogue.
func (p *Provider) Catalog() Catalog {
	return p.catalog
}

// Loader returns the underlying resource loader.
func (p *Provider) Loader() render.ResourceLoader {
	return p.loader
}

// Image loads a catalogue entry.
func (p *Provider) Image(id ID) (*Picture, error) {
	path, err := p.catalog.Path(id)
	if err != nil {
		return nil, err
	}
	return p.File(path)
}

// File loads an image by path. Pictures are shared between callers.
func (p *Provider) File(path string) (*Picture, error) {
	if pic, ok := p.cache[path]; ok {
		return pic, nil
	}
	px, err := p.loader.LoadPixels(p.Resolve(path))
	if err != nil {
		return nil, Missing(p.Resolve(path), err)
	}
	pic := &Picture{Pixels: px, Image: p.loader.NewImageFromImage(px)}
	p.cache[path] = pic
	return pic, nil
}
