package mask

import (
	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/recito/internal/model"
)

// Renderer memoizes masked renders so redraws of the same line are free
type Renderer struct {
	masker *Masker
	cache  *gocache.Cache
	limit  int
}

// NewRenderer wraps masker with a memo holding at most limit renders.
// limit <= 0 disables memoization.
func NewRenderer(masker *Masker, limit int) *Renderer {
	r := &Renderer{masker: masker, limit: limit}
	if limit > 0 {
		r.cache = gocache.New(gocache.NoExpiration, 0)
	}
	return r
}

// Render returns the masked form of line in mode
func (r *Renderer) Render(line string, mode model.MaskMode) string {
	if r.cache == nil {
		return r.masker.Mask(line, mode)
	}

	key := renderKey(line, mode)
	if val, found := r.cache.Get(key); found {
		return val.(string)
	}

	out := r.masker.Mask(line, mode)
	if r.cache.ItemCount() >= r.limit {
		r.cache.Flush()
	}
	r.cache.Set(key, out, gocache.NoExpiration)
	return out
}

// Len returns the number of memoized renders
func (r *Renderer) Len() int {
	if r.cache == nil {
		return 0
	}
	return r.cache.ItemCount()
}

func renderKey(line string, mode model.MaskMode) string {
	return string(mode) + ":" + line
}
