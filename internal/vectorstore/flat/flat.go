// Package flat provides a brute-force vector index over an in-memory
// slice of vectors, serialized whole to a single file.
package flat

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"semsearch/internal/domain"
	"semsearch/internal/vectorstore"
)

// Index keeps vectors in insertion order; row i is the i-th added vector.
type Index struct {
	dimension int
	vectors   [][]float32
}

var _ vectorstore.Index = (*Index)(nil)

func New(dimension int) (*Index, error) {
	if dimension <= 0 {
		return nil, errors.New("invalid dimension")
	}
	return &Index{dimension: dimension}, nil
}

func (ix *Index) Len() int       { return len(ix.vectors) }
func (ix *Index) Dimension() int { return ix.dimension }

// Add appends vectors in call order.
func (ix *Index) Add(vectors [][]float32) error {
	for _, v := range vectors {
		if len(v) != ix.dimension {
			return fmt.Errorf("vector dimension mismatch: %d != %d", len(v), ix.dimension)
		}
	}
	ix.vectors = append(ix.vectors, vectors...)
	return nil
}

// Search returns up to k rows ascending by squared Euclidean distance.
func (ix *Index) Search(query []float32, k int) ([]vectorstore.Hit, error) {
	if len(query) != ix.dimension {
		return nil, fmt.Errorf("query dimension mismatch: %d != %d", len(query), ix.dimension)
	}
	if k <= 0 || len(ix.vectors) == 0 {
		return nil, nil
	}
	hits := make([]vectorstore.Hit, len(ix.vectors))
	for i, v := range ix.vectors {
		hits[i] = vectorstore.Hit{Row: i, Distance: sqDist(query, v)}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].Row < hits[j].Row
	})
	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

func sqDist(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

// snapshot is the on-disk form of an index generation.
type snapshot struct {
	Manifest domain.Manifest
	Vectors  [][]float32
}

// Persist writes the index and its manifest to path. The file is written
// to a temporary sibling and renamed into place, so readers either see
// the previous generation or the complete new one.
func (ix *Index) Persist(path string, manifest domain.Manifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	snap := snapshot{Manifest: manifest, Vectors: ix.vectors}
	if err := gob.NewEncoder(f).Encode(&snap); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encoding index: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// Load reads a persisted index generation. It fails if the file is
// absent or cannot be decoded.
func Load(path string) (*Index, domain.Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.Manifest{}, err
	}
	defer f.Close()
	var snap snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return nil, domain.Manifest{}, fmt.Errorf("decoding index %s: %w", path, err)
	}
	if snap.Manifest.Dimension <= 0 || len(snap.Vectors) != snap.Manifest.Vectors {
		return nil, domain.Manifest{}, fmt.Errorf("index %s does not match its manifest", path)
	}
	ix := &Index{dimension: snap.Manifest.Dimension, vectors: snap.Vectors}
	return ix, snap.Manifest, nil
}
