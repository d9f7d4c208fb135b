package vectorstore

import "semsearch/internal/domain"

// Hit is a single nearest-neighbour result: the 0-based insertion row of
// the matched vector and its squared Euclidean distance to the query.
type Hit struct {
	Row      int
	Distance float64
}

// Index stores vectors in insertion order and answers k-nearest-neighbour
// queries by ascending distance.
type Index interface {
	Add(vectors [][]float32) error
	Search(query []float32, k int) ([]Hit, error)
	Len() int
	Dimension() int
	Persist(path string, manifest domain.Manifest) error
}
