package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Document represents a single text file loaded into the system.
type Document struct {
	Path    string
	Content string
}

// Chunk is a bounded-length part of a document, the unit of embedding.
type Chunk struct {
	File string
	Seq  int
	Text string
}

// ChunkRecord is a persisted chunk row. IDs are assigned sequentially
// starting at 1 in insertion order, so a record's ID is always the
// index-row position of its embedding plus one.
type ChunkRecord struct {
	ID   int64
	File string
	Seq  int
	Text string
}

// SearchHit is a chunk-level nearest-neighbour match.
type SearchHit struct {
	File     string
	Seq      int
	Text     string
	Distance float64
}

// DocumentHit is the best (lowest-distance) hit for one distinct file.
type DocumentHit struct {
	File     string
	Seq      int
	Text     string
	Distance float64
}

// Manifest describes one build generation of the index. It is persisted
// alongside the vectors and is the single place that knows how index rows
// map to chunk-record IDs.
type Manifest struct {
	Generation uuid.UUID
	Vectors    int
	Dimension  int
	Model      string
	BuiltAt    time.Time
}

// RecordID resolves a 0-based index row to its chunk-record ID.
func (m Manifest) RecordID(row int) int64 { return int64(row) + 1 }

// BuildStage tags which phase of document processing failed.
type BuildStage string

const (
	StageExtract BuildStage = "extract"
	StageEmbed   BuildStage = "embed"
)

// DocumentOutcome is the per-document result of a build. Err is nil for
// documents that were indexed successfully.
type DocumentOutcome struct {
	File   string
	Chunks int
	Stage  BuildStage
	Err    error
}

// Failed reports whether the document was skipped.
func (o DocumentOutcome) Failed() bool { return o.Err != nil }

// BuildReport summarises one build run.
type BuildReport struct {
	Documents []DocumentOutcome
	Vectors   int
	Indexed   bool
	Manifest  Manifest
}

// Failures returns the outcomes of documents that were skipped.
func (r *BuildReport) Failures() []DocumentOutcome {
	var failed []DocumentOutcome
	for _, o := range r.Documents {
		if o.Failed() {
			failed = append(failed, o)
		}
	}
	return failed
}

// ErrNotIndexed is returned by search when no successful build has produced
// a readable index and chunk store pair.
var ErrNotIndexed = errors.New("not indexed: run build first")

// ErrNotFound is returned by the chunk store for an unknown record ID.
var ErrNotFound = errors.New("chunk record not found")

// Embedder converts free text into fixed-dimension vector representations.
// Implementations must preserve input order and be deterministic for a
// fixed model version.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Source enumerates the configured input set and supplies raw document
// text. Extract may fail for one document without affecting the rest.
type Source interface {
	List() ([]string, error)
	Extract(path string) (string, error)
}

// Searcher is the query-side surface of the pipeline, as consumed by the
// CLI and the TUI.
type Searcher interface {
	Search(ctx context.Context, query string, topK, chunkLimit int) ([]DocumentHit, error)
}
