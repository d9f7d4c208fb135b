// Package service sequences the chunk, embed, index and aggregate steps
// into the build and search operations.
package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/kart-io/logger"

	"semsearch/internal/aggregate"
	"semsearch/internal/chunker"
	"semsearch/internal/chunkstore"
	"semsearch/internal/config"
	"semsearch/internal/domain"
	"semsearch/internal/vectorstore/flat"
)

// Pipeline orchestrates builds and searches over one index/store pair.
// The embedder is an explicit dependency so tests can substitute a
// deterministic one.
type Pipeline struct {
	cfg      *config.AppConfig
	embedder domain.Embedder
	source   domain.Source
}

func NewPipeline(cfg *config.AppConfig, embedder domain.Embedder, source domain.Source) *Pipeline {
	return &Pipeline{cfg: cfg, embedder: embedder, source: source}
}

// Build rebuilds the chunk store and vector index from the input set.
// A failing document is recorded in the report and skipped; it never
// aborts the build. With zero vectors produced, no artifact is written
// and any previous generation stays untouched.
//
// Both artifacts are staged under temporary paths and renamed into place
// only on full success. The renames are not atomic as a pair, so each
// side carries the build generation and search rejects a mismatched pair.
func (p *Pipeline) Build(ctx context.Context) (*domain.BuildReport, error) {
	paths, err := p.source.List()
	if err != nil {
		return nil, fmt.Errorf("listing input documents: %w", err)
	}
	logger.Infof("building index from %d documents in %s", len(paths), p.cfg.InputDir)

	ch := chunker.NewParagraphChunker(p.cfg.Chunker.MaxChars)
	report := &domain.BuildReport{}
	var vectors [][]float32
	var records []domain.Chunk

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := p.source.Extract(path)
		if err != nil {
			logger.Warnf("skipping %s: %v", path, err)
			report.Documents = append(report.Documents, domain.DocumentOutcome{
				File: path, Stage: domain.StageExtract, Err: err,
			})
			continue
		}
		chunks := ch.Chunk(domain.Document{Path: path, Content: text})
		if len(chunks) == 0 {
			report.Documents = append(report.Documents, domain.DocumentOutcome{File: path})
			continue
		}
		texts := make([]string, len(chunks))
		for i, c := range chunks {
			texts[i] = c.Text
		}
		vecs, err := p.embedder.Embed(ctx, texts)
		if err == nil && len(vecs) != len(chunks) {
			err = fmt.Errorf("embedder returned %d vectors for %d chunks", len(vecs), len(chunks))
		}
		if err != nil {
			logger.Warnf("skipping %s: %v", path, err)
			report.Documents = append(report.Documents, domain.DocumentOutcome{
				File: path, Stage: domain.StageEmbed, Err: err,
			})
			continue
		}
		vectors = append(vectors, vecs...)
		records = append(records, chunks...)
		report.Documents = append(report.Documents, domain.DocumentOutcome{File: path, Chunks: len(chunks)})
	}

	report.Vectors = len(vectors)
	if len(vectors) == 0 {
		logger.Warn("no vectors produced, leaving previous index untouched")
		return report, nil
	}

	manifest := domain.Manifest{
		Generation: uuid.New(),
		Vectors:    len(vectors),
		Dimension:  p.embedder.Dimension(),
		Model:      p.embedder.Name(),
		BuiltAt:    time.Now().UTC(),
	}
	if err := p.persist(manifest, vectors, records); err != nil {
		return nil, err
	}
	report.Indexed = true
	report.Manifest = manifest
	logger.Infof("indexed %d chunks (generation %s)", len(vectors), manifest.Generation)
	return report, nil
}

// persist stages the new generation next to the live artifacts and swaps
// both in, store first.
func (p *Pipeline) persist(manifest domain.Manifest, vectors [][]float32, records []domain.Chunk) error {
	storeTmp := p.cfg.StorePath + ".build"
	os.Remove(storeTmp)
	store, err := chunkstore.Open(storeTmp)
	if err != nil {
		return err
	}
	defer os.Remove(storeTmp)

	if err := store.Reset(); err != nil {
		store.Close()
		return err
	}
	for row, c := range records {
		id, err := store.Insert(c.File, c.Seq, c.Text)
		if err != nil {
			store.Close()
			return err
		}
		if id != manifest.RecordID(row) {
			store.Close()
			return fmt.Errorf("store id %d out of step with index row %d", id, row)
		}
	}
	if err := store.SetGeneration(manifest.Generation.String()); err != nil {
		store.Close()
		return err
	}
	if err := store.Close(); err != nil {
		return err
	}

	ix, err := flat.New(manifest.Dimension)
	if err != nil {
		return err
	}
	if err := ix.Add(vectors); err != nil {
		return err
	}
	if err := ix.Persist(p.cfg.IndexPath, manifest); err != nil {
		return fmt.Errorf("persisting index: %w", err)
	}
	if err := os.Rename(storeTmp, p.cfg.StorePath); err != nil {
		return fmt.Errorf("installing chunk store: %w", err)
	}
	return nil
}

// Search embeds the query, resolves the nearest chunk rows to records and
// aggregates them to one hit per document. It fails with
// domain.ErrNotIndexed when no aligned index/store pair is readable.
func (p *Pipeline) Search(ctx context.Context, query string, topK, chunkLimit int) ([]domain.DocumentHit, error) {
	if topK <= 0 {
		topK = p.cfg.Search.TopK
	}
	if chunkLimit <= 0 {
		chunkLimit = p.cfg.Search.ChunkLimit
	}

	ix, manifest, err := flat.Load(p.cfg.IndexPath)
	if err != nil {
		return nil, fmt.Errorf("%w (%v)", domain.ErrNotIndexed, err)
	}
	store, err := chunkstore.OpenExisting(p.cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("%w (%v)", domain.ErrNotIndexed, err)
	}
	defer store.Close()

	gen, err := store.Generation()
	if err != nil {
		return nil, fmt.Errorf("%w (%v)", domain.ErrNotIndexed, err)
	}
	if gen != manifest.Generation.String() {
		return nil, fmt.Errorf("%w (index and store are from different builds)", domain.ErrNotIndexed)
	}

	qvecs, err := p.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if len(qvecs) != 1 || len(qvecs[0]) != manifest.Dimension {
		return nil, fmt.Errorf("query embedding dimension does not match index (%d)", manifest.Dimension)
	}

	neighbours, err := ix.Search(qvecs[0], chunkLimit)
	if err != nil {
		return nil, err
	}
	hits := make([]domain.SearchHit, 0, len(neighbours))
	for _, n := range neighbours {
		rec, err := store.Get(manifest.RecordID(n.Row))
		if err != nil {
			logger.Warnf("dropping unresolvable index row %d: %v", n.Row, err)
			continue
		}
		hits = append(hits, domain.SearchHit{
			File: rec.File, Seq: rec.Seq, Text: rec.Text, Distance: n.Distance,
		})
	}
	return aggregate.Aggregate(hits, topK), nil
}

// Indexed reports whether a readable index file exists. It does not
// verify alignment; Search does that.
func (p *Pipeline) Indexed() bool {
	_, err := os.Stat(p.cfg.IndexPath)
	return !errors.Is(err, os.ErrNotExist)
}
