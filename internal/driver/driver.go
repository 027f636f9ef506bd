// Package driver orchestrates the three dictionary transformations: it owns
// file I/O and the document cache, wires diagnostics into a bag per run, and
// leaves the pure logic to internal/build, internal/merge and internal/prune.
//
// Only I/O and structural reference errors are fatal here. Everything else
// accumulates in the returned bag so one run surfaces the full set of
// findings.
package driver

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"

	"fixdict/internal/build"
	"fixdict/internal/diag"
	"fixdict/internal/dict"
	"fixdict/internal/merge"
	"fixdict/internal/prune"
	"fixdict/internal/tabular"
)

// GenerateResult carries the generate stage's diagnostics and counts.
type GenerateResult struct {
	Bag        *diag.Bag
	Messages   int
	Fields     int
	Components int
}

// MergeResult carries the merge stage's diagnostics and growth stats.
type MergeResult struct {
	Bag   *diag.Bag
	Stats merge.Stats
}

// PruneResult carries the prune stage's diagnostics and retained counts.
type PruneResult struct {
	Bag      *diag.Bag
	Retained prune.Result
}

// Generate reads the tabular source, builds a fresh document and writes it.
func Generate(csvPath, outPath string, proto dict.Protocol, maxDiagnostics int) (*GenerateResult, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("open source %s: %w", csvPath, err)
	}
	rows, err := tabular.ReadRows(f)
	closeErr := f.Close()
	if err != nil {
		return nil, err
	}
	if closeErr != nil {
		return nil, fmt.Errorf("close source %s: %w", csvPath, closeErr)
	}

	bag := diag.NewBag(maxDiagnostics)
	// a conflicting element redeclared on many rows repeats the same warning
	doc := build.Build(rows, proto, diag.NewDedupReporter(diag.BagReporter{Bag: bag}))

	if err := WriteDocument(outPath, doc); err != nil {
		return nil, err
	}
	return &GenerateResult{
		Bag:        bag,
		Messages:   len(doc.Messages),
		Fields:     len(doc.Fields),
		Components: len(doc.Components),
	}, nil
}

// Merge loads base and overlay dictionaries, merges overlay into base and
// writes the result.
func Merge(basePath, overlayPath, outPath string, opts merge.Options, maxDiagnostics int, cache *DictCache) (*MergeResult, error) {
	base, err := LoadDocument(basePath, cache)
	if err != nil {
		return nil, err
	}
	overlay, err := LoadDocument(overlayPath, cache)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(maxDiagnostics)
	stats := merge.Merge(base, overlay, opts, diag.BagReporter{Bag: bag})

	if err := WriteDocument(outPath, base); err != nil {
		return nil, err
	}
	return &MergeResult{Bag: bag, Stats: stats}, nil
}

// Prune loads a dictionary, prunes it down to the whitelist closure and
// writes the result.
func Prune(dictPath, outPath string, keep []string, maxDiagnostics int, cache *DictCache) (*PruneResult, error) {
	doc, err := LoadDocument(dictPath, cache)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(maxDiagnostics)
	retained, err := prune.Prune(doc, keep, diag.BagReporter{Bag: bag})
	if err != nil {
		return nil, err
	}

	if err := WriteDocument(outPath, doc); err != nil {
		return nil, err
	}
	return &PruneResult{Bag: bag, Retained: retained}, nil
}

// LoadDocument reads and parses a dictionary file, going through the cache
// when one is provided. Cache entries are keyed by the content digest, so a
// rewritten file can never serve a stale tree.
func LoadDocument(path string, cache *DictCache) (*dict.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dictionary %s: %w", path, err)
	}
	key := Digest(sha256.Sum256(data))

	if doc, ok, err := cache.Get(key); err == nil && ok {
		return doc, nil
	}

	doc, err := dict.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse dictionary %s: %w", path, err)
	}
	if err := cache.Put(key, doc); err != nil {
		// cache failures never fail the run
		fmt.Fprintf(os.Stderr, "fixdict: cache write failed: %v\n", err)
	}
	return doc, nil
}

// WriteDocument writes doc to path as indented XML.
func WriteDocument(path string, doc *dict.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := dict.Encode(f, doc); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
