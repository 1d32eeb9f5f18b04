package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"neoshelf/log"
	"neoshelf/mel"
	"neoshelf/shelf"

	"golang.org/x/sync/errgroup"
)

// importParallelism bounds concurrent file reads during a batch import.
const importParallelism = 4

// ImportError records a single file that failed to import. One bad file
// never aborts the rest of the batch.
type ImportError struct {
	Path string
	Err  error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// ImportFiles imports legacy shelf files into the catalogue. Files are read
// and parsed in parallel, then applied to the catalogue in the order given
// so imported shelf names are deterministic. Name collisions with existing
// shelves are resolved with a numeric suffix. It returns the names of the
// shelves created and the per-file failures.
func ImportFiles(ctx context.Context, cat *shelf.Catalogue, paths []string) ([]string, []*ImportError) {
	type parsed struct {
		doc *mel.Document
		err error
	}
	results := make([]parsed, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(importParallelism)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].err = err
				return nil
			}
			data, err := os.ReadFile(path)
			if err != nil {
				results[i].err = err
				return nil
			}
			results[i].doc, results[i].err = mel.Parse(string(data))
			return nil
		})
	}
	// Workers report per-file failures through results, never through the
	// group error.
	_ = g.Wait()

	var imported []string
	var failures []*ImportError
	for i, path := range paths {
		if results[i].err != nil {
			log.WarningLog.Printf("import failed for %s: %v", path, results[i].err)
			failures = append(failures, &ImportError{Path: path, Err: results[i].err})
			continue
		}
		doc := results[i].doc
		name := doc.Name
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		name = cat.UniqueName(name)
		if _, err := cat.Create(name); err != nil {
			failures = append(failures, &ImportError{Path: path, Err: err})
			continue
		}
		if err := cat.ReplaceItems(name, doc.Items); err != nil {
			failures = append(failures, &ImportError{Path: path, Err: err})
			continue
		}
		log.InfoLog.Printf("imported shelf %q with %d items from %s", name, len(doc.Items), path)
		imported = append(imported, name)
	}
	return imported, failures
}

// ExportShelf writes one shelf back out in the legacy format.
func ExportShelf(cat *shelf.Catalogue, name, path string) error {
	sh := cat.Get(name)
	if sh == nil {
		return fmt.Errorf("shelf %q does not exist", name)
	}
	if err := os.WriteFile(path, []byte(mel.Format(sh)), 0644); err != nil {
		return fmt.Errorf("failed to write shelf file: %w", err)
	}
	return nil
}
