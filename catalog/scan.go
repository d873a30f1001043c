package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Files larger than this are never assets
const maxFileSize = 16 << (10 * 2)

// DefaultWorkers is the number of files Scan processes concurrently when
// asked for fewer than one worker.
const DefaultWorkers = 10

func skippable(err error) bool {
	return errors.Is(err, ErrUnknownKind) || errors.Is(err, ErrInvalid)
}

func (c *Catalog) findFiles(ctx context.Context, base string) (<-chan string, <-chan error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
				return nil
			}

			if info.Size() > maxFileSize {
				c.logger.Printf("Ignoring \"%s\", too large\n", file)
				return nil
			}

			if _, ok := KindOf(file); !ok {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return ctx.Err()
			}

			return nil
		})
	}()
	return out, errc
}

func (c *Catalog) fileWorker(ctx context.Context, in <-chan string, progress func(string)) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			b, err := os.ReadFile(file)
			if err != nil {
				errc <- err
				return
			}

			a, err := c.Add(file, b)
			switch {
			case err == nil:
				c.logger.Printf("Added %s \"%s\" (%s)\n", a.Kind, file, a.SHA1)
			case skippable(err):
				c.logger.Printf("Skipping \"%s\": %s\n", file, err)
			default:
				errc <- err
				return
			}

			if progress != nil {
				progress(file)
			}

			if ctx.Err() != nil {
				return
			}
		}
	}()
	return errc
}

// Wait for every stage to finish, cancelling the rest on the first error
func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	var first error
	for err := range mergeErrors(errs...) {
		if err != nil && first == nil {
			first = err
			cancel()
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks dir adding every asset it finds using workers goroutines.
// progress, if not nil, is called from the workers after each candidate
// file. Files that are not valid assets are logged and skipped. Scan does
// not return until every worker has stopped, so the catalog may be closed
// straight after.
func (c *Catalog) Scan(ctx context.Context, dir string, workers int, progress func(string)) error {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	if workers < 1 {
		workers = DefaultWorkers
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	files, errc := c.findFiles(ctx, dir)
	errcList := []<-chan error{errc}

	for i := 0; i < workers; i++ {
		errcList = append(errcList, c.fileWorker(ctx, files, progress))
	}

	return waitForPipeline(cancel, errcList...)
}
