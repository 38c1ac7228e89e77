package spriteconv

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/spriteconv/spriteconv/walk"
)

// Stats summarises a batch operation.
type Stats struct {
	// Processed is the number of sheets handled successfully.
	Processed int
	// Failed is the number of sheets, or unreadable directories, that were
	// skipped.
	Failed int
}

type tally struct {
	processed, failed atomic.Uint64
}

func (t *tally) stats() Stats {
	return Stats{
		Processed: int(t.processed.Load()),
		Failed:    int(t.failed.Load()),
	}
}

// failed counts a skipped file. Every error reaching here already names
// the file or directory it is about.
func (c *Converter) failed(t *tally, err error) {
	t.failed.Add(1)
	c.ErrorLog.Printf("Skipping: %v\n", err)
}

func (c *Converter) findSprites(ctx context.Context, base string, match walk.Predicate, t *tally) (<-chan string, <-chan error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for file, err := range walk.Files(base, match) {
			// A directory somewhere below base couldn't be read
			if err != nil {
				c.failed(t, err)
				continue
			}

			select {
			case out <- file:
			case <-ctx.Done():
				errc <- fmt.Errorf("walk cancelled: %w", ctx.Err())
				return
			}
		}
	}()
	return out, errc
}

func (c *Converter) spriteWorker(ctx context.Context, in <-chan string, fn func(string) error, t *tally) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			if err := ctx.Err(); err != nil {
				errc <- fmt.Errorf("conversion cancelled: %w", err)
				return
			}
			if err := fn(file); err != nil {
				c.failed(t, err)
				continue
			}
			t.processed.Add(1)
		}
	}()
	return errc
}

// waitForPipeline returns the first error from any stage once every stage
// has finished.
func waitForPipeline(errs ...<-chan error) error {
	var first error
	for err := range mergeErrors(errs...) {
		if err != nil && first == nil {
			first = err
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

// run feeds every file below base accepted by match to fn using a pool of
// workers. A failure from fn is logged and counted but doesn't stop the
// run; once everything has been tried an error is returned if anything
// failed.
func (c *Converter) run(ctx context.Context, base string, match walk.Predicate, workers int, fn func(string) error) (Stats, error) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var t tally
	var errcList []<-chan error

	files, errc := c.findSprites(ctx, base, match, &t)
	errcList = append(errcList, errc)

	for i := 0; i < workers; i++ {
		errcList = append(errcList, c.spriteWorker(ctx, files, fn, &t))
	}

	err := waitForPipeline(errcList...)

	stats := t.stats()
	c.logger.Printf("Processed %d files, %d errors\n", stats.Processed, stats.Failed)

	if err != nil {
		return stats, err
	}
	if stats.Failed > 0 {
		return stats, fmt.Errorf("error processing %d files", stats.Failed)
	}
	return stats, nil
}
