package pipeline

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/tulku/picture-sorter/internal/classify"
	"github.com/tulku/picture-sorter/internal/logging"
	"github.com/tulku/picture-sorter/internal/probe"
)

// ResolverFactory opens one metadata resolver. The pool calls it once per
// worker because a resolver (an exiftool handle) is not safe for
// concurrent use.
type ResolverFactory func() (probe.Resolver, error)

// ResolveMetadata queries metadata for every unit's representative photo
// across a worker pool and returns the fields keyed by unit. Units
// without a photo file are skipped here; units whose query fails are
// dropped from the result and fall back to filesystem time downstream.
// Result content is independent of scheduling order since each unit
// writes only its own key.
func ResolveMetadata(
	ctx context.Context,
	units map[string][]string,
	workers int,
	newResolver ResolverFactory,
	log *logging.Logger,
	verbose bool,
) map[string]probe.Fields {
	type job struct {
		key string
		rep string
	}
	jobs := make([]job, 0, len(units))
	for key, files := range units {
		if rep, ok := classify.Representative(files); ok {
			jobs = append(jobs, job{key, rep})
		}
	}
	if len(jobs) == 0 {
		return map[string]probe.Fields{}
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	// Open the resolvers up front so a failing factory can't leave the
	// job channel without receivers.
	resolvers := make([]probe.Resolver, 0, workers)
	for i := 0; i < workers; i++ {
		r, err := newResolver()
		if err != nil {
			log.Warn("Metadata resolver unavailable: %v", err)
			break
		}
		resolvers = append(resolvers, r)
	}
	if len(resolvers) == 0 {
		return map[string]probe.Fields{}
	}

	jobCh := make(chan job)
	var (
		mu     sync.Mutex
		fields = make(map[string]probe.Fields, len(jobs))
		wg     sync.WaitGroup
	)

	for _, r := range resolvers {
		wg.Add(1)
		go func(r probe.Resolver) {
			defer wg.Done()
			defer r.Close()

			for j := range jobCh {
				f, err := r.Extract(j.rep)
				if err != nil {
					// Not fatal: the unit is planned by mtime instead.
					log.Debug(verbose, "No metadata for %s: %v", filepath.Base(j.rep), err)
					continue
				}
				mu.Lock()
				fields[j.key] = f
				mu.Unlock()
			}
		}(r)
	}

	for _, j := range jobs {
		if ctx.Err() != nil {
			break
		}
		jobCh <- j
	}
	close(jobCh)
	wg.Wait()

	return fields
}
