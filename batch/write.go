package batch

import (
	"context"
	"fmt"
	"sync"

	"github.com/gammazero/workerpool"
	"github.com/hashicorp/go-multierror"
	"github.com/ohsu-comp-bio/simbatch/util/fsutil"
)

// WriteScripts writes the script of each job into folder, in parallel.
//
// Paths are returned in job order. A job which fails leaves an empty path,
// and all failures are returned together. Jobs not yet started when ctx is
// cancelled are skipped with ctx.Err().
func WriteScripts(ctx context.Context, folder string, jobs []Job, parallelLimit int) ([]string, error) {
	if parallelLimit < 1 {
		parallelLimit = 1
	}
	fsutil.CreateFolder(folder)

	var (
		mtx   sync.Mutex
		errs  *multierror.Error
		paths = make([]string, len(jobs))
	)

	wp := workerpool.New(parallelLimit)
	for i, job := range jobs {
		i, job := i, job
		wp.Submit(func() {
			var (
				p   string
				err = ctx.Err()
			)
			if err == nil {
				p, err = WriteScript(folder, job)
			}

			mtx.Lock()
			defer mtx.Unlock()
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("job %s: %w", job.JobName(), err))
				return
			}
			paths[i] = p
		})
	}
	wp.StopWait()

	log.Debug("Wrote job scripts", "folder", folder, "count", len(jobs))
	return paths, errs.ErrorOrNil()
}
