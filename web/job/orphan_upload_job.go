// Package job contains the scheduled maintenance jobs of the web server.
package job

import (
	"os"
	"path/filepath"
	"time"

	"github.com/astatica/portfolio/logger"
	"github.com/astatica/portfolio/web/service"
)

// minOrphanAge keeps freshly uploaded files out of the sweep so an upload
// whose work is still being created is never deleted.
const minOrphanAge = 24 * time.Hour

// OrphanUploadJob deletes files in the local upload directory that no work
// references. The upload-then-persist sequence is not transactional; this is
// the compensation for the gap.
type OrphanUploadJob struct {
	workService service.WorkService

	dir string
}

func NewOrphanUploadJob(dir string) *OrphanUploadJob {
	return &OrphanUploadJob{dir: dir}
}

// Run implements cron.Job.
func (j *OrphanUploadJob) Run() {
	refs, err := j.workService.ReferencedImages()
	if err != nil {
		logger.Warning("orphan sweep: list referenced images failed:", err)
		return
	}

	entries, err := os.ReadDir(j.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warning("orphan sweep: read upload dir failed:", err)
		}
		return
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || refs[entry.Name()] {
			continue
		}
		info, err := entry.Info()
		if err != nil || time.Since(info.ModTime()) < minOrphanAge {
			continue
		}
		if err := os.Remove(filepath.Join(j.dir, entry.Name())); err != nil {
			logger.Warning("orphan sweep: remove failed:", err)
			continue
		}
		removed++
	}
	if removed > 0 {
		logger.Infof("orphan sweep removed %d unreferenced upload(s)", removed)
	}
}
