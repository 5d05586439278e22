package acquisition

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/RoanBrand/NMRStats/log"
)

// RawDataFiles are the names of the raw-data file next to acqus, in lookup order.
// 1D experiments write 'fid', nD experiments write 'ser'.
var RawDataFiles = []string{"fid", "ser"}

// resolveTiming settles the finish time, duration and error flag of r.
// The experiment is finished at the modification time of the raw-data file in dir.
// That overrides the finish time from the acqus header, which is often off due to clock skew.
// Without a raw-data file the duration stays 0 and the header finish is kept for display only.
func resolveTiming(r *Record, dir string) {
	r.Duration = 0
	for _, name := range RawDataFiles {
		fPath := filepath.Join(dir, name)
		fi, err := os.Stat(fPath)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				log.Println("Error reading raw data file", fPath, ":", err)
				r.Error = true
			}
			continue
		}
		if !fi.Mode().IsRegular() {
			continue
		}

		r.setFinish(fi.ModTime())
		if r.Start == nil {
			// nothing to measure the acquisition time against
			r.Error = true
			return
		}

		r.Duration = r.Finish.Sub(*r.Start)
		if r.Duration > MaxAcquisitionTime {
			r.Error = true
		}
		return
	}
}
