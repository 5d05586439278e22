package acquisition

import "time"

// NumChannels is the number of NUC/BF channel slots in a parameter file.
const NumChannels = 8

// MaxAcquisitionTime is the longest plausible experiment.
// Anything longer means the raw-data file's mtime was changed after acquisition
// (chmod on the data dir, copy to fat32 and back, ...).
const MaxAcquisitionTime = 15 * 24 * time.Hour

// Record is what one acqus file tells us about an experiment.
type Record struct {
	Start      *time.Time    `json:"start,omitempty"`
	Finish     *time.Time    `json:"finish,omitempty"`
	StartYear  int           `json:"start_year,omitempty"`
	FinishYear int           `json:"finish_year,omitempty"`
	Duration   time.Duration `json:"duration"` // 0 unless both start and finish are known

	FrequencyMHz *int   `json:"frequency_mhz,omitempty"` // proton-equivalent
	Probe        string `json:"probe,omitempty"`
	User         string `json:"user,omitempty"`
	Experiment   string `json:"experiment,omitempty"`

	Error bool `json:"error"` // time can't be trusted

	Channels [NumChannels]Channel `json:"-"`
}

// Channel is one NUC<n>/BF<n> pair. An "off" or missing value leaves the field unset.
type Channel struct {
	Nucleus string
	BF      float64 // MHz
	HasBF   bool
}

func (r *Record) setStart(t time.Time) {
	r.Start = &t
	r.StartYear = t.Local().Year()
}

func (r *Record) setFinish(t time.Time) {
	r.Finish = &t
	r.FinishYear = t.Local().Year()
}
