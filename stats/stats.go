package stats

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/RoanBrand/NMRStats/acquisition"
	"github.com/RoanBrand/NMRStats/discovery"
	"github.com/RoanBrand/NMRStats/log"
	"github.com/RoanBrand/NMRStats/metrics"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidYear = errors.New("year must be positive")

// Result is the outcome of parsing one acqus file. Exactly one of Record and Err is set.
type Result struct {
	Path   string
	Record *acquisition.Record
	Err    error
}

// Summary holds the counts for one scan.
type Summary struct {
	Year int `json:"year"`

	Files      int `json:"files"`       // acqus files read, Unreadable not included
	YearFiles  int `json:"year_files"`  // started in Year
	ErrorFiles int `json:"error_files"` // started in Year with untrustworthy time
	Unreadable int `json:"unreadable"`

	AcquisitionTime time.Duration  `json:"acquisition_time"` // sum over YearFiles without error
	ByFrequency     map[int]int    `json:"by_frequency"`     // MHz -> YearFiles. 0 is unknown
	ByProbe         map[string]int `json:"by_probe"`         // probe -> YearFiles

	Lines []string `json:"lines,omitempty"`
}

func newSummary(year int) *Summary {
	return &Summary{
		Year:        year,
		ByFrequency: make(map[int]int),
		ByProbe:     make(map[string]int),
	}
}

// add folds res into s and reports if it is one of Year's experiments.
// Order of adds does not matter.
func (s *Summary) add(res Result) bool {
	if res.Err != nil {
		s.Unreadable++
		return false
	}
	s.Files++

	r := res.Record
	if r.StartYear != s.Year {
		return false
	}

	s.YearFiles++
	if r.Error {
		s.ErrorFiles++
	} else {
		s.AcquisitionTime += r.Duration
	}

	mhz := 0
	if r.FrequencyMHz != nil {
		mhz = *r.FrequencyMHz
	}
	s.ByFrequency[mhz]++
	s.ByProbe[r.Probe]++
	return true
}

// Aggregator parses acqus files and counts the experiments of one year.
type Aggregator struct {
	Parser  *acquisition.Parser
	Workers int // 1 parses files one after another

	// Verbose gets a line per experiment of the year, if set.
	Verbose io.Writer
}

func NewAggregator(workers int, verbose io.Writer) *Aggregator {
	return &Aggregator{
		Parser:  acquisition.NewParser(),
		Workers: workers,
		Verbose: verbose,
	}
}

// Scan lists files with l and runs over them.
// Only a failing Lister or a cancelled ctx stops the scan.
func (a *Aggregator) Scan(ctx context.Context, l discovery.Lister, year int) (*Summary, error) {
	if year <= 0 {
		return nil, ErrInvalidYear
	}

	files, err := l.List()
	if err != nil {
		return nil, err
	}
	return a.Run(ctx, files, year)
}

// Run parses every file in files. Files that can't be read are logged, counted as Unreadable and skipped.
func (a *Aggregator) Run(ctx context.Context, files []string, year int) (*Summary, error) {
	if year <= 0 {
		return nil, ErrInvalidYear
	}

	started := time.Now()
	metrics.ScansTotal.Inc()
	defer func() { metrics.ScanDurationSeconds.Observe(time.Since(started).Seconds()) }()

	sum := newSummary(year)
	var mu sync.Mutex
	collect := func(res Result) {
		mu.Lock()
		defer mu.Unlock()
		a.fold(sum, res)
	}

	workers := a.Workers
	if workers <= 1 {
		for _, f := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			collect(a.parse(f))
		}
		return sum, nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, f := range files {
		if gCtx.Err() != nil {
			break
		}
		f := f
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			collect(a.parse(f))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return sum, nil
}

func (a *Aggregator) parse(file string) Result {
	p := a.Parser
	if p == nil {
		p = acquisition.NewParser()
	}

	r, err := p.ParseFile(file)
	return Result{Path: file, Record: r, Err: err}
}

func (a *Aggregator) fold(sum *Summary, res Result) {
	if res.Err != nil {
		metrics.UnreadableFilesTotal.Inc()
		log.Println("Error reading", res.Path, ":", res.Err)
	} else {
		metrics.FilesTotal.Inc()
	}

	if !sum.add(res) {
		return
	}
	if res.Record.Error {
		metrics.FlaggedTotal.Inc()
	}

	if a.Verbose != nil {
		fmt.Fprintln(a.Verbose, FormatLine(res.Path, res.Record))
	}
}
