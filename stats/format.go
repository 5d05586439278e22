package stats

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/RoanBrand/NMRStats/acquisition"
)

const none = "-"

// FormatLine is the verbose report line for one experiment:
//
//	2015    863 sec 800MHz PATXI maxim           CT3nk                               /u/data/maxim/nmr/CT3nk/1/acqus
func FormatLine(path string, r *acquisition.Record) string {
	mhz := none
	if r.FrequencyMHz != nil {
		mhz = strconv.Itoa(*r.FrequencyMHz)
	}

	e := ""
	if r.Error {
		e = " ERROR, time can't be calculated"
	}

	return fmt.Sprintf("%s %6.0f sec %sMHz %-5s %-15s %-35s %s%s",
		orNone(r.StartYear), r.Duration.Seconds(), mhz,
		orNoneStr(r.Probe), orNoneStr(r.User), orNoneStr(r.Experiment), path, e)
}

// WriteSummary prints the totals of a scan of root.
func WriteSummary(w io.Writer, root string, s *Summary) error {
	_, err := fmt.Fprintf(w, "Total %d acqus files found in %s, acquired in %d year\n", s.YearFiles, root, s.Year)
	if err != nil {
		return err
	}
	if _, err = fmt.Fprintf(w, "Total %d ERROR FILES -- the modification time was changed\n", s.ErrorFiles); err != nil {
		return err
	}
	if _, err = fmt.Fprintf(w, "Read %d acqus files, %d could not be read\n", s.Files, s.Unreadable); err != nil {
		return err
	}
	if _, err = fmt.Fprintf(w, "Acquisition time: %.1f h\n", s.AcquisitionTime.Hours()); err != nil {
		return err
	}

	freqs := make([]int, 0, len(s.ByFrequency))
	for f := range s.ByFrequency {
		freqs = append(freqs, f)
	}
	sort.Ints(freqs)
	for _, f := range freqs {
		name := none
		if f != 0 {
			name = strconv.Itoa(f)
		}
		if _, err = fmt.Fprintf(w, "  %6sMHz %d\n", name, s.ByFrequency[f]); err != nil {
			return err
		}
	}

	probes := make([]string, 0, len(s.ByProbe))
	for p := range s.ByProbe {
		probes = append(probes, p)
	}
	sort.Strings(probes)
	for _, p := range probes {
		if _, err = fmt.Fprintf(w, "  %-9s %d\n", orNoneStr(p), s.ByProbe[p]); err != nil {
			return err
		}
	}
	return nil
}

func orNone(i int) string {
	if i == 0 {
		return none
	}
	return strconv.Itoa(i)
}

func orNoneStr(s string) string {
	if s == "" {
		return none
	}
	return s
}
