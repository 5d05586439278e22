package acquisition

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/RoanBrand/NMRStats/log"
)

var (
	reTwoDollars = regexp.MustCompile(`^\$\$`)
	// $$ 2015-03-12 16:23:18.072 +0300  nmrsu@av800.localdomain
	reDateFinish = regexp.MustCompile(`^\$\$ ([12]\d{3}-\d\d-\d\d \d\d:\d\d:\d\d\.\d+ [+-]\d+)`)
	reDateStart  = regexp.MustCompile(`^##\$DATE= ([0-9]+)`)
	reProbe      = regexp.MustCompile(`^##\$PROBHD= <(.*)$`)
	reNuc        = regexp.MustCompile(`^##\$NUC([1-8])= <(.*)>$`)
	reBF         = regexp.MustCompile(`^##\$BF([1-8])= (.*)$`)
)

// fractional seconds are accepted after the seconds field even though the layout has none
const finishLayout = "2006-01-02 15:04:05 -0700"

// Parser reads acqus files.
type Parser struct {
	Ratios map[string]float64 // nucleus -> gyromagnetic ratio to 1H
}

func NewParser() *Parser {
	return &Parser{Ratios: GyroRatios}
}

// ParseFile reads the acqus file at acqusPath and everything around it needed to fill a Record:
// the raw-data file in the same dir and the user/experiment dirs above it.
// Only failing to read the file itself is an error.
func (p *Parser) ParseFile(acqusPath string) (*Record, error) {
	f, err := os.Open(acqusPath)
	if err != nil {
		return nil, fmt.Errorf("error opening acqus file: %w", err)
	}
	defer f.Close()

	r, err := p.Parse(f, acqusPath)
	if err != nil {
		return nil, fmt.Errorf("error reading acqus file %s: %w", acqusPath, err)
	}

	expnoDir := filepath.Dir(filepath.Clean(acqusPath))
	resolveTiming(r, expnoDir)
	r.User, r.Experiment = ResolvePath(expnoDir)
	return r, nil
}

// Parse scans acqus content line by line. Lines that don't parse are skipped.
// name is only used in log messages.
// The returned Record has no raw-data or path derived fields yet.
func (p *Parser) Parse(rd io.Reader, name string) (*Record, error) {
	r := new(Record)
	twoDollarsSeen := false

	// no line length limit: an odd long line must not lose the rest of the file
	br := bufio.NewReader(rd)
	for {
		s, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if s == "" && err == io.EOF {
			break
		}
		line := strings.TrimRight(s, "\r\n")

		if reTwoDollars.MatchString(line) && !twoDollarsSeen {
			// date and time is in the first line with leading two dollars
			twoDollarsSeen = true
			if m := reDateFinish.FindStringSubmatch(line); m != nil {
				t, err := time.Parse(finishLayout, m[1])
				if err != nil {
					log.Printf("Could not interpret date '%s' in file '%s': %v\n", m[1], name, err)
				} else {
					r.setFinish(t)
				}
			}
			continue
		}

		if m := reDateStart.FindStringSubmatch(line); m != nil {
			// experiment started at that time
			sec, err := strconv.ParseInt(m[1], 10, 64)
			if err == nil {
				r.setStart(time.Unix(sec, 0))
			}
			continue
		}

		if m := reProbe.FindStringSubmatch(line); m != nil {
			r.Probe = probeName(m[1])
			continue
		}

		if m := reNuc.FindStringSubmatch(line); m != nil {
			ch := channelIndex(m[1])
			nuc := m[2]
			if nuc == "off" {
				nuc = ""
			}
			r.Channels[ch].Nucleus = nuc
			continue
		}

		if m := reBF.FindStringSubmatch(line); m != nil {
			ch := channelIndex(m[1])
			v := strings.TrimSpace(m[2])
			if v == "off" {
				r.Channels[ch].BF, r.Channels[ch].HasBF = 0, false
				continue
			}
			bf, err := strconv.ParseFloat(v, 64)
			if err != nil {
				continue
			}
			r.Channels[ch].BF, r.Channels[ch].HasBF = bf, true
		}
	}

	r.FrequencyMHz = ProtonFrequency(r.Channels, p.Ratios)
	return r, nil
}

// probeName shortens a PROBHD descriptor. Examples:
//
//	08>
//	40:5mmTXIz-gradient(121)>
//	5 mm PATXI 1H-13C/15N/D Z-GRD Z550501/0006
//	5 mm QNP 1H/13C/15N/31P XYZ-grad
//	  5mm TXO Z-grad 13C-det Z8644/0001
//
// The third word is the probe model (PATXI, CPTCI, ...), if there is one.
func probeName(desc string) string {
	desc = strings.TrimSuffix(desc, ">")
	if fields := strings.Fields(desc); len(fields) >= 3 {
		return fields[2]
	}
	return desc
}

// regex only admits 1-8
func channelIndex(s string) int {
	return int(s[0]-'1')
}
