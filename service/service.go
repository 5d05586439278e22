package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/RoanBrand/NMRStats/config"
	"github.com/RoanBrand/NMRStats/discovery"
	"github.com/RoanBrand/NMRStats/http"
	"github.com/RoanBrand/NMRStats/log"
	"github.com/RoanBrand/NMRStats/stats"
	"github.com/kardianos/service"
)

type app struct {
	conf *config.Config
}

func NewApp() *app {
	return &app{}
}

func (a *app) Start(s service.Service) error {
	go a.run()
	return nil
}

func (a *app) run() {
	execPath, err := os.Executable()
	if err != nil {
		panic(err)
	}

	conf, err := config.LoadConfig(filepath.Join(filepath.Dir(execPath), "config.json"))
	if err != nil {
		panic(err)
	}
	if conf.LogFile == "" {
		conf.LogFile = filepath.Join(filepath.Dir(execPath), "nmrstats.log")
	}

	a.conf = conf

	log.Setup(conf.LogFile, conf.DebugMode)
	if err = http.StartServer(conf.HTTPServerPort, http.NewMux(a.getStats)); err != nil {
		panic(err)
	}
}

func (a *app) Stop(s service.Service) error {
	return nil
}

// getStats scans the data tree, or the part of it under subDir, on every call.
func (a *app) getStats(ctx context.Context, year int, subDir string, verbose bool) (*stats.Summary, error) {
	root, err := a.scanRoot(subDir)
	if err != nil {
		return nil, err
	}

	var lines bytes.Buffer
	agg := stats.NewAggregator(a.conf.Workers, nil)
	if verbose {
		agg.Verbose = &lines
	}

	sum, err := agg.Scan(ctx, discovery.NewWalker(root, a.conf.ParameterFileName), year)
	if err != nil {
		return nil, err
	}

	if out := strings.TrimRight(lines.String(), "\n"); out != "" {
		sum.Lines = strings.Split(out, "\n")
	}
	if a.conf.DebugMode {
		log.Printf("scanned %s for %d: %d of %d files, %d errors\n", root, year, sum.YearFiles, sum.Files, sum.ErrorFiles)
	}
	return sum, nil
}

// scanRoot keeps requests inside the configured data tree.
func (a *app) scanRoot(subDir string) (string, error) {
	root := filepath.Clean(a.conf.DataSource)
	if subDir == "" {
		return root, nil
	}

	p := filepath.Join(root, subDir)
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: path %q is outside %s", http.ErrBadRequest, subDir, root)
	}
	return p, nil
}
