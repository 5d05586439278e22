package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/RoanBrand/NMRStats/config"
	"github.com/RoanBrand/NMRStats/discovery"
	"github.com/RoanBrand/NMRStats/log"
	"github.com/RoanBrand/NMRStats/stats"
)

func main() {
	conf, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	if err = run(conf); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// parseFlags loads the config file named by -config and lets set flags override it.
// -y, -p and -v are short for -year, -path and -verbose.
func parseFlags(fs *flag.FlagSet, args []string) (*config.Config, error) {
	confPath := fs.String("config", "", "JSON config file. Flags override it.")
	year := fs.Int("year", 0, "Show stats for that year (default current year)")
	fs.IntVar(year, "y", 0, "Short for -year")
	path := fs.String("path", "", "Get stats for the specified path (default /u/data)")
	fs.StringVar(path, "p", "", "Short for -path")
	verbose := fs.Bool("verbose", false, "Print details about each found experiment")
	fs.BoolVar(verbose, "v", false, "Short for -verbose")
	workers := fs.Int("workers", 0, "Number of acqus files parsed at once")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	conf, err := config.LoadConfig(*confPath)
	if err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "year", "y":
			conf.Year = *year
		case "path", "p":
			conf.DataSource = *path
		case "verbose", "v":
			conf.Verbose = *verbose
		case "workers":
			conf.Workers = *workers
		}
	})
	if err = conf.Validate(); err != nil {
		return nil, err
	}
	if conf.Year == 0 {
		conf.Year = time.Now().Year()
	}
	return conf, nil
}

func run(conf *config.Config) error {
	closer := log.Setup(conf.LogFile, conf.DebugMode)
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	agg := stats.NewAggregator(conf.Workers, nil)
	if conf.Verbose {
		agg.Verbose = os.Stdout
	}

	sum, err := agg.Scan(ctx, discovery.NewWalker(conf.DataSource, conf.ParameterFileName), conf.Year)
	if err != nil {
		return err
	}
	return stats.WriteSummary(os.Stdout, conf.DataSource, sum)
}
