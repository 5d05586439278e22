package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
)

var ErrNoDataSource = errors.New("no data_source provided in config")

type Config struct {
	DataSource        string `json:"data_source" split_words:"true"`         // root of the NMR data tree to scan
	Year              int    `json:"year"`                                   // year to report on. 0 is the current year
	Verbose           bool   `json:"verbose"`                                // print a line per experiment found
	Workers           int    `json:"workers"`                                // acqus files parsed at once
	ParameterFileName string `json:"parameter_file_name" split_words:"true"` // acqus

	HTTPServerPort string `json:"http_server_port" split_words:"true"` // service only
	DebugMode      bool   `json:"debug_mode" split_words:"true"`       // print logs out to console as well as file when true
	LogFile        string `json:"log_file" split_words:"true"`         // empty: console only
}

// Default is the config used when there is no config file.
func Default() *Config {
	return &Config{
		DataSource:        "/u/data",
		Workers:           1,
		ParameterFileName: "acqus",
		HTTPServerPort:    "80",
	}
}

// LoadConfig reads the JSON config at filePath over the defaults,
// then applies NMRSTATS_* environment variables over that.
// An empty filePath skips the file.
func LoadConfig(filePath string) (*Config, error) {
	conf := Default()

	if filePath != "" {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		if err = json.NewDecoder(f).Decode(conf); err != nil {
			return nil, fmt.Errorf("error decoding config file %s: %w", filePath, err)
		}
	}

	if err := envconfig.Process("NMRSTATS", conf); err != nil {
		return nil, fmt.Errorf("error reading config from environment: %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Validate fixes what it can and reports what it can't.
func (c *Config) Validate() error {
	if c.DataSource == "" {
		return ErrNoDataSource
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.ParameterFileName == "" {
		c.ParameterFileName = "acqus"
	}
	if c.Year < 0 {
		return fmt.Errorf("invalid year %d", c.Year)
	}
	return nil
}
