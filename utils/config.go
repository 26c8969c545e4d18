package utils

import (
	"flag"
	"os"

	"gopkg.in/yaml.v2"
)

// Config mirrors the command line options that may be set from a YAML file.
// Fields absent from the file are left empty and do not touch the options.
type Config struct {
	Function     string `yaml:"function"`
	Dir          string `yaml:"dir"`
	Task         string `yaml:"task"`
	OutputFormat string `yaml:"format"`
	Output       string `yaml:"out"`
}

// LoadConfig reads and unmarshals a YAML configuration file.
func LoadConfig(path string) (cfg Config, err error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return
	}

	err = yaml.UnmarshalStrict(contents, &cfg)
	return
}

// apply transfers configuration values onto the options. Flags explicitly
// given on the command line win over the configuration file.
func (cfg Config) apply(opts *options) {
	set := make(map[string]struct{})
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = struct{}{}
	})

	maybe := func(name string, target *string, value string) {
		if _, found := set[name]; !found && value != "" {
			*target = value
		}
	}

	maybe("fun", &opts.function, cfg.Function)
	maybe("dir", &opts.dir, cfg.Dir)
	maybe("task", &opts.task, cfg.Task)
	maybe("format", &opts.outputFormat, cfg.OutputFormat)
	maybe("out", &opts.output, cfg.Output)
}
