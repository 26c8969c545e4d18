package utils

import (
	"flag"
	"log"
)

type options struct {
	function     string
	dir          string
	task         string
	outputFormat string
	output       string
	config       string
	includeTests bool
	noColorize   bool
	verbose      bool
}

const (
	_CONSTPROP = iota
	_CFG_TO_DOT
)

var task = []struct{ flag, explanation string }{{
	"constprop",
	"Run the constant propagation analysis on the targeted function and print the lattice element at every program point",
}, {
	"cfg-to-dot",
	"Create a graph for the control-flow graph of the targeted function",
}}

var opts = &options{}

type optInterface struct{}

type taskInterface struct{}

func Opts() optInterface {
	return optInterface{}
}

func (optInterface) Function() string {
	return opts.function
}
func (optInterface) Dir() string {
	return opts.dir
}
func (optInterface) OutputFormat() string {
	return opts.outputFormat
}
func (optInterface) Output() string {
	return opts.output
}
func (optInterface) IncludeTests() bool {
	return opts.includeTests
}
func (optInterface) NoColorize() bool {
	return opts.noColorize
}
func (optInterface) Verbose() bool {
	return opts.verbose
}
func (optInterface) Task() taskInterface {
	return taskInterface{}
}
func (taskInterface) IsConstProp() bool {
	return opts.task == task[_CONSTPROP].flag
}
func (taskInterface) IsCfgToDot() bool {
	return opts.task == task[_CFG_TO_DOT].flag
}

func init() {
	taskFlag := "\n"
	for _, task := range task {
		taskFlag += task.flag + " -- " + task.explanation + "\n"
	}
	taskFlag += "\n"

	flag.StringVar(&(opts.function), "fun", "main", "target a specific function w. r. t. the given task. "+
		"Function names need not be fully qualified w. r. t. package name.")
	flag.StringVar(&(opts.dir), "dir", ".", "directory of the Go package to load")
	flag.StringVar(&(opts.outputFormat), "format", "svg", "output file format [svg | png | jpg | ...]")
	flag.StringVar(&(opts.output), "out", "", "basename for generated graph files")
	flag.StringVar(&(opts.config), "config", "", "path to a YAML configuration file; flags given on the command line take precedence")
	flag.StringVar(&(opts.task), "task", task[_CONSTPROP].flag, "Set the task to do during execution. Options:"+taskFlag)
	flag.BoolVar(&(opts.includeTests), "include-tests", false, "also expose test functions when loading packages")
	flag.BoolVar(&(opts.noColorize), "no-colorize", false, "Disable pretty printer colorization")
	flag.BoolVar(&(opts.verbose), "verbose", false, "enable verbose output")

	// Set up logging
	log.SetFlags(log.Ltime | log.Lshortfile)
}

func ParseArgs() {
	// Calling flag.Parse in init messes up unit tests.
	flag.Parse()

	if opts.config != "" {
		cfg, err := LoadConfig(opts.config)
		if err != nil {
			log.Fatalln("Failed to load configuration file:", err)
		}
		cfg.apply(opts)
	}

	validTask := false
	for _, task := range task {
		if task.flag == opts.task {
			validTask = true
			break
		}
	}

	if !validTask {
		log.Fatalf("Value \"%s\" is not valid for -task", opts.task)
	}

	if Opts().Task().IsCfgToDot() {
		opts.noColorize = true
	}
}
