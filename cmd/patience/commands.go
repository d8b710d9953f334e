package main

import (
	"strings"

	"github.com/amp-labs/patience/build"
	"github.com/amp-labs/patience/compare"
	"github.com/amp-labs/patience/lines"
	"gopkg.in/alecthomas/kingpin.v2"
)

// Application holds the flags, arguments and subcommands of the patience
// command line.
type Application struct {
	*kingpin.Application
	// Config is an optional .env, .json or .yaml file with settings.
	Config *string
	// SortCmd sorts the lines of a file.
	SortCmd SortCmd
	// PilesCmd reports the piles the lines of files are dealt into.
	PilesCmd PilesCmd
	// BenchCmd compares patience sort with other algorithms.
	BenchCmd BenchCmd
}

// InputFlags control how line files are decoded.
type InputFlags struct {
	// Charset is the input charset label, detected when empty.
	Charset *string
	// Compression overrides the compression implied by the file extension.
	Compression *string
}

// OrderFlags select the comparator and the tie policy.
type OrderFlags struct {
	// Comparator names the string comparator.
	Comparator *string
	// Locale is the collation locale for the collate comparator.
	Locale *string
	// Reverse sorts in descending order.
	Reverse *bool
	// Ties is the tie policy, extend or new-pile.
	Ties *string
}

// SortCmd sorts the lines of a file.
type SortCmd struct {
	*kingpin.CmdClause
	InputFlags
	OrderFlags
	// Input is the file to sort, stdin when empty or "-".
	Input *string
	// Output is the destination file, stdout when empty or "-".
	Output *string
	// Linked sorts a linked list instead of a slice.
	Linked *bool
	// Verify checks the output against a fingerprint of the input.
	Verify *bool
	// Stats prints a summary of the sort to stderr.
	Stats *bool
	// MetricsFile receives the sort metrics in the Prometheus text format.
	MetricsFile *string
}

// PilesCmd reports the piles the lines of files are dealt into.
type PilesCmd struct {
	*kingpin.CmdClause
	InputFlags
	OrderFlags
	// Inputs are the files to inspect.
	Inputs *[]string
	// Workers bounds the number of files processed concurrently.
	Workers *int
}

// BenchCmd compares patience sort with other algorithms.
type BenchCmd struct {
	*kingpin.CmdClause
	// MaxExp is the exponent of the largest input size.
	MaxExp *int
	// Repeats is the number of timed runs per cell.
	Repeats *int
	// Seed seeds the input shuffle.
	Seed *uint64
}

// RegisterCommands registers all patience flags, arguments and subcommands.
// Settings that can also come from the environment have no kingpin default so
// that an unset flag falls back to the PATIENCE_* variables.
func RegisterCommands(app *kingpin.Application) Application {
	pat := Application{Application: app}

	app.Version(build.Current().String())

	pat.Config = app.Flag("config", "Load settings from a .env, .json or .yaml file.").Short('c').String()

	pat.SortCmd.CmdClause = app.Command("sort", "Sort the lines of a file.")
	pat.SortCmd.InputFlags = registerInputFlags(pat.SortCmd.CmdClause)
	pat.SortCmd.OrderFlags = registerOrderFlags(pat.SortCmd.CmdClause)
	pat.SortCmd.Input = pat.SortCmd.Arg("file", "File to sort, stdin when omitted or \"-\".").String()
	pat.SortCmd.Output = pat.SortCmd.Flag("output", "Write the sorted lines to this file, stdout when omitted or \"-\".").Short('o').String()
	pat.SortCmd.Linked = pat.SortCmd.Flag("linked", "Sort a linked list instead of a slice.").Bool()
	pat.SortCmd.Verify = pat.SortCmd.Flag("verify", "Check that the output is an ordered permutation of the input.").Bool()
	pat.SortCmd.Stats = pat.SortCmd.Flag("stats", "Print sort statistics to stderr.").Bool()
	pat.SortCmd.MetricsFile = pat.SortCmd.Flag("metrics-file", "Write sort metrics in the Prometheus text format to this file.").String()

	pat.PilesCmd.CmdClause = app.Command("piles", "Report how the lines of files are dealt into piles.")
	pat.PilesCmd.InputFlags = registerInputFlags(pat.PilesCmd.CmdClause)
	pat.PilesCmd.OrderFlags = registerOrderFlags(pat.PilesCmd.CmdClause)
	pat.PilesCmd.Inputs = pat.PilesCmd.Arg("files", "Files to inspect, \"-\" reads stdin.").Required().Strings()
	pat.PilesCmd.Workers = pat.PilesCmd.Flag("workers", "Files to process concurrently, 0 reads PATIENCE_WORKERS.").Int()

	pat.BenchCmd.CmdClause = app.Command("bench", "Compare patience sort with other algorithms on shuffled input.")
	pat.BenchCmd.MaxExp = pat.BenchCmd.Flag("max-exp", "Largest input size as a power of two, 0 reads PATIENCE_BENCH_MAX_EXP.").Int()
	pat.BenchCmd.Repeats = pat.BenchCmd.Flag("repeats", "Timed runs per cell, the fastest is reported.").Default("3").Int()
	pat.BenchCmd.Seed = pat.BenchCmd.Flag("seed", "Seed of the input shuffle.").Default("100").Uint64()

	return pat
}

func registerInputFlags(cmd *kingpin.CmdClause) InputFlags {
	return InputFlags{
		Charset: cmd.Flag("charset", "Input charset, detected when the input is not UTF-8.").String(),
		Compression: cmd.Flag("compression",
			"Input compression (none, gzip, zstd, lz4, brotli), taken from the extension by default.").String(),
	}
}

func registerOrderFlags(cmd *kingpin.CmdClause) OrderFlags {
	return OrderFlags{
		Comparator: cmd.Flag("comparator",
			"Line order: "+strings.Join(compare.Names(), ", ")+". Defaults to PATIENCE_COMPARATOR or lexical.").String(),
		Locale:  cmd.Flag("locale", "Collation locale for the collate comparator.").String(),
		Reverse: cmd.Flag("reverse", "Sort in descending order.").Short('r').Bool(),
		Ties:    cmd.Flag("ties", "Tie policy: extend or new-pile. Defaults to PATIENCE_TIES or extend.").String(),
	}
}

// compression parses the --compression flag.
func (f InputFlags) compression() (lines.Compression, error) {
	return lines.ParseCompression(*f.Compression)
}
