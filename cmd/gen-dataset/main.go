package main

import (
	"bufio"
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/medalhist/internal/sampledata"
	"github.com/okian/medalhist/pkg/logger"
)

const outputFilePermission = 0o644

func main() {
	var (
		output    = flag.String("output", "athlete_events.csv", "Output CSV file, - for stdout")
		rows      = flag.Int("rows", sampledata.DefaultRows, "Number of data rows to generate")
		seed      = flag.Uint64("seed", sampledata.DefaultSeed, "PRNG seed")
		malformed = flag.Int("malformed-every", 0, "Write an unparseable Year on every n-th row (0 disables)")
		startYear = flag.Int("start-year", sampledata.DefaultStartYear, "First games year")
		endYear   = flag.Int("end-year", sampledata.DefaultEndYear, "Last games year")
	)
	flag.Parse()

	if err := logger.Init(logger.WithOutput(os.Stderr)); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Named("gen-dataset")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := os.Stdout
	if *output != "-" {
		f, err := os.OpenFile(*output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outputFilePermission)
		if err != nil {
			log.Fatal(ctx, "failed to create output file", logger.String("path", *output), logger.Error(err))
		}
		defer f.Close()
		out = f
	}

	w := bufio.NewWriter(out)
	gen := sampledata.New(
		sampledata.WithRows(*rows),
		sampledata.WithSeed(*seed),
		sampledata.WithMalformedEvery(*malformed),
		sampledata.WithYears(*startYear, *endYear),
		sampledata.WithLogger(log),
	)
	if _, err := gen.Write(ctx, w); err != nil {
		log.Fatal(ctx, "failed to generate dataset", logger.Error(err))
	}
	if err := w.Flush(); err != nil {
		log.Fatal(ctx, "failed to flush output", logger.Error(err))
	}
	log.Info(ctx, "dataset written", logger.String("path", *output))
}
