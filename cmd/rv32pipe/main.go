// Package main provides the entry point for rv32pipe, a cycle-accurate
// simulator for a classic five-stage in-order RV32I pipeline.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/k0kubun/pp/v3"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/archsim/rv32pipe/isa"
	"github.com/archsim/rv32pipe/loader"
	"github.com/archsim/rv32pipe/pipeline"
	"github.com/archsim/rv32pipe/trace"
)

var (
	noForward = flag.Bool("no-forward", false, "disable the Forwarding Unit (spec.md §9 open question 2)")
	debug     = flag.Bool("debug", false, "pretty-print final register/statistics state to stdout")
	verboseTV = flag.Bool("v", false, "print a one-line marker per simulated cycle to stdout, colorized on a TTY (the stage-label grid is not printed)")
	csvOut    = flag.Bool("csv", false, "additionally write a CSV trace next to the text trace")
)

func main() {
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: rv32pipe [flags] <program-file> <cycle-count>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	programPath := flag.Arg(0)
	cycles, err := strconv.Atoi(flag.Arg(1))
	if err != nil || cycles < 0 {
		fmt.Fprintf(os.Stderr, "rv32pipe: invalid cycle count %q\n", flag.Arg(1))
		os.Exit(1)
	}

	if err := run(programPath, cycles); err != nil {
		fmt.Fprintf(os.Stderr, "rv32pipe: %v\n", err)
		os.Exit(1)
	}
}

func run(programPath string, cycles int) error {
	words, err := loader.Load(programPath)
	if err != nil {
		return err
	}
	log.Printf("loaded %d words from %s", len(words), programPath)

	pcs := make([]uint32, len(words))
	disasms := make([]string, len(words))
	for i, w := range words {
		pcs[i] = uint32(i * 4)
		disasms[i] = isa.Disassemble(isa.Decode(w))
	}
	rec := trace.NewRecorder(pcs, disasms, cycles)

	p := pipeline.NewPipeline(words,
		pipeline.WithForwarding(!*noForward),
		pipeline.WithRecorder(rec),
	)

	for i := 0; i < cycles; i++ {
		p.Tick()
		if *verboseTV {
			renderCycle(i + 1)
		}
	}
	log.Printf("ran %d cycles, %d instructions retired, %d stalls, %d squashes",
		p.Statistics().Cycles, p.Statistics().Instructions,
		p.Statistics().StallCycles, p.Statistics().SquashCycles)

	suffix := "_forward_out.txt"
	if *noForward {
		suffix = "_noforward_out.txt"
	}
	outPath := programPath + suffix
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	defer func() { _ = out.Close() }()
	if err := rec.WriteText(out); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}

	if *csvOut {
		csvPath := programPath + ".csv"
		csvFile, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("writing CSV trace: %w", err)
		}
		defer func() { _ = csvFile.Close() }()
		if err := rec.WriteCSV(csvFile); err != nil {
			return fmt.Errorf("writing CSV trace: %w", err)
		}
	}

	if *debug {
		pp.Println(p.Registers())
		pp.Println(p.Statistics())
	}

	return nil
}

// renderCycle prints a one-line marker per simulated cycle to a
// color-safe stdout when it's a terminal; this is presentation only and
// never affects the trace file rv32pipe writes.
func renderCycle(cycle int) {
	out := colorable.NewColorableStdout()
	if isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintf(out, "\x1b[36mcycle %d\x1b[0m ticked\n", cycle)
		return
	}
	fmt.Fprintf(out, "cycle %d ticked\n", cycle)
}
