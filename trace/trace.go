// Package trace records, for every static instruction in a program, the
// pipeline stage it occupies on every simulated cycle, and serializes
// that record as plain text or CSV.
package trace

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// noActivity is the label written for a cycle in which an instruction
// occupies no pipeline stage.
const noActivity = "-"

// entry holds one static instruction's disassembly and its dense,
// cycle-indexed vector of stage labels.
type entry struct {
	pc     uint32
	disasm string
	cycles []string
}

// Recorder maps instruction addresses to their stage-label vectors. A PC
// is registered once, at construction, for every instruction the loader
// placed in the program; Record looks it up by a map rather than the
// reference implementation's linear scan (spec.md's own design notes
// endorse this as a drop-in replacement with unchanged observable
// behavior).
type Recorder struct {
	index   map[uint32]int
	entries []entry
	cycles  int
}

// NewRecorder returns a recorder pre-populated with one entry per
// instruction in pcs (in program order) and disasms (the matching
// disassembly strings), each holding cycles stage-label slots
// initialized to "-".
func NewRecorder(pcs []uint32, disasms []string, cycles int) *Recorder {
	r := &Recorder{
		index:   make(map[uint32]int, len(pcs)),
		entries: make([]entry, len(pcs)),
		cycles:  cycles,
	}
	for i, pc := range pcs {
		r.index[pc] = i
		r.entries[i] = entry{
			pc:     pc,
			disasm: disasms[i],
			cycles: make([]string, cycles),
		}
		for c := range r.entries[i].cycles {
			r.entries[i].cycles[c] = noActivity
		}
	}
	return r
}

// Record marks instruction pc as occupying stage label on the given
// 1-indexed cycle. A pc outside the loaded program, or a cycle outside
// the requested budget, is silently ignored.
func (r *Recorder) Record(pc uint32, cycle int, label string) {
	idx, ok := r.index[pc]
	if !ok {
		return
	}
	i := cycle - 1
	if i < 0 || i >= r.cycles {
		return
	}
	r.entries[idx].cycles[i] = label
}

// WriteText writes the contractual `;`-separated trace: one line per
// instruction in program order, disassembly followed by cycles stage
// labels (spec.md §6).
func (r *Recorder) WriteText(w io.Writer) error {
	for _, e := range r.entries {
		if _, err := fmt.Fprint(w, e.disasm); err != nil {
			return err
		}
		for _, label := range e.cycles {
			if _, err := fmt.Fprintf(w, ";%s", label); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// WriteCSV writes the same grid as a CSV table with a header row
// ("disassembly", "cycle 1", "cycle 2", ...) and one data row per
// instruction. This is the optional second output format of §6.
func (r *Recorder) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := make([]string, 0, r.cycles+1)
	header = append(header, "disassembly")
	for c := 1; c <= r.cycles; c++ {
		header = append(header, "cycle "+strconv.Itoa(c))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, e := range r.entries {
		row := make([]string, 0, r.cycles+1)
		row = append(row, e.disasm)
		row = append(row, e.cycles...)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}
