// Package loader reads a program file into the sequence of 32-bit
// machine-code words the pipeline's instruction memory is built from.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Load reads path and returns the machine-code words it contains, one
// per line and placed consecutively starting at address 0 (spec.md §6).
// A line begins with a 32-bit hexadecimal word, optionally prefixed with
// "0x"; anything after the first run of whitespace following the word is
// assembly text and is discarded. Blank lines and lines whose first
// token does not parse as hex are skipped silently (spec.md §7, error
// kind 3).
func Load(path string) ([]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	defer func() { _ = f.Close() }()

	words, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("loader: %s: %w", path, err)
	}
	return words, nil
}

// Read parses the same format as Load from an already-open reader.
func Read(r io.Reader) ([]uint32, error) {
	var words []uint32
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		token := strings.Fields(line)[0]
		token = strings.TrimPrefix(strings.TrimPrefix(token, "0x"), "0X")
		word, err := strconv.ParseUint(token, 16, 32)
		if err != nil {
			continue
		}
		words = append(words, uint32(word))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}
	return words, nil
}
