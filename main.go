// Package main provides a pointer to the real entry point.
// rv32pipe is a cycle-accurate five-stage RV32I pipeline simulator.
//
// For the full CLI, use: go run ./cmd/rv32pipe
package main

import "fmt"

func main() {
	fmt.Println("rv32pipe - RV32I five-stage pipeline simulator")
	fmt.Println("")
	fmt.Println("Usage: rv32pipe [flags] <program-file> <cycle-count>")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/rv32pipe' for the full CLI.")
}
