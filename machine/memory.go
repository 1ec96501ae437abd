package machine

// InstructionMemory is a word-addressed, read-only array of raw
// machine-code program words. Addresses are byte addresses, four bytes apart; an
// out-of-range read returns 0 (which decodes to an architectural
// no-op), matching spec.md §7's "reads return 0" rule for out-of-range
// accesses.
type InstructionMemory struct {
	words []uint32
}

// NewInstructionMemory returns an instruction memory backed by words,
// placed consecutively starting at address 0.
func NewInstructionMemory(words []uint32) *InstructionMemory {
	return &InstructionMemory{words: words}
}

// Len returns the number of words loaded.
func (m *InstructionMemory) Len() int {
	return len(m.words)
}

// Read returns the instruction word containing byte address addr (the
// word at index addr/4; the low two bits are ignored), or 0 if that index
// is past the end of the loaded program.
func (m *InstructionMemory) Read(addr uint32) uint32 {
	idx := addr / 4
	if int(idx) >= len(m.words) {
		return 0
	}
	return m.words[idx]
}

// DefaultDataMemorySize is the data memory capacity used when a caller
// does not request a specific size (spec.md's ancestor hardcodes this
// value; see SPEC_FULL.md §9).
const DefaultDataMemorySize = 1024

// DataMemory is a byte-addressed load/store memory. Reads past the end
// return 0; writes past the end are silently ignored (spec.md §7, error
// kind 5 — a deliberate simplification, no traps).
type DataMemory struct {
	bytes []byte
}

// NewDataMemory returns a zeroed data memory of the given size in bytes.
func NewDataMemory(size int) *DataMemory {
	if size <= 0 {
		size = DefaultDataMemorySize
	}
	return &DataMemory{bytes: make([]byte, size)}
}

// ReadByte reads a byte and sign-extends it to 32 bits (LB semantics).
func (m *DataMemory) ReadByte(addr uint32) int32 {
	return int32(int8(m.readRaw(addr, 1)))
}

// ReadByteUnsigned reads a zero-extended byte (LBU semantics).
func (m *DataMemory) ReadByteUnsigned(addr uint32) int32 {
	return int32(uint8(m.readRaw(addr, 1)))
}

// ReadHalf reads a halfword and sign-extends it to 32 bits (LH semantics).
func (m *DataMemory) ReadHalf(addr uint32) int32 {
	return int32(int16(m.readRaw(addr, 2)))
}

// ReadHalfUnsigned reads a zero-extended halfword (LHU semantics).
func (m *DataMemory) ReadHalfUnsigned(addr uint32) int32 {
	return int32(uint16(m.readRaw(addr, 2)))
}

// ReadWord reads a full 32-bit word verbatim (LW semantics).
func (m *DataMemory) ReadWord(addr uint32) int32 {
	return int32(m.readRaw(addr, 4))
}

// readRaw little-endian-assembles `size` bytes starting at addr. An
// out-of-range access (addr+size overruns the memory) returns 0.
func (m *DataMemory) readRaw(addr uint32, size int) uint32 {
	if !m.inRange(addr, size) {
		return 0
	}
	var v uint32
	for i := 0; i < size; i++ {
		v |= uint32(m.bytes[int(addr)+i]) << (8 * i)
	}
	return v
}

// WriteByte stores the low 8 bits of value at addr (SB semantics).
func (m *DataMemory) WriteByte(addr uint32, value int32) {
	m.writeRaw(addr, uint32(value), 1)
}

// WriteHalf stores the low 16 bits of value at addr (SH semantics).
func (m *DataMemory) WriteHalf(addr uint32, value int32) {
	m.writeRaw(addr, uint32(value), 2)
}

// WriteWord stores all 32 bits of value at addr (SW semantics).
func (m *DataMemory) WriteWord(addr uint32, value int32) {
	m.writeRaw(addr, uint32(value), 4)
}

func (m *DataMemory) writeRaw(addr uint32, value uint32, size int) {
	if !m.inRange(addr, size) {
		return
	}
	for i := 0; i < size; i++ {
		m.bytes[int(addr)+i] = byte(value >> (8 * i))
	}
}

func (m *DataMemory) inRange(addr uint32, size int) bool {
	end := uint64(addr) + uint64(size)
	return end <= uint64(len(m.bytes))
}
