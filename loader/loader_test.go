package loader_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archsim/rv32pipe/loader"
)

var _ = Describe("Read", func() {
	It("parses hex words and ignores trailing disassembly text", func() {
		input := "00500113  addi x2, x0, 5\n0x00A00193 addi x3, x0, 10\n003101B3\n"
		words, err := loader.Read(strings.NewReader(input))
		Expect(err).NotTo(HaveOccurred())
		Expect(words).To(Equal([]uint32{0x00500113, 0x00A00193, 0x003101B3}))
	})

	It("skips blank and malformed lines", func() {
		input := "\n   \nnot-hex-at-all\n00000013\n"
		words, err := loader.Read(strings.NewReader(input))
		Expect(err).NotTo(HaveOccurred())
		Expect(words).To(Equal([]uint32{0x00000013}))
	})
})

var _ = Describe("Load", func() {
	var tempDir string

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "rv32pipe-loader-test")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		_ = os.RemoveAll(tempDir)
	})

	It("reads a program file from disk", func() {
		path := filepath.Join(tempDir, "program.hex")
		Expect(os.WriteFile(path, []byte("00500113\n00A00193\n"), 0o644)).To(Succeed())

		words, err := loader.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(words).To(Equal([]uint32{0x00500113, 0x00A00193}))
	})

	It("returns an error for a missing file", func() {
		_, err := loader.Load(filepath.Join(tempDir, "does-not-exist.hex"))
		Expect(err).To(HaveOccurred())
	})
})
