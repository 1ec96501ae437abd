package trace_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archsim/rv32pipe/trace"
)

var _ = Describe("Recorder", func() {
	Describe("WriteText", func() {
		It("writes one ';'-separated row per instruction in program order", func() {
			r := trace.NewRecorder([]uint32{0, 4}, []string{"addi x2, x0, 5", "addi x3, x0, 10"}, 4)
			r.Record(0, 1, "IF")
			r.Record(0, 2, "ID")
			r.Record(4, 2, "IF")
			r.Record(0, 3, "EX")
			r.Record(4, 3, "ID")

			var sb strings.Builder
			Expect(r.WriteText(&sb)).To(Succeed())

			want := "addi x2, x0, 5;IF;ID;EX;-\naddi x3, x0, 10;-;IF;ID;-\n"
			Expect(sb.String()).To(Equal(want))
		})

		It("ignores an unknown pc or an out-of-range cycle", func() {
			r := trace.NewRecorder([]uint32{0}, []string{"nop"}, 2)
			r.Record(999, 1, "IF")
			r.Record(0, 99, "IF")
			r.Record(0, 0, "IF")

			var sb strings.Builder
			Expect(r.WriteText(&sb)).To(Succeed())
			Expect(sb.String()).To(Equal("nop;-;-\n"))
		})
	})

	Describe("WriteCSV", func() {
		It("writes a header row followed by one row per instruction", func() {
			r := trace.NewRecorder([]uint32{0}, []string{"nop"}, 2)
			r.Record(0, 1, "IF")

			var sb strings.Builder
			Expect(r.WriteCSV(&sb)).To(Succeed())

			lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
			Expect(lines).To(HaveLen(2))
			Expect(lines[0]).To(ContainSubstring("disassembly"))
			Expect(lines[1]).To(ContainSubstring("nop"))
			Expect(lines[1]).To(ContainSubstring("IF"))
		})
	})
})
