package isa_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archsim/rv32pipe/isa"
)

var _ = Describe("GenerateControl", func() {
	It("sets only RegWrite for an R-type instruction", func() {
		c := isa.GenerateControl(isa.Instruction{Format: isa.FormatR, Op: isa.OpADD})
		Expect(c.RegWrite).To(BeTrue())
		Expect(c.MemRead).To(BeFalse())
		Expect(c.MemWrite).To(BeFalse())
		Expect(c.ALUSrc).To(BeFalse())
		Expect(c.Branch).To(BeFalse())
		Expect(c.Jump).To(BeFalse())
	})

	It("sets RegWrite, ALUSrc, MemRead and MemToReg for a load", func() {
		c := isa.GenerateControl(isa.Instruction{Format: isa.FormatI, Op: isa.OpLW})
		Expect(c.RegWrite).To(BeTrue())
		Expect(c.ALUSrc).To(BeTrue())
		Expect(c.MemRead).To(BeTrue())
		Expect(c.MemToReg).To(BeTrue())
		Expect(c.MemWrite).To(BeFalse())
		Expect(c.Branch).To(BeFalse())
		Expect(c.Jump).To(BeFalse())
	})

	It("sets only ALUSrc and MemWrite for a store", func() {
		c := isa.GenerateControl(isa.Instruction{Format: isa.FormatS, Op: isa.OpSW})
		Expect(c.ALUSrc).To(BeTrue())
		Expect(c.MemWrite).To(BeTrue())
		Expect(c.RegWrite).To(BeFalse())
	})

	It("sets only Branch for a branch instruction", func() {
		c := isa.GenerateControl(isa.Instruction{Format: isa.FormatB, Op: isa.OpBEQ})
		Expect(c.Branch).To(BeTrue())
		Expect(c.RegWrite).To(BeFalse())
		Expect(c.Jump).To(BeFalse())
	})

	It("sets RegWrite and Jump for JAL and JALR", func() {
		jal := isa.GenerateControl(isa.Instruction{Format: isa.FormatJ, Op: isa.OpJAL})
		Expect(jal.RegWrite).To(BeTrue())
		Expect(jal.Jump).To(BeTrue())

		jalr := isa.GenerateControl(isa.Instruction{Format: isa.FormatI, Op: isa.OpJALR})
		Expect(jalr.RegWrite).To(BeTrue())
		Expect(jalr.Jump).To(BeTrue())
	})

	It("returns the zero value for an invalid instruction", func() {
		c := isa.GenerateControl(isa.Instruction{Op: isa.OpInvalid})
		Expect(c).To(Equal(isa.Control{}))
	})
})
