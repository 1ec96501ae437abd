package isa_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archsim/rv32pipe/isa"
)

var _ = Describe("Execute", func() {
	Describe("arithmetic", func() {
		It("adds", func() {
			r := isa.Execute(isa.OpADD, 0, 2, 3)
			Expect(r.Result).To(Equal(int32(5)))
			Expect(r.Zero).To(BeFalse())
			Expect(r.Negative).To(BeFalse())
		})

		It("subtracts to zero", func() {
			r := isa.Execute(isa.OpSUB, 0, 3, 3)
			Expect(r.Result).To(Equal(int32(0)))
			Expect(r.Zero).To(BeTrue())
		})

		It("subtracts to a negative result", func() {
			r := isa.Execute(isa.OpSUB, 0, 1, 5)
			Expect(r.Result).To(Equal(int32(-4)))
			Expect(r.Negative).To(BeTrue())
		})
	})

	Describe("shifts", func() {
		It("shifts left logical", func() {
			r := isa.Execute(isa.OpSLL, 0, 1, 4)
			Expect(r.Result).To(Equal(int32(16)))
		})

		It("shifts right logical, unsigned", func() {
			r := isa.Execute(isa.OpSRL, 0, -1, 28)
			Expect(uint32(r.Result)).To(Equal(uint32(0xF)))
		})

		It("shifts right arithmetic, sign-preserving", func() {
			r := isa.Execute(isa.OpSRA, 0, -16, 2)
			Expect(r.Result).To(Equal(int32(-4)))
		})

		It("masks the shift amount to 5 bits", func() {
			r := isa.Execute(isa.OpSLL, 0, 1, 33)
			Expect(r.Result).To(Equal(int32(2)))
		})
	})

	Describe("comparisons", func() {
		It("SLT compares signed", func() {
			r := isa.Execute(isa.OpSLT, 0, -1, 0)
			Expect(r.Result).To(Equal(int32(1)))
		})

		It("SLTU compares unsigned", func() {
			r := isa.Execute(isa.OpSLTU, 0, -1, 0)
			Expect(r.Result).To(Equal(int32(0)))
		})

		It("BLTU compares unsigned for branches", func() {
			r := isa.Execute(isa.OpBLTU, 0, 1, -1)
			Expect(r.Result).To(Equal(int32(1)))
		})
	})

	Describe("jumps and upper immediates", func() {
		It("JAL links pc+4 regardless of operands", func() {
			r := isa.Execute(isa.OpJAL, 100, 0, 0)
			Expect(r.Result).To(Equal(int32(104)))
		})

		It("JALR links pc+4 regardless of operands", func() {
			r := isa.Execute(isa.OpJALR, 100, 999, 999)
			Expect(r.Result).To(Equal(int32(104)))
		})

		It("LUI passes the shifted immediate through", func() {
			r := isa.Execute(isa.OpLUI, 0, 0, 0x12345000)
			Expect(uint32(r.Result)).To(Equal(uint32(0x12345000)))
		})

		It("AUIPC adds pc to the shifted immediate", func() {
			r := isa.Execute(isa.OpAUIPC, 1000, 0, 0x1000)
			Expect(r.Result).To(Equal(int32(5096)))
		})
	})

	It("returns zero for an invalid op", func() {
		r := isa.Execute(isa.OpInvalid, 0, 7, 9)
		Expect(r.Result).To(Equal(int32(0)))
	})
})
