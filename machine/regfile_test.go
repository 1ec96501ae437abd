package machine_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archsim/rv32pipe/machine"
)

var _ = Describe("RegisterFile", func() {
	var rf *machine.RegisterFile

	BeforeEach(func() {
		rf = machine.NewRegisterFile()
	})

	It("hardwires x0 to zero even after a write", func() {
		rf.Write(0, 42)
		Expect(rf.Read(0)).To(Equal(int32(0)))
	})

	It("reads back a written register", func() {
		rf.Write(5, -7)
		Expect(rf.Read(5)).To(Equal(int32(-7)))
	})

	It("snapshots all 32 registers including x0", func() {
		rf.Write(1, 100)
		snap := rf.Snapshot()
		Expect(snap[0]).To(Equal(int32(0)))
		Expect(snap[1]).To(Equal(int32(100)))
	})
})
