package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/slitsim/internal/dynamo"
)

var _ = Describe("Tuner", func() {
	It("cycles through the controls in both directions", func() {
		var t Tuner
		Expect(t.Selected().Key).To(Equal("slit1"))
		Expect(t.Cycle(1).Key).To(Equal("slit2"))
		Expect(t.Cycle(-2).Key).To(Equal("k"))
		Expect(t.Cycle(1).Key).To(Equal("slit1"))
	})

	It("nudges the selected parameter on the loop", func() {
		loop := newLoop(10, 4)
		var t Tuner
		t.Cycle(3)

		p, err := t.Nudge(loop, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.K).To(BeNumerically("~", dynamo.DefaultK+1, 1e-9))
		Expect(loop.Params()).To(Equal(p))
	})

	It("clamps at the control bounds", func() {
		loop := newLoop(10, 4)
		var t Tuner
		for i := 0; i < 200; i++ {
			_, err := t.Nudge(loop, -1)
			Expect(err).NotTo(HaveOccurred())
		}
		Expect(loop.Params().Slit1).To(BeNumerically("~", 0, 1e-9))
	})

	It("marks the selected control", func() {
		var t Tuner
		t.Cycle(2)
		lines := t.Describe(dynamo.DefaultParams())
		Expect(lines).To(HaveLen(len(dynamo.Controls)))
		Expect(lines[2]).To(HavePrefix(">"))
		Expect(lines[0]).To(HavePrefix(" "))
	})
})
