package sim

import (
	"context"
	"errors"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/slitsim/internal/dynamo"
	"github.com/san-kum/slitsim/internal/viz"
)

type countMetric struct {
	count int
	sum   float64
}

func (c *countMetric) Name() string { return "count" }
func (c *countMetric) Observe(row dynamo.Row, t float64) {
	c.count++
	c.sum += row.Max()
}
func (c *countMetric) Value() float64 { return float64(c.count) }
func (c *countMetric) Reset()         { c.count, c.sum = 0, 0 }

func newLoop(width, height int) *Loop {
	buf, err := viz.NewHeatmap(width, height)
	Expect(err).NotTo(HaveOccurred())
	l, err := New(viz.NewRenderer(buf, 0, 1), dynamo.DefaultParams())
	Expect(err).NotTo(HaveOccurred())
	return l
}

var _ = Describe("Loop", func() {
	var loop *Loop

	BeforeEach(func() {
		loop = newLoop(40, 8)
	})

	It("starts paused", func() {
		Expect(loop.Playing()).To(BeFalse())
		Expect(loop.Tick()).To(BeFalse())
		Expect(loop.Ticks()).To(BeZero())
	})

	It("rejects invalid parameters and keeps the previous snapshot", func() {
		err := loop.SetParams(dynamo.Params{Slit1: 0.3, Slit2: 0.7, T: 0, K: 10})
		Expect(errors.Is(err, dynamo.ErrParameterBounds)).To(BeTrue())
		Expect(loop.Params()).To(Equal(dynamo.DefaultParams()))
	})

	It("refuses to construct with invalid parameters", func() {
		buf, _ := viz.NewHeatmap(4, 4)
		_, err := New(viz.NewRenderer(buf, 0, 1), dynamo.Params{T: -1})
		Expect(err).To(HaveOccurred())
	})

	It("reads the latest parameters at the start of each tick", func() {
		var seen []float64
		loop.AddObserver(ObserverFunc(func(row dynamo.Row, gray []uint8, t float64) {
			seen = append(seen, t)
		}))
		loop.Play()
		loop.Tick()
		Expect(loop.SetParams(dynamo.DefaultParams().WithT(3))).To(Succeed())
		loop.Tick()

		Expect(seen).To(HaveLen(2))
		Expect(seen[0]).To(BeNumerically("~", 1+viz.DefaultTimeStep, 1e-12))
		Expect(seen[1]).To(BeNumerically("~", 3+2*viz.DefaultTimeStep, 1e-12))
	})

	Context("pause and resume", func() {
		It("leaves the buffer unchanged when toggled without ticking", func() {
			loop.Play()
			for i := 0; i < 5; i++ {
				loop.Tick()
			}
			before := loop.Heatmap().Clone()

			Expect(loop.Toggle()).To(BeFalse())
			Expect(loop.Tick()).To(BeFalse())
			Expect(loop.Toggle()).To(BeTrue())

			Expect(loop.Heatmap().Equal(before)).To(BeTrue())
			Expect(loop.Ticks()).To(Equal(5))
		})

		It("keeps the time offset across a pause", func() {
			loop.Play()
			loop.Tick()
			offset := loop.Renderer().Offset()
			loop.Pause()
			loop.Tick()
			Expect(loop.Renderer().Offset()).To(Equal(offset))
		})
	})

	Context("scrolling", func() {
		It("holds exactly the most recent height rows", func() {
			var written [][]uint8
			loop.AddObserver(ObserverFunc(func(row dynamo.Row, gray []uint8, t float64) {
				written = append(written, append([]uint8(nil), gray...))
			}))
			loop.Play()
			for i := 0; i < 20; i++ {
				loop.Tick()
			}

			recent := written[len(written)-8:]
			for y, want := range recent {
				Expect(loop.Heatmap().GrayRow(y)).To(Equal(want))
			}
		})
	})

	Context("Run", func() {
		It("stops after MaxTicks and reports metrics", func() {
			m := &countMetric{}
			loop.AddMetric(m)
			loop.Play()

			res, err := loop.Run(context.Background(), Config{MaxTicks: 12})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Ticks).To(Equal(12))
			Expect(res.Metrics).To(HaveKeyWithValue("count", 12.0))
			Expect(res.Offset).To(BeNumerically("~", 12*viz.DefaultTimeStep, 1e-9))
		})

		It("returns the context error when canceled while paused", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()

			res, err := loop.Run(ctx, Config{})
			Expect(errors.Is(err, context.DeadlineExceeded)).To(BeTrue())
			Expect(res.Ticks).To(BeZero())
		})

		It("resumes when played from another goroutine", func() {
			go func() {
				time.Sleep(10 * time.Millisecond)
				loop.Play()
			}()

			res, err := loop.Run(context.Background(), Config{MaxTicks: 3})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Ticks).To(Equal(3))
		})
	})

	Context("the reference scenario", func() {
		It("produces finite, non-negative rows", func() {
			wide := newLoop(800, 4)
			Expect(wide.SetParams(dynamo.Params{Slit1: 0.3, Slit2: 0.7, T: 1, K: 10})).To(Succeed())

			valid := true
			wide.AddObserver(ObserverFunc(func(row dynamo.Row, gray []uint8, t float64) {
				for _, v := range row {
					if math.IsNaN(v) || v < 0 || math.IsInf(v, 0) {
						valid = false
					}
				}
			}))
			wide.Play()
			for i := 0; i < 10; i++ {
				wide.Tick()
			}
			Expect(valid).To(BeTrue())
		})
	})
})

var _ = Describe("Sweep", func() {
	It("keeps the order of parameter sets", func() {
		params := []dynamo.Params{
			dynamo.DefaultParams(),
			{Slit1: 0.1, Slit2: 0.9, T: 2, K: 5},
		}
		rows, err := Sweep(context.Background(), params, 100)
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(2))
		Expect(rows[0]).NotTo(Equal(rows[1]))
		Expect(rows[0].ArgMax()).To(BeNumerically(">=", 0))
	})

	It("rejects invalid input", func() {
		_, err := Sweep(context.Background(), []dynamo.Params{{T: 0}}, 10)
		Expect(err).To(HaveOccurred())

		_, err = Sweep(context.Background(), nil, 0)
		Expect(errors.Is(err, dynamo.ErrInvalidDimensions)).To(BeTrue())
	})

	It("honors a canceled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Sweep(ctx, []dynamo.Params{dynamo.DefaultParams()}, 10)
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
	})
})
