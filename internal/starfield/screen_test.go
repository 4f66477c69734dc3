package starfield_test

import (
	"context"
	"errors"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/starfield/internal/starfield"
)

func expectedStars(w, h int, d float64) int {
	return int(float64(w*h) * d)
}

var _ = Describe("Screen", func() {
	Describe("construction", func() {
		It("uses the documented defaults", func() {
			s, err := starfield.New()
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Width()).To(Equal(80))
			Expect(s.Height()).To(Equal(40))
			Expect(s.Density()).To(Equal(0.01))
			Expect(s.Frames()).To(Equal(50))
			Expect(s.Delay()).To(Equal(100 * time.Millisecond))
			Expect(s.Direction()).To(Equal(starfield.NewPoint(1, 1)))
			Expect(s.Stars()).To(HaveLen(32))
		})

		It("keeps defaults for parameters that were not given", func() {
			s, err := starfield.New(starfield.WithSize(33, 77))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Width()).To(Equal(33))
			Expect(s.Height()).To(Equal(77))
			Expect(s.Density()).To(Equal(0.01))
			Expect(s.Frames()).To(Equal(50))
			Expect(s.Delay()).To(Equal(100 * time.Millisecond))
		})

		DescribeTable("places floor(w*h*density) stars",
			func(w, h int, d float64) {
				s, err := starfield.New(starfield.WithSize(w, h), starfield.WithDensity(d), starfield.WithRand(starfield.NewRand(7)))
				Expect(err).NotTo(HaveOccurred())
				Expect(s.Stars()).To(HaveLen(expectedStars(w, h, d)))
				Expect(s.StarCount()).To(Equal(expectedStars(w, h, d)))
			},
			Entry("defaults", 80, 40, 0.01),
			Entry("odd grid", 33, 77, 0.01),
			Entry("empty sky", 10, 10, 0.0),
			Entry("full sky", 4, 3, 1.0),
			Entry("fractional count", 7, 3, 0.1),
		)

		DescribeTable("rejects invalid parameters",
			func(target error, opt starfield.Option) {
				_, err := starfield.New(opt)
				Expect(err).To(MatchError(target))
			},
			Entry("zero width", starfield.ErrInvalidSize, starfield.WithSize(0, 10)),
			Entry("negative height", starfield.ErrInvalidSize, starfield.WithSize(10, -1)),
			Entry("density above one", starfield.ErrInvalidDensity, starfield.WithDensity(1.5)),
			Entry("negative density", starfield.ErrInvalidDensity, starfield.WithDensity(-0.1)),
			Entry("negative delay", starfield.ErrNegativeDelay, starfield.WithDelay(-time.Second)),
		)

		It("keeps every placed star inside the grid and marked", func() {
			s, err := starfield.New(starfield.WithSize(20, 10), starfield.WithDensity(0.3), starfield.WithRand(starfield.NewRand(3)))
			Expect(err).NotTo(HaveOccurred())
			for _, p := range s.Stars() {
				Expect(p.X()).To(BeNumerically(">=", 0))
				Expect(p.X()).To(BeNumerically("<", 20))
				Expect(p.Y()).To(BeNumerically(">=", 0))
				Expect(p.Y()).To(BeNumerically("<", 10))
				Expect(s.Cell(p.X(), p.Y())).To(Equal(starfield.StarGlyph))
			}
		})
	})

	Describe("duplicate placement", func() {
		It("keeps both points while the cell shows one glyph", func() {
			// 5x4 at 0.1 places two stars; both draws land on (2,1).
			s, err := starfield.New(
				starfield.WithSize(5, 4),
				starfield.WithDensity(0.1),
				starfield.WithRand(&seqRand{vals: []int{2, 1}}),
			)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Stars()).To(Equal([]starfield.Point{starfield.NewPoint(2, 1), starfield.NewPoint(2, 1)}))
			Expect(starCells(s)).To(Equal(1))
			Expect(strings.Count(s.String(), "*")).To(Equal(1))
		})
	})

	Describe("reconfiguration", func() {
		var s *starfield.Screen

		BeforeEach(func() {
			var err error
			s, err = starfield.New(starfield.WithDensity(0.05), starfield.WithRand(starfield.NewRand(11)))
			Expect(err).NotTo(HaveOccurred())
		})

		It("re-places stars at the current density after a resize", func() {
			Expect(s.SetScreenSize(30, 12)).To(Succeed())
			Expect(s.Width()).To(Equal(30))
			Expect(s.Height()).To(Equal(12))
			Expect(s.Density()).To(Equal(0.05))
			Expect(s.Stars()).To(HaveLen(expectedStars(30, 12, 0.05)))
			Expect(strings.Split(strings.TrimSuffix(s.String(), "\n"), "\n")).To(HaveLen(12))
		})

		It("re-places stars after a density change", func() {
			Expect(s.SetDensity(0.2)).To(Succeed())
			Expect(s.Density()).To(Equal(0.2))
			Expect(s.Stars()).To(HaveLen(expectedStars(80, 40, 0.2)))
		})

		It("leaves state alone when a setter is rejected", func() {
			before := s.Stars()
			Expect(s.SetScreenSize(-1, 5)).To(MatchError(starfield.ErrInvalidSize))
			Expect(s.SetDensity(2)).To(MatchError(starfield.ErrInvalidDensity))
			Expect(s.SetDelay(-time.Millisecond)).To(MatchError(starfield.ErrNegativeDelay))
			Expect(s.Width()).To(Equal(80))
			Expect(s.Density()).To(Equal(0.05))
			Expect(s.Stars()).To(Equal(before))
		})

		It("stores frames without validation", func() {
			s.SetFrames(-3)
			Expect(s.Frames()).To(Equal(-3))
		})
	})

	Describe("direction", func() {
		var s *starfield.Screen

		BeforeEach(func() {
			var err error
			s, err = starfield.New(starfield.WithSize(10, 10))
			Expect(err).NotTo(HaveOccurred())
		})

		It("ignores a nil vector", func() {
			s.SetDirection(nil)
			Expect(s.Direction()).To(Equal(starfield.NewPoint(1, 1)))
		})

		It("ignores a nil *Point", func() {
			var p *starfield.Point
			s.SetDirection(p)
			Expect(s.Direction()).To(Equal(starfield.NewPoint(1, 1)))
		})

		It("copies a valid vector", func() {
			p := starfield.NewPoint(-2, 3)
			s.SetDirection(&p)
			p.SetCoordinate(9, 9)
			Expect(s.Direction()).To(Equal(starfield.NewPoint(-2, 3)))
		})

		It("returns a copy that callers cannot alias", func() {
			d := s.Direction()
			d.SetCoordinate(5, 5)
			Expect(s.Direction()).To(Equal(starfield.NewPoint(1, 1)))
			Expect(s.Direction()).To(Equal(s.Direction()))
		})
	})

	Describe("UpdateBoardLinearly", func() {
		newSingleStar := func(x, y int, dir starfield.Point) *starfield.Screen {
			// 10x10 at 0.01 places exactly one star.
			s, err := starfield.New(
				starfield.WithSize(10, 10),
				starfield.WithRand(&seqRand{vals: []int{x, y}}),
				starfield.WithDirection(dir),
			)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Stars()).To(HaveLen(1))
			return s
		}

		It("moves right and up with the default direction", func() {
			s := newSingleStar(4, 4, starfield.NewPoint(1, 1))
			s.UpdateBoardLinearly()
			Expect(s.Stars()).To(ConsistOf(starfield.NewPoint(5, 3)))
			Expect(s.Cell(4, 4)).To(Equal(starfield.BlankGlyph))
			Expect(s.Cell(5, 3)).To(Equal(starfield.StarGlyph))
		})

		It("wraps at the right and top edges", func() {
			s := newSingleStar(9, 0, starfield.NewPoint(1, 1))
			s.UpdateBoardLinearly()
			Expect(s.Stars()).To(ConsistOf(starfield.NewPoint(0, 9)))
			Expect(starCells(s)).To(Equal(1))
		})

		It("wraps negative directions into the grid", func() {
			s := newSingleStar(0, 9, starfield.NewPoint(-1, -1))
			s.UpdateBoardLinearly()
			Expect(s.Stars()).To(ConsistOf(starfield.NewPoint(9, 0)))
		})

		It("handles steps larger than the grid", func() {
			s := newSingleStar(2, 2, starfield.NewPoint(23, -31))
			s.UpdateBoardLinearly()
			Expect(s.Stars()).To(ConsistOf(starfield.NewPoint(5, 3)))
		})

		It("lets a later star's erase blank a cell an earlier star moved into", func() {
			// 10x2 at 0.1 places (0,1) then (1,0). The first moves onto (1,0),
			// then the second blanks (1,0) as it leaves.
			s, err := starfield.New(
				starfield.WithSize(10, 2),
				starfield.WithDensity(0.1),
				starfield.WithRand(&seqRand{vals: []int{0, 1, 1, 0}}),
			)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Stars()).To(Equal([]starfield.Point{starfield.NewPoint(0, 1), starfield.NewPoint(1, 0)}))

			s.UpdateBoardLinearly()
			Expect(s.Stars()).To(Equal([]starfield.Point{starfield.NewPoint(1, 0), starfield.NewPoint(2, 1)}))
			Expect(s.Cell(1, 0)).To(Equal(starfield.BlankGlyph))
			Expect(s.Cell(2, 1)).To(Equal(starfield.StarGlyph))
			Expect(starCells(s)).To(Equal(1))
		})

		It("moves every star of a random field by the same vector", func() {
			s, err := starfield.New(starfield.WithSize(17, 9), starfield.WithDensity(0.2), starfield.WithRand(starfield.NewRand(5)))
			Expect(err).NotTo(HaveOccurred())
			before := s.Stars()
			s.UpdateBoardLinearly()
			after := s.Stars()
			Expect(after).To(HaveLen(len(before)))
			for i, p := range before {
				Expect(after[i].X()).To(Equal((p.X() + 1) % 17))
				Expect(after[i].Y()).To(Equal((p.Y() - 1 + 9) % 9))
			}
		})
	})

	Describe("rendering", func() {
		It("renders one newline-terminated row per grid row", func() {
			s, err := starfield.New(
				starfield.WithSize(3, 2),
				starfield.WithDensity(0.2),
				starfield.WithRand(&seqRand{vals: []int{1, 0}}),
			)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.String()).To(Equal(" * \n   \n"))
		})

		It("hands the frame to the display", func() {
			rec := &frameRecorder{}
			s, err := starfield.New(starfield.WithSize(4, 2), starfield.WithDisplay(rec))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.DisplayScreen()).To(Succeed())
			Expect(rec.frames).To(Equal([]string{s.String()}))
		})
	})

	Describe("Run", func() {
		var (
			rec     *frameRecorder
			sleeper *countingSleeper
		)

		BeforeEach(func() {
			rec = &frameRecorder{}
			sleeper = &countingSleeper{}
		})

		build := func(frames int) *starfield.Screen {
			s, err := starfield.New(
				starfield.WithSize(12, 6),
				starfield.WithDensity(0.1),
				starfield.WithFrames(frames),
				starfield.WithDelay(20*time.Millisecond),
				starfield.WithDisplay(rec),
				starfield.WithSleeper(sleeper),
			)
			Expect(err).NotTo(HaveOccurred())
			return s
		}

		It("renders frames-1 frames and pauses after each", func() {
			s := build(5)
			log := &frameLog{}
			s.AddObserver(log)

			Expect(s.Run(context.Background())).To(Succeed())
			Expect(rec.frames).To(HaveLen(4))
			Expect(sleeper.calls).To(Equal(4))
			Expect(sleeper.total).To(Equal(80 * time.Millisecond))
			Expect(log.seen).To(Equal([]int{1, 2, 3, 4}))
		})

		DescribeTable("renders nothing for tiny frame counts",
			func(frames int) {
				s := build(frames)
				Expect(s.Run(context.Background())).To(Succeed())
				Expect(rec.frames).To(BeEmpty())
				Expect(sleeper.calls).To(BeZero())
			},
			Entry("zero", 0),
			Entry("one", 1),
			Entry("negative", -4),
		)

		It("renders the frame before advancing it", func() {
			s := build(2)
			first := s.String()
			Expect(s.Run(context.Background())).To(Succeed())
			Expect(rec.frames).To(Equal([]string{first}))
		})

		It("stops on a display error", func() {
			boom := errors.New("boom")
			rec.err = boom
			s := build(10)
			Expect(s.Run(context.Background())).To(MatchError(boom))
			Expect(sleeper.calls).To(BeZero())
		})

		It("stops when the context is cancelled", func() {
			s := build(10)
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			Expect(s.Run(ctx)).To(MatchError(context.Canceled))
			Expect(rec.frames).To(HaveLen(1))
		})
	})
})

var _ = Describe("RealSleeper", func() {
	It("returns early when the context is done", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		start := time.Now()
		err := starfield.RealSleeper{}.Sleep(ctx, time.Minute)
		Expect(err).To(MatchError(context.Canceled))
		Expect(time.Since(start)).To(BeNumerically("<", time.Second))
	})

	It("waits for the delay", func() {
		start := time.Now()
		Expect(starfield.RealSleeper{}.Sleep(context.Background(), 5*time.Millisecond)).To(Succeed())
		Expect(time.Since(start)).To(BeNumerically(">=", 5*time.Millisecond))
	})
})
