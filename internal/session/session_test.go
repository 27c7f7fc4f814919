package session_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gridwalk/internal/grid"
	"github.com/san-kum/gridwalk/internal/playback"
	"github.com/san-kum/gridwalk/internal/search"
	"github.com/san-kum/gridwalk/internal/session"
)

func noSleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }

var _ = Describe("Editor", func() {
	var (
		g  *grid.Grid
		ed *session.Editor
	)

	BeforeEach(func() {
		var err error
		g, err = grid.New(3, 3)
		Expect(err).NotTo(HaveOccurred())
		ed = session.NewEditor(g)
	})

	It("starts in start mode", func() {
		Expect(ed.Mode()).To(Equal(session.ModeStart))
	})

	It("dispatches clicks by mode", func() {
		Expect(ed.ApplyAt(grid.Pos(0, 0))).To(BeTrue())
		Expect(ed.Select(session.ModeEnd)).To(Succeed())
		Expect(ed.ApplyAt(grid.Pos(2, 2))).To(BeTrue())
		Expect(ed.Select(session.ModeWall)).To(Succeed())
		Expect(ed.ApplyAt(grid.Pos(1, 1))).To(BeTrue())

		s, _ := g.Start()
		e, _ := g.End()
		Expect(s).To(Equal(grid.Pos(0, 0)))
		Expect(e).To(Equal(grid.Pos(2, 2)))
		Expect(g.IsWall(grid.Pos(1, 1))).To(BeTrue())
	})

	It("never walls an endpoint", func() {
		ed.ApplyAt(grid.Pos(0, 0))
		Expect(ed.Select(session.ModeWall)).To(Succeed())
		changed, err := ed.ApplyAt(grid.Pos(0, 0))
		Expect(err).NotTo(HaveOccurred())
		Expect(changed).To(BeFalse())
		Expect(g.IsWall(grid.Pos(0, 0))).To(BeFalse())
	})

	It("refuses to put the end on the start", func() {
		ed.ApplyAt(grid.Pos(1, 1))
		Expect(ed.Select(session.ModeEnd)).To(Succeed())
		Expect(ed.ApplyAt(grid.Pos(1, 1))).To(BeFalse())
		_, ok := g.End()
		Expect(ok).To(BeFalse())
	})

	It("clears previous run marks on click", func() {
		g.MarkVisited(grid.Pos(2, 0))
		ed.ApplyAt(grid.Pos(0, 0))
		Expect(g.VisitedCount()).To(BeZero())
	})

	Describe("drag strokes", func() {
		BeforeEach(func() {
			Expect(ed.Select(session.ModeWall)).To(Succeed())
		})

		It("only adds walls after the first cell", func() {
			g.ToggleWall(grid.Pos(0, 1))

			Expect(ed.BeginStroke(grid.Pos(0, 0))).To(BeTrue())
			Expect(ed.ContinueStroke(grid.Pos(0, 1))).To(BeFalse())
			Expect(ed.ContinueStroke(grid.Pos(0, 2))).To(BeTrue())
			ed.EndStroke()

			Expect(g.IsWall(grid.Pos(0, 0))).To(BeTrue())
			Expect(g.IsWall(grid.Pos(0, 1))).To(BeTrue())
			Expect(g.IsWall(grid.Pos(0, 2))).To(BeTrue())
		})

		It("ignores movement outside a stroke", func() {
			Expect(ed.ContinueStroke(grid.Pos(1, 1))).To(BeFalse())
			Expect(g.WallCount()).To(BeZero())
		})

		It("does not paint in start mode", func() {
			Expect(ed.Select(session.ModeStart)).To(Succeed())
			Expect(ed.BeginStroke(grid.Pos(1, 1))).To(BeFalse())
			Expect(ed.Stroking()).To(BeFalse())
		})
	})
})

var _ = Describe("Session", func() {
	var s *session.Session

	newSession := func(lines ...string) *session.Session {
		g, err := grid.Parse(lines)
		Expect(err).NotTo(HaveOccurred())
		return session.New(g, session.WithPlayer(playback.New(playback.WithSleeper(noSleep))))
	}

	It("maps the speed slider to a clamped delay", func() {
		Expect(session.DelayForSlider(160)).To(Equal(50 * time.Millisecond))
		Expect(session.DelayForSlider(0)).To(Equal(session.MaxDelay))
		Expect(session.DelayForSlider(200)).To(Equal(session.MinDelay))
		Expect(session.DelayForSlider(500)).To(Equal(session.MinDelay))
		Expect(session.DelayForSlider(-5)).To(Equal(session.MaxDelay))
	})

	Context("without endpoints", func() {
		BeforeEach(func() {
			s = newSession("S..", "...")
		})

		It("reports the precondition failure and stays editable", func() {
			run, out, err := s.Begin()
			Expect(err).NotTo(HaveOccurred())
			Expect(run).To(BeNil())
			Expect(out.Kind).To(Equal(search.NoStartOrEnd))
			Expect(s.Running()).To(BeFalse())
			Expect(s.LastRun()).To(BeNil())
			Expect(s.SelectMode(session.ModeWall)).To(Succeed())
		})
	})

	Context("with an open 3x3 board", func() {
		BeforeEach(func() {
			s = newSession("S..", "...", "..E")
		})

		It("finds a four-cell path", func() {
			out, err := s.Solve(context.Background(), playback.NewOverlay())
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Kind).To(Equal(search.PathFound))
			Expect(out.Path).To(HaveLen(4))
			Expect(out.Path[len(out.Path)-1]).To(Equal(grid.Pos(2, 2)))
			Expect(s.Running()).To(BeFalse())
		})

		It("keeps the finished run for reporting", func() {
			Expect(s.LastRun()).To(BeNil())
			out, err := s.Solve(context.Background(), playback.NewOverlay())
			Expect(err).NotTo(HaveOccurred())
			last := s.LastRun()
			Expect(last).NotTo(BeNil())
			Expect(last.Outcome()).To(Equal(out))
			Expect(last.Cursor.Played()).To(Equal(len(last.Result.Events)))
			Expect(last.Delay).To(Equal(s.Delay()))
		})

		It("gives the same outcome after clearing walls", func() {
			first, err := s.Solve(context.Background(), playback.NewOverlay())
			Expect(err).NotTo(HaveOccurred())
			Expect(s.ClearWalls()).To(Succeed())
			second, err := s.Solve(context.Background(), playback.NewOverlay())
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first))
		})

		It("locks editing while a run is active", func() {
			run, _, err := s.Begin()
			Expect(err).NotTo(HaveOccurred())
			Expect(run).NotTo(BeNil())

			_, err = s.EditAt(grid.Pos(1, 1))
			Expect(err).To(MatchError(session.ErrRunInProgress))
			Expect(s.SelectMode(session.ModeWall)).To(MatchError(session.ErrRunInProgress))
			Expect(s.ClearWalls()).To(MatchError(session.ErrRunInProgress))
			Expect(s.Reset()).To(MatchError(session.ErrRunInProgress))
			Expect(s.SetSlider(10)).To(MatchError(session.ErrRunInProgress))

			_, _, err = s.Begin()
			Expect(err).To(MatchError(session.ErrRunInProgress))

			run.Finish()
			run.Finish()
			Expect(s.Running()).To(BeFalse())
			Expect(s.SelectMode(session.ModeWall)).To(Succeed())
		})

		It("captures the delay at run start", func() {
			Expect(s.SetSlider(110)).To(Succeed())
			run, _, err := s.Begin()
			Expect(err).NotTo(HaveOccurred())
			defer run.Finish()
			Expect(run.Delay).To(Equal(100 * time.Millisecond))
			Expect(run.Cursor.Len()).To(Equal(len(run.Result.Events)))
		})

		It("resets to an empty board of the same size", func() {
			Expect(s.SelectMode(session.ModeWall)).To(Succeed())
			Expect(s.Reset()).To(Succeed())
			g := s.Grid()
			Expect(g.Rows()).To(Equal(3))
			Expect(g.Cols()).To(Equal(3))
			_, ok := g.Start()
			Expect(ok).To(BeFalse())
			Expect(s.Mode()).To(Equal(session.ModeStart))
		})

		It("returns Cancelled when the context ends", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			out, err := s.Solve(ctx, playback.NewOverlay())
			Expect(err).To(MatchError(context.Canceled))
			Expect(out.Kind).To(Equal(search.Cancelled))
			Expect(s.Running()).To(BeFalse())
		})
	})

	Context("with the middle row walled", func() {
		BeforeEach(func() {
			s = newSession("S..", "###", "..E")
		})

		It("reports no path and marks only the reachable cells", func() {
			out, err := s.Solve(context.Background(), playback.NewOverlay())
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Kind).To(Equal(search.NoPathFound))
			g := s.Grid()
			Expect(g.VisitedCount()).To(Equal(3))
			Expect(g.IsVisited(grid.Pos(2, 0))).To(BeFalse())
		})
	})

	It("parses mode names", func() {
		m, err := session.ParseMode(" Wall ")
		Expect(err).NotTo(HaveOccurred())
		Expect(m).To(Equal(session.ModeWall))
		_, err = session.ParseMode("erase")
		Expect(err).To(MatchError(session.ErrUnknownMode))
	})
})
