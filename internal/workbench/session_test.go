package workbench_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/linsolve/internal/config"
	"github.com/san-kum/linsolve/internal/linsys"
	"github.com/san-kum/linsolve/internal/solver"
	"github.com/san-kum/linsolve/internal/storage"
	"github.com/san-kum/linsolve/internal/workbench"
)

const canonical = "3,2,-4,3\n2,3,3,15\n5,-3,1,14\n"

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

var _ = Describe("Session", func() {
	var (
		cfg *config.Config
		s   *workbench.Session
	)

	BeforeEach(func() {
		cfg = config.DefaultConfig()
	})

	JustBeforeEach(func() {
		var err error
		s, err = workbench.New(cfg, workbench.WithLogger(quiet))
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Solve", func() {
		It("solves the canonical system", func() {
			rep, err := s.Solve(canonical)
			Expect(err).NotTo(HaveOccurred())
			Expect(rep.Solution).To(HaveLen(3))
			Expect(rep.Solution[0]).To(BeNumerically("~", 3, 1e-9))
			Expect(rep.Solution[1]).To(BeNumerically("~", 1, 1e-9))
			Expect(rep.Solution[2]).To(BeNumerically("~", 2, 1e-9))
			Expect(rep.Determinant).To(BeNumerically("~", 146, 1e-9))
			Expect(rep.Residual).To(BeNumerically("<", 1e-12))
		})

		It("keeps the unreduced system", func() {
			rep, err := s.Solve(canonical)
			Expect(err).NotTo(HaveOccurred())
			Expect(rep.System.Data[0]).To(Equal([]float64{3, 2, -4, 3}))
		})

		It("reports text without numbers as a parse error", func() {
			rep, err := s.Solve("hello world")
			Expect(err).To(MatchError(linsys.ErrNoNumericValue))
			Expect(rep.Err).To(Equal(err))
			Expect(rep.Solution).To(BeNil())
			Expect(workbench.Status(err)).To(Equal(storage.StatusNoValue))
		})

		It("reports ragged rows as a dimension error", func() {
			_, err := s.Solve("1 2 3 4\n5 6 7\n")
			Expect(err).To(MatchError(linsys.ErrDimension))
			Expect(workbench.Status(err)).To(Equal(storage.StatusDimension))
		})

		It("reports dependent rows as singular", func() {
			rep, err := s.Solve("1,2,3,4\n2,4,6,8\n1,1,1,1\n")
			Expect(err).To(MatchError(linsys.ErrSingular))
			Expect(rep.System).NotTo(BeNil())
			Expect(workbench.Status(err)).To(Equal(storage.StatusSingular))
		})

		Context("in flow mode", func() {
			BeforeEach(func() {
				cfg.ParseMode = "flow"
			})

			It("joins values across lines", func() {
				rep, err := s.Solve("3 2 -4 3\n2 3 3 15 5 -3 1 14")
				Expect(err).NotTo(HaveOccurred())
				Expect(rep.Solution[0]).To(BeNumerically("~", 3, 1e-9))
			})
		})
	})

	Describe("Render", func() {
		It("renders the solution block", func() {
			rep, _ := s.Solve(canonical)
			Expect(s.Render(rep)).To(Equal("\n\nSolution Vector:\n\n" +
				" x[  0] :   3.0000000\n" +
				" x[  1] :   1.0000000\n" +
				" x[  2] :   2.0000000\n"))
		})

		It("renders the error banner", func() {
			rep, _ := s.Solve("")
			Expect(s.Render(rep)).To(Equal("\n\n => ERROR: No Numeric Value Found In Buffer\n"))
		})

		Context("with inverse and determinant enabled", func() {
			BeforeEach(func() {
				cfg.ShowInverse = true
				cfg.ShowDeterminant = true
			})

			It("appends both", func() {
				rep, _ := s.Solve("2 0 4\n0 4 4\n")
				out := s.Render(rep)
				Expect(out).To(ContainSubstring("Inverse Matrix:\n\n   0.5000000   0.0000000\n   0.0000000   0.2500000\n"))
				Expect(out).To(ContainSubstring("Determinant:  8\n"))
			})
		})
	})

	Describe("SolveBatch", func() {
		It("returns reports in input order", func() {
			reps := s.SolveBatch(context.Background(), []workbench.Input{
				{Name: "a", Text: canonical},
				{Name: "b", Text: "nothing here"},
				{Name: "c", Text: "1 1 3\n1 -1 -1\n"},
				{Name: "d", Text: "1 2 3\n2 4 6\n"},
			})
			Expect(reps).To(HaveLen(4))
			Expect(reps[0].Err).NotTo(HaveOccurred())
			Expect(reps[1].Err).To(MatchError(linsys.ErrNoNumericValue))
			Expect(reps[2].Solution[1]).To(BeNumerically("~", 2, 1e-9))
			Expect(reps[3].Err).To(MatchError(linsys.ErrSingular))
		})
	})

	Describe("run history", func() {
		var st *storage.Store

		BeforeEach(func() {
			cfg.SaveRuns = true
			st = storage.New(GinkgoT().TempDir())
			Expect(st.Init()).To(Succeed())
		})

		JustBeforeEach(func() {
			var err error
			s, err = workbench.New(cfg, workbench.WithLogger(quiet), workbench.WithStore(st))
			Expect(err).NotTo(HaveOccurred())
		})

		It("records successes and failures", func() {
			rep, err := s.Solve(canonical)
			Expect(err).NotTo(HaveOccurred())
			Expect(rep.RunID).NotTo(BeEmpty())

			_, err = s.Solve("no numbers")
			Expect(err).To(HaveOccurred())

			runs, err := st.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(runs).To(HaveLen(2))

			rec, err := st.LoadRecord(rep.RunID)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Meta.Status).To(Equal(storage.StatusSolved))
			Expect(rec.Solution).To(HaveLen(3))
			Expect(rec.Inverse).To(HaveLen(3))
			Expect(rec.Meta.Pivots).To(Equal(rep.Result.Pivots))
			Expect(rec.Meta.Pivots).To(HaveLen(3))
		})

		It("does not record when saving is disabled", func() {
			cfg.SaveRuns = false
			_, _ = s.Solve(canonical)
			runs, err := st.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(runs).To(BeEmpty())
		})
	})

	Describe("residual", func() {
		It("logs and leaves the residual at zero when it cannot be computed", func() {
			var logs bytes.Buffer
			debug := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
			s, err := workbench.New(cfg, workbench.WithLogger(debug))
			Expect(err).NotTo(HaveOccurred())

			m, err := linsys.FromRows([][]float64{{2, 4}})
			Expect(err).NotTo(HaveOccurred())
			res, err := solver.Solve(m)
			Expect(err).NotTo(HaveOccurred())

			wider, err := linsys.FromRows([][]float64{{1, 0, 1}, {0, 1, 1}})
			Expect(err).NotTo(HaveOccurred())
			rep := &workbench.Report{System: wider}
			workbench.Fill(s, rep, res, nil)

			Expect(rep.Err).NotTo(HaveOccurred())
			Expect(rep.Solution).To(Equal([]float64{2}))
			Expect(rep.Residual).To(BeZero())
			Expect(logs.String()).To(ContainSubstring("residual unavailable"))
		})

		It("is filled for a solved system", func() {
			rep, err := s.Solve(canonical)
			Expect(err).NotTo(HaveOccurred())
			Expect(rep.Residual).To(BeNumerically("<", 1e-9))
		})
	})

	It("rejects an unknown parse mode", func() {
		bad := config.DefaultConfig()
		bad.ParseMode = "sideways"
		_, err := workbench.New(bad)
		Expect(err).To(HaveOccurred())
	})
})
