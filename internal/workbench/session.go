// Package workbench ties the parser, the solver and the run history into
// the single entry point used by the CLI and the editor.
package workbench

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/san-kum/linsolve/internal/config"
	"github.com/san-kum/linsolve/internal/format"
	"github.com/san-kum/linsolve/internal/linsys"
	"github.com/san-kum/linsolve/internal/parser"
	"github.com/san-kum/linsolve/internal/solver"
	"github.com/san-kum/linsolve/internal/storage"
)

// Session carries everything a solve needs. It holds no per-solve state and
// may be shared by goroutines as long as the configured store is.
type Session struct {
	cfg    *config.Config
	parser *parser.Parser
	solver *solver.Solver
	store  *storage.Store
	log    *slog.Logger
}

type Option func(*Session)

// WithStore records every attempt when the config enables save_runs.
func WithStore(st *storage.Store) Option {
	return func(s *Session) { s.store = st }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

func New(cfg *config.Config, opts ...Option) (*Session, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	mode, err := parser.ParseMode(cfg.ParseMode)
	if err != nil {
		return nil, err
	}
	s := &Session{
		cfg:    cfg,
		parser: parser.New(mode),
		solver: solver.New(solver.Options{Tolerance: cfg.Tolerance}),
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Session) Config() *config.Config { return s.cfg }

// Report is the outcome of one solve attempt. On failure only Err and,
// when parsing succeeded, System are set.
type Report struct {
	System      *linsys.Matrix
	Result      *solver.Result
	Solution    []float64
	Inverse     [][]float64
	Determinant float64
	Residual    float64
	RunID       string
	Err         error
}

// Solve parses text and solves the system it describes. The returned error
// is the same value as Report.Err.
func (s *Session) Solve(text string) (*Report, error) {
	m, err := s.parser.Parse(text)
	if err != nil {
		rep := &Report{Err: err}
		s.finish(rep)
		return rep, err
	}
	rep := s.solve(m)
	return rep, rep.Err
}

func (s *Session) solve(m *linsys.Matrix) *Report {
	rep := &Report{System: m.Clone()}
	res, err := s.solver.Solve(m)
	s.fill(rep, res, err)
	s.finish(rep)
	return rep
}

func (s *Session) fill(rep *Report, res *solver.Result, err error) {
	if err != nil {
		rep.Err = err
		return
	}
	rep.Result = res
	rep.Solution = res.Solution()
	rep.Inverse = res.Inverse()
	rep.Determinant = res.Determinant
	r, err := solver.Residual(rep.System, rep.Solution)
	if err != nil {
		s.log.Debug("residual unavailable", "err", err)
		return
	}
	rep.Residual = r
}

// Input is one named text to solve in a batch.
type Input struct {
	Name string
	Text string
}

// SolveBatch parses every input, then solves the parsed systems
// concurrently. Reports come back in input order.
func (s *Session) SolveBatch(ctx context.Context, inputs []Input) []*Report {
	reports := make([]*Report, len(inputs))
	var (
		systems []*linsys.Matrix
		index   []int
	)
	for i, in := range inputs {
		m, err := s.parser.Parse(in.Text)
		if err != nil {
			reports[i] = &Report{Err: err}
			continue
		}
		reports[i] = &Report{System: m.Clone()}
		systems = append(systems, m)
		index = append(index, i)
	}

	for k, br := range s.solver.SolveAll(ctx, systems) {
		s.fill(reports[index[k]], br.Result, br.Err)
	}
	for i, rep := range reports {
		s.log.Debug("batch item", "name", inputs[i].Name, "status", Status(rep.Err))
		s.finish(rep)
	}
	return reports
}

func (s *Session) finish(rep *Report) {
	if rep.Err != nil {
		s.log.Debug("solve failed", "status", Status(rep.Err), "err", rep.Err)
	} else {
		s.log.Debug("solve done", "rows", rep.System.Rows, "det", rep.Determinant, "residual", rep.Residual)
	}
	if s.store == nil || !s.cfg.SaveRuns {
		return
	}
	rec := &storage.Record{
		Meta: storage.RunMetadata{
			Status:      Status(rep.Err),
			ParseMode:   s.cfg.ParseMode,
			Tolerance:   s.cfg.Tolerance,
			Determinant: rep.Determinant,
			Residual:    rep.Residual,
		},
		System:   rep.System,
		Solution: rep.Solution,
		Inverse:  rep.Inverse,
	}
	if rep.Err != nil {
		rec.Meta.Error = rep.Err.Error()
	}
	if rep.Result != nil {
		rec.Meta.Pivots = rep.Result.Pivots
	}
	id, err := s.store.Save(rec)
	if err != nil {
		s.log.Warn("could not save run", "err", err)
		return
	}
	rep.RunID = id
}

// Status classifies an outcome for the run history.
func Status(err error) string {
	switch {
	case err == nil:
		return storage.StatusSolved
	case errors.Is(err, linsys.ErrNoNumericValue):
		return storage.StatusNoValue
	case errors.Is(err, linsys.ErrDimension):
		return storage.StatusDimension
	case errors.Is(err, linsys.ErrSingular):
		return storage.StatusSingular
	}
	return "error"
}

// Render returns the text appended below the input: the solution block,
// plus inverse and determinant when configured, or the error banner.
func (s *Session) Render(rep *Report) string {
	if rep.Err != nil {
		return format.ErrorBanner(rep.Err)
	}
	var b strings.Builder
	b.WriteString(format.SolutionBlock(rep.Solution))
	if s.cfg.ShowInverse {
		b.WriteString(format.InverseBlock(rep.Inverse))
	}
	if s.cfg.ShowDeterminant {
		b.WriteString(format.Determinant(rep.Determinant))
	}
	return b.String()
}
