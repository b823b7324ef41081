package parser

import (
	"fmt"
	"strings"

	"github.com/san-kum/linsolve/internal/linsys"
)

type Mode int

const (
	// Strict takes one row per line holding numbers.
	Strict Mode = iota
	// Flow fills rows from consecutive values, ignoring line breaks after
	// the first row.
	Flow
)

// ParseMode maps a config name to a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "strict":
		return Strict, nil
	case "flow":
		return Flow, nil
	}
	return Strict, fmt.Errorf("unknown parse mode: %s", name)
}

func (m Mode) String() string {
	if m == Flow {
		return "flow"
	}
	return "strict"
}

type Parser struct {
	mode Mode
}

func New(mode Mode) *Parser {
	return &Parser{mode: mode}
}

// Parse converts text with the default strict mode.
func Parse(text string) (*linsys.Matrix, error) {
	return New(Strict).Parse(text)
}

// Parse converts text into an augmented matrix. The first line holding
// numbers fixes the column count; the system has one row fewer than that.
// Text after the last needed row is ignored.
func (p *Parser) Parse(text string) (*linsys.Matrix, error) {
	rows := Rows(Tokenize(text))
	if len(rows) == 0 {
		return nil, linsys.ErrNoNumericValue
	}

	cols := len(rows[0].Values)
	if cols < 2 {
		return nil, &linsys.DimensionError{Row: 0, Line: rows[0].Line, Want: 2, Got: cols}
	}
	n := cols - 1

	m, err := linsys.New(n)
	if err != nil {
		return nil, err
	}

	if p.mode == Flow {
		return fill(m, rows)
	}

	for i := 0; i < n; i++ {
		if i >= len(rows) {
			return nil, &linsys.DimensionError{Row: i, Want: cols, Got: 0}
		}
		r := rows[i]
		if len(r.Values) != cols {
			return nil, &linsys.DimensionError{Row: i, Line: r.Line, Want: cols, Got: len(r.Values)}
		}
		copy(m.Data[i], r.Values)
	}
	return m, nil
}

func fill(m *linsys.Matrix, rows []Row) (*linsys.Matrix, error) {
	need := m.Rows * m.Cols
	k := 0
	for _, r := range rows {
		for _, v := range r.Values {
			if k == need {
				return m, nil
			}
			m.Data[k/m.Cols][k%m.Cols] = v
			k++
		}
	}
	if k < need {
		return nil, &linsys.DimensionError{Row: k / m.Cols, Want: m.Cols, Got: k % m.Cols}
	}
	return m, nil
}

// Row is the run of numbers found between two row breaks.
type Row struct {
	Line   int
	Values []float64
}

// Rows groups a token stream by its row-break markers.
func Rows(toks []Token) []Row {
	var (
		out []Row
		cur Row
	)
	for _, t := range toks {
		switch t.Kind {
		case Number:
			if len(cur.Values) == 0 {
				cur.Line = t.Line
			}
			cur.Values = append(cur.Values, t.Value)
		case RowBreak:
			if len(cur.Values) > 0 {
				out = append(out, cur)
			}
			cur = Row{}
		}
	}
	if len(cur.Values) > 0 {
		out = append(out, cur)
	}
	return out
}
