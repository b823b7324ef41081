package parser

import (
	"errors"
	"strconv"
)

type Kind int

const (
	Number Kind = iota
	RowBreak
)

func (k Kind) String() string {
	if k == RowBreak {
		return "row-break"
	}
	return "number"
}

// Token is one scanned number or the end of a line that held numbers.
// Line is one-based.
type Token struct {
	Kind  Kind
	Value float64
	Line  int
}

// Tokenize scans text into numbers and row-break markers. Anything that
// cannot start a number is a separator. A sign or dot belongs to a number
// only when a digit follows it (so "-.4" and "+2.5" are single tokens). A
// RowBreak is emitted at every newline ending a line that produced numbers,
// and once more at end of input if the last line did.
func Tokenize(text string) []Token {
	var (
		toks  []Token
		line  = 1
		inRow bool
	)
	for i := 0; i < len(text); {
		c := text[i]
		if c == '\n' {
			if inRow {
				toks = append(toks, Token{Kind: RowBreak, Line: line})
				inRow = false
			}
			line++
			i++
			continue
		}
		end := scanNumber(text, i)
		if end == i {
			i++
			continue
		}
		v, err := strconv.ParseFloat(text[i:end], 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			i = end
			continue
		}
		toks = append(toks, Token{Kind: Number, Value: v, Line: line})
		inRow = true
		i = end
	}
	if inRow {
		toks = append(toks, Token{Kind: RowBreak, Line: line})
	}
	return toks
}

// scanNumber returns the end offset of the number starting at i, or i when
// no number starts there.
func scanNumber(s string, i int) int {
	j := i
	if j < len(s) && (s[j] == '+' || s[j] == '-') {
		j++
	}
	digits := 0
	for j < len(s) && isDigit(s[j]) {
		j++
		digits++
	}
	if j < len(s) && s[j] == '.' {
		k := j + 1
		frac := 0
		for k < len(s) && isDigit(s[k]) {
			k++
			frac++
		}
		if digits > 0 || frac > 0 {
			j = k
			digits += frac
		}
	}
	if digits == 0 {
		return i
	}
	if j < len(s) && (s[j] == 'e' || s[j] == 'E') {
		k := j + 1
		if k < len(s) && (s[k] == '+' || s[k] == '-') {
			k++
		}
		if k < len(s) && isDigit(s[k]) {
			for k < len(s) && isDigit(s[k]) {
				k++
			}
			j = k
		}
	}
	return j
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
