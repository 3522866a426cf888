package mewa

import (
	"strconv"
)

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	pageopt int
	stopopt string
)

// parsectx holds settings for a parser.
type parsectx struct {
	// page is the page size for streamed sources.
	page int
	// stop is a string containing the whitespace bytes that end an
	// expression.
	stop string
}

// PageSize sets the size of pages read from streamed sources. It has no
// effect on in-memory sources. Non-positive sizes select DefaultPageSize.
func PageSize(n int) ParseOption {
	return pageopt(n)
}

func (o pageopt) parseOption(p parsectx) parsectx {
	p.page = int(o)
	return p
}

// StopOn tells the parser to treat whitespace characters as ending an
// expression, the same as ;. Each rune must be an ASCII whitespace
// character. The usual choice is StopOn('\n') to parse separate lines as
// separate expressions.
//
// StopOn overrides the effect of any previous StopOn in the parsing options.
// With no arguments, StopOn produces the default behavior, which is that
// only ; ends an expression.
func StopOn(chars ...rune) ParseOption {
	v := make([]byte, 0, len(chars))
	for _, r := range chars {
		if r > 0x7f || !isSpace(byte(r)) {
			panic("mewa: cannot stop on " + strconv.QuoteRune(r))
		}
		if stopsOn(string(v), byte(r)) {
			continue
		}
		v = append(v, byte(r))
	}
	return stopopt(v)
}

func (o stopopt) parseOption(p parsectx) parsectx {
	p.stop = string(o)
	return p
}
