// Package parser turns delimited source lines into weather records.
package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Phongsakorn0/Weather-data-processor/internal/domain"
)

const DefaultDelimiter = ","

// ErrShortRow is returned for a non-blank line that does not reach the
// last reading column.
var ErrShortRow = errors.New("parser: short row")

type Parser struct {
	delimiter string
	now       func() time.Time
}

type Option func(*Parser)

// WithDelimiter overrides the field separator.
func WithDelimiter(d string) Option {
	return func(p *Parser) {
		if d != "" {
			p.delimiter = d
		}
	}
}

// WithClock sets the source of capture timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

func New(opts ...Option) *Parser {
	p := &Parser{delimiter: DefaultDelimiter, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// ParseRow converts one line. A blank line yields a nil record and nil
// error. Fields that are not finite numbers (including NaN and Inf
// spellings) are set to zero and counted in coerced; the row is still
// returned.
func (p *Parser) ParseRow(line string) (rec *domain.Record, coerced int, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, 0, nil
	}

	cols := strings.Split(line, p.delimiter)
	need := domain.FirstFieldIndex + domain.FieldCount
	if len(cols) < need {
		return nil, 0, fmt.Errorf("%w: got %d fields, need %d", ErrShortRow, len(cols), need)
	}

	rec = &domain.Record{}
	for i, dst := range rec.Fields() {
		v, err := strconv.ParseFloat(strings.TrimSpace(cols[domain.FirstFieldIndex+i]), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			coerced++
			v = 0
		}
		*dst = v
	}
	rec.Timestamp = p.now().UTC().Format(time.RFC3339)
	return rec, coerced, nil
}
