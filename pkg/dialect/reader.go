// Package dialect reads comma-delimited tabular data in the one dialect the
// tool consumes: fields are optionally wrapped in single quotes, a literal
// single quote inside a quoted field is written as two, and whitespace
// immediately following a delimiter is discarded. The stdlib csv reader
// hard-codes the double quote as its quote character and has no
// skip-initial-space option, so this package carries its own scanner.
package dialect

import (
	"bufio"
	"io"
	"strings"
)

const (
	delimiter = ','
	quote     = '\''
)

// Reader reads records from a delimited stream.
type Reader struct {
	r *bufio.Reader
}

// NewReader returns a Reader consuming from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Read returns the next record. At end of input it returns io.EOF.
// Quoted fields may contain delimiters and newlines.
func (r *Reader) Read() ([]string, error) {
	var (
		record   []string
		field    strings.Builder
		inQuotes bool
		started  bool // true once any byte of the current record was consumed
	)

	appendField := func() {
		record = append(record, field.String())
		field.Reset()
	}

	skipInitialSpace := func() error {
		for {
			c, err := r.r.ReadByte()
			if err != nil {
				return err
			}
			if c != ' ' && c != '\t' {
				return r.r.UnreadByte()
			}
		}
	}

	for {
		c, err := r.r.ReadByte()
		if err == io.EOF {
			if !started {
				return nil, io.EOF
			}
			appendField()
			return record, nil
		}
		if err != nil {
			return nil, err
		}
		started = true

		if inQuotes {
			if c != quote {
				field.WriteByte(c)
				continue
			}
			next, err := r.r.ReadByte()
			if err == io.EOF {
				inQuotes = false
				continue
			}
			if err != nil {
				return nil, err
			}
			if next == quote {
				// Doubled quote inside a quoted field.
				field.WriteByte(quote)
				continue
			}
			inQuotes = false
			if uerr := r.r.UnreadByte(); uerr != nil {
				return nil, uerr
			}
			continue
		}

		switch c {
		case quote:
			if field.Len() == 0 {
				// Opening quote is only recognized at the start of a field;
				// elsewhere it is literal data.
				inQuotes = true
			} else {
				field.WriteByte(c)
			}
		case delimiter:
			appendField()
			if err := skipInitialSpace(); err == io.EOF {
				appendField()
				return record, nil
			} else if err != nil {
				return nil, err
			}
		case '\n':
			appendField()
			return record, nil
		case '\r':
			next, err := r.r.ReadByte()
			if err == io.EOF {
				appendField()
				return record, nil
			}
			if err != nil {
				return nil, err
			}
			if next == '\n' {
				appendField()
				return record, nil
			}
			field.WriteByte('\r')
			if uerr := r.r.UnreadByte(); uerr != nil {
				return nil, uerr
			}
		default:
			field.WriteByte(c)
		}
	}
}
