package idf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnterminated is returned when the text ends inside a record.
var ErrUnterminated = errors.New("record is not terminated by ';'")

// Record is one instance statement.
type Record struct {
	Type   string
	Values []string
	// Line is the physical line the record starts on, counted from 1.
	Line int
}

// Scanner reads records from instance text one at a time.
type Scanner struct {
	lines  *bufio.Scanner
	line   int
	tokens []string
	buf    strings.Builder
	start  int
	queue  []Record
	rec    Record
	err    error
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Scanner{lines: lines}
}

// Scan advances to the next record, which is then available through Record.
// It returns false at the end of the input or on the first error.
func (s *Scanner) Scan() bool {
	for len(s.queue) == 0 {
		if s.err != nil {
			return false
		}
		if !s.lines.Scan() {
			s.finish()
			if len(s.queue) == 0 {
				return false
			}
			break
		}
		s.line++
		s.consume(s.lines.Text())
	}
	s.rec, s.queue = s.queue[0], s.queue[1:]
	return true
}

// Record returns the record read by the last successful Scan.
func (s *Scanner) Record() Record {
	return s.rec
}

// Err returns the first error met while scanning.
func (s *Scanner) Err() error {
	return s.err
}

func (s *Scanner) consume(line string) {
	if i := strings.IndexByte(line, '!'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	// Bytes, not runes: values in legacy encodings must pass through intact.
	for i := 0; i < len(line); i++ {
		c := line[i]
		if s.start == 0 && c != ' ' && c != '\t' {
			s.start = s.line
		}
		switch c {
		case ',':
			s.endToken()
		case ';':
			s.endToken()
			s.endRecord()
		default:
			s.buf.WriteByte(c)
		}
	}
}

func (s *Scanner) endToken() {
	s.tokens = append(s.tokens, strings.TrimSpace(s.buf.String()))
	s.buf.Reset()
}

func (s *Scanner) endRecord() {
	tokens, start := s.tokens, s.start
	s.tokens, s.start = nil, 0

	blank := true
	for _, t := range tokens {
		if t != "" {
			blank = false
			break
		}
	}
	if blank {
		return
	}
	s.queue = append(s.queue, Record{Type: tokens[0], Values: tokens[1:], Line: start})
}

// finish flushes state at end of input.
func (s *Scanner) finish() {
	if err := s.lines.Err(); err != nil {
		s.err = fmt.Errorf("reading line %d: %w", s.line+1, err)
		return
	}
	if strings.TrimSpace(s.buf.String()) != "" || len(s.tokens) > 0 {
		s.err = fmt.Errorf("line %d: %w", s.start, ErrUnterminated)
	}
}

// Parse reads every record of r.
func Parse(r io.Reader) ([]Record, error) {
	var out []Record
	sc := NewScanner(r)
	for sc.Scan() {
		out = append(out, sc.Record())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
