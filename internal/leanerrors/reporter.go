package leanerrors

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

type ErrReporter interface {
	ReportPanic(err error)
	ReportError(err error)
}

type reporterOpts struct {
	name    string
	lines   []string
	prefix  string
	excerpt bool
}

type ReporterOption func(*reporterOpts)

// WithSource sets the file name and text used to render excerpts.
func WithSource(name, source string) ReporterOption {
	return func(opts *reporterOpts) {
		opts.name = name
		opts.lines = strings.Split(source, "\n")
	}
}

func WithPrefix(prefix string) ReporterOption {
	return func(opts *reporterOpts) {
		opts.prefix = prefix
	}
}

func WithExcerpt(excerpt bool) ReporterOption {
	return func(opts *reporterOpts) {
		opts.excerpt = excerpt
	}
}

type errReporter struct {
	w    io.Writer
	opts reporterOpts
}

func NewErrReporter(w io.Writer, options ...ReporterOption) *errReporter {
	opts := reporterOpts{prefix: "ERROR", excerpt: true}
	for _, opt := range options {
		opt(&opts)
	}
	return &errReporter{w: w, opts: opts}
}

// ReportPanic implements ErrReporter.
func (e *errReporter) ReportPanic(err error) {
	DefaultReportPanic(e.w, err)
}

// ReportError implements ErrReporter.
func (e *errReporter) ReportError(err error) {
	for _, leaf := range Split(err) {
		e.reportOne(leaf)
	}
}

func (e *errReporter) reportOne(err error) {
	where := ""
	if e.opts.name != "" {
		where = e.opts.name + ":"
	}
	fmt.Fprintf(e.w, "%s %s%v\n", e.opts.prefix, where, err)

	if !e.opts.excerpt {
		return
	}
	line, pos, ok := Location(err)
	if !ok || line == 0 || line > uint(len(e.opts.lines)) {
		return
	}

	text := strings.TrimRight(e.opts.lines[line-1], "\r")
	fmt.Fprintf(e.w, "    %s\n", text)
	fmt.Fprintf(e.w, "    %s^\n", caretIndent(text, pos))
}

// caretIndent keeps tabs so the caret lines up under the source text.
func caretIndent(text string, pos uint) string {
	width := uint(utf8.RuneCountInString(text))
	if pos > width {
		pos = width
	}

	indent := new(strings.Builder)
	for i, r := range []rune(text) {
		if uint(i) >= pos {
			break
		}
		if r == '\t' {
			_, _ = indent.WriteRune('\t')
		} else {
			_, _ = indent.WriteRune(' ')
		}
	}
	return indent.String()
}

// DefaultReportPanic is the default implementation of ErrReporter.ReportPanic.
func DefaultReportPanic(w io.Writer, err error) {
	fmt.Fprintf(w, "FATAL %v\n", err)
}

// DefaultReportError is the default implementation of ErrReporter.ReportError.
func DefaultReportError(w io.Writer, err error) {
	fmt.Fprintf(w, "ERROR %v\n", err)
}

var _ ErrReporter = (*errReporter)(nil)
