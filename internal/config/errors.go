package config

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	ErrFileNotFound      = errors.New("config file not found")
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrInvalidValue wraps every failure of Config.Validate.
	ErrInvalidValue = errors.New("invalid config value")

	ErrWatcherClosed = errors.New("watcher closed")
)

// ParseError is a file that could not be decoded. Line and Column are
// 1-based and zero when the decoder gave no position. Key names the
// offending setting for unknown keys.
type ParseError struct {
	Path   string
	Format Format
	Line   int
	Column int
	Key    string
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.Path)
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
		if e.Column > 0 {
			fmt.Fprintf(&b, ":%d", e.Column)
		}
	}
	if e.Key != "" {
		fmt.Fprintf(&b, ": unknown key %s", e.Key)
		return b.String()
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

// newParseError extracts the position the decoders report. Of several
// unknown keys only the first is located.
func newParseError(source string, format Format, err error) *ParseError {
	pe := &ParseError{Path: source, Format: format, Err: err}

	var (
		decodeErr *toml.DecodeError
		strictErr *toml.StrictMissingError
		typeErr   *yaml.TypeError
	)
	switch {
	case errors.As(err, &strictErr) && len(strictErr.Errors) > 0:
		first := strictErr.Errors[0]
		pe.Line, pe.Column = first.Position()
		pe.Key = strings.Join(first.Key(), ".")
	case errors.As(err, &decodeErr):
		pe.Line, pe.Column = decodeErr.Position()
	case errors.As(err, &typeErr) && len(typeErr.Errors) > 0:
		pe.Line = lineOf(typeErr.Errors[0])
		if field, ok := unknownYAMLField(typeErr.Errors[0]); ok {
			pe.Key = field
		}
	default:
		pe.Line = lineOf(err.Error())
	}
	return pe
}

func lineOf(msg string) int {
	m := yamlLine.FindStringSubmatch(msg)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// unknownYAMLField reads the field name out of yaml.v3's
// "line N: field X not found in type T".
func unknownYAMLField(msg string) (string, bool) {
	_, rest, ok := strings.Cut(msg, ": field ")
	if !ok {
		return "", false
	}
	name, _, ok := strings.Cut(rest, " not found in type ")
	return name, ok
}

// invalid reports a bad value for the setting at path.
func invalid(path string, value any, reason string) error {
	return fmt.Errorf("%s = %v: %w: %s", path, value, ErrInvalidValue, reason)
}
