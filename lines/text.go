// Package lines reads and writes newline separated text files for the
// patience tools, with transparent compression and charset normalisation.
package lines

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"iter"
	"strings"
	"unicode/utf8"

	perrors "github.com/amp-labs/patience/errors"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

// Info describes how input text was decoded.
type Info struct {
	// Charset is the encoding the input was read as ("utf-8" when no
	// conversion was needed).
	Charset string
	// Detected is true when Charset came from detection rather than a hint.
	Detected bool
	// Lines is the number of lines read.
	Lines int
}

// ReadOptions configure Read.
type ReadOptions struct {
	// Charset is the input encoding, for example "windows-1252". When empty,
	// input that is not valid UTF-8 has its encoding detected.
	Charset string
}

// ReadOption is a functional option for Read.
type ReadOption func(*ReadOptions)

// WithCharset sets the input encoding instead of detecting it.
func WithCharset(label string) ReadOption {
	return func(o *ReadOptions) {
		o.Charset = label
	}
}

// Read reads all of r and splits it into lines. Line terminators ("\n" or
// "\r\n") are removed. A final line without a terminator is kept; a trailing
// terminator does not produce an empty last line.
func Read(r io.Reader, opts ...ReadOption) ([]string, Info, error) {
	var options ReadOptions
	for _, opt := range opts {
		opt(&options)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, Info{}, err
	}

	text, info, err := toUTF8(raw, options.Charset)
	if err != nil {
		return nil, Info{}, err
	}

	out := Split(text)
	info.Lines = len(out)

	return out, info, nil
}

// Split breaks text into lines following the rules of Read.
func Split(text string) []string {
	if text == "" {
		return nil
	}

	text = strings.TrimSuffix(text, "\n")
	out := strings.Split(text, "\n")

	for i, line := range out {
		out[i] = strings.TrimSuffix(line, "\r")
	}

	return out
}

// toUTF8 converts raw to UTF-8, using label when given and detection when the
// input is not already valid UTF-8.
func toUTF8(raw []byte, label string) (string, Info, error) {
	if label == "" {
		if utf8.Valid(raw) {
			return string(raw), Info{Charset: "utf-8"}, nil
		}

		best, err := chardet.NewTextDetector().DetectBest(raw)
		if err != nil {
			return "", Info{}, fmt.Errorf("%w: cannot detect charset: %w", perrors.ErrInvalidInput, err)
		}

		text, err := decode(raw, best.Charset)
		if err != nil {
			return "", Info{}, err
		}

		return text, Info{Charset: strings.ToLower(best.Charset), Detected: true}, nil
	}

	text, err := decode(raw, label)
	if err != nil {
		return "", Info{}, err
	}

	return text, Info{Charset: strings.ToLower(label)}, nil
}

func decode(raw []byte, label string) (string, error) {
	rdr, err := charset.NewReaderLabel(label, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: charset %q: %w", perrors.ErrInvalidInput, label, err)
	}

	out, err := io.ReadAll(rdr)
	if err != nil {
		return "", fmt.Errorf("%w: decoding %s: %w", perrors.ErrInvalidInput, label, err)
	}

	return string(out), nil
}

// Write writes every line of seq to w followed by "\n".
func Write(w io.Writer, seq iter.Seq[string]) (int, error) {
	bw := bufio.NewWriter(w)
	count := 0

	for line := range seq {
		if _, err := bw.WriteString(line); err != nil {
			return count, err
		}

		if err := bw.WriteByte('\n'); err != nil {
			return count, err
		}

		count++
	}

	return count, bw.Flush()
}
