package lines

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/amp-labs/patience/closer"
	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// ErrUnknownCompression is returned for compression names that are not supported.
var ErrUnknownCompression = errors.New("unknown compression")

// Compression selects the stream format of a file.
type Compression string

const (
	// Auto picks the compression from the file extension.
	Auto   Compression = ""
	None   Compression = "none"
	Gzip   Compression = "gzip"
	Zstd   Compression = "zstd"
	LZ4    Compression = "lz4"
	Brotli Compression = "brotli"
)

// ParseCompression maps a user supplied name (or extension) to a Compression.
func ParseCompression(name string) (Compression, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".") {
	case "", "auto":
		return Auto, nil
	case "none", "plain":
		return None, nil
	case "gzip", "gz":
		return Gzip, nil
	case "zstd", "zst":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	case "brotli", "br":
		return Brotli, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
	}
}

// CompressionFor picks the compression implied by the extension of path.
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return Gzip
	case ".zst":
		return Zstd
	case ".lz4":
		return LZ4
	case ".br":
		return Brotli
	default:
		return None
	}
}

func resolve(path string, c Compression) Compression {
	if c == Auto {
		return CompressionFor(path)
	}

	return c
}

func isStdio(path string) bool {
	return path == "" || path == "-"
}

// readStack and writeStack close the codec before the file under it, once.
type readStack struct {
	io.Reader
	io.Closer
}

type writeStack struct {
	io.Writer
	io.Closer
}

func chain(codec io.Closer, codecName string, file io.Closer, path string) io.Closer {
	return closer.CloseOnce(closer.NewCloser().Add(codec, codecName).Add(file, path))
}

// NewReader wraps r in a decompressor for c. Auto and None read r as is.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case Auto, None:
		return io.NopCloser(r), nil
	case Gzip:
		return gzip.NewReader(r)
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}

		return dec.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case Brotli:
		return io.NopCloser(brotli.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, string(c))
	}
}

// NewWriter wraps w in a compressor for c. Closing the result flushes the
// compressor but leaves w open.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case Auto, None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		return zstd.NewWriter(w)
	case LZ4:
		return lz4.NewWriter(w), nil
	case Brotli:
		return brotli.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, string(c))
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// Open opens path for reading ("-" or "" is stdin) and decompresses it
// according to c.
func Open(path string, c Compression) (io.ReadCloser, error) {
	var file io.ReadCloser = io.NopCloser(os.Stdin)

	if !isStdio(path) {
		f, err := os.Open(path) // #nosec G304 -- reading user supplied input is the point
		if err != nil {
			return nil, err
		}

		file = f
	}

	dec, err := NewReader(file, resolve(path, c))
	if err != nil {
		_ = file.Close()

		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	return readStack{
		Reader:   dec,
		Closer: chain(dec, "decompressor", file, path),
	}, nil
}

// Create creates path for writing ("-" or "" is stdout) and compresses what
// is written according to c. Close must be called to flush the output.
func Create(path string, c Compression) (io.WriteCloser, error) {
	var file io.WriteCloser = nopWriteCloser{os.Stdout}

	if !isStdio(path) {
		f, err := os.Create(path) // #nosec G304 -- writing user supplied output is the point
		if err != nil {
			return nil, err
		}

		file = f
	}

	enc, err := NewWriter(file, resolve(path, c))
	if err != nil {
		_ = file.Close()

		return nil, fmt.Errorf("creating %s: %w", path, err)
	}

	return writeStack{
		Writer:   enc,
		Closer: chain(enc, "compressor", file, path),
	}, nil
}
