// Compression handling for slow-query log input.
package parser

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
)

// ErrCompressionFailed indicates a failure reading compressed content.
var ErrCompressionFailed = errors.New("failed to read compressed file")

// decompressReader wraps file with the codec implied by the filename
// suffix. Plain files pass through untouched with a nil closer.
func decompressReader(file io.Reader, filename string) (io.Reader, io.Closer, error) {
	lowerName := strings.ToLower(filename)

	switch {
	case strings.HasSuffix(lowerName, ".gz"):
		gr, err := newParallelGzipReader(file)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: gzip %s: %v", ErrCompressionFailed, filename, err)
		}
		return gr, gr, nil

	case strings.HasSuffix(lowerName, ".zst"), strings.HasSuffix(lowerName, ".zstd"):
		zr, err := newZstdDecoder(file)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: zstd %s: %v", ErrCompressionFailed, filename, err)
		}
		return zr, zr, nil
	}

	return file, nil, nil
}

// newParallelGzipReader returns a pgzip reader configured for parallel decompression.
func newParallelGzipReader(r io.Reader) (*pgzip.Reader, error) {
	threads := runtime.GOMAXPROCS(0)
	if threads < 1 {
		threads = 1
	}
	if threads > 8 {
		threads = 8 // cap to avoid excessive goroutine churn on large hosts
	}

	const blockSize = 1 << 20 // 1 MiB blocks balance throughput and memory usage
	return pgzip.NewReaderN(r, blockSize, threads)
}

type zstdReadCloser struct {
	*zstd.Decoder
}

func (z *zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// newZstdDecoder returns a zstd decoder configured for streaming decompression.
func newZstdDecoder(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return &zstdReadCloser{Decoder: dec}, nil
}
