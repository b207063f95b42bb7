package logtail

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// blockSize is how far Read steps back from the end of the file per read.
var blockSize int64 = 32 << 10

// Read returns at most maxLines from the end of the file at path.
// A non-positive maxLines returns every line. A missing file is not an error;
// it simply has no lines yet.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	if maxLines <= 0 {
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return splitLines(data, 0), nil
	}

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat log: %w", err)
	}
	data, err := tailBytes(file, info.Size(), maxLines)
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return splitLines(data, maxLines), nil
}

// tailBytes reads backwards from size until it holds more than n newlines or
// reaches the start of the file. Only the tail of a rotated log is touched.
func tailBytes(r io.ReaderAt, size int64, n int) ([]byte, error) {
	var buf []byte
	off := size
	for off > 0 && bytes.Count(buf, []byte{'\n'}) <= n {
		step := blockSize
		if off < step {
			step = off
		}
		off -= step
		chunk := make([]byte, step, step+int64(len(buf)))
		if _, err := r.ReadAt(chunk, off); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		buf = append(chunk, buf...)
	}
	return buf, nil
}

// splitLines breaks data on newlines, dropping the final terminator and any
// carriage returns, and keeps the last n lines when n is positive.
func splitLines(data []byte, n int) []string {
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
