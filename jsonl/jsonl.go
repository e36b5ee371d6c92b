// Package jsonl persists reviews and tag votes as JSONL files.
package jsonl

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// maxLineSize is the maximum size for a single JSONL line (1MB).
const maxLineSize = 1024 * 1024

// ErrRecordTooLarge is returned when a record does not fit on one line.
var ErrRecordTooLarge = errors.New("jsonl: record exceeds 1MB line limit")

// encodeLine marshals r and rejects lines that readAll could not scan back.
func encodeLine[T any](r T) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	if len(data) >= maxLineSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrRecordTooLarge, len(data))
	}
	return append(data, '\n'), nil
}

// readAll decodes every non-blank line of path. A missing file yields no
// records and no error.
func readAll[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var records []T
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var r T
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		records = append(records, r)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// appendOne appends r to path, creating parent directories if needed.
func appendOne[T any](path string, r T) error {
	data, err := encodeLine(r)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(data)
	return err
}

// writeAll replaces the contents of path with records. The new file is
// written next to the old one and renamed into place. Nothing is written if
// any record is too large.
func writeAll[T any](path string, records []T) error {
	lines := make([][]byte, len(records))
	for i, r := range records {
		data, err := encodeLine(r)
		if err != nil {
			return err
		}
		lines[i] = data
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	w := bufio.NewWriter(f)
	for _, line := range lines {
		w.Write(line)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}
