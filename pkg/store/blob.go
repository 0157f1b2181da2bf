package store

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// compressSVG gzips the document text for BLOB storage. SVG is verbose XML;
// templates shrink to a fraction of their size.
func compressSVG(text string) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write([]byte(text)); err != nil {
		return nil, fmt.Errorf("store: compress svg: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("store: compress svg: %w", err)
	}
	return buf.Bytes(), nil
}

func decompressSVG(blob []byte) (string, error) {
	r, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return "", fmt.Errorf("store: decompress svg: %w", err)
	}
	defer r.Close()

	text, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("store: decompress svg: %w", err)
	}
	return string(text), nil
}
