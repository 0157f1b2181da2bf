package svgload

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// expandGzip transparently inflates svgz payloads. Plain documents pass
// through untouched; only the two-byte gzip magic triggers decoding.
func expandGzip(data []byte) ([]byte, error) {
	if len(data) < 2 || data[0] != 0x1f || data[1] != 0x8b {
		return data, nil
	}

	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("svg loader: decode svgz: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	out, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("svg loader: decode svgz: %w", err)
	}
	return out, nil
}
