// Package svgload implements the svg.Loader contract with file, fs.FS, and
// HTTP strategies. Construction helpers live in the top-level svgform package.
package svgload

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	pkgsvg "github.com/goliatone/go-svgform/pkg/svg"
)

// Loader delegates to the strategy matching the source kind.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

// Ensure the implementation satisfies the public interface.
var _ pkgsvg.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options pkgsvg.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load fetches a document from the provided source and wraps it in a
// svg.Document.
func (l *Loader) Load(ctx context.Context, src pkgsvg.Source) (pkgsvg.Document, error) {
	if src == nil {
		return pkgsvg.Document{}, errors.New("svg loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case pkgsvg.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case pkgsvg.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case pkgsvg.SourceKindURL:
		if !l.allowHTTP {
			return pkgsvg.Document{}, errors.New("svg loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = errors.New("svg loader: unsupported source kind")
	}
	if err != nil {
		return pkgsvg.Document{}, err
	}

	data, err = expandGzip(data)
	if err != nil {
		return pkgsvg.Document{}, err
	}

	return pkgsvg.NewDocument(src, data)
}
