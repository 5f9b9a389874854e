package pdf2text

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// DefaultEncoding is used for file sinks when no encoding is requested.
const DefaultEncoding = "utf-8"

// sink is a resolved output destination. A stdout sink has no closers and
// Close is a no-op; a file sink flushes the encoder and closes the file.
type sink struct {
	io.Writer
	closers []io.Closer
}

// Close releases the sink's file resources in flush order.
func (s *sink) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	s.closers = nil
	return first
}

// resolveFormat returns the effective output format: an explicit format wins,
// otherwise the output path extension decides, otherwise plain text.
func resolveFormat(format, output string) (string, error) {
	if format != "" {
		if !isValidFormat(format) {
			return "", fmt.Errorf("%w: %q", ErrInvalidFormat, format)
		}
		return strings.ToLower(format), nil
	}
	switch strings.ToLower(filepath.Ext(output)) {
	case ".htm", ".html":
		return FormatHTML, nil
	case ".xml":
		return FormatXML, nil
	case ".tag":
		return FormatTag, nil
	default:
		return FormatText, nil
	}
}

// resolveEncoder maps an IANA encoding name to an encoder.
// Returns nil for UTF-8, which needs no transformation.
func resolveEncoder(name string) (*encoding.Encoder, error) {
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return enc.NewEncoder(), nil
}

// encodingLabel names the encoding a sink writes, for markup declarations.
func encodingLabel(name string) string {
	if name == "" {
		return DefaultEncoding
	}
	return strings.ToLower(name)
}

// openSink resolves the output destination for a conversion. An empty output
// path selects stdout, which the pipeline never closes. The encoding is
// checked before any file is created; it only transforms file sinks.
func openSink(output, encodingName string, stdout io.Writer) (*sink, error) {
	enc, err := resolveEncoder(encodingName)
	if err != nil {
		return nil, err
	}
	if output == "" {
		return &sink{Writer: stdout}, nil
	}
	f, err := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePermissions) // #nosec G304 -- user-provided output path
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSinkCreate, output, err)
	}
	if enc == nil {
		return &sink{Writer: f, closers: []io.Closer{f}}, nil
	}
	tw := transform.NewWriter(f, enc)
	return &sink{Writer: tw, closers: []io.Closer{tw, f}}, nil
}
