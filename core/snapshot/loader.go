package snapshot

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"change-sync/core/reconcile"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var (
	errInvalidUTF8 = errors.New("invalid UTF-8")
	errBinary      = errors.New("binary content (NUL byte)")
)

// Result is a loaded export together with the decoding that succeeded.
type Result struct {
	*reconcile.Source

	// Encoding names the decoding that produced Source.
	Encoding string

	// Fallback is set when the primary decoding failed and the
	// fallback decoding was used instead.
	Fallback bool

	// PrimaryErr is the failure that triggered the fallback, if any.
	PrimaryErr error
}

// Load reads a delimited export. The first row is the header.
//
// The content is first decoded as UTF-8 (a leading byte order mark is
// dropped). If that decoding or the CSV parse fails, the raw bytes are
// decoded once more with cfg.FallbackEncoding. Both failing wraps
// reconcile.ErrUnreadableFormat; content holding NUL bytes is never
// treated as text. A file with no rows at all wraps
// reconcile.ErrEmptySource.
func Load(path string, cfg Config) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", reconcile.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read export %s: %w", path, err)
	}

	result, err := Parse(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", path, err)
	}
	return result, nil
}

// Parse decodes and parses export content held in memory.
func Parse(data []byte, cfg Config) (*Result, error) {
	delim, err := delimiter(cfg.Delimiter)
	if err != nil {
		return nil, err
	}

	rows, primaryErr := parseUTF8(data, delim)
	result := &Result{Encoding: "utf-8"}

	if primaryErr != nil {
		name := cfg.FallbackEncoding
		if name == "" {
			name = "latin-1"
		}
		enc, err := lookupEncoding(name)
		if err != nil {
			return nil, err
		}

		rows, err = parseWith(enc, data, delim)
		if err != nil {
			return nil, fmt.Errorf("%w: utf-8: %v; %s: %v", reconcile.ErrUnreadableFormat, primaryErr, name, err)
		}
		result.Encoding = name
		result.Fallback = true
		result.PrimaryErr = primaryErr
	}

	if len(rows) == 0 {
		return nil, reconcile.ErrEmptySource
	}

	result.Source = &reconcile.Source{Header: rows[0], Rows: rows[1:]}
	return result, nil
}

func parseUTF8(data []byte, delim rune) ([][]string, error) {
	if !utf8.Valid(data) {
		return nil, errInvalidUTF8
	}
	return parseWith(unicode.UTF8BOM, data, delim)
}

func parseWith(enc encoding.Encoding, data []byte, delim rune) ([][]string, error) {
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, err
	}

	if bytes.IndexByte(decoded, 0) >= 0 {
		return nil, errBinary
	}

	r := csv.NewReader(bytes.NewReader(decoded))
	r.Comma = delim
	r.FieldsPerRecord = -1
	// Spreadsheet exports leave quotes inside unquoted fields as they are.
	r.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "latin-1", "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "iso-8859-15", "latin-9":
		return charmap.ISO8859_15, nil
	default:
		return nil, fmt.Errorf("unsupported fallback encoding %q", name)
	}
}

func delimiter(s string) (rune, error) {
	if s == "" {
		return ',', nil
	}
	if s == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	return r, nil
}
