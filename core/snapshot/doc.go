// Package snapshot loads the authoritative source export: a delimited text
// file whose first row is the header.
//
// Exports produced by spreadsheet tools are not always UTF-8. Load tries
// strict UTF-8 first and retries once with a configurable single-byte
// fallback (latin-1 by default) through golang.org/x/text. The fallback is
// best effort: it always decodes, but the text is only right if the export
// really used that encoding.
package snapshot
