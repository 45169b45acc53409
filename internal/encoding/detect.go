// Package encoding turns text of unknown encoding into UTF-8. CSV exports from
// banks often carry a BOM or a legacy single-byte encoding; the data file is
// read strictly.
package encoding

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffLen = 4096

// ErrInvalidUTF8 is returned by ReadUTF8 for input that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NewUTF8Reader returns a reader producing UTF-8.
//
// Detection order:
//  1. BOM: UTF-8 BOM is dropped, UTF-16 LE/BE is decoded
//  2. Valid UTF-8 passes through
//  3. chardet heuristics
//  4. Windows-1252
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if ur, ok := fromBOM(br, head); ok {
		return ur, nil
	}

	if utf8.Valid(trimPartialRune(head)) {
		return br, nil
	}

	if result, err := chardet.NewTextDetector().DetectBest(head); err == nil {
		switch result.Charset {
		case "UTF-8":
			return br, nil
		case "ISO-8859-9":
			return transform.NewReader(br, charmap.ISO8859_9.NewDecoder()), nil
		case "ISO-8859-15":
			return transform.NewReader(br, charmap.ISO8859_15.NewDecoder()), nil
		}
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
}

// ReadAll decodes everything in r to UTF-8.
func ReadAll(r io.Reader) ([]byte, error) {
	utf8r, err := NewUTF8Reader(r)
	if err != nil {
		return nil, err
	}

	b, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	return b, nil
}

// ReadUTF8 reads text that must already be Unicode. A BOM is honoured, but
// bytes that are not valid UTF-8 fail with ErrInvalidUTF8 instead of being
// guessed as another charset.
func ReadUTF8(r io.Reader) ([]byte, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	head, err := br.Peek(len(bomUTF8))
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	var src io.Reader = br
	if ur, ok := fromBOM(br, head); ok {
		src = ur
	}

	b, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if !utf8.Valid(b) {
		return nil, ErrInvalidUTF8
	}

	return b, nil
}

func fromBOM(br *bufio.Reader, head []byte) (io.Reader, bool) {
	switch {
	case bytes.HasPrefix(head, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, true
	case bytes.HasPrefix(head, bomUTF16LE):
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), true
	case bytes.HasPrefix(head, bomUTF16BE):
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), true
	}

	return nil, false
}

// trimPartialRune drops a multi-byte rune cut off at the end of the sniffed
// window so that valid UTF-8 is not misreported.
func trimPartialRune(b []byte) []byte {
	if len(b) < sniffLen {
		return b
	}

	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		if utf8.RuneStart(b[len(b)-i]) {
			if !utf8.FullRune(b[len(b)-i:]) {
				return b[:len(b)-i]
			}

			break
		}
	}

	return b
}
