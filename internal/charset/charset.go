// Package charset resolves which candidate text encoding decodes an
// uploaded payload, and encodes export output into a target encoding.
// Non-UTF-8 encodings are resolved by IANA name through golang.org/x/text.
package charset

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/csvadmin/csvadmin/internal/core"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Resolve tries candidate encodings in declared order and returns the
// name of the first one that decodes the payload without error, along
// with the decoded text. A UTF-8 BOM is stripped before testing.
// Deterministic: same payload and candidates, same result.
func Resolve(data []byte, candidates []string) (string, string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	if len(candidates) == 0 {
		return "", "", fmt.Errorf("%w: no candidate encodings", core.ErrEncoding)
	}

	for _, name := range candidates {
		text, err := decode(data, name)
		if err == nil {
			return name, text, nil
		}
	}

	return "", "", fmt.Errorf("%w: no candidate encoding decodes the payload (tried %s)",
		core.ErrEncoding, strings.Join(candidates, ", "))
}

// Encode converts text into the target encoding. Fails when a rune cannot
// be represented, so export never silently substitutes characters.
func Encode(text string, name string) ([]byte, error) {
	switch canonical(name) {
	case "ascii":
		for _, r := range text {
			if r >= 0x80 {
				return nil, fmt.Errorf("%w: %q not representable in ascii", core.ErrEncoding, r)
			}
		}
		return []byte(text), nil
	case "utf-8":
		return []byte(text), nil
	}

	enc, err := lookup(name)
	if err != nil {
		return nil, err
	}
	out, _, err := transform.Bytes(enc.NewEncoder(), []byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: value not representable in %s", core.ErrEncoding, name)
	}
	return out, nil
}

// decode attempts a single candidate. ASCII and UTF-8 are validated
// strictly; other encodings go through their x/text decoder, treating an
// emitted replacement character as a decode failure.
func decode(data []byte, name string) (string, error) {
	switch canonical(name) {
	case "ascii":
		for _, b := range data {
			if b >= 0x80 {
				return "", fmt.Errorf("byte 0x%02x is not ascii", b)
			}
		}
		return string(data), nil
	case "utf-8":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("invalid utf-8 sequence")
		}
		return string(data), nil
	}

	enc, err := lookup(name)
	if err != nil {
		return "", err
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", err
	}
	// x/text decoders substitute U+FFFD for undecodable bytes rather
	// than failing; surface that as a decode error unless the input
	// already contained the replacement character.
	if bytes.ContainsRune(out, utf8.RuneError) && !bytes.Contains(data, []byte(string(utf8.RuneError))) {
		return "", fmt.Errorf("payload is not valid %s", name)
	}
	return string(out), nil
}

func lookup(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: unknown encoding %q", core.ErrEncoding, name)
	}
	return enc, nil
}

// canonical normalizes encoding names for the strict built-in paths.
func canonical(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ascii", "us-ascii":
		return "ascii"
	case "utf-8", "utf8":
		return "utf-8"
	default:
		return strings.ToLower(strings.TrimSpace(name))
	}
}
