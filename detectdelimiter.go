package gwastrack

import (
	"bufio"
	"bytes"
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// sniffBytes is how much of a file is inspected when guessing its delimiter.
const sniffBytes = 64 * 1024

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file. If no delimiter can be
// detected, fallback is returned.
func DetermineDelimiter(r io.Reader, fallback rune) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	if len(delimiters) > 0 && len(delimiters[0]) > 0 {
		return rune(delimiters[0][0])
	}

	return fallback
}

// SniffDelimiter is DetermineDelimiter for a buffered stream. It only peeks,
// so the caller can still read br from the first byte.
func SniffDelimiter(br *bufio.Reader, fallback rune) rune {
	// Peek returns whatever is available along with io.EOF or
	// bufio.ErrBufferFull for short or long inputs; both are fine here.
	head, _ := br.Peek(sniffBytes)
	if len(head) == 0 {
		return fallback
	}

	// Drop a trailing partial line so it cannot skew the per-line counts.
	if i := bytes.LastIndexByte(head, '\n'); i > 0 {
		head = head[:i+1]
	}

	return DetermineDelimiter(bytes.NewReader(head), fallback)
}
