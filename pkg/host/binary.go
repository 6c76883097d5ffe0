package host

import (
	"bytes"
	"io"
	"os"

	"gitlab.com/tozd/go/errors"
)

// sniffSize is how much of a file IsBinaryFile inspects.
const sniffSize = 512

// IsBinaryFile reports whether a file looks binary: its first bytes hold a
// NUL or more than 30% non-printable characters. Empty files are text.
func IsBinaryFile(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, errors.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	buffer := make([]byte, sniffSize)
	n, err := io.ReadFull(file, buffer)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, errors.Errorf("reading %s: %w", path, err)
	}
	return isBinaryContent(buffer[:n]), nil
}

func isBinaryContent(buffer []byte) bool {
	if len(buffer) == 0 {
		return false
	}
	if bytes.IndexByte(buffer, 0) >= 0 {
		return true
	}

	nonPrintable := 0
	for _, b := range buffer {
		if !isPrintable(b) {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(buffer)) > 0.3
}

// isPrintable treats ASCII text, common whitespace and any byte of a
// multi-byte UTF-8 sequence as printable.
func isPrintable(b byte) bool {
	return (b >= 32 && b <= 126) || b == '\n' || b == '\r' || b == '\t' || b >= 0x80
}
