package execpath

import (
	"bytes"
	"errors"
	"io"
	"os"
)

// BinarySniffSize is the number of leading bytes inspected by IsBinary.
const BinarySniffSize = 1024

var pdfMagic = []byte("%PDF")

// IsBinary guesses whether path holds binary data. PDF documents count as
// binary; otherwise any NUL byte in the first BinarySniffSize bytes does. The
// check is a heuristic meant for diagnostics. Missing, unreadable and
// non-regular paths report false.
func IsBinary(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, BinarySniffSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false
	}
	return isBinaryContent(buf[:n])
}

func isBinaryContent(content []byte) bool {
	if bytes.HasPrefix(content, pdfMagic) {
		return true
	}
	return bytes.IndexByte(content, 0) >= 0
}
