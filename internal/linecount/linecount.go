// Package linecount counts line terminators in byte streams.
package linecount

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"os"
)

// ChunkSize is the read size used by CountReader.
const ChunkSize = 64 * 1024

const (
	lo7 = 0x7f7f7f7f7f7f7f7f
	lo  = 0x0101010101010101
)

// CountLines returns the number of eol bytes in buf. Eight bytes are
// examined per step.
func CountLines(buf []byte, eol byte) uint64 {
	repeated := uint64(eol) * lo

	var count uint64
	i := 0
	for ; i+16 <= len(buf); i += 16 {
		u := binary.LittleEndian.Uint64(buf[i:]) ^ repeated
		v := binary.LittleEndian.Uint64(buf[i+8:]) ^ repeated
		count += zeroBytes(u) + zeroBytes(v)
	}
	for ; i < len(buf); i++ {
		if buf[i] == eol {
			count++
		}
	}
	return count
}

// zeroBytes counts the zero bytes of x. The high bit of each byte of y is
// set exactly when that byte of x is zero, with no carries between bytes.
func zeroBytes(x uint64) uint64 {
	y := (x & lo7) + lo7
	y = ^(y | x | lo7)
	return uint64(bits.OnesCount64(y))
}

// CountReader counts eol bytes until r is exhausted.
func CountReader(r io.Reader, eol byte) (uint64, error) {
	buf := make([]byte, ChunkSize)
	var count uint64
	for {
		n, err := r.Read(buf)
		count += CountLines(buf[:n], eol)
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return count, err
		}
	}
}

// CountFile counts the newlines of the file at path.
func CountFile(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count, err := CountReader(f, '\n')
	if err != nil {
		return count, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return count, nil
}
