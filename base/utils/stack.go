package utils

import (
	"bytes"
	"runtime"
)

// Stack returns a formatted stack trace of the calling goroutine with the
// first skip entries removed.
func Stack(skip int) []byte {
	buf := make([]byte, 64*1024)
	n := runtime.Stack(buf, false)
	buf = buf[:n]

	lines := bytes.Split(buf, []byte("\n"))
	if len(lines) == 0 {
		return buf
	}
	// first line is the goroutine header, every frame spans two lines
	drop := 1 + skip*2
	if drop >= len(lines) {
		return buf
	}
	out := [][]byte{lines[0]}
	out = append(out, lines[drop:]...)
	return bytes.Join(out, []byte("\n"))
}
