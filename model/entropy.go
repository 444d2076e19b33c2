package model

import "io"

// FallbackByte replaces a byte the random source failed to deliver. It is
// odd, so the affected cell starts dead.
const FallbackByte byte = 1

// randomByte draws a single byte from src, degrading to FallbackByte on any
// read failure, including a nil or exhausted source.
func randomByte(src io.Reader) byte {
	if src == nil {
		return FallbackByte
	}
	var buf [1]byte
	if _, err := io.ReadFull(src, buf[:]); err != nil {
		return FallbackByte
	}
	return buf[0]
}
