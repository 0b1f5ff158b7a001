/*
Package rle implements the RLE565 encoder.

An RLE565 stream is a flat sequence of four byte records with no header or
trailer. Each record holds a run length followed by a 5-6-5 packed color,
both stored as little-endian 16-bit values:

	+--------+--------+--------+--------+
	| count (uint16)  | color (uint16)  |
	+--------+--------+--------+--------+

A run is never empty and never longer than 65535 pixels; longer runs are
split across consecutive records of the same color. The stream does not
carry the image dimensions so the total pixel count is only recoverable by
summing the run lengths.
*/
package rle

import (
	"encoding/binary"
	"errors"

	"github.com/bodgit/rle565/image"
)

const (
	pixelSize  = 3
	recordSize = image.RecordSize
	maxRun     = 1<<16 - 1
)

// ErrCorrupt is returned when RLE565 data is not a whole number of valid
// records.
var ErrCorrupt = errors.New("rle: corrupt data")

// Record is a single run of identically colored pixels.
type Record struct {
	Count uint16
	Color uint16
}

// MarshalBinary encodes the record into its four byte form.
func (r Record) MarshalBinary() ([]byte, error) {
	b := make([]byte, recordSize)
	binary.LittleEndian.PutUint16(b[0:], r.Count)
	binary.LittleEndian.PutUint16(b[2:], r.Color)
	return b, nil
}

// UnmarshalBinary decodes the record from its four byte form.
func (r *Record) UnmarshalBinary(b []byte) error {
	if len(b) != recordSize {
		return ErrCorrupt
	}
	count := binary.LittleEndian.Uint16(b[0:])
	if count == 0 {
		return ErrCorrupt
	}
	r.Count = count
	r.Color = binary.LittleEndian.Uint16(b[2:])
	return nil
}

// Stats summarizes an encoded stream.
type Stats struct {
	// Records is the number of records written
	Records int
	// Pixels is the sum of all run lengths
	Pixels uint64
}

// Summarize returns the statistics for a sequence of records.
func Summarize(records []Record) Stats {
	s := Stats{Records: len(records)}
	for _, r := range records {
		s.Pixels += uint64(r.Count)
	}
	return s
}
