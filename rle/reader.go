package rle

import (
	"io"

	"github.com/pkg/errors"
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.ErrUnexpectedEOF {
		err = ErrCorrupt
	}
	return err
}

// ReadRecords reads every record from r. It does not expand the records back
// into pixels.
func ReadRecords(r io.Reader) ([]Record, error) {
	var (
		records []Record
		tmp     [recordSize]byte
	)
	for {
		if err := readFull(r, tmp[:]); err != nil {
			if err == io.EOF {
				return records, nil
			}
			return nil, errors.WithStack(err)
		}

		var rec Record
		if err := rec.UnmarshalBinary(tmp[:]); err != nil {
			return nil, errors.WithStack(err)
		}
		records = append(records, rec)
	}
}
