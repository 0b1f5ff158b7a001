package rle565

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/ulikunitz/xz"
	filetype "gopkg.in/h2non/filetype.v1"
	"gopkg.in/h2non/filetype.v1/matchers"
)

// open returns a reader for the image held in b, transparently unpacking a
// single layer of xz, gzip or bzip2 compression.
func open(b []byte, logger hclog.Logger) (io.Reader, error) {
	t, _ := filetype.Match(b)

	r := bytes.NewReader(b)

	switch t {
	case matchers.TypeXz:
		logger.Debug("input is xz compressed")
		return xz.NewReader(r)
	case matchers.TypeGz:
		logger.Debug("input is gzip compressed")
		return gzip.NewReader(r)
	case matchers.TypeBz2:
		logger.Debug("input is bzip2 compressed")
		return bzip2.NewReader(r), nil
	default:
		if !filetype.IsImage(b) {
			logger.Warn("input does not look like an image", "type", t.MIME.Value)
		}
		return r, nil
	}
}
