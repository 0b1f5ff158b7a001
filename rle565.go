/*
Package rle565 converts images into the RLE565 format used by low-memory
display hardware.

Conversion is a strict chain of stages; the input is decoded to RGBA8888,
optionally reduced to fewer colors, stripped of its alpha channel to RGB888
and finally run-length encoded with 5-6-5 packed colors. The first stage to
fail stops the chain and is reported as a *StageError.
*/
package rle565

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/bodgit/rle565/image"
	"github.com/bodgit/rle565/rle"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
)

// Converter runs the conversion pipeline.
type Converter struct {
	config *Config
	cache  *Cache
	logger hclog.Logger
}

// New returns a Converter using the given configuration and logger. A nil
// config uses DefaultConfig and a nil logger discards all output.
func New(config *Config, logger hclog.Logger) (*Converter, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	c := &Converter{
		config: config,
		logger: logger,
	}

	if config.Cache != "" {
		cache, err := NewCache(config.Cache)
		if err != nil {
			return nil, errors.Wrap(err, "unable to open cache")
		}
		c.cache = cache
	}

	return c, nil
}

// Close releases any resources held by the Converter.
func (c *Converter) Close() error {
	if c.cache != nil {
		return c.cache.Close()
	}
	return nil
}

// Result is a converted image.
type Result struct {
	*image.Image
	Stats rle.Stats
}

func (c *Converter) convert(b []byte, logger hclog.Logger) (*Result, error) {
	r, err := open(b, logger)
	if err != nil {
		return nil, stageError(StageOpen, err)
	}

	m, err := image.Decode(r)
	if err != nil {
		return nil, stageError(StageDecode, err)
	}
	logger.Debug("decoded image", "width", m.Width, "height", m.Height)

	if c.config.Colors > 0 {
		if m, err = reduce(m, c.config.Colors); err != nil {
			return nil, stageError(StageReduce, err)
		}
		logger.Debug("reduced colors", "colors", c.config.Colors)
	}

	rgb, err := image.ToRGB(m)
	if err != nil {
		return nil, stageError(StageConvert, err)
	}

	o, stats, err := rle.EncodeImage(rgb, c.config.Limit)
	if err != nil {
		return nil, stageError(StageEncode, err)
	}
	logger.Debug("encoded image", "records", stats.Records, "pixels", stats.Pixels, "bytes", o.Size)

	return &Result{o, stats}, nil
}

// Convert reads an encoded image from r and returns it as RLE565.
func (c *Converter) Convert(r io.Reader) (*Result, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, stageError(StageRead, err)
	}
	return c.convert(b, c.logger)
}

func hash(b []byte) string {
	return fmt.Sprintf("%X", sha1.Sum(b))
}

func (c *Converter) cached(b []byte, logger hclog.Logger) (*Result, error) {
	if c.cache == nil {
		return c.convert(b, logger)
	}

	sha := hash(b)

	e, err := c.cache.Find(sha, c.config.Colors)
	if err != nil {
		logger.Warn("cache lookup failed", "error", err)
	}
	if e != nil && (c.config.Limit == 0 || len(e.Data) <= c.config.Limit) {
		m, err := image.NewRLE(e.Data, e.Width, e.Height)
		if err == nil {
			logger.Debug("using cached conversion", "sha1", sha)
			records, err := rle.ReadRecords(bytes.NewReader(e.Data))
			if err == nil {
				return &Result{m, rle.Summarize(records)}, nil
			}
		}
		logger.Warn("ignoring corrupt cache entry", "sha1", sha)
	}

	res, err := c.convert(b, logger)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Add(sha, c.config.Colors, &Entry{Width: res.Width, Height: res.Height, Data: res.Bytes()}); err != nil {
		logger.Warn("unable to update cache", "error", err)
	}

	return res, nil
}

// ConvertFile converts the image at in and writes the RLE565 result to out.
// Nothing is written if any stage fails.
func (c *Converter) ConvertFile(in, out string) error {
	logger := c.logger.With("input", in)

	b, err := ioutil.ReadFile(in)
	if err != nil {
		return stageError(StageRead, err)
	}

	res, err := c.cached(b, logger)
	if err != nil {
		return err
	}

	if err := ioutil.WriteFile(out, res.Bytes(), 0644); err != nil {
		return stageError(StageWrite, err)
	}
	logger.Info("converted image", "output", out, "records", res.Stats.Records, "pixels", res.Stats.Pixels)

	return nil
}
