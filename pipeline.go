package rle565

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Extension is appended to the base name of each converted file.
const Extension = ".rle"

func (c *Converter) matches(file string) bool {
	ext := strings.ToLower(filepath.Ext(file))
	for _, e := range c.config.Extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

func (c *Converter) findImages(ctx context.Context, base, skip string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			// Don't descend into the output directory if it's below the input
			if info.Mode().IsDir() && file == skip {
				return filepath.SkipDir
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if file != base && info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() || !c.matches(file) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return ctx.Err()
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (c *Converter) conversionWorker(ctx context.Context, base, target string, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			// The walk may still hand out a file after cancellation
			if ctx.Err() != nil {
				return
			}

			rel, err := filepath.Rel(base, file)
			if err != nil {
				errc <- err
				return
			}

			out := filepath.Join(target, strings.TrimSuffix(rel, filepath.Ext(rel))+Extension)
			if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
				errc <- err
				return
			}

			if err := c.ConvertFile(file, out); err != nil {
				errc <- &FileError{File: file, Err: err}
				return
			}
		}
	}()
	return errc, nil
}

// waitForPipeline returns the first error from any stage, cancelling the
// rest. It only returns once every stage has finished.
func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	var first error
	for err := range mergeErrors(errs...) {
		if err != nil && first == nil {
			first = err
			cancel()
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// ConvertDir converts every matching image below in, writing the results to
// the same relative path below out with the extension replaced. The first
// failure stops the conversion; ConvertDir returns once any conversions
// already in progress have finished.
func (c *Converter) ConvertDir(ctx context.Context, in, out string) error {
	base, err := filepath.Abs(in)
	if err != nil {
		return err
	}

	target, err := filepath.Abs(out)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := c.findImages(ctx, base, target)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < c.config.Workers; i++ {
		errc, err := c.conversionWorker(ctx, base, target, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(cancelFunc, errcList...)
}
