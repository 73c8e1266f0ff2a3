package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// WalkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each supported image file to a new channel,
// in lexical order. It finishes in case the done channel is getting closed.
func WalkDir(
	done <-chan struct{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() || !HasExtension(d.Name(), srcExts) {
				return nil
			}

			select {
			case <-done:
				return errors.New("directory walk cancelled")
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}

// CollectImages expands the sources into a flat, ordered list of image locations.
// Directories are walked recursively and glob patterns are expanded, keeping only
// the files with a supported extension. Regular files and URLs are kept as they are.
func CollectImages(sources []string, exts []string) ([]string, error) {
	var res []string

	for _, src := range sources {
		if IsValidUrl(src) {
			res = append(res, src)
			continue
		}
		fi, err := os.Stat(src)
		if err != nil {
			matches, gerr := filepath.Glob(src)
			if gerr != nil || len(matches) == 0 {
				return nil, fmt.Errorf("unable to find the source %s: %w", src, err)
			}
			sort.Strings(matches)
			res = append(res, FilterExtensions(matches, exts)...)
			continue
		}
		if !fi.IsDir() {
			res = append(res, src)
			continue
		}

		done := make(chan struct{})
		paths, errc := WalkDir(done, src, exts)
		for path := range paths {
			res = append(res, path)
		}
		close(done)

		if err := <-errc; err != nil {
			return nil, fmt.Errorf("unable to read the directory %s: %w", src, err)
		}
	}
	return res, nil
}
