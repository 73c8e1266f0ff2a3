package utils

import (
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultExtensions lists the image file extensions accepted when selecting images.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tiff", ".tif", ".webp"}

// HasExtension checks if the file name ends with one of the provided extensions.
// The comparison is case insensitive.
func HasExtension(fname string, extensions []string) bool {
	ext := filepath.Ext(fname)
	for _, ex := range extensions {
		if strings.EqualFold(ex, ext) {
			return true
		}
	}
	return false
}

// FilterExtensions returns the file names having one of the provided extensions, keeping their order.
func FilterExtensions(fnames []string, extensions []string) []string {
	res := make([]string, 0, len(fnames))
	for _, f := range fnames {
		if HasExtension(f, extensions) {
			res = append(res, f)
		}
	}
	return res
}

// OpenFolder opens the directory containing the file in the platform file browser.
func OpenFolder(fname string) error {
	dir, err := filepath.Abs(filepath.Dir(fname))
	if err != nil {
		return err
	}
	return exec.Command(openCommand(), dir).Start()
}

func openCommand() string {
	switch runtime.GOOS {
	case "windows":
		return "explorer"
	case "darwin":
		return "open"
	default:
		return "xdg-open"
	}
}
