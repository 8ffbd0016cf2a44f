// Package utils holds small path helpers shared by the driver.
package utils

import (
	"path/filepath"
	"strings"

	"github.com/beatlang/beatc/internal/config"
)

// ModuleName derives a module name from a source path: its base
// filename with the recognized source extension stripped. Used as
// the LLVM module's source_filename.
func ModuleName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, config.SourceFileExt)
}

// DefaultObjectPath derives the default -o path for srcPath: its
// source extension replaced by ".o".
func DefaultObjectPath(srcPath string) string {
	trimmed := strings.TrimSuffix(srcPath, config.SourceFileExt)
	if trimmed == srcPath {
		trimmed = strings.TrimSuffix(srcPath, filepath.Ext(srcPath))
	}
	return trimmed + ".o"
}
