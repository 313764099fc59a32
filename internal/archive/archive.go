// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/databinder/databinder/internal/platform"
)

// ErrUnsafeEntry is returned when an archive entry would be extracted outside
// the destination directory, or under a name the host cannot create.
var ErrUnsafeEntry = errors.New("unsafe archive entry")

// Zip writes every regular file below srcDir into a new archive at dstZip.
// Entries are named relative to srcDir, so the archive has no wrapping root
// folder. The parent directory of dstZip is created if missing.
func Zip(srcDir, dstZip string) (err error) {
	absSrc, err := filepath.Abs(srcDir)
	if err != nil {
		return fmt.Errorf("failed to resolve source directory: %w", err)
	}
	info, err := os.Stat(absSrc)
	if err != nil {
		return fmt.Errorf("failed to stat source directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("zip source %s is not a directory", absSrc)
	}

	if err = os.MkdirAll(filepath.Dir(dstZip), 0o755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	zipFile, err := os.Create(dstZip)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer func() {
		if closeErr := zipFile.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	zipWriter := zip.NewWriter(zipFile)
	defer func() {
		if closeErr := zipWriter.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	// WalkDir visits entries in lexical order, which keeps archives reproducible.
	walkErr := filepath.WalkDir(absSrc, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		relPath, relErr := filepath.Rel(absSrc, path)
		if relErr != nil {
			return fmt.Errorf("failed to get relative path: %w", relErr)
		}

		fileInfo, infoErr := d.Info()
		if infoErr != nil {
			return fmt.Errorf("failed to get file info: %w", infoErr)
		}
		header, headerErr := zip.FileInfoHeader(fileInfo)
		if headerErr != nil {
			return fmt.Errorf("failed to create file header: %w", headerErr)
		}
		header.Name = filepath.ToSlash(relPath)
		header.Method = zip.Deflate

		writer, writerErr := zipWriter.CreateHeader(header)
		if writerErr != nil {
			return fmt.Errorf("failed to create archive entry %s: %w", header.Name, writerErr)
		}
		return copyFileInto(writer, path)
	})
	if walkErr != nil {
		return fmt.Errorf("failed to archive %s: %w", absSrc, walkErr)
	}

	return nil
}

// Unzip extracts every entry of srcZip below dstDir. Existing files with the
// same relative path are overwritten, so unzipping several archives into one
// directory resolves collisions in favor of the last archive.
func Unzip(srcZip, dstDir string) (err error) {
	absDst, err := filepath.Abs(dstDir)
	if err != nil {
		return fmt.Errorf("failed to resolve destination directory: %w", err)
	}
	if err = os.MkdirAll(absDst, 0o755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	zipReader, err := zip.OpenReader(srcZip)
	if err != nil {
		return fmt.Errorf("failed to open archive %s: %w", srcZip, err)
	}
	defer func() {
		if closeErr := zipReader.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	for _, file := range zipReader.File {
		destPath := filepath.Join(absDst, filepath.FromSlash(file.Name))

		relPath, relErr := filepath.Rel(absDst, destPath)
		if relErr != nil || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
			return fmt.Errorf("%w: %s", ErrUnsafeEntry, file.Name)
		}
		if err = checkEntryName(runtime.GOOS, file.Name); err != nil {
			return err
		}

		if file.FileInfo().IsDir() {
			if mkdirErr := os.MkdirAll(destPath, 0o755); mkdirErr != nil {
				return fmt.Errorf("failed to create directory: %w", mkdirErr)
			}
			continue
		}

		if mkdirErr := os.MkdirAll(filepath.Dir(destPath), 0o755); mkdirErr != nil {
			return fmt.Errorf("failed to create parent directory: %w", mkdirErr)
		}
		if extractErr := extractFile(file, destPath); extractErr != nil {
			return fmt.Errorf("failed to extract %s: %w", file.Name, extractErr)
		}
	}

	return nil
}

// checkEntryName rejects entries Windows would silently map to a device.
func checkEntryName(goos, name string) error {
	if goos != "windows" {
		return nil
	}
	if segment := platform.ReservedSegment(name); segment != "" {
		return fmt.Errorf("%w: %s uses the reserved name %s", ErrUnsafeEntry, name, segment)
	}
	return nil
}

func copyFileInto(w io.Writer, path string) (err error) {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if _, err = io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to write file data: %w", err)
	}
	return nil
}

// extractFile extracts a single file from the archive, truncating any file
// already at destPath.
func extractFile(file *zip.File, destPath string) (err error) {
	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	mode := file.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := destFile.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	//nolint:gosec // G110: archives come from the build graph, not untrusted users
	_, err = io.Copy(destFile, rc)
	return err
}
