package batch

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// zipPaths packages the given files and directories into a zip archive.
// Plain files go in under their base name; directories are walked recursively
// and stored relative to their parent, so "stem_images/page-001.png" keeps its
// folder in the archive.
func zipPaths(paths []string, zipPath string) error {
	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer out.Close()

	w := zip.NewWriter(out)
	defer w.Close()

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if info.IsDir() {
			base := filepath.Dir(p)
			err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil || d.IsDir() {
					return err
				}
				rel, err := filepath.Rel(base, path)
				if err != nil {
					return err
				}
				return addFile(w, path, filepath.ToSlash(rel))
			})
			if err != nil {
				return fmt.Errorf("failed to archive %s: %w", p, err)
			}
			continue
		}
		if err := addFile(w, p, filepath.Base(p)); err != nil {
			return fmt.Errorf("failed to archive %s: %w", p, err)
		}
	}
	return nil
}

func addFile(w *zip.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	entry, err := w.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(entry, f)
	return err
}
