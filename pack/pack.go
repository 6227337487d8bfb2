// Package pack bundles the outputs of a harvest into deliverable archives.
package pack

import (
	"archive/zip"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/harvest"
)

// Archive describes a written archive.
type Archive struct {
	Path  string
	Files int
	Bytes int64
}

// ZipName returns the file name of the PDF archive for a description.
func ZipName(description string) string {
	return fmt.Sprintf("Zeus_%s_pdf_files.zip", description)
}

// WARCName returns the file name of the combined WARC for a description.
func WARCName(description string) string {
	return fmt.Sprintf("Zeus_%s_warc_combined.warc.gz", description)
}

// ZipPDFs writes every *.pdf in dir into a deflated zip archive in outDir.
// Entries are stored under their base names.
func ZipPDFs(ctx context.Context, dir, description, outDir string) (*Archive, error) {
	names, err := list(dir, ".pdf")
	if err != nil {
		return nil, err
	}

	path := filepath.Join(outDir, ZipName(description))
	a := &Archive{Path: path}
	err = writeAtomic(path, func(w io.Writer) error {
		zw := zip.NewWriter(w)
		for _, name := range names {
			if err := ctx.Err(); err != nil {
				return err
			}
			n, err := addZipEntry(zw, filepath.Join(dir, name), name)
			if err != nil {
				return fmt.Errorf("adding %s: %w", name, err)
			}
			a.Files++
			a.Bytes += n
		}
		return zw.Close()
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func addZipEntry(zw *zip.Writer, path, name string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return 0, err
	}
	hdr.Name = name
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return 0, err
	}
	return io.Copy(w, f)
}

// CombineWARCs concatenates every *.warc in dir into a single .warc.gz in
// outDir. Each input becomes its own gzip member, so the result stays
// readable by tools that seek to individual files.
func CombineWARCs(ctx context.Context, dir, description, outDir string) (*Archive, error) {
	names, err := list(dir, ".warc")
	if err != nil {
		return nil, err
	}

	path := filepath.Join(outDir, WARCName(description))
	a := &Archive{Path: path}
	err = writeAtomic(path, func(w io.Writer) error {
		for _, name := range names {
			if err := ctx.Err(); err != nil {
				return err
			}
			n, err := appendMember(w, filepath.Join(dir, name))
			if err != nil {
				return fmt.Errorf("adding %s: %w", name, err)
			}
			a.Files++
			a.Bytes += n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func appendMember(w io.Writer, path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	gz := gzip.NewWriter(w)
	gz.Name = filepath.Base(path)
	n, err := io.Copy(gz, f)
	if err != nil {
		return 0, err
	}
	if err := gz.Close(); err != nil {
		return 0, err
	}
	return n, nil
}

// list returns the sorted names of regular files in dir with the extension.
func list(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, harvest.Errorf(harvest.ENOTFOUND, "directory %s does not exist", dir)
	} else if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.EqualFold(filepath.Ext(e.Name()), ext) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, harvest.Errorf(harvest.ENOTFOUND, "no %s files in %s", ext, dir)
	}
	sort.Strings(names)
	return names, nil
}

// writeAtomic streams into a temporary file beside path and renames it into
// place once fill succeeds.
func writeAtomic(path string, fill func(w io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := fill(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
