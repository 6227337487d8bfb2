package fs

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/harvest"
)

// LinksHeader is the single column header of a links file.
const LinksHeader = "link"

// Ensure LinkFile implements harvest.LinkWriter and harvest.LinkReader at compile time.
var (
	_ harvest.LinkWriter = (*LinkFile)(nil)
	_ harvest.LinkReader = (*LinkFile)(nil)
)

// LinkFile stores links as a one-column CSV file.
type LinkFile struct {
	Path string
}

// NewLinkFile returns a LinkFile at path.
func NewLinkFile(path string) *LinkFile {
	return &LinkFile{Path: path}
}

// WriteLinks replaces the file with the header followed by one link per row.
// The file is written to path.tmp first and renamed into place, so readers
// never observe a partial file.
func (f *LinkFile) WriteLinks(ctx context.Context, links []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0755); err != nil {
		return err
	}

	tmp := f.Path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return err
	}

	w := csv.NewWriter(file)
	_ = w.Write([]string{LinksHeader})
	for _, link := range links {
		_ = w.Write([]string{link})
	}
	w.Flush()

	if err := errors.Join(w.Error(), file.Close()); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", f.Path, err)
	}
	return os.Rename(tmp, f.Path)
}

// ReadLinks returns the links stored in the file, skipping the header and
// empty rows. A missing file is ENOTFOUND.
func (f *LinkFile) ReadLinks(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, harvest.Errorf(harvest.ENOTFOUND, "links file %s not found", f.Path)
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	var links []string
	for first := true; ; first = false {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, harvest.Errorf(harvest.EINVALID, "reading %s: %v", f.Path, err)
		}
		if len(row) == 0 || row[0] == "" {
			continue
		}
		if first && row[0] == LinksHeader {
			continue
		}
		links = append(links, row[0])
	}
	return links, nil
}
