package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/harvest"
)

// Workspace subdirectory names.
const (
	LinksDir    = "links"
	PDFsDir     = "pdfs"
	WARCsDir    = "warcs"
	TokensDir   = "tokens-counted"
	ArchivesDir = "archives"
)

// DefaultLinksFile is the links file name used when none is given.
const DefaultLinksFile = "links.csv"

// Workspace is the output tree of one subproject:
// <root>/<project>/<subproject>/{links,pdfs,warcs,tokens-counted,archives}.
type Workspace struct {
	Root       string
	Project    string
	Subproject string
}

// Validate returns an error if the workspace cannot be laid out on disk.
func (w *Workspace) Validate() error {
	if w.Root == "" {
		return harvest.Errorf(harvest.EINVALID, "workspace root required")
	}
	for _, name := range []string{w.Project, w.Subproject} {
		if name == "" {
			return harvest.Errorf(harvest.EINVALID, "project and subproject required")
		}
		if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
			return harvest.Errorf(harvest.EINVALID, "invalid project name %q", name)
		}
	}
	return nil
}

// Dir returns the subproject directory.
func (w *Workspace) Dir() string {
	return filepath.Join(w.Root, w.Project, w.Subproject)
}

func (w *Workspace) LinksDir() string    { return filepath.Join(w.Dir(), LinksDir) }
func (w *Workspace) PDFsDir() string     { return filepath.Join(w.Dir(), PDFsDir) }
func (w *Workspace) WARCsDir() string    { return filepath.Join(w.Dir(), WARCsDir) }
func (w *Workspace) TokensDir() string   { return filepath.Join(w.Dir(), TokensDir) }
func (w *Workspace) ArchivesDir() string { return filepath.Join(w.Dir(), ArchivesDir) }

// LinksFile returns the LinkFile with the given name in the links directory.
// An empty name selects DefaultLinksFile.
func (w *Workspace) LinksFile(name string) *LinkFile {
	if name == "" {
		name = DefaultLinksFile
	}
	return NewLinkFile(filepath.Join(w.LinksDir(), name))
}

// Description names the workspace in archive file names.
func (w *Workspace) Description() string {
	return sanitize(w.Project + "_" + w.Subproject)
}

// Ensure validates the workspace and creates all of its directories.
func (w *Workspace) Ensure() error {
	if err := w.Validate(); err != nil {
		return err
	}
	for _, dir := range []string{w.LinksDir(), w.PDFsDir(), w.WARCsDir(), w.TokensDir(), w.ArchivesDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
