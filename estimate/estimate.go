// Package estimate measures how many model tokens a harvest holds.
package estimate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/warc"
)

// DefaultLanguage is the language whose documents are counted.
const DefaultLanguage = "id"

// Kind names the file type a report covers.
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindWARC Kind = "warc"
)

// Report summarizes a token estimation pass.
type Report struct {
	Kind       Kind      `json:"kind"`
	Dir        string    `json:"dir"`
	Language   string    `json:"language,omitempty"`
	Files      int       `json:"files"`
	Documents  int       `json:"documents"`
	Skipped    int       `json:"skipped"`
	Errors     int       `json:"errors"`
	Characters int64     `json:"characters"`
	Tokens     int64     `json:"tokens"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Estimator counts tokens in downloaded PDFs and captured WARCs.
//
// Without a Counter, PDF tokens are characters/4 and WARC tokens are
// non-whitespace characters/4.
type Estimator struct {
	PDFReader     harvest.PDFReader
	TextExtractor harvest.TextExtractor
	Detector      harvest.LanguageDetector
	Counter       harvest.TokenCounter

	// Language filters WARC documents; DefaultLanguage when empty.
	Language string

	Logger *slog.Logger
	Now    func() time.Time
}

// EstimatePDFs reads the text of every *.pdf in dir. Unreadable files are
// counted as errors.
func (e *Estimator) EstimatePDFs(ctx context.Context, dir string) (*Report, error) {
	names, err := list(dir, ".pdf")
	if err != nil {
		return nil, err
	}

	r := &Report{Kind: KindPDF, Dir: dir, CreatedAt: e.now()}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return r, err
		}
		r.Files++

		text, err := e.PDFReader.ReadText(filepath.Join(dir, name))
		if err != nil {
			r.Errors++
			e.logger().Warn("unreadable PDF", "file", name, "err", err)
			continue
		}
		n, err := e.count(ctx, text, charTokens)
		if err != nil {
			return r, err
		}
		r.Documents++
		r.Characters += int64(utf8.RuneCountInString(text))
		r.Tokens += int64(n)
	}
	return r, nil
}

// EstimateWARCs extracts the visible text of every response record in the
// *.warc and *.warc.gz files of dir and counts the records written in the
// estimator's language. Files that fail to parse count as errors; records
// read before the failure are kept.
func (e *Estimator) EstimateWARCs(ctx context.Context, dir string) (*Report, error) {
	names, err := list(dir, ".warc", ".warc.gz")
	if err != nil {
		return nil, err
	}

	r := &Report{Kind: KindWARC, Dir: dir, Language: e.language(), CreatedAt: e.now()}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return r, err
		}
		r.Files++

		if err := e.estimateWARC(ctx, filepath.Join(dir, name), r); err != nil {
			if ctx.Err() != nil {
				return r, ctx.Err()
			}
			r.Errors++
			e.logger().Warn("unreadable WARC", "file", name, "err", err)
		}
	}
	return r, nil
}

func (e *Estimator) estimateWARC(ctx context.Context, path string, r *Report) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	wr, err := warc.NewReader(f)
	if err != nil {
		return err
	}
	defer wr.Close()

	for {
		rec, err := wr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}
		if rec.Type != warc.TypeResponse {
			continue
		}

		text, err := e.TextExtractor.ExtractText(string(rec.Payload()))
		if err != nil {
			r.Errors++
			e.logger().Warn("no text in record", "url", rec.TargetURI, "err", err)
			continue
		}
		if lang := e.Detector.Detect(text); lang != e.language() {
			r.Skipped++
			e.logger().Debug("skipping record", "url", rec.TargetURI, "lang", lang)
			continue
		}

		n, err := e.count(ctx, text, visibleTokens)
		if err != nil {
			return err
		}
		r.Documents++
		r.Characters += int64(utf8.RuneCountInString(text))
		r.Tokens += int64(n)
	}
}

func (e *Estimator) count(ctx context.Context, text string, heuristic func(string) int) (int, error) {
	if e.Counter == nil {
		return heuristic(text), nil
	}
	return e.Counter.CountTokens(ctx, text)
}

// charTokens approximates tokens as one per four characters.
func charTokens(text string) int {
	return utf8.RuneCountInString(text) / 4
}

// visibleTokens approximates tokens as one per four non-whitespace
// characters.
func visibleTokens(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n / 4
}

// HeuristicCounter is a TokenCounter that needs no model vocabulary.
type HeuristicCounter struct{}

var _ harvest.TokenCounter = HeuristicCounter{}

// CountTokens returns the number of non-whitespace characters divided by 4.
func (HeuristicCounter) CountTokens(_ context.Context, text string) (int, error) {
	return visibleTokens(text), nil
}

// ReportName returns the file name of a report of the given kind.
func ReportName(kind Kind) string {
	return string(kind) + "_tokens.json"
}

// WriteReport stores r as indented JSON in dir and returns the file path.
func WriteReport(dir string, r *Report) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, ReportName(r.Kind))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return path, nil
}

// ReadReport loads a report written by WriteReport.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, harvest.Errorf(harvest.ENOTFOUND, "report %s not found", path)
	} else if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "malformed report %s: %v", path, err)
	}
	return &r, nil
}

// list returns the sorted names of regular files in dir ending in one of
// the suffixes.
func list(dir string, suffixes ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, harvest.Errorf(harvest.ENOTFOUND, "directory %s does not exist", dir)
	} else if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		lower := strings.ToLower(entry.Name())
		for _, s := range suffixes {
			if strings.HasSuffix(lower, s) {
				names = append(names, entry.Name())
				break
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

func (e *Estimator) language() string {
	if e.Language != "" {
		return e.Language
	}
	return DefaultLanguage
}

func (e *Estimator) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Estimator) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.DiscardHandler)
}
