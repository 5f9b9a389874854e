package pdf2text

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-pdf2text/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// prefaceFileName receives everything before the first chapter marker. It
// is written on every run, even when empty.
const prefaceFileName = "preface.txt"

// scanState tracks where the chapter scanner is in the document.
type scanState int

const (
	statePreface scanState = iota
	stateChapter
)

// chapterScanner assigns each line of flat text to an output file. It
// starts in the preface and switches to chapter state on the first marker;
// every marker line opens a new chapter file and belongs to that file.
type chapterScanner struct {
	keyword string
	state   scanState
	current string
}

func newChapterScanner(keyword string) *chapterScanner {
	return &chapterScanner{keyword: keyword, state: statePreface, current: prefaceFileName}
}

// Feed routes one line, returning the file it belongs to and whether the
// line opened a new chapter file.
func (s *chapterScanner) Feed(line string) (file string, opened bool) {
	if name, ok := markerFileName(line, s.keyword); ok {
		s.state = stateChapter
		s.current = name
		return name, true
	}
	return s.current, false
}

// State reports whether the scanner is still in the preface.
func (s *chapterScanner) State() scanState { return s.state }

// markerFileName reports whether a line is a chapter marker for keyword
// and returns the file it opens. A marker has exactly two fields, the
// first matching the keyword case-insensitively; "Chapter 3" opens
// "Chapter3.txt". Any two-field line led by the keyword matches, including
// prose such as "chapter breaks", so keywords must be chosen to suit the
// document. Fields containing path separators never form markers.
func markerFileName(line, keyword string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) != 2 || !strings.EqualFold(fields[0], keyword) {
		return "", false
	}
	name := fields[0] + fields[1] + ".txt"
	if !fileutil.SafeFileName(name) {
		return "", false
	}
	return name, true
}

// chapterDirFor returns the chapter directory for a document: the document
// path with its extension replaced by a _chapters suffix.
func chapterDirFor(docPath string) string {
	return strings.TrimSuffix(docPath, filepath.Ext(docPath)) + "_chapters"
}

// SegmentChapters splits the flat text file produced for docPath into
// per-chapter files under the document's chapter directory and removes the
// flat file. The directory is recreated from scratch on every run. It
// returns the directory path.
//
// Exactly one chapter file is open at any point of the scan: each marker
// closes the current file before its own file is created. A repeated
// marker reopens and truncates the file it named earlier.
func SegmentChapters(flatPath, keyword, docPath string) (string, error) {
	if strings.TrimSpace(keyword) == "" {
		return "", ErrEmptyKeyword
	}
	flat, err := os.Open(flatPath) // #nosec G304 -- reads the intermediate this run produced
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrMissingIntermediate, flatPath, err)
	}
	defer func() { _ = flat.Close() }()

	dir := chapterDirFor(docPath)
	if err := os.RemoveAll(dir); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrChapterDir, dir, err)
	}
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrChapterDir, dir, err)
	}

	if err := writeChapterFiles(flat, keyword, dir); err != nil {
		return "", err
	}

	if err := flat.Close(); err != nil {
		return "", fmt.Errorf("closing intermediate text: %w", err)
	}
	if err := os.Remove(flatPath); err != nil {
		return "", fmt.Errorf("removing intermediate text: %w", err)
	}
	return dir, nil
}

// writeChapterFiles streams the flat text into per-chapter files inside
// dir, starting with the preface file.
func writeChapterFiles(flat io.Reader, keyword, dir string) (err error) {
	scanner := newChapterScanner(keyword)
	current, err := createChapterFile(dir, prefaceFileName)
	if err != nil {
		return err
	}
	defer func() {
		if current != nil {
			if cerr := current.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("%w: %v", ErrChapterFile, cerr)
			}
		}
	}()

	r := bufio.NewReader(flat)
	for {
		line, readErr := r.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return fmt.Errorf("reading intermediate text: %w", readErr)
		}
		if line != "" {
			if _, opened := scanner.Feed(line); opened {
				if err := current.Close(); err != nil {
					return fmt.Errorf("%w: %v", ErrChapterFile, err)
				}
				current = nil
				next, err := createChapterFile(dir, scanner.current)
				if err != nil {
					return err
				}
				current = next
			}
			if _, err := current.WriteString(line); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrChapterFile, current.Name(), err)
			}
		}
		if readErr == io.EOF {
			return nil
		}
	}
}

// createChapterFile creates name inside dir, truncating a previous file
// with the same name.
func createChapterFile(dir, name string) (*os.File, error) {
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePermissions) // #nosec G304 -- name is validated by markerFileName
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrChapterFile, path, err)
	}
	return f, nil
}
