package session

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/kyaoi/thoughtforge/internal/logger"
)

const (
	// Extension is the only document extension the editor reads and writes.
	Extension = ".md"
	// AppName is appended to every window title.
	AppName = "ThoughtForge"
	// UntitledName is the placeholder shown while no file is attached.
	UntitledName = "Untitled"
)

// ErrNoPath is returned by Save when the session has no file attached yet.
var ErrNoPath = errors.New("session has no file path")

var errNotUTF8 = errors.New("file is not valid UTF-8")

// Session tracks the file currently attached to the editor buffer.
type Session struct {
	path   string
	saved  string
	crlf   bool
	logger *slog.Logger
}

// New returns an untitled session.
func New(log *slog.Logger) *Session {
	if log == nil {
		log = logger.Discard()
	}
	return &Session{logger: log}
}

// Path returns the absolute path of the attached file, or "" when untitled.
func (s *Session) Path() string { return s.path }

// Untitled reports whether no file is attached.
func (s *Session) Untitled() bool { return s.path == "" }

// Title renders the window title for the current session.
func (s *Session) Title() string {
	name := UntitledName
	if s.path != "" {
		name = s.path
	}
	return name + " - " + AppName
}

// Dirty reports whether text differs from what was last loaded or saved.
func (s *Session) Dirty(text string) bool {
	return text != s.saved
}

// MatchesDisk reports whether data is exactly what the last load or save
// left on disk.
func (s *Session) MatchesDisk(data string) bool {
	return data == s.encode(s.saved)
}

// CRLF reports whether the attached file uses CRLF line endings.
func (s *Session) CRLF() bool { return s.crlf }

// Reset detaches the session from any file.
func (s *Session) Reset() {
	s.path = ""
	s.saved = ""
	s.crlf = false
}

// File is a document read from disk but not yet attached to the session.
type File struct {
	Path string
	// Text has CRLF line endings folded to LF when CRLF is set.
	Text string
	CRLF bool
}

// Read loads path as UTF-8 text without touching the session, so the caller
// can decide whether to Attach it.
func (s *Session) Read(path string) (File, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return File{}, &IOError{Op: OpOpen, Path: path, Err: err}
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		s.logger.Warn("open failed", "path", absPath, "err", err)
		return File{}, &IOError{Op: OpOpen, Path: absPath, Err: err}
	}
	if !utf8.Valid(data) {
		s.logger.Warn("open failed", "path", absPath, "err", errNotUTF8)
		return File{}, &IOError{Op: OpOpen, Path: absPath, Err: errNotUTF8}
	}
	text, crlf := SplitLineEndings(string(data))
	return File{Path: absPath, Text: text, CRLF: crlf}, nil
}

// Attach makes f the session's file.
func (s *Session) Attach(f File) {
	s.path = f.Path
	s.saved = f.Text
	s.crlf = f.CRLF
	s.logger.Info("opened file", "path", f.Path, "bytes", len(f.Text), "crlf", f.CRLF)
}

// Open reads path and attaches the session to it. The session is left
// untouched when reading fails.
func (s *Session) Open(path string) (string, error) {
	f, err := s.Read(path)
	if err != nil {
		return "", err
	}
	s.Attach(f)
	return f.Text, nil
}

// Save writes text to the attached file. It returns ErrNoPath for an
// untitled session so the caller can fall back to SaveAs.
func (s *Session) Save(text string) error {
	if s.path == "" {
		return ErrNoPath
	}
	if err := writeFileAtomic(s.path, s.encode(text)); err != nil {
		s.logger.Warn("save failed", "path", s.path, "err", err)
		return &IOError{Op: OpSave, Path: s.path, Err: err}
	}
	s.saved = text
	s.logger.Info("saved file", "path", s.path, "bytes", len(text))
	return nil
}

// SaveAs writes text to path, appending the markdown extension when missing,
// and attaches the session to the written file. It returns the final path.
// The current line ending style carries over to the new file.
func (s *Session) SaveAs(path, text string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", &IOError{Op: OpSave, Path: path, Err: errors.New("empty file name")}
	}
	absPath, err := filepath.Abs(EnsureExtension(path))
	if err != nil {
		return "", &IOError{Op: OpSave, Path: path, Err: err}
	}
	if err := writeFileAtomic(absPath, s.encode(text)); err != nil {
		s.logger.Warn("save failed", "path", absPath, "err", err)
		return "", &IOError{Op: OpSave, Path: absPath, Err: err}
	}
	s.path = absPath
	s.saved = text
	s.logger.Info("saved file", "path", absPath, "bytes", len(text))
	return absPath, nil
}

func (s *Session) encode(text string) string {
	if s.crlf {
		return strings.ReplaceAll(text, "\n", "\r\n")
	}
	return text
}

// SplitLineEndings folds CRLF to LF when every line break in text is CRLF.
// Mixed or bare CR endings are returned unchanged with crlf false.
func SplitLineEndings(text string) (string, bool) {
	n := strings.Count(text, "\r\n")
	if n == 0 || n != strings.Count(text, "\n") || n != strings.Count(text, "\r") {
		return text, false
	}
	return strings.ReplaceAll(text, "\r\n", "\n"), true
}

// EnsureExtension appends the markdown extension unless name already ends with it.
func EnsureExtension(name string) string {
	if strings.HasSuffix(name, Extension) {
		return name
	}
	return name + Extension
}

// writeFileAtomic replaces path with text through a sibling temp file so a
// failed write leaves the previous file intact.
// A symlinked path is written through to its target.
func writeFileAtomic(path, text string) error {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	dir := filepath.Dir(path)
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", path)
		}
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
