// Package fileutil writes artifacts so readers never observe a partial file.
//
// Content goes to a temporary file in the destination directory, is synced,
// and is renamed over the target only on commit. Several staged files can be
// flushed first and committed together.
package fileutil

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

const defaultBufSize = 64 * 1024

// Staged is a temporary file that replaces its destination on Commit.
type Staged struct {
	dest    string
	tmp     *os.File
	buf     *bufio.Writer
	hash    hash.Hash
	sum     []byte
	written int64
	done    bool
}

// Stage creates a temporary file next to dest. Parent directories are
// created as needed. A zero perm means 0o644.
func Stage(dest string, perm os.FileMode) (*Staged, error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %q: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(dest)+"-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file for %q: %w", dest, err)
	}
	if perm == 0 {
		perm = 0o644
	}
	_ = os.Chmod(tmp.Name(), perm)

	h := sha256.New()
	return &Staged{
		dest: dest,
		tmp:  tmp,
		hash: h,
		buf:  bufio.NewWriterSize(io.MultiWriter(tmp, h), defaultBufSize),
	}, nil
}

// Write appends p to the staged content.
func (s *Staged) Write(p []byte) (int, error) {
	if s.done || s.sum != nil {
		return 0, errors.New("write to flushed staged file")
	}
	n, err := s.buf.Write(p)
	s.written += int64(n)
	return n, err
}

// Path returns the destination path.
func (s *Staged) Path() string {
	return s.dest
}

// Flush syncs and closes the temporary file without replacing the
// destination. Further writes fail.
func (s *Staged) Flush() error {
	if s.sum != nil {
		return nil
	}
	if err := s.buf.Flush(); err != nil {
		return err
	}
	if err := s.tmp.Sync(); err != nil {
		return err
	}
	if err := s.tmp.Close(); err != nil {
		return err
	}
	s.sum = s.hash.Sum(nil)
	return nil
}

// Commit flushes if needed and renames the temporary file over the
// destination.
func (s *Staged) Commit() error {
	if s.done {
		return errors.New("staged file already finished")
	}
	if err := s.Flush(); err != nil {
		s.Abort()
		return fmt.Errorf("flush %q: %w", s.dest, err)
	}
	if err := os.Rename(s.tmp.Name(), s.dest); err != nil {
		s.Abort()
		return fmt.Errorf("replace %q: %w", s.dest, err)
	}
	s.done = true
	_ = syncDir(filepath.Dir(s.dest))
	return nil
}

// Abort discards the temporary file. It does nothing after Commit.
func (s *Staged) Abort() {
	if s.done {
		return
	}
	s.done = true
	_ = s.tmp.Close()
	_ = os.Remove(s.tmp.Name())
}

// Checksum returns the hex SHA-256 of the content once flushed.
func (s *Staged) Checksum() string {
	if s.sum == nil {
		return ""
	}
	return hex.EncodeToString(s.sum)
}

// Size returns the number of bytes written.
func (s *Staged) Size() int64 {
	return s.written
}

// CommitAll flushes every staged file before renaming any of them. Existing
// destinations are linked aside first and restored if a later rename fails,
// so either every destination is replaced or none is.
func CommitAll(staged ...*Staged) error {
	for _, s := range staged {
		if err := s.Flush(); err != nil {
			AbortAll(staged...)
			return fmt.Errorf("flush %q: %w", s.dest, err)
		}
	}

	backups := make([]string, len(staged))
	defer func() {
		for _, b := range backups {
			if b != "" {
				_ = os.Remove(b)
			}
		}
	}()
	for i, s := range staged {
		b, err := backup(s.dest)
		if err != nil {
			AbortAll(staged...)
			return err
		}
		backups[i] = b
	}

	for i, s := range staged {
		if err := s.Commit(); err != nil {
			AbortAll(staged...)
			for j := 0; j < i; j++ {
				restore(staged[j].dest, backups[j])
				backups[j] = ""
			}
			return err
		}
	}
	return nil
}

// backup hard links dest to a sibling temp name. It returns "" when dest
// does not exist.
func backup(dest string) (string, error) {
	if _, err := os.Lstat(dest); errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	name := filepath.Join(filepath.Dir(dest), ".bak-"+filepath.Base(dest)+"-"+strconv.Itoa(os.Getpid()))
	_ = os.Remove(name)
	if err := os.Link(dest, name); err != nil {
		return "", fmt.Errorf("back up %q: %w", dest, err)
	}
	return name, nil
}

func restore(dest, backup string) {
	if backup == "" {
		_ = os.Remove(dest)
		return
	}
	_ = os.Rename(backup, dest)
}

// AbortAll discards every staged file that has not been committed.
func AbortAll(staged ...*Staged) {
	for _, s := range staged {
		if s != nil {
			s.Abort()
		}
	}
}

// WriteAtomic stages dest, fills it with fn and commits it.
func WriteAtomic(dest string, perm os.FileMode, fn func(io.Writer) error) error {
	s, err := Stage(dest, perm)
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		s.Abort()
		return err
	}
	return s.Commit()
}

// HashFile returns the hex SHA-256 of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
