// Copyright 2026 Neo4j Admin contributors
// Licensed under the GPLv3, see LICENCE file for details.

// Package archive packages a database's store files and transaction
// logs into a single compressed archive.
package archive

import (
	"archive/tar"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
	"github.com/klauspost/compress/gzip"
)

var logger = loggo.GetLogger("neo4jadmin.dbms.archive")

// TransactionLogsEntry is the directory inside the archive holding the
// transaction logs when they live outside the database directory.
const TransactionLogsEntry = "tx-logs"

// Dumper writes a database to an archive file. The exclude predicate
// is consulted with each file's archive-relative path; matching files
// are left out of the archive.
type Dumper interface {
	Dump(databaseDir, transactionLogDir, archivePath string, exclude func(string) bool) error
}

// FileAlreadyExistsError reports that the archive destination already
// exists.
type FileAlreadyExistsError struct {
	Path string
}

func (e *FileAlreadyExistsError) Error() string {
	return "file already exists: " + e.Path
}

// NoSuchFileError reports that a source directory, or the parent of
// the archive destination, does not exist.
type NoSuchFileError struct {
	Path string
}

func (e *NoSuchFileError) Error() string {
	return "no such file or directory: " + e.Path
}

// NewDumper returns a Dumper writing gzip-compressed tar archives.
func NewDumper() Dumper {
	return &dumper{}
}

type dumper struct{}

// Dump implements Dumper. The destination is created exclusively; a
// half-written archive is removed if the dump fails.
func (d *dumper) Dump(databaseDir, transactionLogDir, archivePath string, exclude func(string) bool) error {
	if _, err := os.Stat(databaseDir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &NoSuchFileError{Path: databaseDir}
		}
		return errors.Trace(err)
	}
	out, err := os.OpenFile(archivePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		switch {
		case errors.Is(err, os.ErrExist):
			return &FileAlreadyExistsError{Path: archivePath}
		case errors.Is(err, os.ErrNotExist):
			return &NoSuchFileError{Path: filepath.Dir(archivePath)}
		}
		return errors.Trace(err)
	}
	err = writeArchive(out, databaseDir, transactionLogDir, exclude)
	if cerr := out.Close(); err == nil {
		err = errors.Trace(cerr)
	}
	if err != nil {
		_ = os.Remove(archivePath)
		return err
	}
	logger.Debugf("wrote archive %s", archivePath)
	return nil
}

func writeArchive(out io.Writer, databaseDir, transactionLogDir string, exclude func(string) bool) error {
	gzw, err := gzip.NewWriterLevel(out, gzip.BestCompression)
	if err != nil {
		return errors.Trace(err)
	}
	tw := tar.NewWriter(gzw)

	if err := addTree(tw, databaseDir, "", exclude); err != nil {
		return errors.Trace(err)
	}
	if transactionLogDir != databaseDir {
		if err := addTree(tw, transactionLogDir, TransactionLogsEntry, exclude); err != nil {
			return errors.Trace(err)
		}
	}

	if err := tw.Close(); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(gzw.Close())
}

// addTree writes every file under root into the archive, rooted at
// prefix. Excluded files, and anything below an excluded directory,
// are skipped.
func addTree(tw *tar.Writer, root, prefix string, exclude func(string) bool) error {
	return filepath.Walk(root, func(file string, info os.FileInfo, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return &NoSuchFileError{Path: file}
			}
			return errors.Trace(err)
		}
		rel, err := filepath.Rel(root, file)
		if err != nil {
			return errors.Trace(err)
		}
		if rel == "." {
			return nil
		}
		if exclude != nil && exclude(rel) {
			logger.Debugf("excluding %s", rel)
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		var link string
		if info.Mode()&os.ModeSymlink != 0 {
			if link, err = os.Readlink(file); err != nil {
				return errors.Trace(err)
			}
		}
		header, err := tar.FileInfoHeader(info, link)
		if err != nil {
			return errors.Trace(err)
		}
		header.Name = path.Join(prefix, filepath.ToSlash(rel))
		if info.IsDir() {
			header.Name += "/"
		}
		if err := tw.WriteHeader(header); err != nil {
			return errors.Trace(err)
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		f, err := os.Open(file)
		if err != nil {
			return errors.Trace(err)
		}
		_, err = io.Copy(tw, f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		return errors.Trace(err)
	})
}
