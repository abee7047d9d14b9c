package db

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/spf13/afero"
)

var sqliteFilenameRe = regexp.MustCompile(`^.*\.(db|sdb|sqlite|db3|s3db|sqlite3|sl3)$`)

// SQLiteBackend configures a SQLite database file at Path/Filename. The file
// must already exist; it is never created.
type SQLiteBackend struct {
	Path     string
	Filename string

	fs afero.Fs
}

// NewSQLite returns a SQLite backend validated against the OS filesystem.
func NewSQLite(path, filename string) *SQLiteBackend {
	return &SQLiteBackend{Path: path, Filename: filename, fs: afero.NewOsFs()}
}

// WithFs replaces the filesystem used for validation.
func (b *SQLiteBackend) WithFs(fs afero.Fs) *SQLiteBackend {
	b.fs = fs
	return b
}

func (b *SQLiteBackend) Kind() string   { return "sqlite" }
func (b *SQLiteBackend) Driver() string { return DriverSQLite }
func (b *SQLiteBackend) Name() string   { return b.Filename }
func (b *SQLiteBackend) sealed()        {}

// File is the full path of the database file.
func (b *SQLiteBackend) File() string {
	return filepath.Join(b.Path, b.Filename)
}

func (b *SQLiteBackend) DSN() string {
	return "file:" + b.File() + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Validate requires an existing directory, a recognised SQLite extension and
// an existing file at Path/Filename.
func (b *SQLiteBackend) Validate() error {
	if b.pathValid() && b.filenameValid() && b.fileExists() {
		return nil
	}
	return fmt.Errorf("%w: unable to find database file %s", ErrInvalidConfig, b.File())
}

// Repair prompts only for the filename when a file exists at the configured
// location but has an unrecognised extension. Otherwise both the filename and
// the path are prompted and both must be confirmed.
func (b *SQLiteBackend) Repair(p Prompter) bool {
	if b.fileExists() {
		if b.filenameValid() {
			return false
		}
		name, ok := p.PromptText("Database filename", b.Filename)
		if ok {
			b.Filename = name
		}
		return ok
	}

	name, nameOK := p.PromptText("Database filename", b.Filename)
	if nameOK {
		b.Filename = name
	}
	path, pathOK := p.PromptText("Database path", b.Path)
	if pathOK {
		b.Path = path
	}
	return nameOK && pathOK
}

func (b *SQLiteBackend) filenameValid() bool {
	return b.Filename != "" && sqliteFilenameRe.MatchString(b.Filename)
}

func (b *SQLiteBackend) pathValid() bool {
	if b.Path == "" {
		return false
	}
	ok, err := afero.DirExists(b.fs, b.Path)
	return err == nil && ok
}

func (b *SQLiteBackend) fileExists() bool {
	fi, err := b.fs.Stat(b.File())
	return err == nil && !fi.IsDir()
}
