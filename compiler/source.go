package compiler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
)

// Scanner is the SAX-style event stream the compiler's three passes
// consume. It mirrors LdDl-osm2ch/osm_raw.go's OSMScanner interface
// exactly, so either of the teacher's two real scanners satisfies it
// directly.
type Scanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

// Source produces a fresh Scanner positioned at the start of the event
// stream, once per compiler pass. Each pass gets its own Scanner rather
// than sharing one, since osmpbf's scanner cannot be rewound the way a
// plain file handle can with Seek.
type Source interface {
	NewScanner() (Scanner, error)
}

// FileSource reads a .osm/.xml or .osm.pbf file from disk, dispatching
// to osmxml or osmpbf by file extension exactly as
// LdDl-osm2ch/osm_raw.go:readOSM does.
type FileSource struct {
	Filename string
}

// NewScanner opens a fresh handle to Filename and returns a scanner
// appropriate for its extension.
func (s FileSource) NewScanner() (Scanner, error) {
	file, err := os.Open(s.Filename)
	if err != nil {
		return nil, err
	}
	ext := filepath.Ext(s.Filename)
	if ext == ".pbf" && filepath.Ext(s.Filename[:len(s.Filename)-len(ext)]) == ".osm" {
		ext = ".osm.pbf"
	}
	switch ext {
	case ".osm", ".xml":
		return &closingScanner{Scanner: osmxml.New(context.Background(), file), file: file}, nil
	case ".osm.pbf", ".pbf":
		return &closingScanner{Scanner: osmpbf.New(context.Background(), file, 4), file: file}, nil
	default:
		file.Close()
		return nil, fmt.Errorf("compiler: FileSource: unhandled file extension %q for file %q", ext, s.Filename)
	}
}

// closingScanner closes the backing *os.File alongside the wrapped
// scanner, since osmxml.New/osmpbf.New do not take file ownership.
type closingScanner struct {
	Scanner
	file *os.File
}

func (c *closingScanner) Close() error {
	err := c.Scanner.Close()
	if cerr := c.file.Close(); err == nil {
		err = cerr
	}
	return err
}
