package main

import (
	"fmt"
	"os"

	"github.com/radprep/radprep/storage"
	"github.com/radprep/radprep/storage/filesystem"
	"github.com/radprep/radprep/storage/sqlite/zombiezen"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Pool lazily opens a single SQLite pool shared by the repositories of one
// command invocation.
type Pool struct {
	p *sqlitex.Pool
}

func (p *Pool) Open(path string) (*sqlitex.Pool, error) {
	if p.p != nil {
		return p.p, nil
	}
	pool, err := zombiezen.NewPool(path)
	if err != nil {
		return nil, err
	}
	p.p = pool
	return p.p, nil
}

func (p *Pool) Close() error {
	if p.p != nil {
		return p.p.Close()
	}
	return nil
}

// NewReportRepository selects the backend by path: a directory is a
// filesystem store of JSON documents, a file an SQLite database.
func NewReportRepository(p *Pool, path string) (storage.ReportRepository, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("repository not found: %s", path)
	}

	if info.IsDir() {
		return filesystem.NewStore(path)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewReportStore(pool), nil
}
