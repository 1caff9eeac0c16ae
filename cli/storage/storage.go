// Package storage opens the registrations and email log stores selected on
// the command line.
package storage

import (
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/oaiiae/hackathon-signup/datastores"
)

type StoreOptions struct {
	Store     string `doc:"storage backend: memory, file or sqlite" default:"sqlite"`
	StorePath string `doc:"path of the file or sqlite database"     default:"data/registrations.db"`
}

type Stores struct {
	Registrations datastores.RegistrationsStore
	EmailLog      datastores.EmailLogStore
	io.Closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the stores of the configured backend. Close must be called
// once they are no longer used.
func Open(options *StoreOptions) (*Stores, error) {
	switch strings.ToLower(options.Store) {
	case "memory":
		return &Stores{
			Registrations: datastores.NewRegistrationsInmem(),
			EmailLog:      new(datastores.EmailLogInmem),
			Closer:        nopCloser{},
		}, nil
	case "file":
		doc := datastores.NewDocument(options.StorePath)
		return &Stores{
			Registrations: datastores.NewRegistrationsFile(doc),
			EmailLog:      datastores.NewEmailLogFile(doc),
			Closer:        nopCloser{},
		}, nil
	case "sqlite":
		db, err := datastores.OpenSQLite(options.StorePath)
		if err != nil {
			return nil, err
		}
		return sqliteStores(db), nil
	default:
		return nil, fmt.Errorf("storage: unknown store %q", options.Store)
	}
}

func sqliteStores(db *sql.DB) *Stores {
	return &Stores{
		Registrations: datastores.NewRegistrationsSQLite(db),
		EmailLog:      datastores.NewEmailLogSQLite(db),
		Closer:        db,
	}
}
