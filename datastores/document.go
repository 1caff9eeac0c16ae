package datastores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Document keys, shared with the layout the web client kept in local storage.
const (
	keyRegistrations = "registrations"
	keyEmailLogs     = "emailLogs"
)

// Document is a JSON file of named values. Every access reads the whole
// file and every update rewrites it, so values are small by assumption.
// A missing or malformed file, or a malformed value, reads as empty.
type Document struct {
	path string
	mu   sync.Mutex
}

func NewDocument(path string) *Document { return &Document{path: path} }

// load reads the document. Only a missing file reads as empty; any other
// read failure is returned so that an update cannot overwrite the file.
func (d *Document) load() (map[string]json.RawMessage, error) {
	values := map[string]json.RawMessage{}
	b, err := os.ReadFile(d.path)
	if errors.Is(err, fs.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", d.path, err)
	}
	if json.Unmarshal(b, &values) != nil {
		return map[string]json.RawMessage{}, nil
	}
	return values, nil
}

func (d *Document) save(values map[string]json.RawMessage) error {
	b, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(d.path), 0o700); err != nil {
		return err
	}
	tmp := d.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, d.path)
}

// documentUpdate decodes key into a T, lets fn modify it and writes the
// document back when fn reports a change.
func documentUpdate[T any](d *Document, key string, fn func(*T) (changed bool, err error)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	values, err := d.load()
	if err != nil {
		return err
	}
	var v T
	if raw, ok := values[key]; ok && json.Unmarshal(raw, &v) != nil {
		v = *new(T)
	}
	changed, err := fn(&v)
	if err != nil || !changed {
		return err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	values[key] = raw
	if err := d.save(values); err != nil {
		return fmt.Errorf("writing %s: %w", d.path, err)
	}
	return nil
}

type registrationDoc struct {
	ID        RegistrationID `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Interest  Interest       `json:"interest,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// RegistrationsFile implements [RegistrationsStore] on a [Document].
// Entries written without an ID are given one on first access.
type RegistrationsFile struct {
	Now func() time.Time

	doc *Document
}

var _ RegistrationsStore = (*RegistrationsFile)(nil)

func NewRegistrationsFile(doc *Document) *RegistrationsFile {
	return &RegistrationsFile{doc: doc}
}

func (s *RegistrationsFile) update(fn func(docs *[]registrationDoc) (bool, error)) error {
	return documentUpdate(s.doc, keyRegistrations, func(docs *[]registrationDoc) (bool, error) {
		assigned := false
		for i := range *docs {
			if (*docs)[i].ID.IsZero() {
				(*docs)[i].ID = newRegistrationID()
				assigned = true
			}
		}
		changed, err := fn(docs)
		return assigned || changed, err
	})
}

func find(docs []registrationDoc, id RegistrationID) int {
	for i := range docs {
		if docs[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *RegistrationsFile) Append(_ context.Context, r *Registration) (RegistrationID, error) {
	err := s.update(func(docs *[]registrationDoc) (bool, error) {
		r.ID = newRegistrationID()
		r.Timestamp = now(s.Now)
		*docs = append(*docs, registrationDoc(*r))
		return true, nil
	})
	if err != nil {
		return RegistrationID{}, err
	}
	return r.ID, nil
}

func (s *RegistrationsFile) LoadAll(_ context.Context) ([]*Registration, error) {
	var rs []*Registration
	err := s.update(func(docs *[]registrationDoc) (bool, error) {
		rs = make([]*Registration, 0, len(*docs))
		for _, d := range *docs {
			r := Registration(d)
			rs = append(rs, &r)
		}
		return false, nil
	})
	return rs, err
}

func (s *RegistrationsFile) Get(_ context.Context, id RegistrationID) (*Registration, error) {
	var r *Registration
	err := s.update(func(docs *[]registrationDoc) (bool, error) {
		i := find(*docs, id)
		if i < 0 {
			return false, ErrObjectNotFound
		}
		found := Registration((*docs)[i])
		r = &found
		return false, nil
	})
	return r, err
}

func (s *RegistrationsFile) Replace(_ context.Context, id RegistrationID, r *Registration) error {
	return s.update(func(docs *[]registrationDoc) (bool, error) {
		i := find(*docs, id)
		if i < 0 {
			return false, ErrObjectNotFound
		}
		r.ID = id
		(*docs)[i] = registrationDoc(*r)
		return true, nil
	})
}

func (s *RegistrationsFile) Remove(_ context.Context, id RegistrationID) error {
	return s.update(func(docs *[]registrationDoc) (bool, error) {
		i := find(*docs, id)
		if i < 0 {
			return false, ErrObjectNotFound
		}
		*docs = append((*docs)[:i], (*docs)[i+1:]...)
		return true, nil
	})
}

type emailLogDoc struct {
	To        string      `json:"to"`
	Name      string      `json:"name"`
	Subject   string      `json:"subject"`
	Status    EmailStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
}

// EmailLogFile implements [EmailLogStore] on a [Document].
type EmailLogFile struct {
	Now func() time.Time

	doc *Document
}

var _ EmailLogStore = (*EmailLogFile)(nil)

func NewEmailLogFile(doc *Document) *EmailLogFile {
	return &EmailLogFile{doc: doc}
}

func (s *EmailLogFile) Append(_ context.Context, l *EmailLog) error {
	return documentUpdate(s.doc, keyEmailLogs, func(docs *[]emailLogDoc) (bool, error) {
		l.Timestamp = now(s.Now)
		*docs = append(*docs, emailLogDoc(*l))
		return true, nil
	})
}

func (s *EmailLogFile) List(_ context.Context) ([]*EmailLog, error) {
	var logs []*EmailLog
	err := documentUpdate(s.doc, keyEmailLogs, func(docs *[]emailLogDoc) (bool, error) {
		logs = make([]*EmailLog, 0, len(*docs))
		for _, d := range *docs {
			l := EmailLog(d)
			logs = append(logs, &l)
		}
		return false, nil
	})
	return logs, err
}
