package datastores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// RegistrationsSQLite implements [RegistrationsStore] on a database
// prepared by [OpenSQLite]. Storage order is the insertion sequence.
type RegistrationsSQLite struct {
	Now func() time.Time

	db *sql.DB
}

var _ RegistrationsStore = (*RegistrationsSQLite)(nil)

func NewRegistrationsSQLite(db *sql.DB) *RegistrationsSQLite {
	return &RegistrationsSQLite{db: db}
}

func scanRegistration(scanner interface{ Scan(...any) error }) (*Registration, error) {
	var (
		r                   Registration
		id, interest, stamp string
	)
	if err := scanner.Scan(&id, &r.Name, &r.Email, &interest, &stamp); err != nil {
		return nil, err
	}
	if err := r.ID.UnmarshalText([]byte(id)); err != nil {
		return nil, fmt.Errorf("invalid registration id %q: %w", id, err)
	}
	r.Interest = Interest(interest)
	ts, err := time.Parse(sqliteTime, stamp)
	if err != nil {
		return nil, fmt.Errorf("invalid registration timestamp %q: %w", stamp, err)
	}
	r.Timestamp = ts
	return &r, nil
}

func (s *RegistrationsSQLite) Append(ctx context.Context, r *Registration) (RegistrationID, error) {
	r.ID = newRegistrationID()
	r.Timestamp = now(s.Now)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO registrations (id, name, email, interest, registered_at) VALUES (?, ?, ?, ?, ?)`,
		r.ID.String(), r.Name, r.Email, string(r.Interest), r.Timestamp.UTC().Format(sqliteTime),
	)
	if err != nil {
		return RegistrationID{}, fmt.Errorf("failed to insert registration: %w", err)
	}
	return r.ID, nil
}

func (s *RegistrationsSQLite) LoadAll(ctx context.Context) ([]*Registration, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, interest, registered_at FROM registrations ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	rs := []*Registration{}
	for rows.Next() {
		r, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		rs = append(rs, r)
	}
	return rs, rows.Err()
}

func (s *RegistrationsSQLite) Get(ctx context.Context, id RegistrationID) (*Registration, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, interest, registered_at FROM registrations WHERE id = ?`, id.String())
	r, err := scanRegistration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return r, nil
}

func (s *RegistrationsSQLite) Replace(ctx context.Context, id RegistrationID, r *Registration) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE registrations SET name = ?, email = ?, interest = ?, registered_at = ? WHERE id = ?`,
		r.Name, r.Email, string(r.Interest), r.Timestamp.UTC().Format(sqliteTime), id.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update registration: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return err
	}
	r.ID = id
	return nil
}

func (s *RegistrationsSQLite) Remove(ctx context.Context, id RegistrationID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM registrations WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return ErrObjectNotFound
	}
	return nil
}
