package datastores

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// EmailLogSQLite implements [EmailLogStore] on a database prepared by [OpenSQLite].
type EmailLogSQLite struct {
	Now func() time.Time

	db *sql.DB
}

var _ EmailLogStore = (*EmailLogSQLite)(nil)

func NewEmailLogSQLite(db *sql.DB) *EmailLogSQLite {
	return &EmailLogSQLite{db: db}
}

func (s *EmailLogSQLite) Append(ctx context.Context, l *EmailLog) error {
	l.Timestamp = now(s.Now)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO email_logs (recipient, name, subject, status, sent_at) VALUES (?, ?, ?, ?, ?)`,
		l.To, l.Name, l.Subject, string(l.Status), l.Timestamp.UTC().Format(sqliteTime),
	)
	if err != nil {
		return fmt.Errorf("failed to insert email log: %w", err)
	}
	return nil
}

func (s *EmailLogSQLite) List(ctx context.Context) ([]*EmailLog, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT recipient, name, subject, status, sent_at FROM email_logs ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list email logs: %w", err)
	}
	defer rows.Close()

	logs := []*EmailLog{}
	for rows.Next() {
		var (
			l             EmailLog
			status, stamp string
		)
		if err := rows.Scan(&l.To, &l.Name, &l.Subject, &status, &stamp); err != nil {
			return nil, fmt.Errorf("failed to scan email log: %w", err)
		}
		l.Status = EmailStatus(status)
		if l.Timestamp, err = time.Parse(sqliteTime, stamp); err != nil {
			return nil, fmt.Errorf("invalid email log timestamp %q: %w", stamp, err)
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
