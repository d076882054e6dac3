package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

// RecordStore is the data-access layer for the tutoring records. Every
// operation borrows a pooled connection for its own scope only.
type RecordStore struct {
	db  *sqlx.DB
	log zerolog.Logger
	now func() time.Time
}

func NewRecordStore(db *sqlx.DB, logger zerolog.Logger) *RecordStore {
	return &RecordStore{
		db:  db,
		log: logger.With().Str("component", "records").Logger(),
		now: func() time.Time { return time.Now().UTC() },
	}
}

var requiredRelations = []string{
	"students",
	"professors",
	"subjects",
	"classes",
	"grades",
	"metric_snapshots",
	"class_reports",
	"metacognition_entries",
	"student_hours",
	"calendar_view",
	"student_summary_view",
}

// CheckSchema fails with ErrSchema when a required table or view is missing.
func (s *RecordStore) CheckSchema(ctx context.Context) error {
	for _, name := range requiredRelations {
		rows, err := s.db.QueryContext(ctx, `SELECT * FROM `+name+` WHERE 1 = 0`)
		if err != nil {
			return storageError(err, "check "+name)
		}
		_ = rows.Close()
	}
	return nil
}

// Ping reports whether the database is reachable.
func (s *RecordStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *RecordStore) insert(ctx context.Context, op, query string, args ...interface{}) (int64, error) {
	var id int64
	if err := s.db.QueryRowxContext(ctx, s.db.Rebind(query+` RETURNING id`), args...).Scan(&id); err != nil {
		return 0, storageError(err, op)
	}
	return id, nil
}

func (s *RecordStore) getOne(ctx context.Context, dest interface{}, op, notFound, query string, args ...interface{}) error {
	err := s.db.GetContext(ctx, dest, s.db.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return NotFound(notFound)
	}
	return storageError(err, op)
}

func (s *RecordStore) selectMany(ctx context.Context, dest interface{}, op, query string, args ...interface{}) error {
	return storageError(s.db.SelectContext(ctx, dest, s.db.Rebind(query), args...), op)
}

func (s *RecordStore) exec(ctx context.Context, op, query string, args ...interface{}) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return false, storageError(err, op)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, storageError(err, op)
	}
	return affected > 0, nil
}
