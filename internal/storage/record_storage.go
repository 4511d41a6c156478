package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"GestorChoferes/internal/models"
)

var ErrNotFound = errors.New("record not found")

// StorageError wraps connectivity and constraint failures from the driver.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func wrap(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

const selectColumns = `id, driver_name, kind, destination, errand, justification, request_reason, responsible_party, event_timestamp, recorded_at`

// RecordStore owns the registros table. Every call is atomic on its own;
// nothing spans more than one statement.
type RecordStore struct {
	db      *sql.DB
	dialect Dialect
}

func NewRecordStore(db *sql.DB, dialect Dialect) *RecordStore {
	return &RecordStore{db: db, dialect: dialect}
}

func (s *RecordStore) Dialect() Dialect {
	return s.dialect
}

// EnsureSchema creates the registros table when it is missing.
func (s *RecordStore) EnsureSchema(ctx context.Context) error {
	ddl := createRegistrosSQLite
	if s.dialect == DialectPostgres {
		ddl = createRegistrosPostgres
	}
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return wrap("ensure schema", err)
	}
	return nil
}

func (s *RecordStore) Create(ctx context.Context, r models.Record) (int64, error) {
	query := rebind(s.dialect, `
		INSERT INTO registros(driver_name, kind, destination, errand, justification, request_reason, responsible_party, event_timestamp, recorded_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	var id int64
	err := s.db.QueryRowContext(ctx, query,
		r.DriverName,
		r.Kind,
		r.Destination,
		r.Errand,
		r.Justification,
		r.RequestReason,
		r.ResponsibleParty,
		r.EventTimestamp,
		r.RecordedAt,
	).Scan(&id)
	if err != nil {
		return 0, wrap("create", err)
	}
	return id, nil
}

func (s *RecordStore) Get(ctx context.Context, id int64) (models.Record, error) {
	query := rebind(s.dialect, `SELECT `+selectColumns+` FROM registros WHERE id = ?`)

	r, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Record{}, ErrNotFound
		}
		return models.Record{}, wrap("get", err)
	}
	return r, nil
}

// List returns every record, most recent first.
func (s *RecordStore) List(ctx context.Context) ([]models.Record, error) {
	return s.list(ctx, "list", "DESC")
}

// ListAscending returns every record in identity order, as exports need them.
func (s *RecordStore) ListAscending(ctx context.Context) ([]models.Record, error) {
	return s.list(ctx, "list ascending", "ASC")
}

func (s *RecordStore) list(ctx context.Context, op, order string) ([]models.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM registros ORDER BY id `+order)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0)
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return records, nil
}

func (s *RecordStore) Exists(ctx context.Context, id int64) (bool, error) {
	var found int64
	err := s.db.QueryRowContext(ctx, rebind(s.dialect, `SELECT id FROM registros WHERE id = ?`), id).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, wrap("exists", err)
	}
	return true, nil
}

// Update replaces the mutable fields. id and recorded_at are never written;
// an empty EventTimestamp keeps the stored value.
func (s *RecordStore) Update(ctx context.Context, id int64, r models.Record) error {
	query := rebind(s.dialect, `
		UPDATE registros
		SET driver_name = ?, kind = ?, destination = ?, errand = ?, justification = ?, request_reason = ?, responsible_party = ?,
			event_timestamp = COALESCE(NULLIF(?, ''), event_timestamp)
		WHERE id = ?`)

	res, err := s.db.ExecContext(ctx, query,
		r.DriverName,
		r.Kind,
		r.Destination,
		r.Errand,
		r.Justification,
		r.RequestReason,
		r.ResponsibleParty,
		r.EventTimestamp,
		id,
	)
	if err != nil {
		return wrap("update", err)
	}
	return checkAffected("update", res)
}

func (s *RecordStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, rebind(s.dialect, `DELETE FROM registros WHERE id = ?`), id)
	if err != nil {
		return wrap("delete", err)
	}
	return checkAffected("delete", res)
}

func (s *RecordStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM registros`).Scan(&n); err != nil {
		return 0, wrap("count", err)
	}
	return n, nil
}

// VacuumInto writes a transactionally consistent copy of the SQLite
// database to dst, which must not exist yet.
func (s *RecordStore) VacuumInto(ctx context.Context, dst string) error {
	if s.dialect != DialectSQLite {
		return wrap("vacuum into", fmt.Errorf("unsupported dialect %q", s.dialect))
	}
	if _, err := s.db.ExecContext(ctx, `VACUUM INTO ?`, dst); err != nil {
		return wrap("vacuum into", err)
	}
	return nil
}

func checkAffected(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return wrap(op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.Record, error) {
	var r models.Record
	err := row.Scan(
		&r.ID,
		&r.DriverName,
		&r.Kind,
		&r.Destination,
		&r.Errand,
		&r.Justification,
		&r.RequestReason,
		&r.ResponsibleParty,
		&r.EventTimestamp,
		&r.RecordedAt,
	)
	return r, err
}
