// Package repo provides the assistant repository implementation.
package repo

import (
	"context"
	"time"

	"whosin/internal/modkit/repokit"
	perr "whosin/internal/platform/errors"
	"whosin/internal/services/assistant/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// OfficeEntry is one person-day office presence row
type OfficeEntry struct {
	Person domain.Person
	Date   time.Time
}

// Storage defines the assistant repository
type Storage interface {
	ActivePeople(ctx context.Context) ([]domain.Person, error)
	FavoritePeople(ctx context.Context, ownerID string) ([]domain.Person, error)
	EntriesForRange(ctx context.Context, personID string, start, end time.Time) ([]domain.AttendanceEntry, error)
	HolidaysBetween(ctx context.Context, start, end time.Time) ([]time.Time, error)
	OfficeEntriesBetween(ctx context.Context, start, end time.Time) ([]OfficeEntry, error)
}

// ActivePeople implements Storage
func (s *pg) ActivePeople(ctx context.Context) ([]domain.Person, error) {
	const q = `
		SELECT id::text, display_name
		FROM users
		WHERE active
		ORDER BY display_name, id`
	rows, err := s.q.Query(ctx, q)
	if err != nil {
		return nil, perr.FromPostgresWithField(err, "list active people")
	}
	defer rows.Close()

	var out []domain.Person
	for rows.Next() {
		var p domain.Person
		if err := rows.Scan(&p.ID, &p.DisplayName); err != nil {
			return nil, perr.FromPostgresWithField(err, "scan person row")
		}
		out = append(out, p)
	}
	return out, perr.FromPostgresWithField(rows.Err(), "iterate people")
}

// FavoritePeople implements Storage
func (s *pg) FavoritePeople(ctx context.Context, ownerID string) ([]domain.Person, error) {
	const q = `
		SELECT u.id::text, u.display_name
		FROM favorites f
		JOIN users u ON u.id = f.person_id
		WHERE f.owner_id = $1 AND u.active
		ORDER BY u.display_name, u.id`
	rows, err := s.q.Query(ctx, q, ownerID)
	if err != nil {
		return nil, perr.FromPostgresWithField(err, "list favorite people")
	}
	defer rows.Close()

	var out []domain.Person
	for rows.Next() {
		var p domain.Person
		if err := rows.Scan(&p.ID, &p.DisplayName); err != nil {
			return nil, perr.FromPostgresWithField(err, "scan person row")
		}
		out = append(out, p)
	}
	return out, perr.FromPostgresWithField(rows.Err(), "iterate favorites")
}

// EntriesForRange implements Storage
func (s *pg) EntriesForRange(
	ctx context.Context,
	personID string,
	start, end time.Time,
) ([]domain.AttendanceEntry, error) {
	const q = `
		SELECT entry_date, status::text, half_day, COALESCE(half_day_worked_at::text, '')
		FROM attendance_entries
		WHERE user_id = $1 AND entry_date >= $2 AND entry_date <= $3
		ORDER BY entry_date`
	rows, err := s.q.Query(ctx, q, personID, start, end)
	if err != nil {
		return nil, perr.FromPostgresWithField(err, "list attendance entries")
	}
	defer rows.Close()

	var out []domain.AttendanceEntry
	for rows.Next() {
		var e domain.AttendanceEntry
		var status, workedAt string
		if err := rows.Scan(&e.Date, &status, &e.HalfDay, &workedAt); err != nil {
			return nil, perr.FromPostgresWithField(err, "scan attendance row")
		}
		e.Status = domain.EntryStatus(status)
		e.HalfDayWorkedAt = domain.EntryStatus(workedAt)
		out = append(out, e)
	}
	return out, perr.FromPostgresWithField(rows.Err(), "iterate attendance entries")
}

// HolidaysBetween implements Storage
func (s *pg) HolidaysBetween(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	const q = `
		SELECT holiday_date
		FROM holidays
		WHERE holiday_date >= $1 AND holiday_date <= $2
		ORDER BY holiday_date`
	rows, err := s.q.Query(ctx, q, start, end)
	if err != nil {
		return nil, perr.FromPostgresWithField(err, "list holidays")
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, perr.FromPostgresWithField(err, "scan holiday row")
		}
		out = append(out, d)
	}
	return out, perr.FromPostgresWithField(rows.Err(), "iterate holidays")
}

// OfficeEntriesBetween implements Storage
// Half day leave worked from office still counts as presence for the day
func (s *pg) OfficeEntriesBetween(ctx context.Context, start, end time.Time) ([]OfficeEntry, error) {
	const q = `
		SELECT u.id::text, u.display_name, a.entry_date
		FROM attendance_entries a
		JOIN users u ON u.id = a.user_id
		WHERE a.entry_date >= $1 AND a.entry_date <= $2
			AND u.active
			AND (a.status = 'office' OR (a.half_day AND a.half_day_worked_at = 'office'))
		ORDER BY a.entry_date, u.display_name`
	rows, err := s.q.Query(ctx, q, start, end)
	if err != nil {
		return nil, perr.FromPostgresWithField(err, "list office entries")
	}
	defer rows.Close()

	var out []OfficeEntry
	for rows.Next() {
		var e OfficeEntry
		if err := rows.Scan(&e.Person.ID, &e.Person.DisplayName, &e.Date); err != nil {
			return nil, perr.FromPostgresWithField(err, "scan office entry row")
		}
		out = append(out, e)
	}
	return out, perr.FromPostgresWithField(rows.Err(), "iterate office entries")
}
