package postgresql

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation           = "23505"
	invalidTextRepresentation = "22P02"
)

// attendanceColumns is the projection shared by every query; rows are aliased as "a".
const attendanceColumns = `
	a.id, a.employee_id, a.date,
	a.check_in_at, a.check_in_latitude, a.check_in_longitude, a.check_in_photo_url, a.check_in_photo_id,
	a.check_out_at, a.check_out_latitude, a.check_out_longitude,
	a.working_hours, a.status, a.overtime_hours, a.notes,
	a.created_at, a.updated_at,
	e.full_name AS employee_name`

const employeeJoin = `LEFT JOIN employees e ON e.employee_code = a.employee_id`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAttendance(row rowScanner) (attendance.Attendance, error) {
	var att attendance.Attendance
	var status string
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date,
		&att.CheckIn, &att.CheckInLatitude, &att.CheckInLongitude, &att.CheckInPhotoURL, &att.CheckInPhotoID,
		&att.CheckOut, &att.CheckOutLatitude, &att.CheckOutLongitude,
		&att.WorkingHours, &status, &att.OvertimeHours, &att.Notes,
		&att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	att.Status = attendance.Status(status)
	return att, nil
}

// translateError maps driver failures onto domain errors.
func translateError(err error, op string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return attendance.ErrDuplicateCheckIn
		case invalidTextRepresentation:
			// Only the record id reaches the store as unchecked text.
			return attendance.ErrAttendanceNotFound
		}
	}

	if isUnavailable(err) {
		return fmt.Errorf("%w: %s: %v", attendance.ErrStoreUnavailable, op, err)
	}

	return fmt.Errorf("failed to %s: %w", op, err)
}

// isValidID reports whether id can name a row; attendances.id is a UUID column.
func isValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return true
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// FindByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		` + employeeJoin + `
		WHERE a.employee_id = $1 AND a.date = $2
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No existing attendance found
		}
		return nil, translateError(err, "get attendance by employee and date")
	}

	return &att, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	if !isValidID(id) {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}

	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		` + employeeJoin + `
		WHERE a.id = $1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, translateError(err, "get attendance by ID")
	}

	return att, nil
}

// Create implements attendance.AttendanceRepository.
// The (employee_id, date) unique constraint backs up the pre-check against concurrent check-ins.
func (r *attendanceRepository) Create(ctx context.Context, in attendance.NewAttendance) (attendance.Attendance, error) {
	var created attendance.Attendance

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		existing, err := r.FindByEmployeeAndDate(ctx, in.EmployeeID, in.Date)
		if err != nil {
			return err
		}
		if existing != nil {
			return attendance.ErrDuplicateCheckIn
		}

		qctx, cancel := r.db.WithTimeout(ctx)
		defer cancel()
		q := GetQuerier(qctx, r.db)

		query := `
			WITH a AS (
				INSERT INTO attendances (
					employee_id, date,
					check_in_at, check_in_latitude, check_in_longitude, check_in_photo_url, check_in_photo_id,
					status, overtime_hours, notes
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9)
				RETURNING *
			)
			SELECT ` + attendanceColumns + `
			FROM a
			` + employeeJoin

		created, err = scanAttendance(q.QueryRow(qctx, query,
			in.EmployeeID,
			in.Date,
			in.CheckIn,
			in.Location.Latitude,
			in.Location.Longitude,
			in.Photo.URL,
			in.Photo.ID,
			string(attendance.StatusInProgress),
			in.Notes,
		))
		if err != nil {
			return translateError(err, "create attendance")
		}
		return nil
	})
	if err != nil {
		return attendance.Attendance{}, err
	}

	return created, nil
}

// Checkout implements attendance.AttendanceRepository.
// The row is locked so two concurrent checkouts cannot both classify it.
func (r *attendanceRepository) Checkout(ctx context.Context, id string, at time.Time, location attendance.Coordinate) (attendance.Attendance, error) {
	if !isValidID(id) {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}

	var updated attendance.Attendance

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		checkIn, checkOut, err := r.lockTimes(ctx, id)
		if err != nil {
			return err
		}
		if checkOut != nil {
			return attendance.ErrAlreadyCheckedOut
		}

		summary, err := attendance.Classify(checkIn, at)
		if err != nil {
			return err
		}

		qctx, cancel := r.db.WithTimeout(ctx)
		defer cancel()
		q := GetQuerier(qctx, r.db)

		query := `
			WITH a AS (
				UPDATE attendances SET
					check_out_at = $2,
					check_out_latitude = $3,
					check_out_longitude = $4,
					working_hours = $5,
					status = $6,
					overtime_hours = $7,
					updated_at = NOW()
				WHERE id = $1 AND check_out_at IS NULL
				RETURNING *
			)
			SELECT ` + attendanceColumns + `
			FROM a
			` + employeeJoin

		updated, err = scanAttendance(q.QueryRow(qctx, query,
			id,
			at,
			location.Latitude,
			location.Longitude,
			summary.Hours(),
			string(summary.Status()),
			summary.Overtime(),
		))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return attendance.ErrAlreadyCheckedOut
			}
			return translateError(err, "check out attendance")
		}
		return nil
	})
	if err != nil {
		return attendance.Attendance{}, err
	}

	return updated, nil
}

// lockTimes reads the check-in and check-out instants with a row lock. Must run inside a transaction.
func (r *attendanceRepository) lockTimes(ctx context.Context, id string) (time.Time, *time.Time, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, r.db)

	var checkIn time.Time
	var checkOut *time.Time
	err := q.QueryRow(ctx, `SELECT check_in_at, check_out_at FROM attendances WHERE id = $1 FOR UPDATE`, id).
		Scan(&checkIn, &checkOut)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, nil, attendance.ErrAttendanceNotFound
		}
		return time.Time{}, nil, translateError(err, "lock attendance")
	}

	return checkIn, checkOut, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, id string, changes attendance.AttendanceChanges) (attendance.Attendance, error) {
	if !isValidID(id) {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}

	if changes.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	var updated attendance.Attendance

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		checkIn, checkOut, err := r.lockTimes(ctx, id)
		if err != nil {
			return err
		}

		if changes.TouchesCheckOut() && checkOut == nil {
			return attendance.ErrNotCheckedOut
		}
		if changes.CheckIn != nil {
			checkIn = *changes.CheckIn
		}
		if changes.CheckOut != nil {
			checkOut = changes.CheckOut
		}
		if checkOut != nil && !checkOut.After(checkIn) {
			return attendance.ErrInvalidInterval
		}

		updates := make([]string, 0)
		args := make([]interface{}, 0)
		argIdx := 1

		set := func(column string, value interface{}) {
			updates = append(updates, fmt.Sprintf("%s = $%d", column, argIdx))
			args = append(args, value)
			argIdx++
		}

		if changes.Date != nil {
			set("date", *changes.Date)
		}
		if changes.CheckIn != nil {
			set("check_in_at", *changes.CheckIn)
		}
		if changes.CheckInLatitude != nil {
			set("check_in_latitude", *changes.CheckInLatitude)
		}
		if changes.CheckInLongitude != nil {
			set("check_in_longitude", *changes.CheckInLongitude)
		}
		if changes.CheckOut != nil {
			set("check_out_at", *changes.CheckOut)
		}
		if changes.CheckOutLatitude != nil {
			set("check_out_latitude", *changes.CheckOutLatitude)
		}
		if changes.CheckOutLongitude != nil {
			set("check_out_longitude", *changes.CheckOutLongitude)
		}
		if changes.Notes != nil {
			set("notes", *changes.Notes)
		}

		updates = append(updates, "updated_at = NOW()")
		args = append(args, id)

		query := fmt.Sprintf(`
			WITH a AS (
				UPDATE attendances SET %s
				WHERE id = $%d
				RETURNING *
			)
			SELECT %s
			FROM a
			%s
		`, strings.Join(updates, ", "), argIdx, attendanceColumns, employeeJoin)

		qctx, cancel := r.db.WithTimeout(ctx)
		defer cancel()
		q := GetQuerier(qctx, r.db)

		updated, err = scanAttendance(q.QueryRow(qctx, query, args...))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return attendance.ErrAttendanceNotFound
			}
			return translateError(err, "update attendance")
		}
		return nil
	})
	if err != nil {
		return attendance.Attendance{}, err
	}

	return updated, nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepository) Delete(ctx context.Context, id string) (attendance.Attendance, error) {
	if !isValidID(id) {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}

	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, r.db)

	query := `
		WITH a AS (
			DELETE FROM attendances WHERE id = $1
			RETURNING *
		)
		SELECT ` + attendanceColumns + `
		FROM a
		` + employeeJoin

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, translateError(err, "delete attendance")
	}

	return att, nil
}

// DeleteAllByDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) DeleteAllByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, r.db)

	query := `
		WITH a AS (
			DELETE FROM attendances WHERE date = $1
			RETURNING *
		)
		SELECT ` + attendanceColumns + `
		FROM a
		` + employeeJoin + `
		ORDER BY a.check_in_at
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, translateError(err, "delete attendances by date")
	}
	defer rows.Close()

	return collectAttendances(rows, "delete attendances by date")
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	// Employee ID filter
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	// Free-text search on employee name or code
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(e.full_name ILIKE $%d OR a.employee_id ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	// Date filter
	if filter.Date != nil && *filter.Date != "" {
		conditions = append(conditions, fmt.Sprintf("a.date = $%d", argIdx))
		args = append(args, *filter.Date)
		argIdx++
	}

	// Date range filters
	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	// Status filter
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	// Count total (need to join employees for name search)
	countQuery := `
		SELECT COUNT(*)
		FROM attendances a
		` + employeeJoin + `
		WHERE ` + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, translateError(err, "count attendances")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		%s
		WHERE %s
		ORDER BY a.date DESC, a.check_in_at DESC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, employeeJoin, where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, translateError(err, "query attendances")
	}
	defer rows.Close()

	attendances, err := collectAttendances(rows, "scan attendance")
	if err != nil {
		return nil, 0, err
	}

	return attendances, total, nil
}

func collectAttendances(rows pgx.Rows, op string) ([]attendance.Attendance, error) {
	attendances := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, translateError(err, op)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, op)
	}
	return attendances, nil
}
