package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	domain "placehub/internal/domain/placement"
	"placehub/internal/domain/user"
	interfaces "placehub/internal/interfaces/infrastructure"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ReportRepository serves the read-only reporting projections with sqlx. Every
// method runs inside a repeatable-read read-only transaction so aggregations
// never observe a ledger insert and miss its profile row, or vice versa.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository wraps the shared *sql.DB connection pool for sqlx use.
func NewReportRepository(sqlDB *sql.DB) interfaces.ReportRepository {
	return &ReportRepository{
		db: sqlx.NewDb(sqlDB, "postgres"),
	}
}

func (r *ReportRepository) snapshotTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
}

type applicationRow struct {
	ApplicationID uuid.UUID `db:"application_id"`
	StudentID     uuid.UUID `db:"student_id"`
	DriveID       int64     `db:"drive_id"`
	DriveTitle    string    `db:"drive_title"`
	Profile       []byte    `db:"profile"`
	AppliedAt     time.Time `db:"applied_at"`
	CreatedAt     time.Time `db:"created_at"`
}

func (row *applicationRow) toDomain() (*domain.Application, error) {
	app := &domain.Application{
		ApplicationID: row.ApplicationID,
		StudentID:     row.StudentID,
		DriveID:       row.DriveID,
		DriveTitle:    row.DriveTitle,
		AppliedAt:     row.AppliedAt,
		CreatedAt:     row.CreatedAt,
	}
	if err := json.Unmarshal(row.Profile, &app.Profile); err != nil {
		return nil, err
	}
	return app, nil
}

// SummarizeByDrive returns one summary per drive that has at least one
// applicant, embedded applicants in recorded order.
func (r *ReportRepository) SummarizeByDrive(ctx context.Context) ([]*domain.DriveSummary, error) {
	tx, err := r.snapshotTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var rows []applicationRow
	err = tx.SelectContext(ctx, &rows, `
		SELECT a.application_id, a.student_id, a.drive_id, a.drive_title,
		       a.profile, a.applied_at, a.created_at
		FROM applications a
		JOIN drives d ON d.drive_id = a.drive_id
		ORDER BY d.posted_at DESC, a.drive_id, a.applied_at ASC, a.application_id ASC`)
	if err != nil {
		return nil, err
	}

	var summaries []*domain.DriveSummary
	byDrive := make(map[int64]*domain.DriveSummary)
	for i := range rows {
		app, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		summary, ok := byDrive[app.DriveID]
		if !ok {
			summary = &domain.DriveSummary{
				DriveID: app.DriveID,
				Title:   app.DriveTitle,
			}
			byDrive[app.DriveID] = summary
			summaries = append(summaries, summary)
		}
		summary.Applicants = append(summary.Applicants, app)
		summary.ApplicantCount++
	}
	return summaries, nil
}

// ExportApplicants returns the serial-numbered applicant rows for one drive,
// built from the profile snapshots frozen at apply time.
func (r *ReportRepository) ExportApplicants(ctx context.Context, driveID int64) ([]domain.ApplicantRow, error) {
	tx, err := r.snapshotTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var rows []applicationRow
	err = tx.SelectContext(ctx, &rows, `
		SELECT application_id, student_id, drive_id, drive_title,
		       profile, applied_at, created_at
		FROM applications
		WHERE drive_id = $1
		ORDER BY applied_at ASC, application_id ASC`, driveID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ApplicantRow, 0, len(rows))
	for i := range rows {
		app, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, domain.ApplicantRow{
			Serial:         i + 1,
			RegisterNumber: app.Profile.RegisterNumber,
			RollNumber:     app.Profile.RollNumber,
			Year:           app.Profile.Year,
			Department:     string(app.Profile.Department),
			CGPA:           app.Profile.CGPA,
			ResumeLink:     app.Profile.ResumeLink,
			AppliedAt:      app.AppliedAt.Format(domain.AppliedAtFormat),
		})
	}
	return out, nil
}

// ParticipationStats aggregates registration and application counts across
// the whole student body.
func (r *ReportRepository) ParticipationStats(ctx context.Context) (*domain.ParticipationStats, error) {
	tx, err := r.snapshotTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	stats := &domain.ParticipationStats{
		ProfilesByYear: make(map[domain.Year]int),
	}

	err = tx.GetContext(ctx, &stats.TotalRegistered,
		`SELECT COUNT(*) FROM users WHERE role = $1`, user.RoleStudent)
	if err != nil {
		return nil, err
	}

	type yearCount struct {
		Year  domain.Year `db:"year"`
		Count int         `db:"count"`
	}
	var years []yearCount
	err = tx.SelectContext(ctx, &years,
		`SELECT year, COUNT(*) AS count FROM student_profiles GROUP BY year`)
	if err != nil {
		return nil, err
	}
	for _, yc := range years {
		stats.ProfilesByYear[yc.Year] = yc.Count
	}

	err = tx.GetContext(ctx, &stats.Applied,
		`SELECT COUNT(DISTINCT student_id) FROM applications`)
	if err != nil {
		return nil, err
	}

	stats.NotApplied = stats.TotalRegistered - stats.Applied
	if stats.TotalRegistered > 0 {
		stats.ApplicationRate = float64(stats.Applied) / float64(stats.TotalRegistered)
	}
	return stats, nil
}
