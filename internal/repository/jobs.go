package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/dtrajkov/attendance-tracker/constants"
	"github.com/dtrajkov/attendance-tracker/internal/common"
	"github.com/dtrajkov/attendance-tracker/internal/entity"
)

type JobRepository interface {
	Create(ctx context.Context, sourceImagePath string) (*entity.JobRecord, error)
	FinishSuccess(ctx context.Context, jobID int64, reportPath string) error
	FinishFailure(ctx context.Context, jobID int64, message string) error
	GetByID(ctx context.Context, jobID int64) (*entity.JobRecord, error)
	List(ctx context.Context, skip, limit int) ([]*entity.JobRecord, error)
}

type jobRepository struct {
	db  *DB
	log *slog.Logger
}

func NewJobRepository(db *DB, log *slog.Logger) JobRepository {
	if log == nil {
		log = slog.Default()
	}
	return &jobRepository{db: db, log: log}
}

// Create inserts a new record in status processing and returns it with the
// store-assigned monotonic ID.
func (r *jobRepository) Create(ctx context.Context, sourceImagePath string) (*entity.JobRecord, error) {
	rec := entity.NewJobRecord(sourceImagePath)

	if r.db.Dialect == DialectPostgres {
		err := r.db.QueryRowContext(ctx,
			r.db.rebind(`INSERT INTO job_records (submitted_at, source_image_path, report_path, status, error_message)
				VALUES (?, ?, '', ?, '') RETURNING id`),
			rec.SubmittedAt, rec.SourceImagePath, string(rec.Status),
		).Scan(&rec.ID)
		if err != nil {
			r.log.Error("job_record create failed", "source", sourceImagePath, "error", err)
			return nil, err
		}
	} else {
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO job_records (submitted_at, source_image_path, report_path, status, error_message)
				VALUES (?, ?, '', ?, '')`,
			rec.SubmittedAt, rec.SourceImagePath, string(rec.Status),
		)
		if err != nil {
			r.log.Error("job_record create failed", "source", sourceImagePath, "error", err)
			return nil, err
		}
		rec.ID, err = res.LastInsertId()
		if err != nil {
			return nil, err
		}
	}

	r.log.Info("job_record created", "job_id", rec.ID, "source", sourceImagePath)
	return rec, nil
}

// FinishSuccess atomically marks the job finished and records the report
// location. It only applies while the record is still processing.
func (r *jobRepository) FinishSuccess(ctx context.Context, jobID int64, reportPath string) error {
	res, err := r.db.ExecContext(ctx,
		r.db.rebind(`UPDATE job_records SET status = ?, report_path = ?, finished_at = ? WHERE id = ? AND status = ?`),
		string(constants.JobStatusFinished), reportPath, time.Now().UTC(), jobID, string(constants.JobStatusProcessing),
	)
	if err != nil {
		r.log.Error("job_record finish(finished) failed", "job_id", jobID, "error", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		r.log.Error("job_record not in processing state", "job_id", jobID)
		return common.ErrNotFound
	}
	r.log.Info("job_record finished", "job_id", jobID, "report_path", reportPath)
	return nil
}

// FinishFailure marks the job failed without recording a report path.
func (r *jobRepository) FinishFailure(ctx context.Context, jobID int64, message string) error {
	res, err := r.db.ExecContext(ctx,
		r.db.rebind(`UPDATE job_records SET status = ?, error_message = ?, finished_at = ? WHERE id = ? AND status = ?`),
		string(constants.JobStatusFailed), message, time.Now().UTC(), jobID, string(constants.JobStatusProcessing),
	)
	if err != nil {
		r.log.Error("job_record finish(failed) failed", "job_id", jobID, "error", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		r.log.Error("job_record not in processing state", "job_id", jobID)
		return common.ErrNotFound
	}
	r.log.Warn("job_record failed", "job_id", jobID, "error", message)
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, jobID int64) (*entity.JobRecord, error) {
	row := r.db.QueryRowContext(ctx,
		r.db.rebind(`SELECT id, submitted_at, source_image_path, report_path, status, error_message, finished_at
			FROM job_records WHERE id = ?`), jobID)
	rec, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.log.Error("job_record get failed", "job_id", jobID, "error", err)
		return nil, err
	}
	return rec, nil
}

func (r *jobRepository) List(ctx context.Context, skip, limit int) ([]*entity.JobRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	if skip < 0 {
		skip = 0
	}
	rows, err := r.db.QueryContext(ctx,
		r.db.rebind(`SELECT id, submitted_at, source_image_path, report_path, status, error_message, finished_at
			FROM job_records ORDER BY id LIMIT ? OFFSET ?`), limit, skip)
	if err != nil {
		r.log.Error("job_record list failed", "error", err)
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*entity.JobRecord
	for rows.Next() {
		rec, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*entity.JobRecord, error) {
	var rec entity.JobRecord
	var status string
	var finishedAt sql.NullTime
	err := row.Scan(&rec.ID, &rec.SubmittedAt, &rec.SourceImagePath, &rec.ReportPath, &status, &rec.ErrorMessage, &finishedAt)
	if err != nil {
		return nil, err
	}
	rec.Status = constants.JobStatus(status)
	if finishedAt.Valid {
		t := finishedAt.Time
		rec.FinishedAt = &t
	}
	return &rec, nil
}
