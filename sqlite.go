package main

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Sqlite struct {
	pool *sql.DB
}

func NewSqlite(path string) (Sqlite, error) {
	pool, err := sql.Open("sqlite", path)
	if err != nil {
		return Sqlite{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := pool.PingContext(ctx); err != nil {
		return Sqlite{}, err
	}

	if err := runMigrations(pool); err != nil {
		return Sqlite{}, err
	}

	return Sqlite{
		pool: pool,
	}, nil
}

func runMigrations(pool *sql.DB) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}

	driver, err := migratesqlite.WithInstance(pool, &migratesqlite.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

func (s *Sqlite) GetJobs() ([]Job, error) {
	querySQL := `SELECT id, frames_dir, output_dir, done FROM jobs WHERE done = false AND failed = false`
	rows, err := s.pool.Query(querySQL)
	if err != nil {
		return []Job{}, err
	}

	defer rows.Close()
	jobs := []Job{}
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.FramesDir, &j.OutputDir, &j.Done); err != nil {
			return jobs, err
		}
		jobs = append(jobs, j)
	}

	// Check for errors from iterating over rows
	if err := rows.Err(); err != nil {
		return []Job{}, err
	}

	return jobs, nil
}

func (s *Sqlite) InsertJob(job *Job) (int64, error) {
	insertSQL := `INSERT INTO jobs (frames_dir, output_dir, done) VALUES (?, ?, ?)`
	statement, err := s.pool.Prepare(insertSQL)
	if err != nil {
		return 0, err
	}

	defer statement.Close()
	job.Done = false
	result, err := statement.Exec(job.FramesDir, job.OutputDir, job.Done)
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	job.ID = id
	return id, nil
}

func (s *Sqlite) MarkJobAsDone(job *Job) error {
	updateSQL := `UPDATE jobs SET done = true WHERE id = ?`
	statement, err := s.pool.Prepare(updateSQL)
	if err != nil {
		return err
	}
	defer statement.Close()

	_, err = statement.Exec(job.ID)
	if err != nil {
		return err
	}

	job.Done = true
	return nil
}

func (s *Sqlite) DeleteJobByID(id int64) error {
	deleteSQL := `DELETE FROM jobs WHERE id = ?`
	statement, err := s.pool.Prepare(deleteSQL)
	if err != nil {
		return err
	}

	defer statement.Close()
	_, err = statement.Exec(id)
	return err
}

func (s *Sqlite) GetJobRetries(job *Job) (int, error) {
	querySQL := `SELECT retries FROM jobs WHERE id = ?`
	var retries int
	err := s.pool.QueryRow(querySQL, job.ID).Scan(&retries)
	return retries, err
}

func (s *Sqlite) UpdateJobRetries(job *Job, retries int) error {
	updateSQL := `UPDATE jobs SET retries = ? WHERE id = ?`
	statement, err := s.pool.Prepare(updateSQL)
	if err != nil {
		return err
	}
	defer statement.Close()

	_, err = statement.Exec(retries, job.ID)
	return err
}

func (s *Sqlite) FailJob(job *Job, failError string) error {
	updateSQL := `UPDATE jobs SET failed = true, fail_error = ? WHERE id = ?`
	statement, err := s.pool.Prepare(updateSQL)
	if err != nil {
		return err
	}
	defer statement.Close()

	_, err = statement.Exec(failError, job.ID)
	return err
}
