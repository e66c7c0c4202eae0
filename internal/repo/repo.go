package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Project struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Session is one saved calculation: the submitted inputs and the computed
// results as JSON blobs plus metadata.
type Session struct {
	ID         string          `json:"id"`
	ProjectID  *int            `json:"project_id,omitempty"`
	Calculator string          `json:"calculator"`
	Inputs     json.RawMessage `json:"inputs"`
	Results    json.RawMessage `json:"results"`
	Standards  []string        `json:"standards"`
	UnitSystem string          `json:"unit_system"`
	Valid      bool            `json:"valid"`
	CreatedAt  time.Time       `json:"created_at"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)

	CreateProject(ctx context.Context, userID int, name, description string) (int, error)
	ListProjects(ctx context.Context, userID int) ([]Project, error)
	DeleteProject(ctx context.Context, userID, id int) error

	SaveSession(ctx context.Context, userID int, s Session) (string, error)
	ListSessions(ctx context.Context, userID int, calculator string) ([]Session, error)
	GetSession(ctx context.Context, userID int, id string) (Session, error)
	DeleteSession(ctx context.Context, userID int, id string) error

	LogExport(ctx context.Context, userID sql.NullInt64, calculator string) error
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresDB(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresRepository) CreateProject(ctx context.Context, userID int, name, description string) (int, error) {
	var id int
	query := "INSERT INTO projects (user_id, name, description) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, userID, name, description).Scan(&id)
	return id, err
}

func (r *PostgresRepository) ListProjects(ctx context.Context, userID int) ([]Project, error) {
	query := "SELECT id, name, description, created_at FROM projects WHERE user_id=$1 ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) DeleteProject(ctx context.Context, userID, id int) error {
	query := "DELETE FROM projects WHERE id=$1 AND user_id=$2"
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PostgresRepository) SaveSession(ctx context.Context, userID int, s Session) (string, error) {
	id := uuid.NewString()
	query := `INSERT INTO calculation_sessions
		(id, user_id, project_id, calculator, inputs, results, standards, unit_system, valid)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query, id, userID, s.ProjectID, s.Calculator,
		[]byte(s.Inputs), []byte(s.Results), pq.Array(s.Standards), s.UnitSystem, s.Valid)
	return id, err
}

func (r *PostgresRepository) ListSessions(ctx context.Context, userID int, calculator string) ([]Session, error) {
	query := `SELECT id, project_id, calculator, inputs, results, standards, unit_system, valid, created_at
		FROM calculation_sessions
		WHERE user_id=$1 AND deleted_at IS NULL AND ($2='' OR calculator=$2)
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID, calculator)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetSession(ctx context.Context, userID int, id string) (Session, error) {
	query := `SELECT id, project_id, calculator, inputs, results, standards, unit_system, valid, created_at
		FROM calculation_sessions
		WHERE id=$1 AND user_id=$2 AND deleted_at IS NULL`
	return scanSession(r.db.QueryRowContext(ctx, query, id, userID))
}

// DeleteSession soft-deletes; the row stays for audit.
func (r *PostgresRepository) DeleteSession(ctx context.Context, userID int, id string) error {
	query := "UPDATE calculation_sessions SET deleted_at=NOW() WHERE id=$1 AND user_id=$2 AND deleted_at IS NULL"
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PostgresRepository) LogExport(ctx context.Context, userID sql.NullInt64, calculator string) error {
	query := "INSERT INTO pdf_exports (user_id, calculator) VALUES ($1, $2)"
	_, err := r.db.ExecContext(ctx, query, userID, calculator)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (Session, error) {
	var s Session
	var inputs, results []byte
	var standards pq.StringArray
	err := row.Scan(&s.ID, &s.ProjectID, &s.Calculator, &inputs, &results,
		&standards, &s.UnitSystem, &s.Valid, &s.CreatedAt)
	if err != nil {
		return Session{}, err
	}
	s.Inputs = json.RawMessage(inputs)
	s.Results = json.RawMessage(results)
	s.Standards = []string(standards)
	return s, nil
}
