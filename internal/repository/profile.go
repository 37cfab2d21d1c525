package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/emplo/profile-service/internal/model"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrDuplicateEmail  = errors.New("email already exists")
)

const profileColumns = "id, name, email, password_hash, created_at, updated_at"

// ProfileRepository handles profile persistence operations.
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// EnsureSchema creates the profiles table and its unique email index if they
// do not already exist. Safe to run on every startup; must run before the
// listener accepts insert traffic.
func (r *ProfileRepository) EnsureSchema(ctx context.Context) error {
	const ddl = `CREATE TABLE IF NOT EXISTS profiles (
		id CHAR(36) NOT NULL,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at DATETIME(6) NOT NULL,
		updated_at DATETIME(6) NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY email_index (email)
	)`

	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Insert stores a new profile, generating its id and timestamps. The unique
// index on email is the final authority on duplicates; a concurrent insert
// of the same email surfaces here as ErrDuplicateEmail.
func (r *ProfileRepository) Insert(ctx context.Context, profile *model.Profile) error {
	now := time.Now().UTC()
	profile.ID = model.AccountID(uuid.NewString())
	profile.CreatedAt = now
	profile.UpdatedAt = now

	query := `INSERT INTO profiles (` + profileColumns + `) VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		profile.ID.String(), profile.Name, profile.Email, profile.PasswordHash,
		profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

// GetByEmail retrieves a profile by its email address.
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// GetByID retrieves a profile by its id.
func (r *ProfileRepository) GetByID(ctx context.Context, id model.AccountID) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id.String()))
}

// GetAll retrieves every profile, oldest first.
func (r *ProfileRepository) GetAll(ctx context.Context) ([]model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []model.Profile
	for rows.Next() {
		var p model.Profile
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}

// Update applies the non-nil fields of the patch and refreshes updated_at.
// The id and created_at columns are never written. Returns the updated row.
func (r *ProfileRepository) Update(ctx context.Context, id model.AccountID, patch model.ProfilePatch) (*model.Profile, error) {
	query, args := buildUpdateQuery(id, patch, time.Now().UTC())

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isDuplicateEntryError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrProfileNotFound
	}

	return r.GetByID(ctx, id)
}

// buildUpdateQuery assembles the SET clause for the supplied patch fields.
// updated_at is always included.
func buildUpdateQuery(id model.AccountID, patch model.ProfilePatch, now time.Time) (string, []any) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)

	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *patch.Email)
	}
	if patch.PasswordHash != nil {
		sets = append(sets, "password_hash = ?")
		args = append(args, *patch.PasswordHash)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, now)

	args = append(args, id.String())
	return "UPDATE profiles SET " + strings.Join(sets, ", ") + " WHERE id = ?", args
}

func (r *ProfileRepository) scanOne(row *sql.Row) (*model.Profile, error) {
	p := &model.Profile{}
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

// isDuplicateEntryError reports whether a MySQL error is a duplicate entry
// violation (error 1062) on the unique email index.
func isDuplicateEntryError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
