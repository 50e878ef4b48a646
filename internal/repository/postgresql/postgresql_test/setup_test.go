package postgresql_test

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/cmlabs-hris/leave-tracker/internal/fixtures"
	"github.com/cmlabs-hris/leave-tracker/internal/pkg/database"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// schema is the table layout the repositories expect. It exists for tests
// only; production databases are provisioned outside this repository.
const schema = `
CREATE TABLE IF NOT EXISTS roles (
	role_id   BIGSERIAL PRIMARY KEY,
	role_name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS users (
	user_id       BIGSERIAL PRIMARY KEY,
	name          TEXT NOT NULL UNIQUE,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role_id       BIGINT NOT NULL REFERENCES roles (role_id),
	manager_id    BIGINT REFERENCES users (user_id)
);

CREATE TABLE IF NOT EXISTS leave_types (
	leave_type_id   BIGSERIAL PRIMARY KEY,
	leave_type_name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS leave_status (
	processed_status_id BIGINT PRIMARY KEY,
	status_name         TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS attendance (
	attendance_id        BIGSERIAL PRIMARY KEY,
	user_id              BIGINT NOT NULL REFERENCES users (user_id) ON DELETE CASCADE,
	date                 DATE NOT NULL,
	attendance_status_id BIGINT NOT NULL REFERENCES leave_types (leave_type_id),
	UNIQUE (user_id, date)
);

CREATE TABLE IF NOT EXISTS leave_requests (
	request_id          BIGSERIAL PRIMARY KEY,
	user_id             BIGINT NOT NULL REFERENCES users (user_id) ON DELETE CASCADE,
	leave_id            BIGINT NOT NULL REFERENCES leave_types (leave_type_id),
	start_date          DATE NOT NULL,
	end_date            DATE NOT NULL,
	reason              TEXT NOT NULL DEFAULT '',
	processed_status_id BIGINT NOT NULL DEFAULT 0 REFERENCES leave_status (processed_status_id),
	submitted_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	approved_by         BIGINT REFERENCES users (user_id),
	processed_at        TIMESTAMPTZ,
	CHECK (end_date >= start_date)
);
`

var (
	testDB     *database.DB
	testDBErr  error
	testDBOnce sync.Once
)

// setupTestDB connects to TEST_DATABASE_URL, resets every table and seeds
// the default vocabularies. Tests are skipped when the variable is unset.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	testDBOnce.Do(func() {
		testDB, testDBErr = database.NewPostgreSQLDB(ctx, dsn, database.Options{MaxConns: 10, MinConns: 1})
		if testDBErr != nil {
			return
		}
		for _, stmt := range strings.Split(schema, ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if _, testDBErr = testDB.Exec(ctx, stmt); testDBErr != nil {
				return
			}
		}
	})
	require.NoError(t, testDBErr, "failed to prepare test database")

	_, err := testDB.Exec(ctx, `
		TRUNCATE TABLE attendance, leave_requests, users, roles, leave_types, leave_status
		RESTART IDENTITY CASCADE
	`)
	require.NoError(t, err)
	require.NoError(t, fixtures.SeedVocabularies(ctx, testDB.Pool))

	return testDB
}

// createTestUser inserts a user directly and returns its id.
func createTestUser(t *testing.T, db *database.DB, name string, role string, managerID *int64) int64 {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	var id int64
	err = db.QueryRow(context.Background(), `
		INSERT INTO users (name, email, password_hash, role_id, manager_id)
		SELECT $1::text, lower($1::text) || '@example.com', $2::text, role_id, $4::bigint
		FROM roles WHERE role_name = $3
		RETURNING user_id
	`, name, string(hash), role, managerID).Scan(&id)
	require.NoError(t, err)
	return id
}

func lookupID(t *testing.T, db *database.DB, query string, name string) int64 {
	t.Helper()
	var id int64
	require.NoError(t, db.QueryRow(context.Background(), query, name).Scan(&id))
	return id
}
