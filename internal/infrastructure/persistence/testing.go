//go:build integration
// +build integration

package persistence

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/turrs/bank-skd/internal/domain/catalog"
	"github.com/turrs/bank-skd/internal/domain/users"
	"github.com/turrs/bank-skd/internal/pkg/config"
	"github.com/turrs/bank-skd/internal/pkg/testutil"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB *gorm.DB
	*Repositories
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		// one shared in-memory database per test; a single connection keeps
		// SQLite from reporting busy on concurrent writers
		settings = config.DatabaseSettings{
			Type:         config.SqliteDbType,
			DSN:          "file:" + uuid.NewString() + "?mode=memory&cache=shared",
			MaxOpenConns: 1,
		}
		cleanupFunc = func() {}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	repos, err := NewRepositories(db, testutil.SetupTestLogger(t))
	require.NoError(t, err, "Failed to create repositories")

	return &TestContext{DB: db, Repositories: repos}
}

// CreateTestUser stores a user with role
func (tc *TestContext) CreateTestUser(t *testing.T, role string) *users.User {
	t.Helper()

	u := testutil.NewTestUser(t, role)
	require.NoError(t, tc.UserRepo.Create(context.Background(), u))
	return u
}

// CreateTestPackage stores a package with perCategory questions in every category
func (tc *TestContext) CreateTestPackage(t *testing.T, creatorID string, price int64, perCategory int) (*catalog.Package, []*catalog.Question) {
	t.Helper()

	pkg := testutil.NewTestPackage(creatorID, price)
	require.NoError(t, tc.PackageRepo.Create(context.Background(), pkg))

	questions := testutil.NewTestQuestionSet(pkg.ID, perCategory)
	require.NoError(t, tc.QuestionRepo.CreateBatch(context.Background(), questions))
	return pkg, questions
}
