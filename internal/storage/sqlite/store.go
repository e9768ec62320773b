package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/warpwanderer/project-management/internal/models"
)

var (
	// ErrNotFound is returned when a record id does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned on unique-constraint violations.
	ErrDuplicate = errors.New("record already exists")
	// ErrAlreadyMember is returned when inviting a user who is already on the team.
	ErrAlreadyMember = errors.New("user is already a member of the team")
	// ErrInvitationExists is returned when a pending invitation already targets the email.
	ErrInvitationExists = errors.New("invitation already sent to this user")
	// ErrNotAuthorized is returned when the caller does not own the record acted on.
	ErrNotAuthorized = errors.New("not authorized")
)

// Store wraps access to the SQLite database and exposes high level helpers.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

// Open initializes the SQLite store and runs schema migrations.
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("empty database path")
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := ensureDir(dbPath); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=ON", dbPath)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := db.AutoMigrate(models.All()...); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close releases the database resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func ensureDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

// List returns every record of the entity type.
func List[T any](ctx context.Context, s *Store) ([]T, error) {
	var records []T
	if err := s.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// Get fetches a single record by id.
func Get[T any](ctx context.Context, s *Store, id uint) (T, error) {
	var record T
	if err := s.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return record, translate(err)
	}
	return record, nil
}

// Create persists a new record.
func Create[T any](ctx context.Context, s *Store, record *T) error {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Save writes every field of an existing record back to its row.
func Save[T any](ctx context.Context, s *Store, record *T) error {
	if err := s.db.WithContext(ctx).Save(record).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Replace overwrites all mutable fields of the record with the given id,
// keeping the id and creation timestamp intact.
func Replace[T any](ctx context.Context, s *Store, id uint, record *T) (T, error) {
	existing, err := Get[T](ctx, s, id)
	if err != nil {
		return existing, err
	}
	err = s.db.WithContext(ctx).Model(&existing).
		Select("*").Omit("id", "created_at").
		Updates(record).Error
	if err != nil {
		return existing, translate(err)
	}
	return Get[T](ctx, s, id)
}

// Delete removes a record by id, reporting ErrNotFound for unknown ids.
func Delete[T any](ctx context.Context, s *Store, id uint) error {
	var record T
	res := s.db.WithContext(ctx).Delete(&record, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
