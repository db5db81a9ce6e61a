// Package store persists pre-approval documents and agent profiles. Documents
// are stored whole; every write replaces the previous version.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/loan-portal/internal/preapproval"
	"github.com/iwvelando/loan-portal/pkg/constants"
	"github.com/iwvelando/loan-portal/pkg/datetime"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned when inserting a document whose id is taken.
	ErrAlreadyExists = errors.New("record already exists")
)

// Documents is the document store used by the pre-approval service.
type Documents interface {
	GetDocument(ctx context.Context, id uuid.UUID) (preapproval.Document, error)
	InsertDocument(ctx context.Context, doc preapproval.Document) error
	ReplaceDocument(ctx context.Context, doc preapproval.Document) error
	DeleteDocuments(ctx context.Context, ids []uuid.UUID) error
	ListDocuments(ctx context.Context, userID uuid.UUID) ([]preapproval.Document, error)
	// ListCreatedBetween returns the user's documents created in [from, to).
	ListCreatedBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]preapproval.Document, error)
	// ListPreApprovedBetween returns the user's pre-approved documents whose
	// status changed in [from, to).
	ListPreApprovedBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]preapproval.Document, error)
}

// Agents looks up and saves loan officer profiles.
type Agents interface {
	GetAgent(ctx context.Context, id uuid.UUID) (preapproval.Agent, error)
	PutAgent(ctx context.Context, agent preapproval.Agent) error
}

// Store is a complete storage backend.
type Store interface {
	Documents
	Agents
	Close() error
}

// Config selects and configures the storage backend.
type Config struct {
	Driver     string      `yaml:"driver" mapstructure:"driver"`
	SQLitePath string      `yaml:"sqlitePath" mapstructure:"sqlitePath"`
	Redis      RedisConfig `yaml:"redis" mapstructure:"redis"`
}

// RedisConfig holds the connection settings for the redis driver.
type RedisConfig struct {
	Address   string `yaml:"address" mapstructure:"address"`
	Password  string `yaml:"password" mapstructure:"password"`
	DB        int    `yaml:"db" mapstructure:"db"`
	KeyPrefix string `yaml:"keyPrefix" mapstructure:"keyPrefix"`
}

// Open builds the backend named by cfg.Driver. An empty driver selects the
// in-memory store.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Driver {
	case "", constants.StoreDriverMemory:
		logger.Info("using in-memory store", zap.String("op", "store.Open"))
		return NewMemoryStore(), nil
	case constants.StoreDriverSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = constants.DefaultSQLitePath
		}
		logger.Info("opening sqlite store", zap.String("op", "store.Open"), zap.String("path", path))
		s, err := NewSQLiteStore(ctx, path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case constants.StoreDriverRedis:
		logger.Info("connecting to redis store",
			zap.String("op", "store.Open"),
			zap.String("address", cfg.Redis.Address),
			zap.Int("db", cfg.Redis.DB))
		s, err := DialRedisStore(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

// preApprovedBetween is the shared filter for ListPreApprovedBetween.
func preApprovedBetween(doc preapproval.Document, from, to time.Time) bool {
	return doc.Status == preapproval.StatusPreApproved &&
		doc.StatusUpdatedAt != nil &&
		datetime.InRange(*doc.StatusUpdatedAt, from, to)
}
