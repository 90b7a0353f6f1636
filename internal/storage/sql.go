package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/brewcart/pkg/db"
	"github.com/angelmondragon/brewcart/pkg/db/models"
)

// SQLStore keeps state in the session_states table (postgres or sqlite).
type SQLStore struct {
	client *db.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewSQLStore wraps a database client. A positive ttl stamps expires_at on
// every write and expired rows read as absent.
func NewSQLStore(client *db.Client, ttl time.Duration) (*SQLStore, error) {
	if client == nil || client.DB() == nil {
		return nil, errors.New("database client required")
	}
	return &SQLStore{client: client, ttl: ttl, now: time.Now}, nil
}

func (s *SQLStore) Read(ctx context.Context, scope, namespace string) ([]byte, bool, error) {
	var row models.SessionState
	err := s.client.DB().WithContext(ctx).
		Where("session_id = ? AND namespace = ?", scope, namespace).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if row.ExpiresAt != nil && !row.ExpiresAt.After(s.now()) {
		return nil, false, nil
	}
	return []byte(row.Payload), true, nil
}

func (s *SQLStore) Write(ctx context.Context, scope, namespace string, payload []byte) error {
	now := s.now().UTC()
	row := models.SessionState{
		SessionID: scope,
		Namespace: namespace,
		Payload:   string(payload),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if s.ttl > 0 {
		expires := now.Add(s.ttl)
		row.ExpiresAt = &expires
	}
	return s.client.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "namespace"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "expires_at", "updated_at"}),
		}).
		Create(&row).Error
}

// PurgeExpired deletes rows whose TTL has passed.
func (s *SQLStore) PurgeExpired(ctx context.Context) (int64, error) {
	var deleted int64
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		res := tx.Where("expires_at IS NOT NULL AND expires_at <= ?", s.now().UTC()).
			Delete(&models.SessionState{})
		deleted = res.RowsAffected
		return res.Error
	})
	return deleted, err
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}
