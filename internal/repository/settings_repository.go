package repository

import (
	"context"
	"fmt"
	"time"

	"wealthease-ai/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// SettingsRepository stores settings per client namespace.
type SettingsRepository interface {
	List(ctx context.Context, namespace uuid.UUID) ([]models.Setting, error)
	Put(ctx context.Context, setting *models.Setting) error
	// Delete removes the given keys and returns the ones that existed.
	Delete(ctx context.Context, namespace uuid.UUID, keys ...models.SettingKey) ([]models.SettingKey, error)
}

type PostgresSettingsRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresSettingsRepository(db *pgxpool.Pool, logger *zap.Logger) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{
		db:     db,
		logger: logger,
	}
}

func (r *PostgresSettingsRepository) List(ctx context.Context, namespace uuid.UUID) ([]models.Setting, error) {
	query := squirrel.Select("namespace", "key", "value", "updated_at").
		From("settings").
		Where(squirrel.Eq{"namespace": namespace}).
		OrderBy("key").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	var settings []models.Setting
	for rows.Next() {
		setting, err := scanSetting(rows)
		if err != nil {
			return nil, err
		}
		settings = append(settings, *setting)
	}

	return settings, rows.Err()
}

func (r *PostgresSettingsRepository) Put(ctx context.Context, setting *models.Setting) error {
	if setting.UpdatedAt.IsZero() {
		setting.UpdatedAt = time.Now().UTC()
	}

	query := squirrel.Insert("settings").
		Columns("namespace", "key", "value", "updated_at").
		Values(setting.Namespace, string(setting.Key), setting.Value, setting.UpdatedAt).
		Suffix("ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to store setting %s: %w", setting.Key, err)
	}
	return nil
}

func (r *PostgresSettingsRepository) Delete(ctx context.Context, namespace uuid.UUID, keys ...models.SettingKey) ([]models.SettingKey, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = string(k)
	}

	query := squirrel.Delete("settings").
		Where(squirrel.Eq{"namespace": namespace, "key": names}).
		Suffix("RETURNING key").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to delete settings: %w", err)
	}
	defer rows.Close()

	var removed []models.SettingKey
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		removed = append(removed, models.SettingKey(key))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.logger.Debug("Settings deleted",
		zap.String("namespace", namespace.String()),
		zap.Int("count", len(removed)),
	)

	return removed, nil
}

func scanSetting(row pgx.Row) (*models.Setting, error) {
	var (
		setting models.Setting
		key     string
	)
	if err := row.Scan(&setting.Namespace, &key, &setting.Value, &setting.UpdatedAt); err != nil {
		return nil, err
	}
	setting.Key = models.SettingKey(key)
	return &setting, nil
}
