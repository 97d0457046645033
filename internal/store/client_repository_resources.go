package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avasiliev/timeshelf/internal/logger"
	"github.com/avasiliev/timeshelf/models"
)

type localResourceRepository struct {
	*DB
	logger *logger.Logger
}

func NewLocalResourceRepository(db *DB, logger *logger.Logger) LocalResourceRepository {
	return &localResourceRepository{
		DB:     db,
		logger: logger,
	}
}

func (l *localResourceRepository) Upsert(ctx context.Context, resource models.Resource) error {
	log := logger.FromContext(ctx)

	// SQLite stores timestamps as TEXT and compares them lexicographically,
	// so mixed zone offsets would break the modified_at ordering. Everything
	// goes in as UTC.
	_, err := l.DB.ExecContext(ctx, upsertResource,
		resource.LocalID,
		resource.RemoteID,
		resource.Version,
		resource.ModifiedAt.UTC(),
		resource.Deleted,
		resource.SyncStatus,
		resource.RetryCount,
		resource.LastError,
		resource.Title,
		resource.URL,
		resource.Notes,
		resource.Tags,
		resource.CreatedAt.UTC(),
	)
	if err != nil {
		log.Err(err).
			Str("func", "localResourceRepository.Upsert").
			Str("local_id", resource.LocalID).
			Msg("failed to execute upsert for resource")
		return fmt.Errorf("failed to save resource (local_id=%s): %w", resource.LocalID, err)
	}

	return nil
}

func (l *localResourceRepository) Get(ctx context.Context, localID string) (models.Resource, error) {
	return l.queryOne(ctx, "localResourceRepository.Get", getResource, localID)
}

func (l *localResourceRepository) FindByRemoteID(ctx context.Context, remoteID string) (models.Resource, error) {
	return l.queryOne(ctx, "localResourceRepository.FindByRemoteID", findResourceByRemoteID, remoteID)
}

func (l *localResourceRepository) List(ctx context.Context) ([]models.Resource, error) {
	return l.queryMany(ctx, "localResourceRepository.List", listResources)
}

func (l *localResourceRepository) ListPending(ctx context.Context) ([]models.Resource, error) {
	return l.queryMany(ctx, "localResourceRepository.ListPending", listPendingResources)
}

func (l *localResourceRepository) ResetFailed(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := l.DB.ExecContext(ctx, resetFailedResources, now.UTC())
	if err != nil {
		log.Err(err).
			Str("func", "localResourceRepository.ResetFailed").
			Msg("failed to reset failed resources")
		return 0, fmt.Errorf("failed to reset failed resources: %w", err)
	}

	return result.RowsAffected()
}

func (l *localResourceRepository) PurgeSyncedDeletions(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := l.DB.ExecContext(ctx, purgeSyncedResourceDeletions)
	if err != nil {
		log.Err(err).
			Str("func", "localResourceRepository.PurgeSyncedDeletions").
			Msg("failed to purge synced resource deletions")
		return 0, fmt.Errorf("failed to purge synced resource deletions: %w", err)
	}

	return result.RowsAffected()
}

func (l *localResourceRepository) queryOne(ctx context.Context, funcName, query string, arg any) (models.Resource, error) {
	log := logger.FromContext(ctx)

	row := l.DB.QueryRowContext(ctx, query, arg)

	resource, scanErr := scanResource(row.Scan)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.Resource{}, ErrRecordNotFound
		}
		log.Err(scanErr).
			Str("func", funcName).
			Msg("failed to scan resource row")
		return models.Resource{}, fmt.Errorf("failed to scan resource row: %w", scanErr)
	}

	return resource, nil
}

func (l *localResourceRepository) queryMany(ctx context.Context, funcName, query string) ([]models.Resource, error) {
	log := logger.FromContext(ctx)

	rows, err := l.DB.QueryContext(ctx, query)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Msg("failed to execute query for resources")
		return nil, fmt.Errorf("failed to query resources: %w", err)
	}
	defer rows.Close()

	var resources []models.Resource

	for rows.Next() {
		resource, scanErr := scanResource(rows.Scan)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", funcName).
				Msg("failed to scan resource row")
			return nil, fmt.Errorf("failed to scan resource row: %w", scanErr)
		}

		resources = append(resources, resource)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", funcName).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating resource rows: %w", rowsErr)
	}

	return resources, nil
}

func scanResource(scan func(dest ...any) error) (models.Resource, error) {
	var resource models.Resource
	err := scan(
		&resource.LocalID,
		&resource.RemoteID,
		&resource.Version,
		&resource.ModifiedAt,
		&resource.Deleted,
		&resource.SyncStatus,
		&resource.RetryCount,
		&resource.LastError,
		&resource.Title,
		&resource.URL,
		&resource.Notes,
		&resource.Tags,
		&resource.CreatedAt,
	)
	return resource, err
}
