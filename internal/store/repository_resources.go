package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/avasiliev/timeshelf/internal/logger"
	"github.com/avasiliev/timeshelf/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var resourceColumns = []string{
	"server_id",
	"client_id",
	"version",
	"modified_at",
	"deleted",
	"title",
	"url",
	"notes",
	"tags",
	"created_at",
}

type syncedResourceRepository struct {
	*DB
	logger *logger.Logger
}

func NewSyncedResourceRepository(db *DB, logger *logger.Logger) SyncedResourceRepository {
	return &syncedResourceRepository{
		DB:     db,
		logger: logger,
	}
}

func (s *syncedResourceRepository) GetByClientID(ctx context.Context, clientID string) (models.Resource, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Select(resourceColumns...).
		From("resources").
		Where(sq.Eq{"client_id": clientID}).
		ToSql()
	if err != nil {
		return models.Resource{}, fmt.Errorf("failed to build resource select: %w", err)
	}

	row := s.DB.QueryRowContext(ctx, query, args...)

	resource, scanErr := scanSyncedResource(row.Scan)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.Resource{}, ErrRecordNotFound
		}
		log.Err(scanErr).
			Str("func", "syncedResourceRepository.GetByClientID").
			Str("client_id", clientID).
			Msg("failed to scan resource row")
		return models.Resource{}, fmt.Errorf("failed to scan resource row: %w", scanErr)
	}

	return resource, nil
}

func (s *syncedResourceRepository) Insert(ctx context.Context, resource models.Resource) (string, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Insert("resources").
		Columns("client_id", "version", "modified_at", "deleted", "title", "url", "notes", "tags", "created_at").
		Values(
			resource.LocalID,
			resource.Version,
			resource.ModifiedAt,
			resource.Deleted,
			resource.Title,
			resource.URL,
			resource.Notes,
			resource.Tags,
			resource.CreatedAt,
		).
		Suffix("RETURNING server_id").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build resource insert: %w", err)
	}

	var serverID string
	if err := s.DB.QueryRowContext(ctx, query, args...).Scan(&serverID); err != nil {
		if IsUniqueViolation(err) {
			return "", ErrRecordExists
		}
		log.Err(err).
			Str("func", "syncedResourceRepository.Insert").
			Str("client_id", resource.LocalID).
			Bool("retryable", s.errorClassificator.Classify(err) == Retryable).
			Msg("failed to insert resource")
		return "", fmt.Errorf("failed to insert resource: %w", err)
	}

	return serverID, nil
}

func (s *syncedResourceRepository) Update(ctx context.Context, resource models.Resource) error {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Update("resources").
		Set("version", resource.Version).
		Set("modified_at", resource.ModifiedAt).
		Set("deleted", resource.Deleted).
		Set("title", resource.Title).
		Set("url", resource.URL).
		Set("notes", resource.Notes).
		Set("tags", resource.Tags).
		Where(sq.Eq{"client_id": resource.LocalID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build resource update: %w", err)
	}

	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "syncedResourceRepository.Update").
			Str("client_id", resource.LocalID).
			Bool("retryable", s.errorClassificator.Classify(err) == Retryable).
			Msg("failed to update resource")
		return fmt.Errorf("failed to update resource: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (s *syncedResourceRepository) ListChangedSince(ctx context.Context, since time.Time) ([]models.Resource, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Select(resourceColumns...).
		From("resources").
		Where(sq.Gt{"modified_at": since}).
		OrderBy("modified_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build resource select: %w", err)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "syncedResourceRepository.ListChangedSince").
			Time("since", since).
			Msg("failed to query changed resources")
		return nil, fmt.Errorf("failed to query changed resources: %w", err)
	}
	defer rows.Close()

	var resources []models.Resource

	for rows.Next() {
		resource, scanErr := scanSyncedResource(rows.Scan)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "syncedResourceRepository.ListChangedSince").
				Msg("failed to scan resource row")
			return nil, fmt.Errorf("failed to scan resource row: %w", scanErr)
		}

		resources = append(resources, resource)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "syncedResourceRepository.ListChangedSince").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating resource rows: %w", rowsErr)
	}

	return resources, nil
}

func scanSyncedResource(scan func(dest ...any) error) (models.Resource, error) {
	var resource models.Resource
	err := scan(
		&resource.RemoteID,
		&resource.LocalID,
		&resource.Version,
		&resource.ModifiedAt,
		&resource.Deleted,
		&resource.Title,
		&resource.URL,
		&resource.Notes,
		&resource.Tags,
		&resource.CreatedAt,
	)
	return resource, err
}
