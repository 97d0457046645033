package http

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avasiliev/timeshelf/internal/logger"
	"github.com/avasiliev/timeshelf/internal/service"
	"github.com/avasiliev/timeshelf/internal/store"
	"github.com/avasiliev/timeshelf/models"
)

// stubSyncService scripts the server-side sync logic for handler tests.
type stubSyncService struct {
	applyBatchResp models.BatchResponse
	applyBatchErr  error
	lastBatch      models.BatchRequest

	changes    models.BatchRequest
	changesErr error
	lastSince  time.Time

	upsertResourceErr error
	lastResource      models.Resource

	upsertTimeSlotErr error

	deleteErr error
	deletedID string
}

func (s *stubSyncService) ApplyBatch(_ context.Context, req models.BatchRequest) (models.BatchResponse, error) {
	s.lastBatch = req
	return s.applyBatchResp, s.applyBatchErr
}

func (s *stubSyncService) ChangesSince(_ context.Context, since time.Time) (models.BatchRequest, error) {
	s.lastSince = since
	return s.changes, s.changesErr
}

func (s *stubSyncService) UpsertResource(_ context.Context, resource models.Resource) (models.Resource, error) {
	s.lastResource = resource
	if s.upsertResourceErr != nil {
		return models.Resource{}, s.upsertResourceErr
	}
	return resource, nil
}

func (s *stubSyncService) DeleteResource(_ context.Context, clientID string) error {
	s.deletedID = clientID
	return s.deleteErr
}

func (s *stubSyncService) UpsertTimeSlot(_ context.Context, slot models.TimeSlot) (models.TimeSlot, error) {
	if s.upsertTimeSlotErr != nil {
		return models.TimeSlot{}, s.upsertTimeSlotErr
	}
	return slot, nil
}

func (s *stubSyncService) DeleteTimeSlot(_ context.Context, clientID string) error {
	s.deletedID = clientID
	return s.deleteErr
}

// stubAuthService accepts the token "good-token" for device "device-1".
type stubAuthService struct {
	createdToken string
	createErr    error
}

func (s *stubAuthService) CreateDeviceToken(_ context.Context, deviceID string) (string, error) {
	if s.createErr != nil {
		return "", s.createErr
	}
	if s.createdToken != "" {
		return s.createdToken, nil
	}
	return "token-for-" + deviceID, nil
}

func (s *stubAuthService) ParseDeviceToken(_ context.Context, tokenString string) (string, error) {
	if tokenString != "good-token" {
		return "", service.ErrTokenInvalid
	}
	return "device-1", nil
}

func newTestServer(t *testing.T, sync *stubSyncService) *httptest.Server {
	t.Helper()

	handler := NewHandler(&service.Services{
		SyncService: sync,
		AuthService: &stubAuthService{},
	}, logger.Nop())

	server := httptest.NewServer(handler.Init())
	t.Cleanup(server.Close)
	return server
}

// notFoundErr is a store-level sentinel reused across handler tests.
var notFoundErr = store.ErrRecordNotFound
