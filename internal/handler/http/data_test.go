package http

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avasiliev/timeshelf/internal/store"
	"github.com/avasiliev/timeshelf/models"
)

func TestHandler_UpsertResource_TakesIDFromURL(t *testing.T) {
	sync := &stubSyncService{}
	server := newTestServer(t, sync)

	resource := models.NewResource("ignored", "title", "https://example.com", time.Now())
	body, err := json.Marshal(resource)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(authorizedRequest(t, http.MethodPut, server.URL+"/api/resources/res-7", body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "res-7", sync.lastResource.LocalID, "URL id wins over the body")
}

func TestHandler_UpsertResource_Conflict(t *testing.T) {
	sync := &stubSyncService{upsertResourceErr: store.ErrVersionConflict}
	server := newTestServer(t, sync)

	body, err := json.Marshal(models.NewResource("res-1", "title", "https://example.com", time.Now()))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(authorizedRequest(t, http.MethodPut, server.URL+"/api/resources/res-1", body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestHandler_DeleteResource(t *testing.T) {
	sync := &stubSyncService{}
	server := newTestServer(t, sync)

	resp, err := http.DefaultClient.Do(authorizedRequest(t, http.MethodDelete, server.URL+"/api/resources/res-1", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "res-1", sync.deletedID)
}

func TestHandler_DeleteResource_NotFound(t *testing.T) {
	sync := &stubSyncService{deleteErr: notFoundErr}
	server := newTestServer(t, sync)

	resp, err := http.DefaultClient.Do(authorizedRequest(t, http.MethodDelete, server.URL+"/api/resources/missing", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_UpsertTimeSlot(t *testing.T) {
	sync := &stubSyncService{}
	server := newTestServer(t, sync)

	body, err := json.Marshal(models.NewTimeSlot("slot-1", "deep work", 1, 540, 90, time.Now()))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(authorizedRequest(t, http.MethodPut, server.URL+"/api/timeslots/slot-1", body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var decoded models.TimeSlot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	assert.Equal(t, "slot-1", decoded.LocalID)
}
