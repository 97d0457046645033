package http

import (
	"errors"
	"net/http"

	"github.com/avasiliev/timeshelf/internal/service"
	"github.com/avasiliev/timeshelf/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrTokenInvalid:        http.StatusUnauthorized,

	store.ErrRecordNotFound:  http.StatusNotFound,
	store.ErrRecordExists:    http.StatusConflict,
	store.ErrVersionConflict: http.StatusConflict,
	store.ErrRecordNotSaved:  http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
