package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avasiliev/timeshelf/internal/config"
	"github.com/avasiliev/timeshelf/internal/logger"
	"github.com/avasiliev/timeshelf/internal/utils"
)

type authService struct {
	signKey  string
	issuer   string
	duration time.Duration
	logger   *logger.Logger
}

func NewAuthService(cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		signKey:  cfg.TokenSignKey,
		issuer:   cfg.TokenIssuer,
		duration: cfg.TokenDuration,
		logger:   logger,
	}
}

func (a *authService) CreateDeviceToken(ctx context.Context, deviceID string) (string, error) {
	token, err := utils.GenerateDeviceToken(a.issuer, deviceID, a.duration, a.signKey)
	if err != nil {
		return "", fmt.Errorf("create device token: %w", err)
	}

	logger.FromContext(ctx).Info().
		Str("func", "authService.CreateDeviceToken").
		Str("device_id", deviceID).
		Msg("device token issued")

	return token, nil
}

func (a *authService) ParseDeviceToken(ctx context.Context, tokenString string) (string, error) {
	deviceID, err := utils.ValidateDeviceToken(tokenString, a.signKey, a.issuer)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrTokenInvalid, err)
	}

	return deviceID, nil
}
