package services

import (
	"context"
	"fmt"
)

// Pinger хранилище, умеющее отвечать на проверку связи.
// Реализуют pgxpool.Pool, gorm-обертка и in-memory хранилище.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingService обслуживает /ping: недоступное хранилище отдается как ErrStoreUnavailable,
// чтобы контроллер ответил 503.
type PingService struct {
	store Pinger
}

func NewPingService(store Pinger) *PingService {
	return &PingService{store: store}
}

func (s *PingService) CheckConnection(ctx context.Context) error {
	err := s.store.Ping(ctx)
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: ping: %w", ErrStoreUnavailable, err)
}
