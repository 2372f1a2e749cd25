package db

import (
	"context"

	"github.com/vitalmarket/supplements-service/internal/repository"
)

type DB interface {
	repository.DB
	Ping(ctx context.Context) error
}
