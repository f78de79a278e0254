package db

import (
	"github.com/fsdevblog/screws/internal/db/memory"
)

// MemoryStorage соединение с хранилищем в памяти.
type MemoryStorage struct {
	*memory.MStorage
}

// NewMemStorage создает пустое хранилище в памяти.
func NewMemStorage() *MemoryStorage {
	return &MemoryStorage{
		MStorage: memory.NewMemStorage(),
	}
}
