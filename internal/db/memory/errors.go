package memory

import "errors"

var (
	// ErrNotFound ключа нет в хранилище.
	ErrNotFound = errors.New("[memory]: key not found")
	// ErrDuplicateKey ключ уже занят, а перезапись не разрешена (см. WithOverwrite).
	ErrDuplicateKey = errors.New("[memory]: key already exists")
)
