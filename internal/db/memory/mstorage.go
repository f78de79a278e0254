// Package memory потокобезопасное key/value хранилище в памяти.
// Значения хранятся сериализованными в JSON, поэтому наружу всегда отдаются копии.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// MStorage хранилище. Ключ уникален.
type MStorage struct {
	data map[string][]byte
	m    sync.RWMutex
}

// SetOptions настройки записи.
type SetOptions struct {
	Overwrite bool
}

// WithOverwrite разрешает перезапись существующего ключа.
func WithOverwrite() func(*SetOptions) {
	return func(o *SetOptions) {
		o.Overwrite = true
	}
}

// NewMemStorage создает пустое хранилище.
func NewMemStorage() *MStorage {
	return &MStorage{
		data: make(map[string][]byte),
	}
}

// Len количество ключей.
func (m *MStorage) Len() int {
	m.m.RLock()
	defer m.m.RUnlock()

	return len(m.data)
}

// Size суммарный размер сериализованных значений в байтах.
func (m *MStorage) Size() int64 {
	m.m.RLock()
	defer m.m.RUnlock()

	var size int64
	for _, v := range m.data {
		size += int64(len(v))
	}
	return size
}

// Get возвращает копию значения по ключу.
func Get[T any](ctx context.Context, key string, m *MStorage) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}
	m.m.RLock()
	defer m.m.RUnlock()

	val, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	var result T
	if err := json.Unmarshal(val, &result); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal json by key `%s`", key)
	}
	return &result, nil
}

// Set Сохраняет новую пару ключ/значение. Без WithOverwrite ключ обязан быть уникальным,
// иначе вернется ошибка ErrDuplicateKey. Проверка и запись выполняются под одной блокировкой.
func Set[T any](ctx context.Context, key string, val *T, m *MStorage, opts ...func(*SetOptions)) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}
	var options SetOptions
	for _, opt := range opts {
		opt(&options)
	}

	bytes, err := json.Marshal(val)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal json for object `%+v`", val)
	}

	m.m.Lock()
	defer m.m.Unlock()

	if _, exists := m.data[key]; exists && !options.Overwrite {
		return ErrDuplicateKey
	}
	m.data[key] = bytes
	return nil
}

// Update атомарно изменяет значение по ключу. Если fn вернул false, запись не меняется.
func Update[T any](ctx context.Context, key string, m *MStorage, fn func(val *T) (bool, error)) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}
	m.m.Lock()
	defer m.m.Unlock()

	raw, ok := m.data[key]
	if !ok {
		return ErrNotFound
	}
	var val T
	if err := json.Unmarshal(raw, &val); err != nil {
		return errors.Wrapf(err, "failed to unmarshal json by key `%s`", key)
	}

	changed, err := fn(&val)
	if err != nil || !changed {
		return err
	}

	bytes, err := json.Marshal(&val)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal json for key `%s`", key)
	}
	m.data[key] = bytes
	return nil
}

// FilterAll возвращает значения, для которых fn вернул true, в порядке ключей.
func FilterAll[T any](ctx context.Context, m *MStorage, fn func(val T) bool) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}
	m.m.RLock()
	defer m.m.RUnlock()

	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var result = make([]T, 0)
	for _, k := range keys {
		var val T
		if err := json.Unmarshal(m.data[k], &val); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal json by key `%s`", k)
		}
		if fn(val) {
			result = append(result, val)
		}
	}
	return result, nil
}

// GetAll возвращает все значения.
func GetAll[T any](ctx context.Context, m *MStorage) ([]T, error) {
	return FilterAll[T](ctx, m, func(T) bool { return true })
}

// DeleteFunc удаляет значения, для которых fn вернул true, и возвращает их количество.
func DeleteFunc[T any](ctx context.Context, m *MStorage, fn func(val T) bool) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err //nolint:wrapcheck
	}
	m.m.Lock()
	defer m.m.Unlock()

	var deleted int64
	for k, raw := range m.data {
		var val T
		if err := json.Unmarshal(raw, &val); err != nil {
			return deleted, errors.Wrapf(err, "failed to unmarshal json by key `%s`", k)
		}
		if fn(val) {
			delete(m.data, k)
			deleted++
		}
	}
	return deleted, nil
}
