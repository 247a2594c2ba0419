// storage описывает контракт разделяемого хранилища счётчиков неудачных
// входов. Реализации (см. redisdb) обязаны давать атомарный инкремент:
// два конкурентных IncrWithTTL по одному ключу не должны потерять попытку.
package storage

//go:generate mockgen -source=storage.go -destination=../../mocks/mock_counters.go -package=mocks

import (
	"context"
	"time"
)

// Counters — счётчики с TTL, разделяемые между экземплярами шлюза.
type Counters interface {
	// Count возвращает текущее значение счётчика (0, если ключа нет).
	Count(ctx context.Context, key string) (int64, error)
	// IncrWithTTL атомарно увеличивает счётчик на 1 и (пере)выставляет TTL.
	// Возвращает значение после инкремента.
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	// Delete удаляет счётчик. Идемпотентен: отсутствие ключа — не ошибка.
	Delete(ctx context.Context, key string) error
}
