package exchange

import (
	"sort"
	"sync"

	"github.com/avc/pos-pricing/internal/domain"
)

// Ledger - журнал изменений курсов только на добавление.
// Записи добавляет хранилище курсов при обновлении, снаружи журнал только читают.
type Ledger struct {
	mu      sync.RWMutex
	entries []domain.ExchangeRateHistoryEntry
}

// NewLedger создает пустой журнал
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append добавляет копию записи в журнал
func (l *Ledger) Append(entry *domain.ExchangeRateHistoryEntry) {
	l.mu.Lock()
	l.entries = append(l.entries, copyEntry(entry))
	l.mu.Unlock()
}

// Query возвращает записи пары от новых к старым, не больше limit (limit <= 0 - все)
func (l *Ledger) Query(base, target string, limit int) []*domain.ExchangeRateHistoryEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	type indexed struct {
		seq   int
		entry domain.ExchangeRateHistoryEntry
	}

	var matched []indexed
	for i, entry := range l.entries {
		if entry.BaseCurrency == base && entry.TargetCurrency == target {
			matched = append(matched, indexed{seq: i, entry: entry})
		}
	}

	// При равном времени новее та запись, что добавлена позже
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].entry.RecordedAt.Equal(matched[j].entry.RecordedAt) {
			return matched[i].seq > matched[j].seq
		}
		return matched[i].entry.RecordedAt.After(matched[j].entry.RecordedAt)
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	result := make([]*domain.ExchangeRateHistoryEntry, len(matched))
	for i := range matched {
		entry := copyEntry(&matched[i].entry)
		result[i] = &entry
	}

	return result
}

// Len возвращает общее количество записей
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

func copyEntry(entry *domain.ExchangeRateHistoryEntry) domain.ExchangeRateHistoryEntry {
	c := *entry
	if entry.PreviousRate != nil {
		prev := *entry.PreviousRate
		c.PreviousRate = &prev
	}
	if entry.ChangePercentage != nil {
		change := *entry.ChangePercentage
		c.ChangePercentage = &change
	}
	return c
}
