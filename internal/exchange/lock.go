package exchange

import "sync"

// pairLocker выдает отдельный мьютекс на каждую пару валют.
// Обновления разных пар не блокируют друг друга.
type pairLocker struct {
	mu    sync.Mutex
	locks map[string]*pairLock
}

type pairLock struct {
	mu   sync.Mutex
	refs int
}

func newPairLocker() *pairLocker {
	return &pairLocker{locks: make(map[string]*pairLock)}
}

// Lock захватывает мьютекс пары и возвращает функцию освобождения
func (l *pairLocker) Lock(key string) func() {
	l.mu.Lock()
	lock, ok := l.locks[key]
	if !ok {
		lock = &pairLock{}
		l.locks[key] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

func (l *pairLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// fillGuard ведет поколение каждой пары валют. Update увеличивает поколение
// после записи курса, и заполнение кеша значением, прочитанным до записи,
// отбрасывается. Поколение общее для обоих направлений пары.
type fillGuard struct {
	locks *pairLocker
	mu    sync.Mutex
	gens  map[string]uint64
}

func newFillGuard() *fillGuard {
	return &fillGuard{
		locks: newPairLocker(),
		gens:  make(map[string]uint64),
	}
}

func pairGroup(base, target string) string {
	if base > target {
		base, target = target, base
	}
	return base + "/" + target
}

func (g *fillGuard) generation(group string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gens[group]
}

// current возвращает поколение пары перед чтением из репозитория
func (g *fillGuard) current(base, target string) uint64 {
	return g.generation(pairGroup(base, target))
}

// fill выполняет set, только если поколение пары не изменилось с gen.
// Проверка и set выполняются под блокировкой пары, общей с bump.
func (g *fillGuard) fill(base, target string, gen uint64, set func()) bool {
	group := pairGroup(base, target)
	unlock := g.locks.Lock(group)
	defer unlock()

	if g.generation(group) != gen {
		return false
	}
	set()
	return true
}

// bump увеличивает поколение пары. Вызывается до сброса кеша.
func (g *fillGuard) bump(base, target string) {
	group := pairGroup(base, target)
	unlock := g.locks.Lock(group)
	defer unlock()

	g.mu.Lock()
	g.gens[group]++
	g.mu.Unlock()
}
