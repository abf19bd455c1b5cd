package state

import (
	"sync"
	"time"

	"github.com/Freeeeeet/clinic_booking_bot/internal/booking"
)

type bookingEntry struct {
	state   booking.State
	touched time.Time
}

// Manager управляет состояниями пользователей.
// Диалоги и форма записи хранятся раздельно: /cancel или конец
// регистрации не сбрасывают выбор врача.
type Manager struct {
	mu       sync.RWMutex
	states   map[int64]*UserData      // telegramID -> UserData
	bookings map[int64]*bookingEntry // telegramID -> форма записи
	now      func() time.Time
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		states:   make(map[int64]*UserData),
		bookings: make(map[int64]*bookingEntry),
		now:      time.Now,
	}
}

// entry возвращает запись пользователя, создавая её при необходимости.
// Вызывается под записывающей блокировкой.
func (sm *Manager) entry(telegramID int64) *UserData {
	userData, exists := sm.states[telegramID]
	if !exists {
		userData = &UserData{
			State: StateNone,
			Data:  make(map[string]interface{}),
		}
		sm.states[telegramID] = userData
	}
	userData.Touched = sm.now()
	return userData
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.State
	}
	return StateNone
}

// SetState устанавливает состояние пользователя
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state == StateNone {
		// Если состояние None, удаляем запись
		delete(sm.states, telegramID)
		return
	}

	sm.entry(telegramID).State = state
}

// GetData получает временные данные пользователя
func (sm *Manager) GetData(telegramID int64, key string) (interface{}, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		value, ok := userData.Data[key]
		return value, ok
	}
	return nil, false
}

// SetData устанавливает временные данные пользователя
func (sm *Manager) SetData(telegramID int64, key string, value interface{}) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.entry(telegramID).Data[key] = value
}

// ClearState очищает состояние и данные диалога пользователя
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}

// GetAllData получает все временные данные пользователя
func (sm *Manager) GetAllData(telegramID int64) map[string]interface{} {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		// Возвращаем копию, чтобы избежать race condition
		dataCopy := make(map[string]interface{})
		for k, v := range userData.Data {
			dataCopy[k] = v
		}
		return dataCopy
	}
	return nil
}

// Update атомарно меняет состояние и данные диалога
func (sm *Manager) Update(telegramID int64, fn func(*UserData)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	userData := sm.entry(telegramID)
	fn(userData)
	if userData.State == StateNone && len(userData.Data) == 0 {
		delete(sm.states, telegramID)
	}
}

// UpdateBooking атомарно применяет fn к форме записи и возвращает новое состояние
func (sm *Manager) UpdateBooking(telegramID int64, fn func(booking.State) booking.State) booking.State {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	cur, exists := sm.bookings[telegramID]
	if !exists {
		cur = &bookingEntry{state: booking.Initial()}
		sm.bookings[telegramID] = cur
	}
	cur.state = fn(cur.state)
	cur.touched = sm.now()
	return cur.state
}

// PurgeIdle удаляет диалоги и формы, к которым не обращались дольше maxIdle.
// Возвращает число удалённых записей.
func (sm *Manager) PurgeIdle(maxIdle time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	cutoff := sm.now().Add(-maxIdle)
	purged := 0
	for id, userData := range sm.states {
		if userData.Touched.Before(cutoff) {
			delete(sm.states, id)
			purged++
		}
	}
	for id, entry := range sm.bookings {
		if entry.touched.Before(cutoff) {
			delete(sm.bookings, id)
			purged++
		}
	}
	return purged
}
