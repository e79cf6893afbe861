package tests

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"escapada/internal/domain"
	"escapada/internal/redis"
	"escapada/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK PROFILE REPOSITORY
// ──────────────────────────────────────────────

// MockProfileRepository is a mock implementation of ProfileRepository.
type MockProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]*domain.Profile

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockProfileRepository creates a new mock profile repository.
func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{
		profiles: make(map[string]*domain.Profile),
	}
}

// AddProfile adds a profile to the mock repository.
func (m *MockProfileRepository) AddProfile(profile *domain.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.ID] = profile
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.ID] = profile
	return nil
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	profile, ok := m.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *profile
	return &copy, nil
}

func (m *MockProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.profiles {
		if p.Email == email {
			copy := *p
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockProfileRepository) GetAll(ctx context.Context) ([]*domain.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		copy := *p
		result = append(result, &copy)
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK SERVICE REPOSITORY
// ──────────────────────────────────────────────

// MockServiceRepository is a mock implementation of ServiceRepository.
type MockServiceRepository struct {
	mu       sync.RWMutex
	services map[string]*domain.Service

	// Counters for verification
	CreateCallCount  int32
	GetByIDCallCount int32

	// Error injection
	CreateError  error
	GetByIDError error
}

// NewMockServiceRepository creates a new mock service repository.
func NewMockServiceRepository() *MockServiceRepository {
	return &MockServiceRepository{
		services: make(map[string]*domain.Service),
	}
}

// AddService adds a service to the mock repository.
func (m *MockServiceRepository) AddService(service *domain.Service) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.services[service.ID] = service
}

func (m *MockServiceRepository) Create(ctx context.Context, service *domain.Service) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.services[service.ID] = service
	return nil
}

func (m *MockServiceRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	atomic.AddInt32(&m.GetByIDCallCount, 1)
	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	service, ok := m.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *service
	return &copy, nil
}

func (m *MockServiceRepository) GetByPartnerID(ctx context.Context, partnerID string) ([]*domain.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Service
	for _, s := range m.services {
		if s.PartnerID == partnerID {
			copy := *s
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockServiceRepository) GetAll(ctx context.Context) ([]*domain.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Service, 0, len(m.services))
	for _, s := range m.services {
		copy := *s
		result = append(result, &copy)
	}
	return result, nil
}

// CountServices returns the number of services.
func (m *MockServiceRepository) CountServices() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.services)
}

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is a mock implementation of TripRepository.
type MockTripRepository struct {
	mu    sync.RWMutex
	trips map[string]*domain.Trip
	items map[string][]*domain.TripItem

	// Counters
	CreateCallCount       int32
	UpdateStatusCallCount int32

	// Error injection
	CreateError       error
	UpdateStatusError error
	GetItemsError     error
}

// NewMockTripRepository creates a new mock trip repository.
func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{
		trips: make(map[string]*domain.Trip),
		items: make(map[string][]*domain.TripItem),
	}
}

// AddTrip adds a trip to the mock repository.
func (m *MockTripRepository) AddTrip(trip *domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
}

func (m *MockTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
	return nil
}

func (m *MockTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *trip
	return &copy, nil
}

func (m *MockTripRepository) GetActiveByTouristID(ctx context.Context, touristID string) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.trips {
		if t.TouristID == touristID && t.Status == domain.TripStatusActive {
			copy := *t
			return &copy, nil
		}
	}
	return nil, nil // No active trip
}

func (m *MockTripRepository) UpdateStatusAndTotal(ctx context.Context, id string, status domain.TripStatus, total float64) error {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	trip, ok := m.trips[id]
	if !ok {
		return repository.ErrNotFound
	}
	trip.Status = status
	trip.TotalPrice = total
	return nil
}

func (m *MockTripRepository) AddItem(ctx context.Context, item *domain.TripItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.TripID] = append(m.items[item.TripID], item)
	return nil
}

func (m *MockTripRepository) GetItems(ctx context.Context, tripID string) ([]*domain.TripItem, error) {
	if m.GetItemsError != nil {
		return nil, m.GetItemsError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := m.items[tripID]
	result := make([]*domain.TripItem, 0, len(items))
	for _, i := range items {
		copy := *i
		result = append(result, &copy)
	}
	return result, nil
}

// GetTrip returns trip for assertions.
func (m *MockTripRepository) GetTrip(id string) *domain.Trip {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trips[id]
}

// CountTrips returns the number of trips.
func (m *MockTripRepository) CountTrips() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trips)
}

// ──────────────────────────────────────────────
// MOCK BOOKING REPOSITORY
// ──────────────────────────────────────────────

// MockBookingRepository is a mock implementation of BookingRepository.
type MockBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking

	// Counters
	CreateCallCount       int32
	MarkRedeemedCallCount int32

	// Error injection
	CreateError       error
	MarkRedeemedError error
}

// NewMockBookingRepository creates a new mock booking repository.
func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{
		bookings: make(map[string]*domain.Booking),
	}
}

// AddBooking adds a booking to the mock repository.
func (m *MockBookingRepository) AddBooking(booking *domain.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
	return nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *booking
	return &copy, nil
}

func (m *MockBookingRepository) GetByTripID(ctx context.Context, tripID string) ([]*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Booking
	for _, b := range m.bookings {
		if b.TripID == tripID {
			copy := *b
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockBookingRepository) GetByPartnerID(ctx context.Context, partnerID string) ([]*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Booking
	for _, b := range m.bookings {
		if b.PartnerID == partnerID {
			copy := *b
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockBookingRepository) GetByTouristID(ctx context.Context, touristID string) ([]*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Booking
	for _, b := range m.bookings {
		if b.TouristID == touristID {
			copy := *b
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockBookingRepository) MarkRedeemed(ctx context.Context, id string, at time.Time) error {
	atomic.AddInt32(&m.MarkRedeemedCallCount, 1)
	if m.MarkRedeemedError != nil {
		return m.MarkRedeemedError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	booking.Status = domain.BookingStatusRedeemed
	booking.RedeemedAt = at
	return nil
}

// GetBooking returns booking for assertions.
func (m *MockBookingRepository) GetBooking(id string) *domain.Booking {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bookings[id]
}

// CountBookings returns the number of bookings.
func (m *MockBookingRepository) CountBookings() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bookings)
}

// ──────────────────────────────────────────────
// MOCK CACHE STORE
// ──────────────────────────────────────────────

// MockCacheStore is a mock implementation of CacheStore.
type MockCacheStore struct {
	mu              sync.RWMutex
	classifications map[string]*redis.CachedClassification
	services        map[string]*redis.CachedService

	// Counters
	GetClassificationCallCount int32
	SetClassificationCallCount int32
	GetServiceCallCount        int32
	SetServiceCallCount        int32

	// Error injection
	GetError error
	SetError error
}

// NewMockCacheStore creates a new mock cache store.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{
		classifications: make(map[string]*redis.CachedClassification),
		services:        make(map[string]*redis.CachedService),
	}
}

func (m *MockCacheStore) GetClassification(ctx context.Context, prefix string) (*redis.CachedClassification, error) {
	atomic.AddInt32(&m.GetClassificationCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.classifications[prefix], nil
}

func (m *MockCacheStore) SetClassification(ctx context.Context, classification *redis.CachedClassification) error {
	atomic.AddInt32(&m.SetClassificationCallCount, 1)
	if m.SetError != nil {
		return m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.classifications[classification.Prefix] = classification
	return nil
}

func (m *MockCacheStore) GetService(ctx context.Context, serviceID string) (*redis.CachedService, error) {
	atomic.AddInt32(&m.GetServiceCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.services[serviceID], nil
}

func (m *MockCacheStore) SetService(ctx context.Context, service *redis.CachedService) error {
	atomic.AddInt32(&m.SetServiceCallCount, 1)
	if m.SetError != nil {
		return m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.services[service.ID] = service
	return nil
}

func (m *MockCacheStore) InvalidateService(ctx context.Context, serviceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.services, serviceID)
	return nil
}

// HasClassification checks whether a prefix was cached (for test assertions).
func (m *MockCacheStore) HasClassification(prefix string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.classifications[prefix]
	return ok
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStore.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]time.Time

	// Counters
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error

	// Force lock failure
	ForceAcquireFailure bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]time.Time),
	}
}

func (m *MockLockStore) AcquireCheckoutLock(ctx context.Context, tripID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	if m.ForceAcquireFailure {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := "lock:checkout:" + tripID
	if expiry, exists := m.locks[key]; exists {
		if time.Now().Before(expiry) {
			return false, nil // Lock still held.
		}
	}

	m.locks[key] = time.Now().Add(ttl)
	return true, nil
}

func (m *MockLockStore) ReleaseCheckoutLock(ctx context.Context, tripID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, "lock:checkout:"+tripID)
	return nil
}

// IsLocked checks if a trip checkout is locked (for test assertions).
func (m *MockLockStore) IsLocked(tripID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	expiry, exists := m.locks["lock:checkout:"+tripID]
	return exists && time.Now().Before(expiry)
}

// ClearLocks clears all locks (for test cleanup).
func (m *MockLockStore) ClearLocks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locks = make(map[string]time.Time)
}

// ──────────────────────────────────────────────
// HELPER ERRORS
// ──────────────────────────────────────────────

var (
	ErrMockDBConstraint = errors.New("mock: unique constraint violation")
	ErrMockTimeout      = errors.New("mock: operation timeout")
)
