// Package otpstore keeps pending OTPs in process memory. State is
// intentionally not shared between instances: running more than one replica
// requires sticky routing or an external store.
package otpstore

import (
	"log/slog"
	"sync"
	"time"

	"github.com/urep/registration-api/internal/domain"
)

// Store is a concurrent map of phone number -> pending OTP record. A single
// coarse mutex guards all mutations so concurrent verification attempts on
// the same phone can never lose an attempt increment.
//
// Construction starts the background sweeper; Close stops it. The sweeper is
// memory hygiene only — verification checks expiry itself.
type Store struct {
	mu      sync.Mutex
	records map[string]*domain.OTPRecord

	now  func() time.Time
	done chan struct{}
}

// New returns a running store whose sweeper fires every sweepPeriod.
// A sweepPeriod <= 0 disables the sweeper (useful in tests).
func New(sweepPeriod time.Duration) *Store {
	s := &Store{
		records: make(map[string]*domain.OTPRecord),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	if sweepPeriod > 0 {
		go s.sweep(sweepPeriod)
	}
	return s
}

// Close stops the background sweeper. Records are not flushed; they die with
// the process.
func (s *Store) Close() {
	close(s.done)
}

// Put stores a record for phone, unconditionally replacing any existing one.
func (s *Store) Put(phone string, rec domain.OTPRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[phone] = &rec
}

// Get returns a copy of the record for phone, if present.
func (s *Store) Get(phone string) (domain.OTPRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[phone]
	if !ok {
		return domain.OTPRecord{}, false
	}
	return *rec, true
}

// Delete removes the record for phone, if present.
func (s *Store) Delete(phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, phone)
}

// IncrementAttempts atomically bumps the attempt counter for phone and
// returns the new count. The bool is false when no record exists.
func (s *Store) IncrementAttempts(phone string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[phone]
	if !ok {
		return 0, false
	}
	rec.Attempts++
	return rec.Attempts, true
}

// ForEachExpired calls fn for every record expired at the given instant.
// fn runs under the store lock and must not call back into the store.
func (s *Store) ForEachExpired(now time.Time, fn func(phone string, rec domain.OTPRecord)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for phone, rec := range s.records {
		if rec.Expired(now) {
			fn(phone, *rec)
		}
	}
}

// sweep periodically evicts expired records.
func (s *Store) sweep(period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := s.evictExpired(s.now()); n > 0 {
				slog.Debug("cleaned up expired OTPs", "count", n)
			}
		case <-s.done:
			return
		}
	}
}

func (s *Store) evictExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for phone, rec := range s.records {
		if rec.Expired(now) {
			delete(s.records, phone)
			n++
		}
	}
	return n
}
