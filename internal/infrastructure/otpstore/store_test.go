package otpstore

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urep/registration-api/internal/domain"
)

const testPhone = "2348012345678"

func newTestStore() *Store {
	s := New(0) // no sweeper goroutine in tests
	return s
}

func TestPutGetDelete(t *testing.T) {
	s := newTestStore()

	_, ok := s.Get(testPhone)
	assert.False(t, ok)

	s.Put(testPhone, domain.OTPRecord{Code: "123456", ExpiresAt: time.Now().Add(time.Minute)})
	rec, ok := s.Get(testPhone)
	require.True(t, ok)
	assert.Equal(t, "123456", rec.Code)
	assert.Equal(t, 0, rec.Attempts)

	s.Delete(testPhone)
	_, ok = s.Get(testPhone)
	assert.False(t, ok)
}

func TestPut_ReplacesExistingRecord(t *testing.T) {
	s := newTestStore()
	s.Put(testPhone, domain.OTPRecord{Code: "111111"})
	s.IncrementAttempts(testPhone)
	s.Put(testPhone, domain.OTPRecord{Code: "222222"})

	rec, ok := s.Get(testPhone)
	require.True(t, ok)
	assert.Equal(t, "222222", rec.Code)
	assert.Equal(t, 0, rec.Attempts, "replacement must reset attempts")
}

func TestIncrementAttempts_NoRecord(t *testing.T) {
	s := newTestStore()
	_, ok := s.IncrementAttempts(testPhone)
	assert.False(t, ok)
}

func TestIncrementAttempts_Concurrent(t *testing.T) {
	s := newTestStore()
	s.Put(testPhone, domain.OTPRecord{Code: "123456", ExpiresAt: time.Now().Add(time.Minute)})

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, ok := s.IncrementAttempts(testPhone)
			assert.True(t, ok)
		}()
	}
	wg.Wait()

	rec, ok := s.Get(testPhone)
	require.True(t, ok)
	assert.Equal(t, workers, rec.Attempts, "no increment may be lost")
}

func TestGet_ReturnsCopy(t *testing.T) {
	s := newTestStore()
	s.Put(testPhone, domain.OTPRecord{Code: "123456"})

	rec, _ := s.Get(testPhone)
	rec.Attempts = 99

	fresh, _ := s.Get(testPhone)
	assert.Equal(t, 0, fresh.Attempts)
}

func TestEvictExpired(t *testing.T) {
	s := newTestStore()
	now := time.Now()
	s.Put("2348000000001", domain.OTPRecord{Code: "111111", ExpiresAt: now.Add(-time.Minute)})
	s.Put("2348000000002", domain.OTPRecord{Code: "222222", ExpiresAt: now.Add(-time.Second)})
	s.Put("2348000000003", domain.OTPRecord{Code: "333333", ExpiresAt: now.Add(time.Minute)})

	assert.Equal(t, 2, s.evictExpired(now))

	_, ok := s.Get("2348000000001")
	assert.False(t, ok)
	_, ok = s.Get("2348000000003")
	assert.True(t, ok)
}

func TestForEachExpired(t *testing.T) {
	s := newTestStore()
	now := time.Now()
	s.Put("2348000000001", domain.OTPRecord{Code: "111111", ExpiresAt: now.Add(-time.Minute)})
	s.Put("2348000000002", domain.OTPRecord{Code: "222222", ExpiresAt: now.Add(time.Minute)})

	var seen []string
	s.ForEachExpired(now, func(phone string, _ domain.OTPRecord) {
		seen = append(seen, phone)
	})
	assert.Equal(t, []string{"2348000000001"}, seen)
}

func TestSweeper_EvictsInBackground(t *testing.T) {
	s := New(10 * time.Millisecond)
	defer s.Close()

	s.Put(testPhone, domain.OTPRecord{Code: "123456", ExpiresAt: time.Now().Add(-time.Minute)})

	assert.Eventually(t, func() bool {
		_, ok := s.Get(testPhone)
		return !ok
	}, time.Second, 10*time.Millisecond)
}
