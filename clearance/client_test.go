package clearance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"precatorio-backend/models"
)

// memoryStore is an in-memory CertificateStore for sweep tests
type memoryStore struct {
	certificates map[int64]*models.Certificate
}

func newMemoryStore() *memoryStore {
	return &memoryStore{certificates: make(map[int64]*models.Certificate)}
}

func (s *memoryStore) put(id int64, validUntil time.Time) {
	s.certificates[id] = &models.Certificate{
		ID:         id,
		CreditorID: 1,
		Type:       models.CertificateTypeFederal,
		Origin:     models.CertificateOriginAPI,
		Status:     models.CertificateStatusPending,
		ReceivedAt: time.Now(),
		ValidUntil: &validUntil,
	}
}

func (s *memoryStore) ListExpiring(ctx context.Context, within time.Duration) ([]*models.Certificate, error) {
	now := time.Now()
	var expiring []*models.Certificate
	for _, certificate := range s.certificates {
		if certificate.ValidUntil == nil {
			continue
		}
		if certificate.ValidUntil.Before(now) || certificate.ValidUntil.After(now.Add(within)) {
			continue
		}
		expiring = append(expiring, certificate)
	}
	return expiring, nil
}

func (s *memoryStore) UpdateStatusAndValidity(ctx context.Context, id int64, status models.CertificateStatus, validUntil time.Time) error {
	certificate, ok := s.certificates[id]
	if !ok {
		return models.ErrNotFound
	}
	certificate.Status = status
	certificate.ValidUntil = &validUntil
	return nil
}

func TestLookup(t *testing.T) {
	client := NewClient(WithLatency(0))

	t.Run("returns one certificate per jurisdiction", func(t *testing.T) {
		results := client.Lookup("12345678900")
		require.Len(t, results, len(models.CertificateTypes()))

		for i, certType := range models.CertificateTypes() {
			assert.Equal(t, certType, results[i].Type)
			assert.NotEmpty(t, results[i].ContentBase64)
			assert.True(t, results[i].Status.IsValid())
		}
	})

	t.Run("repeated lookups are deterministic", func(t *testing.T) {
		first := client.Lookup("12345678900")
		second := client.Lookup("12345678900")
		assert.Equal(t, first, second)
	})

	t.Run("statuses come from the lookup universe", func(t *testing.T) {
		for _, result := range client.Lookup("98765432100") {
			assert.Contains(t, []models.CertificateStatus{
				models.CertificateStatusPositive,
				models.CertificateStatusNegative,
				models.CertificateStatusPending,
			}, result.Status)
		}
	})
}

func TestRevalidate(t *testing.T) {
	client := NewClient()

	t.Run("is deterministic per certificate id", func(t *testing.T) {
		assert.Equal(t, client.Revalidate(42), client.Revalidate(42))
	})

	t.Run("yields a valid status", func(t *testing.T) {
		for id := int64(1); id <= 20; id++ {
			assert.True(t, client.Revalidate(id).IsValid())
		}
	})
}

func TestSweep(t *testing.T) {
	t.Run("only certificates inside the expiry window are touched", func(t *testing.T) {
		store := newMemoryStore()
		store.put(1, time.Now().Add(3*24*time.Hour))  // inside window
		store.put(2, time.Now().Add(10*24*time.Hour)) // too far out
		store.put(3, time.Now().Add(-24*time.Hour))   // already expired

		client := NewClient(WithStore(store))
		count, err := client.Sweep(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		refreshed := store.certificates[1]
		assert.Equal(t, client.Revalidate(1), refreshed.Status)
		require.NotNil(t, refreshed.ValidUntil)
		assert.WithinDuration(t, time.Now().Add(ValidityExtension), *refreshed.ValidUntil, time.Minute)

		untouched := store.certificates[2]
		assert.Equal(t, models.CertificateStatusPending, untouched.Status)
	})

	t.Run("empty store sweeps nothing", func(t *testing.T) {
		client := NewClient(WithStore(newMemoryStore()))
		count, err := client.Sweep(context.Background())
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("missing store is an error", func(t *testing.T) {
		client := NewClient()
		_, err := client.Sweep(context.Background())
		assert.ErrorIs(t, err, ErrStoreNotConfigured)
	})
}

func TestPeriodicRevalidation(t *testing.T) {
	t.Run("start and stop are idempotent", func(t *testing.T) {
		client := NewClient(
			WithStore(newMemoryStore()),
			WithSweepInterval(time.Hour),
		)

		assert.False(t, client.Running())

		client.StartPeriodicRevalidation()
		client.StartPeriodicRevalidation()
		assert.True(t, client.Running())

		client.StopPeriodicRevalidation()
		client.StopPeriodicRevalidation()
		assert.False(t, client.Running())
	})

	t.Run("sweep can be restarted", func(t *testing.T) {
		client := NewClient(
			WithStore(newMemoryStore()),
			WithSweepInterval(time.Hour),
		)

		client.StartPeriodicRevalidation()
		client.StopPeriodicRevalidation()
		client.StartPeriodicRevalidation()
		assert.True(t, client.Running())
		client.StopPeriodicRevalidation()
	})
}
