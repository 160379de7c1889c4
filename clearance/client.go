// Package clearance simulates the external clearance authority: certificate
// lookups by identity number, authoritative re-checks, and the periodic
// sweep that re-validates soon-to-expire certificates.
package clearance

import (
	"context"
	"crypto/md5"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"precatorio-backend/models"
)

// ErrStoreNotConfigured is returned when a sweep runs before the
// certificate store has been attached
var ErrStoreNotConfigured = errors.New("clearance client: certificate store not configured")

const (
	// ExpiryWindow selects certificates whose validity ends within this window
	ExpiryWindow = 5 * 24 * time.Hour

	// ValidityExtension is applied to each certificate the sweep re-validates
	ValidityExtension = 30 * 24 * time.Hour

	defaultSweepInterval = 24 * time.Hour
	defaultLatency       = time.Second
)

// CertificateStore is the slice of persistence the sweep needs
type CertificateStore interface {
	ListExpiring(ctx context.Context, within time.Duration) ([]*models.Certificate, error)
	UpdateStatusAndValidity(ctx context.Context, id int64, status models.CertificateStatus, validUntil time.Time) error
}

// LookupResult is one certificate as returned by the authority lookup
type LookupResult struct {
	Type          models.CertificateType   `json:"tipo"`
	Status        models.CertificateStatus `json:"status"`
	ContentBase64 string                   `json:"conteudo_base64"`
}

// Client is a deterministic mock of the clearance authority. Statuses are
// derived from hashes, so repeated lookups for the same identity number
// reproduce the same result.
type Client struct {
	store         CertificateStore
	latency       time.Duration
	sweepInterval time.Duration

	mu     sync.Mutex
	ticker *time.Ticker
	done   chan struct{}
}

// Option is a functional option for Client
type Option func(*Client)

// WithStore attaches the certificate store the sweep reads and rewrites
func WithStore(store CertificateStore) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithLatency overrides the simulated network delay of Lookup
func WithLatency(d time.Duration) Option {
	return func(c *Client) {
		c.latency = d
	}
}

// WithSweepInterval overrides the period of the revalidation sweep
func WithSweepInterval(d time.Duration) Option {
	return func(c *Client) {
		c.sweepInterval = d
	}
}

// NewClient creates a new clearance client
func NewClient(opts ...Option) *Client {
	c := &Client{
		latency:       defaultLatency,
		sweepInterval: defaultSweepInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup simulates fetching the four jurisdiction certificates for an
// identity number. Status and placeholder content are derived from a hash
// of identity number + type, so the result is stable per identity.
func (c *Client) Lookup(identityNumber string) []LookupResult {
	// Simulated network latency; the only deliberate suspension point
	time.Sleep(c.latency)

	lookupStatuses := []models.CertificateStatus{
		models.CertificateStatusPositive,
		models.CertificateStatusNegative,
		models.CertificateStatusPending,
	}

	results := make([]LookupResult, 0, len(models.CertificateTypes()))
	for _, certType := range models.CertificateTypes() {
		idx := hashIndex(identityNumber+"_"+string(certType), len(lookupStatuses))
		content := fmt.Sprintf("Clearance certificate (%s) for %s", certType, identityNumber)

		results = append(results, LookupResult{
			Type:          certType,
			Status:        lookupStatuses[idx],
			ContentBase64: base64.StdEncoding.EncodeToString([]byte(content)),
		})
	}

	return results
}

// Revalidate simulates an authoritative re-check of one certificate. The new
// status is derived from the id alone, not from the prior status.
func (c *Client) Revalidate(certificateID int64) models.CertificateStatus {
	statuses := models.CertificateStatuses()
	return statuses[hashIndex(fmt.Sprintf("%d", certificateID), len(statuses))]
}

// Sweep re-validates every certificate expiring within the next five days,
// rewriting its status and extending its validity by thirty days. Returns
// the number of certificates updated.
func (c *Client) Sweep(ctx context.Context) (int, error) {
	if c.store == nil {
		return 0, ErrStoreNotConfigured
	}

	expiring, err := c.store.ListExpiring(ctx, ExpiryWindow)
	if err != nil {
		return 0, fmt.Errorf("failed to list expiring certificates: %w", err)
	}

	count := 0
	for _, certificate := range expiring {
		status := c.Revalidate(certificate.ID)
		validUntil := time.Now().Add(ValidityExtension)

		if err := c.store.UpdateStatusAndValidity(ctx, certificate.ID, status, validUntil); err != nil {
			return count, fmt.Errorf("failed to update certificate %d: %w", certificate.ID, err)
		}
		count++
	}

	return count, nil
}

// StartPeriodicRevalidation starts the recurring sweep. Starting an already
// running sweep is a no-op.
func (c *Client) StartPeriodicRevalidation() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ticker != nil {
		return
	}

	c.ticker = time.NewTicker(c.sweepInterval)
	c.done = make(chan struct{})

	go func(ticker *time.Ticker, done chan struct{}) {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				count, err := c.Sweep(context.Background())
				if err != nil {
					log.Printf("Clearance sweep failed: %v", err)
					continue
				}
				log.Printf("Clearance sweep re-validated %d certificate(s)", count)
			}
		}
	}(c.ticker, c.done)
}

// StopPeriodicRevalidation stops the recurring sweep and releases the
// timer. Stopping a stopped sweep is a no-op.
func (c *Client) StopPeriodicRevalidation() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ticker == nil {
		return
	}

	c.ticker.Stop()
	close(c.done)
	c.ticker = nil
	c.done = nil
}

// Running reports whether the periodic sweep is active
func (c *Client) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticker != nil
}

// hashIndex derives a stable index in [0, n) from the md5 of the input
func hashIndex(input string, n int) int {
	sum := md5.Sum([]byte(input))
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}
