package leads

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for lead storage
type Repository interface {
	Create(ctx context.Context, sub *Submission) (*Lead, error)
	GetByID(ctx context.Context, id string) (*Lead, error)
	CreateRejected(ctx context.Context, rejected *RejectedLead) error
	ListRejected(ctx context.Context, limit, offset int) ([]*RejectedLead, error)
}

// InMemoryRepository is an in-memory implementation of Repository used in
// tests and when no database is configured.
type InMemoryRepository struct {
	mu       sync.RWMutex
	leads    map[string]*Lead
	rejected []*RejectedLead
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		leads: make(map[string]*Lead),
	}
}

// Create persists an accepted submission as a lead
func (r *InMemoryRepository) Create(ctx context.Context, sub *Submission) (*Lead, error) {
	if sub.Phone == "" {
		return nil, ErrMissingPhone
	}

	lead := &Lead{
		ID:          uuid.New().String(),
		Name:        sub.Name,
		Email:       sub.Email,
		Phone:       sub.Phone,
		UTMSource:   sub.UTMSource,
		UTMMedium:   sub.UTMMedium,
		UTMCampaign: sub.UTMCampaign,
		UTMContent:  sub.UTMContent,
		UTMTerm:     sub.UTMTerm,
		ClientID:    sub.ClientID,
		CreatedAt:   time.Now().UTC(),
	}

	r.mu.Lock()
	r.leads[lead.ID] = lead
	r.mu.Unlock()

	return lead, nil
}

// GetByID retrieves a lead by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lead, ok := r.leads[id]
	if !ok {
		return nil, ErrLeadNotFound
	}

	return lead, nil
}

// CreateRejected records a rejected submission
func (r *InMemoryRepository) CreateRejected(ctx context.Context, rejected *RejectedLead) error {
	if rejected.ID == "" {
		rejected.ID = uuid.New().String()
	}
	if rejected.CreatedAt.IsZero() {
		rejected.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	r.rejected = append(r.rejected, rejected)
	r.mu.Unlock()

	return nil
}

// ListRejected returns rejected submissions, most recent first
func (r *InMemoryRepository) ListRejected(ctx context.Context, limit, offset int) ([]*RejectedLead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	n := len(r.rejected)
	out := make([]*RejectedLead, 0, limit)
	for i := n - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.rejected[i])
	}
	return out, nil
}
