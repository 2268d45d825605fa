package leads

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PgxPool is the subset of pgxpool.Pool used by the repository. Narrowed so
// tests can substitute pgxmock.
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresRepository stores leads in the relational database.
type PostgresRepository struct {
	pool PgxPool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool PgxPool) *PostgresRepository {
	if pool == nil {
		panic("leads: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Create inserts an accepted lead.
func (r *PostgresRepository) Create(ctx context.Context, sub *Submission) (*Lead, error) {
	if sub.Phone == "" {
		return nil, ErrMissingPhone
	}

	id := uuid.New()
	query := `
		INSERT INTO leads (id, name, email, phone, utm_source, utm_medium, utm_campaign, utm_content, utm_term, client_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		sub.Name,
		sub.Email,
		sub.Phone,
		sub.UTMSource,
		sub.UTMMedium,
		sub.UTMCampaign,
		sub.UTMContent,
		sub.UTMTerm,
		sub.ClientID,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("leads: insert failed: %w", err)
	}

	return &Lead{
		ID:          id.String(),
		Name:        sub.Name,
		Email:       sub.Email,
		Phone:       sub.Phone,
		UTMSource:   sub.UTMSource,
		UTMMedium:   sub.UTMMedium,
		UTMCampaign: sub.UTMCampaign,
		UTMContent:  sub.UTMContent,
		UTMTerm:     sub.UTMTerm,
		ClientID:    sub.ClientID,
		CreatedAt:   createdAt,
	}, nil
}

// GetByID fetches a lead.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	query := `
		SELECT id, name, email, phone, utm_source, utm_medium, utm_campaign, utm_content, utm_term, client_id, created_at
		FROM leads
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	var lead Lead
	if err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.UTMSource,
		&lead.UTMMedium,
		&lead.UTMCampaign,
		&lead.UTMContent,
		&lead.UTMTerm,
		&lead.ClientID,
		&lead.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("leads: select failed: %w", err)
	}
	return &lead, nil
}

// CreateRejected inserts a rejected-lead record.
func (r *PostgresRepository) CreateRejected(ctx context.Context, rejected *RejectedLead) error {
	if rejected.ID == "" {
		rejected.ID = uuid.New().String()
	}
	query := `
		INSERT INTO rejected_leads (
			id, phone, email, name, reason, detail,
			utm_source, utm_medium, utm_campaign, utm_content, utm_term, client_id,
			form_opened_at, honeypot, browser_timezone,
			client_ip, geo_country, geo_city, user_agent, referer
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		rejected.ID,
		rejected.Phone,
		rejected.Email,
		rejected.Name,
		rejected.Reason,
		rejected.Detail,
		rejected.UTMSource,
		rejected.UTMMedium,
		rejected.UTMCampaign,
		rejected.UTMContent,
		rejected.UTMTerm,
		rejected.ClientID,
		rejected.FormOpenedAt,
		rejected.Honeypot,
		rejected.BrowserTimezone,
		rejected.ClientIP,
		rejected.GeoCountry,
		rejected.GeoCity,
		rejected.UserAgent,
		rejected.Referer,
	).Scan(&rejected.CreatedAt); err != nil {
		return fmt.Errorf("leads: insert rejected failed: %w", err)
	}
	return nil
}

// ListRejected returns rejected submissions, most recent first.
func (r *PostgresRepository) ListRejected(ctx context.Context, limit, offset int) ([]*RejectedLead, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, phone, email, name, reason, detail,
			utm_source, utm_medium, utm_campaign, utm_content, utm_term, client_id,
			form_opened_at, honeypot, browser_timezone,
			client_ip, geo_country, geo_city, user_agent, referer, created_at
		FROM rejected_leads
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("leads: select rejected failed: %w", err)
	}
	defer rows.Close()

	var out []*RejectedLead
	for rows.Next() {
		var rl RejectedLead
		if err := rows.Scan(
			&rl.ID,
			&rl.Phone,
			&rl.Email,
			&rl.Name,
			&rl.Reason,
			&rl.Detail,
			&rl.UTMSource,
			&rl.UTMMedium,
			&rl.UTMCampaign,
			&rl.UTMContent,
			&rl.UTMTerm,
			&rl.ClientID,
			&rl.FormOpenedAt,
			&rl.Honeypot,
			&rl.BrowserTimezone,
			&rl.ClientIP,
			&rl.GeoCountry,
			&rl.GeoCity,
			&rl.UserAgent,
			&rl.Referer,
			&rl.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("leads: scan rejected failed: %w", err)
		}
		out = append(out, &rl)
	}
	return out, rows.Err()
}
