package leads

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	createdAt := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO leads").
		WithArgs(pgxmock.AnyArg(), "Ivan", "ivan@example.ru", "+79991234567", "yandex", "cpc", "spring", "banner_1", "", "ga-123").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	repo := NewPostgresRepository(mock)
	lead, err := repo.Create(context.Background(), &Submission{
		Phone:       "+79991234567",
		Name:        "Ivan",
		Email:       "ivan@example.ru",
		UTMSource:   "yandex",
		UTMMedium:   "cpc",
		UTMCampaign: "spring",
		UTMContent:  "banner_1",
		ClientID:    "ga-123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, createdAt, lead.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateRequiresPhone(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	_, err = repo.Create(context.Background(), &Submission{Name: "no phone"})
	assert.ErrorIs(t, err, ErrMissingPhone)
}

func TestPostgresCreateRejected(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	createdAt := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO rejected_leads").
		WithArgs(pgxmock.AnyArg(), "+79991234567", "ivan@example.ru", "Ivan",
			"duplicate_phone", "phone seen 2h ago",
			"yandex", "cpc", "spring", "banner_1", "implants", "ga-123",
			int64(1756700000), "gotcha", "Europe/Moscow",
			"10.0.0.1", "RU", "Moscow", "curl/7.68.0", "https://landing.example.ru/").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	repo := NewPostgresRepository(mock)
	rejected := &RejectedLead{
		Phone:           "+79991234567",
		Email:           "ivan@example.ru",
		Name:            "Ivan",
		Reason:          "duplicate_phone",
		Detail:          "phone seen 2h ago",
		UTMSource:       "yandex",
		UTMMedium:       "cpc",
		UTMCampaign:     "spring",
		UTMContent:      "banner_1",
		UTMTerm:         "implants",
		ClientID:        "ga-123",
		FormOpenedAt:    1756700000,
		Honeypot:        "gotcha",
		BrowserTimezone: "Europe/Moscow",
		ClientIP:        "10.0.0.1",
		GeoCountry:      "RU",
		GeoCity:         "Moscow",
		UserAgent:       "curl/7.68.0",
		Referer:         "https://landing.example.ru/",
	}
	require.NoError(t, repo.CreateRejected(context.Background(), rejected))
	assert.NotEmpty(t, rejected.ID)
	assert.Equal(t, createdAt, rejected.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListRejected(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{
		"id", "phone", "email", "name", "reason", "detail",
		"utm_source", "utm_medium", "utm_campaign", "utm_content", "utm_term", "client_id",
		"form_opened_at", "honeypot", "browser_timezone",
		"client_ip", "geo_country", "geo_city", "user_agent", "referer", "created_at",
	}).
		AddRow("id-2", "+79990000002", "", "", "rate_limited", "",
			"yandex", "cpc", "", "", "", "ga-2",
			int64(0), "", "Asia/Novosibirsk",
			"10.0.0.2", "RU", "Novosibirsk", "", "", now).
		AddRow("id-1", "+79990000001", "", "", "honeypot_filled", "",
			"", "", "", "", "", "",
			int64(0), "gotcha", "",
			"10.0.0.1", "", "", "", "", now.Add(-time.Minute))

	mock.ExpectQuery("SELECT (.+) FROM rejected_leads").
		WithArgs(10, 0).
		WillReturnRows(rows)

	repo := NewPostgresRepository(mock)
	out, err := repo.ListRejected(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "rate_limited", out[0].Reason)
	assert.Equal(t, "Asia/Novosibirsk", out[0].BrowserTimezone)
	assert.Equal(t, "Novosibirsk", out[0].GeoCity)
	assert.Equal(t, "honeypot_filled", out[1].Reason)
	assert.Equal(t, "gotcha", out[1].Honeypot)
	assert.NoError(t, mock.ExpectationsWereMet())
}
