package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimal = `
[database]
host = "db"
dbname = "reservations"

[catalog_service]
url = "http://catalog"

[payment_service]
url = "http://payment"

[booking_service]
url = "http://booking"

[complaint_service]
url = "http://complaint"
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(minimal)

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, CompensationNone, cfg.Engine.Compensation)
	assert.Equal(t, PaymentProviderService, cfg.Engine.PaymentProvider)
	assert.Equal(t, 30*time.Minute, cfg.Engine.DraftTTLDuration())
	assert.Equal(t, 15*time.Second, cfg.PaymentService.TimeoutDuration())
	assert.Equal(t, "host=db port=5432 user= password= dbname=reservations sslmode=disable", cfg.Database.DSN())
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Empty(t, cfg.Operator.Token)
}

func TestParse_OperatorToken(t *testing.T) {
	cfg, err := Parse(minimal + "\n[operator]\ntoken = \"0123456789abcdef\"\n")

	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdef", cfg.Operator.Token)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		extra string
	}{
		{"unknown compensation", "[engine]\ncompensation = \"retry\""},
		{"unknown provider", "[engine]\npayment_provider = \"cash\""},
		{"razorpay without keys", "[engine]\npayment_provider = \"razorpay\""},
		{"redis without addr", "[redis]\nenabled = true"},
		{"kafka without brokers", "[kafka]\nenabled = true"},
		{"zero ttl", "[engine]\ndraft_ttl = 0"},
		{"bad port", "[server]\nhttp_port = 70000"},
		{"short operator token", "[operator]\ntoken = \"abc\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(minimal + "\n" + tt.extra)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParse_MissingServiceURL(t *testing.T) {
	_, err := Parse("[database]\nhost = \"db\"\ndbname = \"r\"")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParse_RazorpayDoesNotNeedPaymentService(t *testing.T) {
	data := `
[database]
host = "db"
dbname = "reservations"

[catalog_service]
url = "http://catalog"

[booking_service]
url = "http://booking"

[complaint_service]
url = "http://complaint"

[razorpay]
key_id = "rzp_test"
key_secret = "secret"

[engine]
payment_provider = "razorpay"
compensation = "refund"
`
	cfg, err := Parse(data)

	require.NoError(t, err)
	assert.Equal(t, CompensationRefund, cfg.Engine.Compensation)
	assert.Equal(t, "INR", cfg.Razorpay.Currency)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse("[server\nhttp_port = ")
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(minimal), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://booking", cfg.BookingService.URL)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}
