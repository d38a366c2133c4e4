package domain_test

import (
	"testing"

	"github.com/peerfx/peerfx_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_SignedAmount(t *testing.T) {
	tests := []struct {
		name string
		tx   domain.Transaction
		want decimal.Decimal
	}{
		{
			name: "debit subtracts",
			tx: domain.Transaction{
				Amount:          decimal.NewFromInt(100),
				TransactionType: domain.Debit,
			},
			want: decimal.NewFromInt(-100),
		},
		{
			name: "credit adds",
			tx: domain.Transaction{
				Amount:          decimal.NewFromInt(100),
				TransactionType: domain.Credit,
			},
			want: decimal.NewFromInt(100),
		},
		{
			name: "fractional credit",
			tx: domain.Transaction{
				Amount:          decimal.RequireFromString("900.50"),
				TransactionType: domain.Credit,
			},
			want: decimal.RequireFromString("900.50"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tx.SignedAmount()
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestExchangeRequestStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status domain.ExchangeRequestStatus
		want   bool
	}{
		{domain.RequestActive, false},
		{domain.RequestCompleted, true},
		{domain.RequestCancelled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsTerminal())
		})
	}
}

func TestUserRole_Can(t *testing.T) {
	tests := []struct {
		name       string
		role       domain.UserRole
		capability domain.Capability
		want       bool
	}{
		{"trader posts requests", domain.RoleTrader, domain.CapPostRequest, true},
		{"trader places offers", domain.RoleTrader, domain.CapPlaceOffer, true},
		{"trader settles", domain.RoleTrader, domain.CapSettle, true},
		{"trader chats", domain.RoleTrader, domain.CapChat, true},
		{"trader cannot manage currencies", domain.RoleTrader, domain.CapManageCurrencies, false},
		{"trader cannot view audit log", domain.RoleTrader, domain.CapViewAuditLog, false},
		{"admin manages currencies", domain.RoleAdmin, domain.CapManageCurrencies, true},
		{"admin views audit log", domain.RoleAdmin, domain.CapViewAuditLog, true},
		{"unknown role has nothing", domain.UserRole("GHOST"), domain.CapPostRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.Can(tt.capability))
		})
	}
}
