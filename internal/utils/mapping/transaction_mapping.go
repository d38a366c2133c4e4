package mapping

import (
	"github.com/peerfx/peerfx_backend/internal/core/domain"
	"github.com/peerfx/peerfx_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to its model.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:     d.TransactionID,
		UserID:            d.UserID,
		ExchangeRequestID: d.ExchangeRequestID,
		RateOfferID:       d.RateOfferID,
		CurrencyCode:      d.CurrencyCode,
		Amount:            d.Amount,
		TransactionType:   models.TransactionType(d.TransactionType),
		TermsAccepted:     d.TermsAccepted,
		RunningBalance:    d.RunningBalance,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to its domain form.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:     m.TransactionID,
		UserID:            m.UserID,
		ExchangeRequestID: m.ExchangeRequestID,
		RateOfferID:       m.RateOfferID,
		CurrencyCode:      m.CurrencyCode,
		Amount:            m.Amount,
		TransactionType:   domain.TransactionType(m.TransactionType),
		TermsAccepted:     m.TermsAccepted,
		RunningBalance:    m.RunningBalance,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts model transactions to domain transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
