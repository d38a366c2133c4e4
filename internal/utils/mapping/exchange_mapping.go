package mapping

import (
	"github.com/peerfx/peerfx_backend/internal/core/domain"
	"github.com/peerfx/peerfx_backend/internal/models"
)

// ToModelExchangeRequest converts a domain ExchangeRequest to its model.
func ToModelExchangeRequest(d domain.ExchangeRequest) models.ExchangeRequest {
	return models.ExchangeRequest{
		ExchangeRequestID: d.ExchangeRequestID,
		RequesterID:       d.RequesterID,
		FromCurrencyCode:  d.FromCurrencyCode,
		ToCurrencyCode:    d.ToCurrencyCode,
		Amount:            d.Amount,
		DesiredRate:       d.DesiredRate,
		Priority:          string(d.Priority),
		Status:            string(d.Status),
		SelectedOfferID:   d.SelectedOfferID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExchangeRequest converts a model ExchangeRequest to its domain form.
func ToDomainExchangeRequest(m models.ExchangeRequest) domain.ExchangeRequest {
	return domain.ExchangeRequest{
		ExchangeRequestID: m.ExchangeRequestID,
		RequesterID:       m.RequesterID,
		FromCurrencyCode:  m.FromCurrencyCode,
		ToCurrencyCode:    m.ToCurrencyCode,
		Amount:            m.Amount,
		DesiredRate:       m.DesiredRate,
		Priority:          domain.RequestPriority(m.Priority),
		Status:            domain.ExchangeRequestStatus(m.Status),
		SelectedOfferID:   m.SelectedOfferID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExchangeRequestSlice converts model requests to domain requests.
func ToDomainExchangeRequestSlice(ms []models.ExchangeRequest) []domain.ExchangeRequest {
	ds := make([]domain.ExchangeRequest, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExchangeRequest(m)
	}
	return ds
}

// ToModelRateOffer converts a domain RateOffer to its model.
func ToModelRateOffer(d domain.RateOffer) models.RateOffer {
	return models.RateOffer{
		RateOfferID:       d.RateOfferID,
		ExchangeRequestID: d.ExchangeRequestID,
		BidderID:          d.BidderID,
		Rate:              d.Rate,
		TotalAmount:       d.TotalAmount,
		Status:            string(d.Status),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRateOffer converts a model RateOffer to its domain form.
func ToDomainRateOffer(m models.RateOffer) domain.RateOffer {
	return domain.RateOffer{
		RateOfferID:       m.RateOfferID,
		ExchangeRequestID: m.ExchangeRequestID,
		BidderID:          m.BidderID,
		Rate:              m.Rate,
		TotalAmount:       m.TotalAmount,
		Status:            domain.RateOfferStatus(m.Status),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainRateOfferSlice converts model offers to domain offers.
func ToDomainRateOfferSlice(ms []models.RateOffer) []domain.RateOffer {
	ds := make([]domain.RateOffer, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRateOffer(m)
	}
	return ds
}
