package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/peerfx/peerfx_backend/internal/apperrors"
	"github.com/peerfx/peerfx_backend/internal/core/domain"
	portsrepo "github.com/peerfx/peerfx_backend/internal/core/ports/repositories"
	portssvc "github.com/peerfx/peerfx_backend/internal/core/ports/services"
	"github.com/peerfx/peerfx_backend/internal/dto"
	"github.com/peerfx/peerfx_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

type exchangeService struct {
	exchangeRepo    portsrepo.ExchangeRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
	currencyRepo    portsrepo.CurrencyRepositoryFacade
	userRepo        portsrepo.UserRepositoryFacade
	audit           portssvc.AuditSvcFacade
	notifier        portssvc.Notifier
}

// NewExchangeService creates the marketplace service covering requests, offers
// and settlement.
func NewExchangeService(
	exchangeRepo portsrepo.ExchangeRepositoryFacade,
	transactionRepo portsrepo.TransactionRepositoryFacade,
	currencyRepo portsrepo.CurrencyRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	audit portssvc.AuditSvcFacade,
	notifier portssvc.Notifier,
) portssvc.ExchangeSvcFacade {
	return &exchangeService{
		exchangeRepo:    exchangeRepo,
		transactionRepo: transactionRepo,
		currencyRepo:    currencyRepo,
		userRepo:        userRepo,
		audit:           audit,
		notifier:        notifier,
	}
}

var _ portssvc.ExchangeSvcFacade = (*exchangeService)(nil)

func (s *exchangeService) CreateExchangeRequest(ctx context.Context, req dto.CreateExchangeRequestRequest, requesterID string) (*domain.ExchangeRequest, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if req.FromCurrencyCode == req.ToCurrencyCode {
		return nil, fmt.Errorf("%w: from and to currencies must differ", apperrors.ErrValidation)
	}
	if req.DesiredRate != nil && !req.DesiredRate.IsPositive() {
		return nil, fmt.Errorf("%w: desired rate must be positive", apperrors.ErrValidation)
	}
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.FromCurrencyCode); err != nil {
		return nil, fmt.Errorf("%w: unknown currency %s", apperrors.ErrValidation, req.FromCurrencyCode)
	}
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.ToCurrencyCode); err != nil {
		return nil, fmt.Errorf("%w: unknown currency %s", apperrors.ErrValidation, req.ToCurrencyCode)
	}

	requester, err := s.userRepo.FindUserByID(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get requester %s: %w", requesterID, err)
	}
	if !requester.Role.Can(domain.CapPostRequest) {
		return nil, fmt.Errorf("%w: posting requests is not permitted for this role", apperrors.ErrForbidden)
	}

	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityNormal
	}

	now := time.Now().UTC()
	request := domain.ExchangeRequest{
		ExchangeRequestID: uuid.NewString(),
		RequesterID:       requesterID,
		FromCurrencyCode:  req.FromCurrencyCode,
		ToCurrencyCode:    req.ToCurrencyCode,
		Amount:            req.Amount,
		DesiredRate:       req.DesiredRate,
		Priority:          priority,
		Status:            domain.RequestActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requesterID,
			LastUpdatedAt: now,
			LastUpdatedBy: requesterID,
		},
	}

	if err := s.exchangeRepo.SaveRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to save exchange request: %w", err)
	}

	s.recordAudit(ctx, requesterID, domain.AuditRequestCreated, "exchange_request", request.ExchangeRequestID,
		fmt.Sprintf(`{"from":%q,"to":%q,"amount":%q}`, req.FromCurrencyCode, req.ToCurrencyCode, req.Amount.String()))
	s.notifier.Publish(portssvc.Event{Type: "refresh", Entity: "exchange_request", EntityID: request.ExchangeRequestID})

	middleware.GetLoggerFromCtx(ctx).Info("exchange request created", "requestID", request.ExchangeRequestID)
	return &request, nil
}

func (s *exchangeService) GetExchangeRequest(ctx context.Context, requestID string) (*domain.ExchangeRequest, error) {
	request, err := s.exchangeRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange request %s: %w", requestID, err)
	}
	return request, nil
}

func (s *exchangeService) ListExchangeRequests(ctx context.Context, params dto.ListExchangeRequestsParams) (*dto.ListExchangeRequestsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	requests, nextToken, err := s.exchangeRepo.ListRequests(ctx, params.Status, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange requests: %w", err)
	}

	return &dto.ListExchangeRequestsResponse{
		Requests:  dto.ToListExchangeRequestResponse(requests),
		NextToken: nextToken,
	}, nil
}

func (s *exchangeService) ListUserExchangeRequests(ctx context.Context, requesterID string, params dto.ListExchangeRequestsParams) (*dto.ListExchangeRequestsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	requests, nextToken, err := s.exchangeRepo.ListRequestsByRequester(ctx, requesterID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange requests for user %s: %w", requesterID, err)
	}

	return &dto.ListExchangeRequestsResponse{
		Requests:  dto.ToListExchangeRequestResponse(requests),
		NextToken: nextToken,
	}, nil
}

func (s *exchangeService) CancelExchangeRequest(ctx context.Context, requestID string, actorID string) error {
	request, err := s.exchangeRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("failed to get exchange request %s: %w", requestID, err)
	}
	if request.RequesterID != actorID {
		return fmt.Errorf("%w: only the requester may cancel a request", apperrors.ErrForbidden)
	}
	if request.Status.IsTerminal() {
		return fmt.Errorf("%w: request %s is already %s", apperrors.ErrConflict, requestID, request.Status)
	}

	if err := s.exchangeRepo.CancelRequest(ctx, requestID, actorID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to cancel exchange request %s: %w", requestID, err)
	}

	s.recordAudit(ctx, actorID, domain.AuditRequestCancelled, "exchange_request", requestID, "{}")
	s.notifier.Publish(portssvc.Event{Type: "refresh", Entity: "exchange_request", EntityID: requestID})
	return nil
}

func (s *exchangeService) CreateRateOffer(ctx context.Context, requestID string, req dto.CreateRateOfferRequest, bidderID string) (*domain.RateOffer, error) {
	if !req.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
	}

	request, err := s.exchangeRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange request %s: %w", requestID, err)
	}
	if request.Status != domain.RequestActive {
		return nil, fmt.Errorf("%w: request %s is not active", apperrors.ErrConflict, requestID)
	}
	if request.RequesterID == bidderID {
		return nil, fmt.Errorf("%w: cannot place an offer on your own request", apperrors.ErrForbidden)
	}

	bidder, err := s.userRepo.FindUserByID(ctx, bidderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bidder %s: %w", bidderID, err)
	}
	if !bidder.Role.Can(domain.CapPlaceOffer) {
		return nil, fmt.Errorf("%w: placing offers is not permitted for this role", apperrors.ErrForbidden)
	}

	now := time.Now().UTC()
	offer := domain.RateOffer{
		RateOfferID:       uuid.NewString(),
		ExchangeRequestID: requestID,
		BidderID:          bidderID,
		Rate:              req.Rate,
		TotalAmount:       request.Amount.Mul(req.Rate),
		Status:            domain.OfferPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     bidderID,
			LastUpdatedAt: now,
			LastUpdatedBy: bidderID,
		},
	}

	if err := s.exchangeRepo.SaveOffer(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to save rate offer: %w", err)
	}

	s.recordAudit(ctx, bidderID, domain.AuditOfferPlaced, "rate_offer", offer.RateOfferID,
		fmt.Sprintf(`{"requestID":%q,"rate":%q}`, requestID, req.Rate.String()))
	s.notifier.Publish(portssvc.Event{Type: "refresh", Entity: "exchange_request", EntityID: requestID})

	middleware.GetLoggerFromCtx(ctx).Info("rate offer placed", "offerID", offer.RateOfferID, "requestID", requestID)
	return &offer, nil
}

func (s *exchangeService) ListOffersForRequest(ctx context.Context, requestID string) ([]domain.RateOffer, error) {
	if _, err := s.exchangeRepo.FindRequestByID(ctx, requestID); err != nil {
		return nil, fmt.Errorf("failed to get exchange request %s: %w", requestID, err)
	}
	offers, err := s.exchangeRepo.FindOffersByRequestID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers for request %s: %w", requestID, err)
	}
	return offers, nil
}

// AcceptOffer settles a request against one of its pending offers. Four ledger
// entries move the two currency legs between the two parties; per currency the
// debit equals the credit, so settlement conserves every currency's total.
// Concurrency is resolved in the repository: the conditional claim on the request
// row lets exactly one of any concurrent accepts through.
func (s *exchangeService) AcceptOffer(ctx context.Context, requestID string, offerID string, acceptingUserID string, termsAccepted bool) (*dto.SettlementResponse, error) {
	if !termsAccepted {
		return nil, fmt.Errorf("%w: terms must be accepted to settle", apperrors.ErrValidation)
	}

	request, err := s.exchangeRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange request %s: %w", requestID, err)
	}
	if request.RequesterID != acceptingUserID {
		return nil, fmt.Errorf("%w: only the requester may accept an offer", apperrors.ErrForbidden)
	}
	if request.Status != domain.RequestActive {
		return nil, fmt.Errorf("%w: request %s is already %s", apperrors.ErrConflict, requestID, request.Status)
	}

	offer, err := s.exchangeRepo.FindOfferByID(ctx, offerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rate offer %s: %w", offerID, err)
	}
	if offer.ExchangeRequestID != requestID {
		return nil, fmt.Errorf("%w: offer %s does not belong to request %s", apperrors.ErrValidation, offerID, requestID)
	}
	if offer.Status != domain.OfferPending {
		return nil, fmt.Errorf("%w: offer %s is not pending", apperrors.ErrConflict, offerID)
	}
	if offer.BidderID == request.RequesterID {
		return nil, fmt.Errorf("%w: cannot settle against your own offer", apperrors.ErrForbidden)
	}

	now := time.Now().UTC()
	entries := buildSettlementEntries(request, offer, termsAccepted, now, acceptingUserID)

	balanceChanges := map[domain.BalanceKey]decimal.Decimal{}
	for _, entry := range entries {
		key := domain.BalanceKey{UserID: entry.UserID, CurrencyCode: entry.CurrencyCode}
		balanceChanges[key] = balanceChanges[key].Add(entry.SignedAmount())
	}

	if err := s.exchangeRepo.SettleOffer(ctx, requestID, offerID, entries, balanceChanges, acceptingUserID, now); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, acceptingUserID, domain.AuditOfferAccepted, "rate_offer", offerID,
		fmt.Sprintf(`{"requestID":%q,"rate":%q}`, requestID, offer.Rate.String()))
	s.notifier.Publish(portssvc.Event{Type: "refresh", Entity: "exchange_request", EntityID: requestID})

	settled, err := s.exchangeRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload settled request %s: %w", requestID, err)
	}
	acceptedOffer, err := s.exchangeRepo.FindOfferByID(ctx, offerID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload accepted offer %s: %w", offerID, err)
	}
	transactions, err := s.transactionRepo.FindTransactionsByRequestID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settlement ledger for request %s: %w", requestID, err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("offer accepted", "requestID", requestID, "offerID", offerID)
	return &dto.SettlementResponse{
		Request:      dto.ToExchangeRequestResponse(settled),
		Offer:        dto.ToRateOfferResponse(acceptedOffer),
		Transactions: dto.ToTransactionResponses(transactions),
	}, nil
}

// buildSettlementEntries produces the four ledger legs of one settlement: the
// requester pays Amount of FromCurrency to the bidder and receives TotalAmount
// of ToCurrency in return.
func buildSettlementEntries(request *domain.ExchangeRequest, offer *domain.RateOffer, termsAccepted bool, now time.Time, actorID string) []domain.Transaction {
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}
	entry := func(userID, currencyCode string, amount decimal.Decimal, txType domain.TransactionType) domain.Transaction {
		return domain.Transaction{
			TransactionID:     uuid.NewString(),
			UserID:            userID,
			ExchangeRequestID: request.ExchangeRequestID,
			RateOfferID:       offer.RateOfferID,
			CurrencyCode:      currencyCode,
			Amount:            amount,
			TransactionType:   txType,
			TermsAccepted:     termsAccepted,
			AuditFields:       audit,
		}
	}

	return []domain.Transaction{
		entry(request.RequesterID, request.FromCurrencyCode, request.Amount, domain.Debit),
		entry(offer.BidderID, request.FromCurrencyCode, request.Amount, domain.Credit),
		entry(offer.BidderID, request.ToCurrencyCode, offer.TotalAmount, domain.Debit),
		entry(request.RequesterID, request.ToCurrencyCode, offer.TotalAmount, domain.Credit),
	}
}

// recordAudit appends an audit entry, logging instead of failing the operation.
func (s *exchangeService) recordAudit(ctx context.Context, actorID string, action domain.AuditAction, entityType, entityID, details string) {
	if err := s.audit.Record(ctx, actorID, action, entityType, entityID, details); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("failed to record audit entry", "action", string(action), "error", err)
	}
}
