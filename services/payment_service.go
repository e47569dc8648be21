package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/adithyaaneesh/swiggy-api/entity"
	"github.com/adithyaaneesh/swiggy-api/pkg/apperr"
	"github.com/adithyaaneesh/swiggy-api/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentProvider is the external collaborator behind the payment flow. The
// core only ever calls it at two points: intent creation while the order is
// still PENDING, and confirmation.
type PaymentProvider interface {
	CreateIntent(ctx context.Context, reference string, amount decimal.Decimal) (approvalRef string, err error)
	Confirm(ctx context.Context, approvalRef, token string) error
}

type PaymentService struct {
	DB       *gorm.DB
	Repo     *repository.PaymentRepository
	Orders   *OrderService
	Provider PaymentProvider
}

func NewPaymentService(db *gorm.DB, repo *repository.PaymentRepository, orders *OrderService, provider PaymentProvider) *PaymentService {
	return &PaymentService{DB: db, Repo: repo, Orders: orders, Provider: provider}
}

type PaymentIntentRes struct {
	ApprovalRef string `json:"approvalReference"`
}

// CreateIntent asks the provider for an approval reference. Only the owning
// customer may pay, and only while the order is PENDING. Repeated calls for
// the same order return the stored reference instead of creating another
// intent.
func (s *PaymentService) CreateIntent(ctx context.Context, userID, orderID uint) (*PaymentIntentRes, error) {
	o, err := s.Orders.Repo.GetOrderForUser(userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if o.Status != entity.StatusPending {
		return nil, apperr.ErrInvalidState
	}

	if p, err := s.Repo.GetByOrderID(o.ID); err == nil {
		return &PaymentIntentRes{ApprovalRef: p.ApprovalRef}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	reference := uuid.NewString()
	approvalRef, err := s.Provider.CreateIntent(ctx, reference, o.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrPaymentProvider, err)
	}

	p := entity.Payment{
		OrderID:     o.ID,
		Amount:      o.TotalAmount,
		Reference:   reference,
		ApprovalRef: approvalRef,
		Status:      entity.PaymentPending,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.Create(tx, &p)
	})
	if err != nil {
		return nil, err
	}
	return &PaymentIntentRes{ApprovalRef: approvalRef}, nil
}

type PaymentConfirmRes struct {
	OrderID uint               `json:"orderId"`
	Status  entity.OrderStatus `json:"status"`
}

// Confirm settles the payment with the provider and, on success, advances
// the order PENDING -> ACCEPTED. A provider failure leaves both the payment
// and the order exactly as they were.
func (s *PaymentService) Confirm(ctx context.Context, userID, orderID uint, token string) (*PaymentConfirmRes, error) {
	o, err := s.Orders.Repo.GetOrderForUser(userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	p, err := s.Repo.GetByOrderID(o.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	if p.Status == entity.PaymentPaid {
		// already settled; report where the order is now
		return &PaymentConfirmRes{OrderID: o.ID, Status: o.Status}, nil
	}
	if o.Status != entity.StatusPending {
		return nil, apperr.ErrInvalidState
	}

	// the external call happens before any mutation: a failure here must
	// leave order status untouched
	if err := s.Provider.Confirm(ctx, p.ApprovalRef, token); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrPaymentProvider, err)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := s.Repo.UpdateStatus(tx, p.ID, entity.PaymentPaid, &now); err != nil {
			return err
		}
		return s.Orders.acceptOnPayment(tx, o.ID)
	})
	if err != nil {
		return nil, err
	}

	s.Orders.notify(o.ID, entity.StatusPending, entity.StatusAccepted)
	return &PaymentConfirmRes{OrderID: o.ID, Status: entity.StatusAccepted}, nil
}

// ----- HTTP-backed provider -----

// HTTPProvider talks to the real gateway. Base URL and API key come from the
// environment; see configs.Config.
type HTTPProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewHTTPProvider(baseURL, apiKey string) *HTTPProvider {
	return &HTTPProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *HTTPProvider) CreateIntent(ctx context.Context, reference string, amount decimal.Decimal) (string, error) {
	body, _ := json.Marshal(map[string]any{
		"reference": reference,
		"amount":    amount,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/intents", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	res, err := p.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("provider returned %d", res.StatusCode)
	}

	var out struct {
		ApprovalRef string `json:"approvalRef"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.ApprovalRef, nil
}

func (p *HTTPProvider) Confirm(ctx context.Context, approvalRef, token string) error {
	body, _ := json.Marshal(map[string]any{
		"approvalRef": approvalRef,
		"token":       token,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/confirm", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	res, err := p.Client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned %d", res.StatusCode)
	}
	return nil
}
