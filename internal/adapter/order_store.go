package adapter

import (
	"fmt"
	"net/url"
	"sync"
	"time"

	"coursepass/internal/core/model"
)

// OrderStore issues fallback orders and answers confirmations. Order numbers
// combine a millisecond timestamp with a monotonic counter, so they cannot
// collide within one process. An order number, once issued, maps back to its
// course for the lifetime of the store.
type OrderStore struct {
	mu            sync.Mutex
	seq           int64
	courseByOrder map[string]string
	now           func() time.Time
}

func NewOrderStore() *OrderStore {
	return &OrderStore{
		courseByOrder: make(map[string]string),
		now:           time.Now,
	}
}

func (s *OrderStore) CreateOrder(courseID string, provider model.PaymentProvider) model.CreateOrderResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	orderNumber := fmt.Sprintf("MOCK-%d-%d", s.now().UnixMilli(), s.seq)
	s.courseByOrder[orderNumber] = courseID

	q := url.Values{}
	q.Set("orderNumber", orderNumber)
	q.Set("provider", string(provider))

	return model.CreateOrderResponse{
		OrderNumber: orderNumber,
		RedirectURL: "/checkout/success?" + q.Encode(),
		CourseID:    courseID,
	}
}

// ConfirmPayment reports paid for every order it knows. A number that was
// never issued confirms against the "unknown-course" sentinel; that is
// defined behavior, not an error.
func (s *OrderStore) ConfirmPayment(orderNumber string) model.PaymentConfirmation {
	s.mu.Lock()
	defer s.mu.Unlock()

	courseID, ok := s.courseByOrder[orderNumber]
	if !ok {
		courseID = "unknown-course"
	}
	return model.PaymentConfirmation{
		Status:   model.PaymentPaid,
		CourseID: courseID,
	}
}
