package discount

import (
	"context"
	"strings"

	"lemongrove/internal/domain"
)

// Service looks up promotional codes in a fixed registry.
type Service struct {
	codes []domain.DiscountCode
}

func New(codes []domain.DiscountCode) *Service {
	return &Service{codes: append([]domain.DiscountCode(nil), codes...)}
}

// Apply resolves code ignoring case and surrounding whitespace.
func (s *Service) Apply(_ context.Context, code string) (*domain.DiscountCode, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrNotFound
	}
	for _, c := range s.codes {
		if strings.EqualFold(c.Code, code) {
			out := c
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Service) List(_ context.Context) []domain.DiscountCode {
	return append([]domain.DiscountCode(nil), s.codes...)
}
