package product

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
	"storefront/internal/stockstream"

	"golang.org/x/text/currency"
)

// Service is the product catalog: public reads plus the admin mutation
// surface. Stock changes are announced on the stream hub.
type Service struct {
	repo   productrepo.Repository
	stream publisher
}

type publisher interface {
	Publish(stockstream.Update)
}

func New(repo productrepo.Repository, stream publisher) *Service {
	return &Service{repo: repo, stream: stream}
}

// Input carries the fields accepted for create and update.
type Input struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	PriceCents  int64    `json:"priceCents"`
	Currency    string   `json:"currency"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
	Stock       int      `json:"stock"`
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all products, or only those in category when it is non-empty.
func (s *Service) List(ctx context.Context, category string) ([]domain.Product, error) {
	if category = strings.TrimSpace(category); category != "" {
		return s.repo.ListByCategory(ctx, category)
	}
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Product, error) {
	p, err := productFromInput(in)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.Product, error) {
	p, err := productFromInput(in)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// SetStock updates available stock and broadcasts the change to stream
// subscribers.
func (s *Service) SetStock(ctx context.Context, id string, stock int) (*domain.Product, error) {
	if stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", domain.ErrInvalidInput)
	}
	p, err := s.repo.SetStock(ctx, id, stock)
	if err != nil {
		return nil, err
	}
	if s.stream != nil {
		s.stream.Publish(stockstream.Update{ProductID: p.ID, Name: p.Name, Stock: p.Stock})
	}
	return p, nil
}

func productFromInput(in Input) (domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Product{}, fmt.Errorf("%w: name required", domain.ErrInvalidInput)
	}
	if in.PriceCents < 0 {
		return domain.Product{}, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	if in.Stock < 0 {
		return domain.Product{}, fmt.Errorf("%w: stock must not be negative", domain.ErrInvalidInput)
	}
	unit, err := currency.ParseISO(strings.TrimSpace(in.Currency))
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: currency %q is not a valid ISO code", domain.ErrInvalidInput, in.Currency)
	}
	if strings.TrimSpace(in.Category) == "" {
		return domain.Product{}, fmt.Errorf("%w: category required", domain.ErrInvalidInput)
	}
	return domain.Product{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		PriceCents:  in.PriceCents,
		Currency:    unit.String(),
		Category:    strings.TrimSpace(in.Category),
		Images:      in.Images,
		Stock:       in.Stock,
	}, nil
}
