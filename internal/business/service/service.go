package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nexoventlabs/business-tracker/internal/business"
	"github.com/nexoventlabs/business-tracker/internal/business/repository"
	"github.com/nexoventlabs/business-tracker/pkg/apperr"
)

// ErrEmptyUpdate is returned for an update body with no applicable fields.
var ErrEmptyUpdate = apperr.New(apperr.KindMalformedInput, "update body has no fields")

// Service defines the business record operations used by the handler layer.
type Service interface {
	List(ctx context.Context) ([]business.Record, error)
	Create(ctx context.Context, rec business.Record) (string, error)
	Update(ctx context.Context, id int64, fields business.Record) error
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

// Option configures the service.
type Option func(*recordService)

// WithClock overrides the time source used for createdAt defaulting.
func WithClock(now func() time.Time) Option {
	return func(s *recordService) { s.now = now }
}

// New returns a Service backed by repo.
func New(repo repository.Repository, opts ...Option) Service {
	s := &recordService{repo: repo, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService(opts ...Option) Service {
	return New(repository.NewMemoryRepo(), opts...)
}

type recordService struct {
	repo repository.Repository
	now  func() time.Time
}

func (s *recordService) List(ctx context.Context) ([]business.Record, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]business.Record, 0, len(list))
	for _, r := range list {
		out = append(out, r.WithoutInternalID())
	}
	return out, nil
}

// Create stores rec, setting createdAt to the current UTC time when the client
// did not supply one. A client-supplied _id is dropped.
func (s *recordService) Create(ctx context.Context, rec business.Record) (string, error) {
	doc := rec.WithoutInternalID()
	if _, ok := doc[business.FieldCreatedAt]; !ok {
		doc[business.FieldCreatedAt] = business.FormatTimestamp(s.now())
	}
	id, err := s.repo.Create(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("create business: %w", err)
	}
	return id, nil
}

func (s *recordService) Update(ctx context.Context, id int64, fields business.Record) error {
	set := fields.WithoutInternalID()
	if len(set) == 0 {
		return ErrEmptyUpdate
	}
	if err := s.repo.Update(ctx, id, set); err != nil {
		return fmt.Errorf("update business %d: %w", id, err)
	}
	return nil
}

func (s *recordService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete business %d: %w", id, err)
	}
	return nil
}

func (s *recordService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
