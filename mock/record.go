package mock

import (
	"context"

	"github.com/fwojciec/supplier"
)

var _ supplier.ProfileService = (*ProfileService)(nil)

// ProfileService is a mock implementation of supplier.ProfileService.
type ProfileService struct {
	CreateProfileRecordFn   func(ctx context.Context, record *supplier.ProfileRecord) error
	FindProfileRecordByIDFn func(ctx context.Context, id string) (*supplier.ProfileRecord, error)
	FindProfileRecordsFn    func(ctx context.Context, filter supplier.ProfileRecordFilter) ([]*supplier.ProfileRecord, error)
	DeleteProfileRecordFn   func(ctx context.Context, id string) error
}

func (s *ProfileService) CreateProfileRecord(ctx context.Context, record *supplier.ProfileRecord) error {
	return s.CreateProfileRecordFn(ctx, record)
}

func (s *ProfileService) FindProfileRecordByID(ctx context.Context, id string) (*supplier.ProfileRecord, error) {
	return s.FindProfileRecordByIDFn(ctx, id)
}

func (s *ProfileService) FindProfileRecords(ctx context.Context, filter supplier.ProfileRecordFilter) ([]*supplier.ProfileRecord, error) {
	return s.FindProfileRecordsFn(ctx, filter)
}

func (s *ProfileService) DeleteProfileRecord(ctx context.Context, id string) error {
	return s.DeleteProfileRecordFn(ctx, id)
}
