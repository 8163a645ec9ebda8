package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"studyboard/internal/domain"
)

type SyllabusRepository struct {
	mock.Mock
}

func (m *SyllabusRepository) ListAll(ctx context.Context) ([]domain.Syllabus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Syllabus), args.Error(1)
}

func (m *SyllabusRepository) GetByID(ctx context.Context, id int64) (*domain.Syllabus, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Syllabus), args.Error(1)
}

func (m *SyllabusRepository) Create(ctx context.Context, s *domain.Syllabus) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *SyllabusRepository) Update(ctx context.Context, s *domain.Syllabus) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *SyllabusRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type AssignmentRepository struct {
	mock.Mock
}

func (m *AssignmentRepository) GetByID(ctx context.Context, id int64) (*domain.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}

func (m *AssignmentRepository) UpdateStatus(ctx context.Context, id int64, status domain.AssignmentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *AssignmentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *AssignmentRepository) FindDueSoon(ctx context.Context, within time.Duration) ([]domain.Assignment, error) {
	args := m.Called(ctx, within)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Assignment), args.Error(1)
}

type Extractor struct {
	mock.Mock
}

func (m *Extractor) Extract(ctx context.Context, pdf []byte, filename string) (*domain.Syllabus, error) {
	args := m.Called(ctx, pdf, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Syllabus), args.Error(1)
}

type EventProducer struct {
	mock.Mock
}

func (m *EventProducer) Send(ctx context.Context, topic string, message interface{}) error {
	args := m.Called(ctx, topic, message)
	return args.Error(0)
}
