package service

import (
	"context"
	"time"

	"studyboard/internal/domain"
)

type SyllabusRepository interface {
	ListAll(ctx context.Context) ([]domain.Syllabus, error)
	GetByID(ctx context.Context, id int64) (*domain.Syllabus, error)
	Create(ctx context.Context, s *domain.Syllabus) error
	Update(ctx context.Context, s *domain.Syllabus) error
	Delete(ctx context.Context, id int64) error
}

type AssignmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Assignment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AssignmentStatus) error
	Delete(ctx context.Context, id int64) error
	FindDueSoon(ctx context.Context, within time.Duration) ([]domain.Assignment, error)
}

type Extractor interface {
	Extract(ctx context.Context, pdf []byte, filename string) (*domain.Syllabus, error)
}

type EventProducer interface {
	Send(ctx context.Context, topic string, message interface{}) error
}
