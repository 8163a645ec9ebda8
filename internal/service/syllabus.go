package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"studyboard/internal/domain"
	"studyboard/pkg/logger"
)

type SyllabusService struct {
	repo      SyllabusRepository
	extractor Extractor
	logger    *logger.Logger
}

func NewSyllabusService(repo SyllabusRepository, extractor Extractor, log *logger.Logger) *SyllabusService {
	return &SyllabusService{
		repo:      repo,
		extractor: extractor,
		logger:    log,
	}
}

// Analyze runs the PDF through the extraction collaborator without
// persisting anything.
func (s *SyllabusService) Analyze(ctx context.Context, pdf []byte, filename string) (*domain.Syllabus, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return nil, ErrNotPDF
	}

	syllabus, err := s.extractor.Extract(ctx, pdf, filename)
	if err != nil {
		s.logger.Error("syllabus extraction failed", zap.String("filename", filename), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	for i := range syllabus.Assignments {
		if !syllabus.Assignments[i].Status.IsValid() {
			syllabus.Assignments[i].Status = domain.AssignmentStatusNotStarted
		}
	}

	return syllabus, nil
}

// Save persists an extracted or edited syllabus. A zero id creates a new
// record; a known id updates it, replacing the assignment list.
func (s *SyllabusService) Save(ctx context.Context, syllabus *domain.Syllabus) (int64, error) {
	if syllabus.ID != 0 {
		if _, err := s.repo.GetByID(ctx, syllabus.ID); err == nil {
			if err := s.repo.Update(ctx, syllabus); err != nil {
				return 0, fmt.Errorf("failed to update syllabus: %w", err)
			}
			return syllabus.ID, nil
		}
	}

	syllabus.ID = 0
	if err := s.repo.Create(ctx, syllabus); err != nil {
		return 0, fmt.Errorf("failed to create syllabus: %w", err)
	}
	return syllabus.ID, nil
}

// AnalyzeAndSave combines extraction and persistence in one step.
func (s *SyllabusService) AnalyzeAndSave(ctx context.Context, pdf []byte, filename string) (*domain.Syllabus, error) {
	syllabus, err := s.Analyze(ctx, pdf, filename)
	if err != nil {
		return nil, err
	}

	if _, err := s.Save(ctx, syllabus); err != nil {
		return nil, err
	}

	return syllabus, nil
}

func (s *SyllabusService) List(ctx context.Context) ([]domain.Syllabus, error) {
	return s.repo.ListAll(ctx)
}

func (s *SyllabusService) Update(ctx context.Context, id int64, syllabus *domain.Syllabus) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	syllabus.ID = id
	return s.repo.Update(ctx, syllabus)
}

func (s *SyllabusService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
