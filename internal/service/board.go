package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"studyboard/internal/board"
	"studyboard/internal/domain"
	"studyboard/pkg/logger"
)

// BoardService owns the working copy of syllabus data and derives kanban
// boards from it. Column membership is never stored: every mutation goes
// through the repository and is followed by a full refetch, so the
// displayed state always reflects what the store confirmed.
type BoardService struct {
	syllabi     SyllabusRepository
	assignments AssignmentRepository
	events      EventProducer // nil when events are disabled
	statusTopic string
	logger      *logger.Logger

	mu         sync.RWMutex
	snapshot   []domain.Syllabus
	hasData    bool
	appliedSeq uint64
	nextSeq    uint64
}

func NewBoardService(
	syllabi SyllabusRepository,
	assignments AssignmentRepository,
	events EventProducer,
	statusTopic string,
	log *logger.Logger,
) *BoardService {
	return &BoardService{
		syllabi:     syllabi,
		assignments: assignments,
		events:      events,
		statusTopic: statusTopic,
		logger:      log,
	}
}

// Refresh fetches the authoritative syllabus set and replaces the
// working copy. Each fetch carries a monotonic token taken before the
// query; a slow response that loses the race to a newer one is dropped
// instead of clobbering fresher data.
func (s *BoardService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.nextSeq++
	token := s.nextSeq
	s.mu.Unlock()

	list, err := s.syllabi.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh syllabi: %w", err)
	}

	s.apply(list, token)
	return nil
}

func (s *BoardService) apply(list []domain.Syllabus, token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token <= s.appliedSeq {
		s.logger.Warn("discarding stale refetch result",
			zap.Uint64("token", token),
			zap.Uint64("applied", s.appliedSeq),
		)
		return
	}
	s.snapshot = list
	s.hasData = true
	s.appliedSeq = token
}

// Snapshot returns the last-known-good syllabus set.
func (s *BoardService) Snapshot() ([]domain.Syllabus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.hasData
}

// Boards refreshes the working copy and derives the weekly boards plus
// the auto-selected index for now. When the refetch fails but an earlier
// snapshot exists, the stale snapshot is served instead of an error.
func (s *BoardService) Boards(ctx context.Context, now time.Time) ([]board.WeeklyBoard, int, error) {
	items, err := s.refreshedItems(ctx, now)
	if err != nil {
		return nil, -1, err
	}

	boards := board.DeriveBoards(items)
	return boards, board.AutoSelect(boards, now), nil
}

// AllItems returns the flattened assignment set for the "all
// assignments" board, sorted the same way weekly boards are.
func (s *BoardService) AllItems(ctx context.Context, now time.Time) ([]board.Item, error) {
	items, err := s.refreshedItems(ctx, now)
	if err != nil {
		return nil, err
	}

	var all []board.Item
	for _, b := range board.DeriveBoards(items) {
		all = append(all, b.Items...)
	}
	return all, nil
}

func (s *BoardService) refreshedItems(ctx context.Context, now time.Time) ([]board.Item, error) {
	if err := s.Refresh(ctx); err != nil {
		snapshot, ok := s.Snapshot()
		if !ok {
			return nil, err
		}
		s.logger.Warn("serving last-known-good snapshot", zap.Error(err))
		return s.flatten(snapshot, now), nil
	}

	snapshot, _ := s.Snapshot()
	return s.flatten(snapshot, now), nil
}

func (s *BoardService) flatten(syllabi []domain.Syllabus, now time.Time) []board.Item {
	items := board.Flatten(syllabi, now)
	for _, it := range items {
		if it.DueFallback {
			s.logger.Warn("unparseable due date, using fallback instant",
				zap.Int64("assignment_id", it.Assignment.ID),
				zap.String("due_date", it.Assignment.DueDate),
				zap.String("due_time", it.Assignment.DueTime),
			)
		}
	}
	return items
}

// MoveAssignment is the drag-completion write path: map the drop target
// to a status, persist it, then refetch. On failure the working copy is
// left untouched and the caller must retry explicitly.
func (s *BoardService) MoveAssignment(ctx context.Context, assignmentID int64, column board.ColumnID) error {
	status, ok := board.StatusForColumn(column)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}

	if err := s.assignments.UpdateStatus(ctx, assignmentID, status); err != nil {
		return fmt.Errorf("failed to update assignment status: %w", err)
	}

	s.publishStatusChange(ctx, assignmentID, status)

	return s.Refresh(ctx)
}

// DeleteAssignment removes one assignment through the store, then
// refetches. Deletion is always server-authoritative.
func (s *BoardService) DeleteAssignment(ctx context.Context, assignmentID int64) error {
	if err := s.assignments.Delete(ctx, assignmentID); err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	return s.Refresh(ctx)
}

func (s *BoardService) publishStatusChange(ctx context.Context, assignmentID int64, status domain.AssignmentStatus) {
	if s.events == nil {
		return
	}

	message := map[string]interface{}{
		"assignment_id": assignmentID,
		"status":        status,
	}
	if err := s.events.Send(ctx, s.statusTopic, message); err != nil {
		// event delivery is best-effort; the status update already committed
		s.logger.Warn("failed to publish status change event",
			zap.Int64("assignment_id", assignmentID),
			zap.Error(err),
		)
	}
}
