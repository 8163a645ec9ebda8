package main

import (
	"context"
	"time"

	"studyboard/internal/repository"
	"studyboard/pkg/kafka"
	"studyboard/pkg/logger"
)

// ReminderWorker periodically publishes reminder events for unfinished
// assignments due within the next day.
type ReminderWorker struct {
	assignments *repository.AssignmentRepository
	producer    *kafka.Producer
	logger      *logger.Logger
	topic       string
	interval    time.Duration
}

func NewReminderWorker(
	assignments *repository.AssignmentRepository,
	producer *kafka.Producer,
	log *logger.Logger,
	topic string,
	interval time.Duration,
) *ReminderWorker {
	return &ReminderWorker{
		assignments: assignments,
		producer:    producer,
		logger:      log,
		topic:       topic,
		interval:    interval,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("reminder worker stopped")
			return
		case <-ticker.C:
			w.processReminders(ctx)
		}
	}
}

func (w *ReminderWorker) processReminders(ctx context.Context) {
	assignments, err := w.assignments.FindDueSoon(ctx, 24*time.Hour)
	if err != nil {
		w.logger.Errorf("failed to get assignments due soon: %v", err)
		return
	}

	for _, a := range assignments {
		message := map[string]interface{}{
			"assignment_id": a.ID,
			"syllabus_id":   a.SyllabusID,
			"name":          a.Name,
			"due_date":      a.DueDate,
			"due_time":      a.DueTime,
			"status":        a.Status,
		}

		if err := w.producer.Send(ctx, w.topic, message); err != nil {
			w.logger.Errorf("failed to send reminder for assignment %d: %v", a.ID, err)
			continue
		}

		w.logger.Infof("sent reminder for assignment %d", a.ID)
	}
}
