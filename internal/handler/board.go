package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"studyboard/internal/board"
	"studyboard/internal/domain"
)

const dateOnly = "2006-01-02"

type BoardService interface {
	Boards(ctx context.Context, now time.Time) ([]board.WeeklyBoard, int, error)
	AllItems(ctx context.Context, now time.Time) ([]board.Item, error)
	MoveAssignment(ctx context.Context, assignmentID int64, column board.ColumnID) error
	DeleteAssignment(ctx context.Context, assignmentID int64) error
}

type BoardHandler struct {
	svc      BoardService
	cache    Cache // nil when caching is disabled
	cacheTTL time.Duration
}

func NewBoardHandler(svc BoardService, cache Cache, cacheTTL time.Duration) *BoardHandler {
	return &BoardHandler{svc: svc, cache: cache, cacheTTL: cacheTTL}
}

func (h *BoardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/boards", h.GetBoards)
	r.Get("/boards/all", h.GetAllItems)
	r.Patch("/assignments/{id}/status", h.MoveAssignment)
	r.Delete("/assignments/{id}", h.DeleteAssignment)
	r.Get("/export/csv", h.ExportCSV)
}

type boardItemPayload struct {
	ID             int64  `json:"id"`
	SyllabusID     int64  `json:"syllabus_id"`
	Name           string `json:"name"`
	DueDate        string `json:"due_date"`
	DueTime        string `json:"due_time"`
	DueAt          string `json:"due_at"`
	SubmissionLink string `json:"submission_link"`
	Status         string `json:"status"`
	CourseCode     string `json:"course_code"`
	CourseName     string `json:"course_name"`
	Color          string `json:"color"`
}

type boardPayload struct {
	Number    int                           `json:"number"`
	Title     string                        `json:"title"`
	StartDate string                        `json:"start_date"`
	EndDate   string                        `json:"end_date"`
	Current   bool                          `json:"current"`
	Columns   map[string][]boardItemPayload `json:"columns"`
}

type boardsPayload struct {
	Boards   []boardPayload `json:"boards"`
	Selected int            `json:"selected"`
}

func toItemPayload(it board.Item) boardItemPayload {
	return boardItemPayload{
		ID:             it.Assignment.ID,
		SyllabusID:     it.SyllabusID,
		Name:           it.Assignment.Name,
		DueDate:        it.Assignment.DueDate,
		DueTime:        it.Assignment.DueTime,
		DueAt:          it.DueAt.Format(time.RFC3339),
		SubmissionLink: it.Assignment.SubmissionLink,
		Status:         string(it.Assignment.Status),
		CourseCode:     it.CourseCode,
		CourseName:     it.CourseName,
		Color:          board.CourseColor(it.CourseCode),
	}
}

func toItemPayloads(items []board.Item) []boardItemPayload {
	payloads := make([]boardItemPayload, 0, len(items))
	for _, it := range items {
		payloads = append(payloads, toItemPayload(it))
	}
	return payloads
}

func toBoardPayload(b board.WeeklyBoard, now time.Time) boardPayload {
	cols := board.DeriveColumns(b.Items)
	return boardPayload{
		Number:    b.Number,
		Title:     b.Title,
		StartDate: b.StartDate.Format(dateOnly),
		EndDate:   b.EndDate.Format(dateOnly),
		Current:   b.Contains(now),
		Columns: map[string][]boardItemPayload{
			string(board.ColumnNotStarted): toItemPayloads(cols.NotStarted),
			string(board.ColumnInProgress): toItemPayloads(cols.InProgress),
			string(board.ColumnDone):       toItemPayloads(cols.Done),
		},
	}
}

// GetBoards returns every weekly board plus the index the UI should open
// on. The reference time defaults to now and can be pinned with ?at= for
// reproducible views.
func (h *BoardHandler) GetBoards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now()
	cacheable := true
	if at := r.URL.Query().Get("at"); at != "" {
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			writeErrorJSON(w, http.StatusBadRequest, "invalid at parameter, expected RFC3339")
			return
		}
		now = parsed
	} else {
		// the default reference time changes every call, so only
		// pinned views are worth caching
		cacheable = false
	}

	cacheKey := boardCachePrefix + ":" + now.Format(time.RFC3339)
	if h.cache != nil && cacheable {
		if data, ok := h.cache.Get(ctx, cacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(data)
			return
		}
	}

	boards, selected, err := h.svc.Boards(ctx, now)
	if err != nil {
		writeErrorJSON(w, mapErr(err), err.Error())
		return
	}

	payload := boardsPayload{Boards: make([]boardPayload, 0, len(boards)), Selected: selected}
	for _, b := range boards {
		payload.Boards = append(payload.Boards, toBoardPayload(b, now))
	}

	data, err := json.Marshal(successResponse{Success: true, Message: "boards derived", Data: payload})
	if err != nil {
		writeErrorJSON(w, http.StatusInternalServerError, "failed to serialize response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)

	if h.cache != nil && cacheable {
		h.cache.Set(ctx, cacheKey, data, h.cacheTTL)
	}
}

// GetAllItems serves the single "all assignments" board: every item in
// due order, partitioned into the same three columns.
func (h *BoardHandler) GetAllItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.AllItems(r.Context(), time.Now())
	if err != nil {
		writeErrorJSON(w, mapErr(err), err.Error())
		return
	}

	cols := board.DeriveColumns(items)
	payload := map[string][]boardItemPayload{
		string(board.ColumnNotStarted): toItemPayloads(cols.NotStarted),
		string(board.ColumnInProgress): toItemPayloads(cols.InProgress),
		string(board.ColumnDone):       toItemPayloads(cols.Done),
	}
	writeJSON(w, http.StatusOK, "all assignments", payload)
}

type moveRequest struct {
	Column string `json:"column"`
	Status string `json:"status"`
}

// MoveAssignment is the drag-and-drop endpoint. It accepts either the
// drop-target column id or a raw status value.
func (h *BoardHandler) MoveAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	column := board.ColumnID(req.Column)
	if req.Column == "" {
		status := domain.AssignmentStatus(req.Status)
		if !status.IsValid() {
			writeErrorJSON(w, http.StatusBadRequest, "expected a column or a valid status")
			return
		}
		column = board.ColumnForStatus(status)
	}

	if err := h.svc.MoveAssignment(r.Context(), id, column); err != nil {
		writeErrorJSON(w, mapErr(err), err.Error())
		return
	}

	h.invalidateBoards(r.Context())
	writeJSON(w, http.StatusOK, "assignment moved", nil)
}

func (h *BoardHandler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.DeleteAssignment(r.Context(), id); err != nil {
		writeErrorJSON(w, mapErr(err), err.Error())
		return
	}

	h.invalidateBoards(r.Context())
	writeJSON(w, http.StatusOK, "assignment deleted", nil)
}

func (h *BoardHandler) invalidateBoards(ctx context.Context) {
	if h.cache != nil {
		h.cache.DeleteByPrefix(ctx, boardCachePrefix)
	}
}
