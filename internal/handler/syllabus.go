package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"studyboard/internal/domain"
)

// maxUploadSize caps syllabus PDF uploads at 10 MiB.
const maxUploadSize = 10 << 20

type SyllabusService interface {
	Analyze(ctx context.Context, pdf []byte, filename string) (*domain.Syllabus, error)
	AnalyzeAndSave(ctx context.Context, pdf []byte, filename string) (*domain.Syllabus, error)
	Save(ctx context.Context, syllabus *domain.Syllabus) (int64, error)
	List(ctx context.Context) ([]domain.Syllabus, error)
	Update(ctx context.Context, id int64, syllabus *domain.Syllabus) error
	Delete(ctx context.Context, id int64) error
}

type SyllabusHandler struct {
	svc   SyllabusService
	cache Cache // nil when caching is disabled
}

func NewSyllabusHandler(svc SyllabusService, cache Cache) *SyllabusHandler {
	return &SyllabusHandler{svc: svc, cache: cache}
}

func (h *SyllabusHandler) RegisterRoutes(r chi.Router) {
	r.Post("/syllabi/analyze", h.Analyze)
	r.Post("/syllabi/analyze-and-save", h.AnalyzeAndSave)
	r.Post("/syllabi", h.Save)
	r.Get("/syllabi", h.List)
	r.Put("/syllabi/{id}", h.Update)
	r.Delete("/syllabi/{id}", h.Delete)
}

type assignmentPayload struct {
	ID             int64  `json:"id,omitempty"`
	Name           string `json:"name"`
	DueDate        string `json:"due_date"`
	DueTime        string `json:"due_time"`
	SubmissionLink string `json:"submission_link"`
	Status         string `json:"status"`
}

type syllabusPayload struct {
	ID          int64               `json:"id,omitempty"`
	ClassName   string              `json:"class_name"`
	CourseCode  string              `json:"course_code"`
	Assignments []assignmentPayload `json:"assignments"`
}

func toSyllabusPayload(s *domain.Syllabus) syllabusPayload {
	p := syllabusPayload{
		ID:          s.ID,
		ClassName:   s.ClassName,
		CourseCode:  s.CourseCode,
		Assignments: make([]assignmentPayload, 0, len(s.Assignments)),
	}
	for _, a := range s.Assignments {
		p.Assignments = append(p.Assignments, assignmentPayload{
			ID:             a.ID,
			Name:           a.Name,
			DueDate:        a.DueDate,
			DueTime:        a.DueTime,
			SubmissionLink: a.SubmissionLink,
			Status:         string(a.Status),
		})
	}
	return p
}

func fromSyllabusPayload(p syllabusPayload) *domain.Syllabus {
	s := &domain.Syllabus{
		ID:         p.ID,
		ClassName:  p.ClassName,
		CourseCode: p.CourseCode,
	}
	for _, a := range p.Assignments {
		s.Assignments = append(s.Assignments, domain.Assignment{
			ID:             a.ID,
			Name:           a.Name,
			DueDate:        a.DueDate,
			DueTime:        a.DueTime,
			SubmissionLink: a.SubmissionLink,
			Status:         domain.ToAssignmentStatus(a.Status),
		})
	}
	return s
}

func readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "expected multipart form with a file field")
		return nil, "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "missing file field")
		return nil, "", false
	}
	defer file.Close()

	pdf, err := io.ReadAll(file)
	if err != nil {
		writeErrorJSON(w, http.StatusInternalServerError, "failed to read uploaded file")
		return nil, "", false
	}

	return pdf, header.Filename, true
}

// Analyze extracts syllabus data from an uploaded PDF without saving it,
// so the caller can review and edit before committing.
func (h *SyllabusHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	pdf, filename, ok := readUpload(w, r)
	if !ok {
		return
	}

	syllabus, err := h.svc.Analyze(r.Context(), pdf, filename)
	if err != nil {
		writeErrorJSON(w, mapErr(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, "syllabus analyzed", toSyllabusPayload(syllabus))
}

func (h *SyllabusHandler) AnalyzeAndSave(w http.ResponseWriter, r *http.Request) {
	pdf, filename, ok := readUpload(w, r)
	if !ok {
		return
	}

	syllabus, err := h.svc.AnalyzeAndSave(r.Context(), pdf, filename)
	if err != nil {
		writeErrorJSON(w, mapErr(err), err.Error())
		return
	}

	h.invalidateBoards(r.Context())
	writeJSON(w, http.StatusCreated, "syllabus analyzed and saved", toSyllabusPayload(syllabus))
}

func (h *SyllabusHandler) Save(w http.ResponseWriter, r *http.Request) {
	var payload syllabusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	syllabus := fromSyllabusPayload(payload)
	id, err := h.svc.Save(r.Context(), syllabus)
	if err != nil {
		writeErrorJSON(w, mapErr(err), err.Error())
		return
	}

	h.invalidateBoards(r.Context())
	writeJSON(w, http.StatusCreated, "syllabus saved", map[string]int64{"id": id})
}

func (h *SyllabusHandler) List(w http.ResponseWriter, r *http.Request) {
	syllabi, err := h.svc.List(r.Context())
	if err != nil {
		writeErrorJSON(w, mapErr(err), err.Error())
		return
	}

	payloads := make([]syllabusPayload, 0, len(syllabi))
	for i := range syllabi {
		payloads = append(payloads, toSyllabusPayload(&syllabi[i]))
	}
	writeJSON(w, http.StatusOK, "syllabi listed", payloads)
}

func (h *SyllabusHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	var payload syllabusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.Update(r.Context(), id, fromSyllabusPayload(payload)); err != nil {
		writeErrorJSON(w, mapErr(err), err.Error())
		return
	}

	h.invalidateBoards(r.Context())
	writeJSON(w, http.StatusOK, "syllabus updated", nil)
}

func (h *SyllabusHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeErrorJSON(w, mapErr(err), err.Error())
		return
	}

	h.invalidateBoards(r.Context())
	writeJSON(w, http.StatusOK, "syllabus deleted", nil)
}

func (h *SyllabusHandler) invalidateBoards(ctx context.Context) {
	if h.cache != nil {
		h.cache.DeleteByPrefix(ctx, boardCachePrefix)
	}
}
