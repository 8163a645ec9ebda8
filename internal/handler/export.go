package handler

import (
	"encoding/csv"
	"net/http"
	"time"
)

// ExportCSV streams every assignment in due order as a CSV download.
func (h *BoardHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.AllItems(r.Context(), time.Now())
	if err != nil {
		writeErrorJSON(w, mapErr(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="assignments.csv"`)

	cw := csv.NewWriter(w)
	cw.Write([]string{"course_code", "course_name", "assignment", "due_date", "due_time", "status", "submission_link"})
	for _, it := range items {
		cw.Write([]string{
			it.CourseCode,
			it.CourseName,
			it.Assignment.Name,
			it.Assignment.DueDate,
			it.Assignment.DueTime,
			string(it.Assignment.Status),
			it.Assignment.SubmissionLink,
		})
	}
	cw.Flush()
}
