package extractor

// extractionPrompt drives the structured extraction. Dates must come
// back as YYYY-MM-DD with "11:59 PM" and "N/A" as the documented
// defaults so downstream parsing stays uniform.
const extractionPrompt = `Extract the syllabus information from this document.
Focus on finding:
1. The official class name
2. The course code (e.g., CS 251, MATH 101)
3. All assignments with their due dates, due times, and submission links

For assignments, extract:
- The full assignment name/title
- The due date in YYYY-MM-DD format (e.g., 2025-09-06, 2025-10-15). If not specified or unclear, use a reasonable default date in proper YYYY-MM-DD format.
- The due time (if not specified, use "11:59 PM" as default)
- The submission link (if not specified, use "N/A" as default)

IMPORTANT: All dates must be in YYYY-MM-DD format. Do not use MMDD-01-20 or any other format.

Look for submission links in various formats like URLs, Canvas links, or references to submission platforms.`

// responseSchema constrains the model to the syllabus shape we persist.
var responseSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"class_name":  map[string]interface{}{"type": "string"},
		"course_code": map[string]interface{}{"type": "string"},
		"assignments": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name":            map[string]interface{}{"type": "string"},
					"due_date":        map[string]interface{}{"type": "string"},
					"due_time":        map[string]interface{}{"type": "string"},
					"submission_link": map[string]interface{}{"type": "string"},
				},
				"required": []string{"name", "due_date", "due_time", "submission_link"},
			},
		},
	},
	"required": []string{"class_name", "course_code", "assignments"},
}
