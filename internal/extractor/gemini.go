package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"studyboard/internal/domain"
)

var ErrNoAPIKey = errors.New("gemini api key is not configured")

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// GeminiExtractor extracts structured syllabus data from a PDF through
// the Gemini REST API: it uploads the file, then asks for a JSON
// completion constrained by responseSchema.
type GeminiExtractor struct {
	cfg    Config
	client *http.Client
}

func NewGemini(cfg Config) *GeminiExtractor {
	return &GeminiExtractor{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type uploadResponse struct {
	File struct {
		Name     string `json:"name"`
		URI      string `json:"uri"`
		MimeType string `json:"mimeType"`
	} `json:"file"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text     string    `json:"text,omitempty"`
	FileData *fileData `json:"file_data,omitempty"`
}

type fileData struct {
	FileURI  string `json:"file_uri"`
	MimeType string `json:"mime_type"`
}

type generationConfig struct {
	ResponseMimeType string      `json:"response_mime_type"`
	ResponseSchema   interface{} `json:"response_schema"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type extractedAssignment struct {
	Name           string `json:"name"`
	DueDate        string `json:"due_date"`
	DueTime        string `json:"due_time"`
	SubmissionLink string `json:"submission_link"`
}

type extractedSyllabus struct {
	ClassName   string                `json:"class_name"`
	CourseCode  string                `json:"course_code"`
	Assignments []extractedAssignment `json:"assignments"`
}

func (g *GeminiExtractor) Extract(ctx context.Context, pdf []byte, filename string) (*domain.Syllabus, error) {
	if g.cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	fileURI, err := g.uploadFile(ctx, pdf)
	if err != nil {
		return nil, fmt.Errorf("failed to upload pdf: %w", err)
	}

	raw, err := g.generateContent(ctx, fileURI)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	var extracted extractedSyllabus
	if err := json.Unmarshal([]byte(raw), &extracted); err != nil {
		return nil, fmt.Errorf("failed to parse extraction result: %w", err)
	}

	syllabus := &domain.Syllabus{
		ClassName:  extracted.ClassName,
		CourseCode: extracted.CourseCode,
	}
	for _, a := range extracted.Assignments {
		syllabus.Assignments = append(syllabus.Assignments, domain.Assignment{
			Name:           a.Name,
			DueDate:        a.DueDate,
			DueTime:        a.DueTime,
			SubmissionLink: a.SubmissionLink,
			Status:         domain.AssignmentStatusNotStarted,
		})
	}

	return syllabus, nil
}

func (g *GeminiExtractor) uploadFile(ctx context.Context, pdf []byte) (string, error) {
	url := fmt.Sprintf("%s/upload/v1beta/files?key=%s", g.cfg.BaseURL, g.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(pdf))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/pdf")
	req.Header.Set("X-Goog-Upload-Protocol", "raw")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload returned %d: %s", resp.StatusCode, body)
	}

	var upload uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&upload); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if upload.File.URI == "" {
		return "", errors.New("upload response is missing the file uri")
	}

	return upload.File.URI, nil
}

func (g *GeminiExtractor) generateContent(ctx context.Context, fileURI string) (string, error) {
	payload := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: extractionPrompt},
				{FileData: &fileData{FileURI: fileURI, MimeType: "application/pdf"}},
			},
		}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   responseSchema,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.cfg.BaseURL, g.cfg.Model, g.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("generateContent returned %d: %s", resp.StatusCode, respBody)
	}

	var generated generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return "", fmt.Errorf("failed to decode generate response: %w", err)
	}
	if len(generated.Candidates) == 0 || len(generated.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("generate response has no candidates")
	}

	return generated.Candidates[0].Content.Parts[0].Text, nil
}
