package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/clausedesk/clausedesk-backend/internal/logger"
	"github.com/clausedesk/clausedesk-backend/internal/utils"
)

// OCRClient talks to the OCR bridge service used to pull text out of scanned
// contract documents (PDF or image).
type OCRClient interface {
	Health(ctx context.Context) error
	ExtractText(ctx context.Context, filename string, content io.Reader) (*OCRResult, error)
}

type OCRResult struct {
	Text  string   `json:"text"`
	Lines []string `json:"lines"`
}

type ocrClient struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
}

func NewOCRClient(log *logger.Logger) OCRClient {
	serviceLog := log.With("service", "OCRClient")
	baseURL := utils.GetEnv("OCR_BRIDGE_URL", "http://localhost:8500", log)
	timeoutSec := utils.GetEnvAsInt("OCR_TIMEOUT_SECONDS", 300, log)
	return &ocrClient{
		log:        serviceLog,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}
}

func (c *ocrClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ocr bridge unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ocr bridge unhealthy: http %d", resp.StatusCode)
	}
	return nil
}

type ocrResponse struct {
	Text    string `json:"text"`
	Results []struct {
		Text       string  `json:"text"`
		Confidence float64 `json:"confidence"`
	} `json:"results"`
}

func (c *ocrClient) ExtractText(ctx context.Context, filename string, content io.Reader) (*OCRResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ocr", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ocr request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ocr bridge http %d: %s", resp.StatusCode, string(raw))
	}

	var parsed ocrResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("ocr decode error: %w", err)
	}

	out := &OCRResult{Text: parsed.Text}
	for _, r := range parsed.Results {
		out.Lines = append(out.Lines, r.Text)
	}
	return out, nil
}
