// Package cloudinary implements the signed image upload used to publish
// rendered charts. Transport layer only: rate limiting, circuit breaking,
// retries and logging live here; what gets uploaded is the caller's business.
package cloudinary

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"expense-reports/internal/infra/log"
	"expense-reports/internal/infra/retry"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// uploadAPIBase is the Cloudinary upload endpoint root; the cloud name is
// appended per account.
const uploadAPIBase = "https://api.cloudinary.com/v1_1"

// Client talks to the Cloudinary upload API for one account.
type Client struct {
	baseURL         string
	httpClient      *http.Client
	apiKey          string
	apiSecret       string
	rateLimiter     *rate.Limiter
	circuitBreaker  *gobreaker.CircuitBreaker
	maxResponseSize int64
	retryOpts       retry.Options

	// Injected for deterministic tests.
	now         func() time.Time
	newPublicID func() string
}

// NewClient builds a client for the given account. requestTimeout is in
// seconds; maxRetries bounds the retry loop on 429/5xx.
func NewClient(cloudName, apiKey, apiSecret string, requestTimeout, maxRetries int) *Client {
	if requestTimeout <= 0 {
		requestTimeout = 30
	}

	circuitBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "CloudinaryAPI",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	return &Client{
		baseURL:        fmt.Sprintf("%s/%s", uploadAPIBase, cloudName),
		apiKey:         apiKey,
		apiSecret:      apiSecret,
		rateLimiter:    rate.NewLimiter(rate.Limit(5), 10),
		circuitBreaker: circuitBreaker,
		retryOpts: retry.Options{
			MaxRetries: maxRetries,
			BaseDelay:  300 * time.Millisecond,
			MaxDelay:   5 * time.Second,
			Backoff:    2.0,
		},
		maxResponseSize: 10 * 1024 * 1024,
		httpClient: &http.Client{
			Timeout: time.Duration(requestTimeout) * time.Second,
			Transport: &http.Transport{
				DisableKeepAlives: false,
				MaxIdleConns:      10,
				IdleConnTimeout:   90 * time.Second,
			},
		},
		now:         time.Now,
		newPublicID: uuid.NewString,
	}
}

// SetBaseURL points the client at a different endpoint (test servers).
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// SetMaxResponseSize overrides the response size cap.
func (c *Client) SetMaxResponseSize(n int64) {
	if n > 0 {
		c.maxResponseSize = n
	}
}

// uploadResponse holds the part of the API answer we act on.
type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// Upload posts the image at filePath into folder and returns its public
// secure URL. Retries on 429/5xx; a missing secure_url in an otherwise
// successful response is an error, never an empty result.
func (c *Client) Upload(ctx context.Context, filePath, folder string) (string, error) {
	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read image file: %w", err)
	}

	params := map[string]string{
		"timestamp": strconv.FormatInt(c.now().Unix(), 10),
		"public_id": c.newPublicID(),
	}
	if folder != "" {
		params["folder"] = folder
	}

	body, contentType, err := c.buildUploadBody(filepath.Base(filePath), fileData, params)
	if err != nil {
		return "", err
	}

	endpoint := c.baseURL + "/image/upload"
	requestID := log.GenerateRequestID()
	startTime := c.now()
	log.LogRequest(requestID, http.MethodPost, endpoint,
		zap.String("folder", folder),
		zap.Int("file_size", len(fileData)))

	var respBody []byte
	err = retry.Do(ctx, c.retryOpts, func() error {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return err
		}

		result, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doUpload(ctx, endpoint, contentType, body)
		})
		if err != nil {
			return err
		}
		respBody = result.([]byte)
		return nil
	})

	durationMs := time.Since(startTime).Milliseconds()
	if err != nil {
		var he *retry.HTTPError
		status := 0
		if errors.As(err, &he) {
			status = he.StatusCode
		}
		log.LogResponse(requestID, status, durationMs, zap.Error(err))
		return "", fmt.Errorf("upload failed: %w", err)
	}
	log.LogResponse(requestID, http.StatusOK, durationMs)

	var parsed uploadResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if parsed.SecureURL == "" {
		return "", fmt.Errorf("upload response carried no secure_url")
	}

	log.RequestLogger(requestID).Info("Image uploaded",
		zap.String("public_id", parsed.PublicID),
		zap.String("secure_url", parsed.SecureURL))
	return parsed.SecureURL, nil
}

func (c *Client) doUpload(ctx context.Context, endpoint, contentType string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseSize))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Body:       respBody,
			RetryAfter: retry.ParseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}
	return respBody, nil
}

// buildUploadBody assembles the multipart form: the signed params, the
// api_key, the signature and finally the file itself.
func (c *Client) buildUploadBody(filename string, fileData []byte, params map[string]string) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for key, value := range params {
		if err := w.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", key, err)
		}
	}
	if err := w.WriteField("api_key", c.apiKey); err != nil {
		return nil, "", fmt.Errorf("failed to write api_key field: %w", err)
	}
	if err := w.WriteField("signature", SignParams(params, c.apiSecret)); err != nil {
		return nil, "", fmt.Errorf("failed to write signature field: %w", err)
	}

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(fileData); err != nil {
		return nil, "", fmt.Errorf("failed to write file part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// SignParams computes the Cloudinary request signature: the params sorted by
// key, serialized as k=v pairs joined with &, with the API secret appended,
// hashed with SHA-1.
func SignParams(params map[string]string, apiSecret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var toSign bytes.Buffer
	for i, k := range keys {
		if i > 0 {
			toSign.WriteByte('&')
		}
		toSign.WriteString(k)
		toSign.WriteByte('=')
		toSign.WriteString(params[k])
	}
	toSign.WriteString(apiSecret)

	sum := sha1.Sum(toSign.Bytes())
	return hex.EncodeToString(sum[:])
}
