package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/studyweave/studyweave-backend/internal/domain"
	"github.com/studyweave/studyweave-backend/internal/platform/logger"
)

const maxErrorBodyBytes = 1024

// Record is the raw shape of a catalog content item. The resolver normalizes
// it into a domain.ContentRecord; nothing here is ever persisted locally.
type Record struct {
	ID               string `json:"_id"`
	HrUID            string `json:"hruid"`
	Language         string `json:"language"`
	Version          int    `json:"version"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	TeacherExclusive bool   `json:"teacher_exclusive"`
	Available        bool   `json:"available"`
}

// NodeDescriptor is one entry of an externally hosted path, exposed read-only.
type NodeDescriptor struct {
	HrUID     string `json:"learningobject_hruid"`
	Language  string `json:"language"`
	Version   int    `json:"version"`
	StartNode bool   `json:"start_node"`
}

// Client is the network accessor for the third-party catalog. Every call is
// attempted exactly once; the caller decides about retries.
type Client interface {
	GetByID(ctx context.Context, id string) (*Record, error)
	GetByTriple(ctx context.Context, hruid, language string, version int) (*Record, error)
	ListForPathID(ctx context.Context, pathID string) ([]NodeDescriptor, error)
}

type client struct {
	log     *logger.Logger
	cfg     Config
	baseURL string
	http    *http.Client
}

func NewClient(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return &client{
		log:     log.With("client", "CatalogClient"),
		cfg:     cfg,
		baseURL: strings.TrimRight(cfg.URL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (c *client) GetByID(ctx context.Context, id string) (*Record, error) {
	const op = "catalog.GetByID"
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.InvalidReference(op, "empty catalog id")
	}
	var rec Record
	if err := c.doJSON(ctx, op, "/learningObject/"+url.PathEscape(id), nil, &rec); err != nil {
		return nil, err
	}
	if rec.HrUID == "" {
		return nil, domain.NotFound(op, "catalog returned an empty record for id "+id)
	}
	return &rec, nil
}

func (c *client) GetByTriple(ctx context.Context, hruid, language string, version int) (*Record, error) {
	const op = "catalog.GetByTriple"
	q := url.Values{}
	q.Set("hruid", strings.TrimSpace(hruid))
	q.Set("language", strings.TrimSpace(language))
	q.Set("version", strconv.Itoa(version))
	var rec Record
	if err := c.doJSON(ctx, op, "/learningObject/getWrapped", q, &rec); err != nil {
		return nil, err
	}
	if rec.HrUID == "" {
		return nil, domain.NotFound(op, fmt.Sprintf("catalog returned an empty record for %s/%s/%d", hruid, language, version))
	}
	return &rec, nil
}

func (c *client) ListForPathID(ctx context.Context, pathID string) ([]NodeDescriptor, error) {
	const op = "catalog.ListForPathID"
	pathID = strings.TrimSpace(pathID)
	if pathID == "" {
		return nil, domain.InvalidReference(op, "empty catalog path id")
	}
	var out struct {
		Nodes []NodeDescriptor `json:"nodes"`
	}
	if err := c.doJSON(ctx, op, "/learningPath/"+url.PathEscape(pathID), nil, &out); err != nil {
		return nil, err
	}
	return out.Nodes, nil
}

func (c *client) doJSON(ctx context.Context, op, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return domain.Network(op, "build catalog request failed", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyCallError(op, err)
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 10*maxErrorBodyBytes))
	if readErr != nil {
		return domain.Network(op, "read catalog response failed", readErr)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.NotFound(op, "catalog has no record at "+path)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return domain.Network(
			op,
			fmt.Sprintf("catalog http status=%d body=%q", resp.StatusCode, truncateBody(raw)),
			nil,
		)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return domain.Network(op, "decode catalog response failed", err)
	}
	return nil
}

func classifyCallError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.Network(op, "catalog request timed out", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.Network(op, "catalog request timed out", err)
	}
	return domain.Network(op, "catalog request failed", err)
}

func truncateBody(raw []byte) string {
	if len(raw) <= maxErrorBodyBytes {
		return string(raw)
	}
	return string(raw[:maxErrorBodyBytes]) + "…(truncated)"
}
