package api

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
	"wrestling-coach/internal/config"
	"wrestling-coach/internal/domain"

	"github.com/valyala/fasthttp"
)

// GazetteClient posts committed dual results to a local news feed. A client
// built without a URL is disabled and every Publish is a no-op.
type GazetteClient struct {
	url    string
	client *fasthttp.Client

	statsMu sync.RWMutex
	stats   DeliveryStats
}

type DeliveryStats struct {
	Sent      int       `json:"sent"`
	Failed    int       `json:"failed"`
	LastError string    `json:"last_error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DualReport is the body of a gazette post, written from the acting
// program's side of the dual.
type DualReport struct {
	Program  string              `json:"program"`
	Kind     domain.DualKind     `json:"kind"`
	DualID   string              `json:"dual_id"`
	Opponent string              `json:"opponent"`
	Score    string              `json:"score"`
	Outcome  domain.Outcome      `json:"outcome"`
	Headline string              `json:"headline"`
	Stories  []domain.Story      `json:"stories"`
	Bouts    []domain.BoutRecord `json:"bouts"`
	PlayedAt time.Time           `json:"played_at"`
}

type publishResponse struct {
	Accepted bool   `json:"accepted"`
	ID       string `json:"id"`
}

func NewGazetteClient(cfg *config.Config) *GazetteClient {
	return &GazetteClient{
		url: cfg.GazetteURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     8,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (c *GazetteClient) Enabled() bool {
	return c != nil && c.url != ""
}

func (c *GazetteClient) Stats() DeliveryStats {
	c.statsMu.RLock()
	defer c.statsMu.RUnlock()
	return c.stats
}

func (c *GazetteClient) record(err error) {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	if err != nil {
		c.stats.Failed++
		c.stats.LastError = err.Error()
	} else {
		c.stats.Sent++
	}
	c.stats.UpdatedAt = time.Now()
}

func NewDualReport(program string, rec domain.DualRecord, outcome domain.Outcome, stories []domain.Story) DualReport {
	report := DualReport{
		Program:  program,
		Kind:     rec.Kind,
		DualID:   rec.ID,
		Opponent: rec.TeamB,
		Score:    fmt.Sprintf("%d-%d", rec.ScoreA, rec.ScoreB),
		Outcome:  outcome,
		Stories:  stories,
		Bouts:    rec.Bouts,
		PlayedAt: rec.PlayedAt,
	}
	if len(stories) > 0 {
		report.Headline = stories[0].Headline
	}
	return report
}

func (c *GazetteClient) Publish(ctx context.Context, report DualReport) error {
	if !c.Enabled() {
		return nil
	}
	_, err := doPost[publishResponse](ctx, c, c.url, report)
	c.record(err)
	if err != nil {
		return fmt.Errorf("failed to publish dual report: %w", err)
	}
	return nil
}

func doPost[T any](ctx context.Context, client *GazetteClient, url string, body any) (*T, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(payload)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	status := resp.StatusCode()
	if status != fasthttp.StatusOK && status != fasthttp.StatusCreated && status != fasthttp.StatusAccepted {
		return nil, fmt.Errorf("gazette error: %d", status)
	}

	var result T
	if len(resp.Body()) == 0 {
		return &result, nil
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
