package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dtechsoftwares/ecclesiapro/internal/config"
	"github.com/dtechsoftwares/ecclesiapro/internal/domain"
	"github.com/dtechsoftwares/ecclesiapro/internal/events"
)

// Fixed fallbacks returned on any drafting failure. The service never
// retries; a new user action is required.
const (
	insightFallback = "Unable to generate insight at this time."
	draftFallback   = "Error drafting message."
	missingKeyNote  = "API Key is missing. AI features unavailable."
)

// InsightService is a thin proxy over a Gemini-style text generation API
// used to draft congregation messages and dashboard insights.
type InsightService struct {
	cfg        config.InsightConfig
	client     *http.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewInsightService builds the proxy.
func NewInsightService(cfg config.InsightConfig, dispatcher events.Dispatcher, logger *zap.Logger) *InsightService {
	return &InsightService{
		cfg:        cfg,
		client:     &http.Client{Timeout: cfg.Timeout()},
		dispatcher: dispatcher,
		logger:     logger,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// GenerateInsight asks the model to analyze the given context for the admin
// dashboard. Failures collapse to a fixed fallback string.
func (s *InsightService) GenerateInsight(ctx context.Context, actor *domain.Identity, prompt, contextData, ip string) string {
	if s.cfg.APIKey == "" {
		return missingKeyNote
	}

	fullPrompt := fmt.Sprintf(
		"You are an intelligent assistant for a Church Management System.\n"+
			"Context Data: %s\n\nUser Request: %s\n\n"+
			"Provide a professional, encouraging, and concise response suitable for church administration. "+
			"If analyzing data, provide trends and actionable insights.",
		contextData, prompt)

	text, err := s.generate(ctx, fullPrompt)
	if err != nil {
		s.logger.Warn("insight generation failed", zap.Error(err))
		return insightFallback
	}

	s.publish(ctx, actor, ip, "AI insight generated")
	return text
}

// DraftMessage asks the model for a short SMS for the given audience and
// topic. Failures collapse to a fixed fallback string.
func (s *InsightService) DraftMessage(ctx context.Context, actor *domain.Identity, topic, audience, ip string) string {
	if s.cfg.APIKey == "" {
		return missingKeyNote
	}

	prompt := fmt.Sprintf(
		"Draft a short, warm, and professional SMS message (under 160 characters if possible, max 200) "+
			"for a church to send to %s. Topic: %s. "+
			"Do not include placeholders like [Name], make it generic but personal.",
		audience, topic)

	text, err := s.generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("message drafting failed", zap.Error(err))
		return draftFallback
	}

	s.publish(ctx, actor, ip, fmt.Sprintf("Drafted message for %s", audience))
	return text
}

func (s *InsightService) generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.cfg.Endpoint, s.cfg.Model, s.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation endpoint returned %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty generation response")
	}

	text := decoded.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", fmt.Errorf("empty generation text")
	}
	return text, nil
}

func (s *InsightService) publish(ctx context.Context, actor *domain.Identity, ip, detail string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventInsightGenerated,
		Actor:     events.Actor{Identity: actor, IPAddress: ip},
		Timestamp: time.Now().UTC(),
		Payload:   events.SystemPayload{Detail: detail},
	})
}
