package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/velobooks/velobooks-backend/internal/domain"
)

// ErrMarketingNotConfigured is returned when no content generator is configured
var ErrMarketingNotConfigured = errors.New("marketing assistant not configured")

// MaxMarketingTopicLength bounds the free-form topic input
const MaxMarketingTopicLength = 500

// ContentGenerator produces text from a prompt
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// MarketingService drafts promotional copy for the workshop
type MarketingService struct {
	generator     ContentGenerator
	workspaceRepo domain.WorkspaceRepository
}

// NewMarketingService creates a new MarketingService. A nil generator disables
// the feature at runtime.
func NewMarketingService(generator ContentGenerator, workspaceRepo domain.WorkspaceRepository) *MarketingService {
	return &MarketingService{
		generator:     generator,
		workspaceRepo: workspaceRepo,
	}
}

// IsEnabled indicates whether a content generator is configured
func (s *MarketingService) IsEnabled() bool {
	return s != nil && s.generator != nil
}

// DraftPromotionInput holds the input for drafting promotional copy
type DraftPromotionInput struct {
	Topic    string
	Audience string
	Tone     string
}

// DraftPromotion generates a short promotional message for the workshop
func (s *MarketingService) DraftPromotion(ctx context.Context, workspaceID int32, input DraftPromotionInput) (string, error) {
	if !s.IsEnabled() {
		return "", ErrMarketingNotConfigured
	}

	topic := strings.TrimSpace(input.Topic)
	if topic == "" {
		return "", domain.ErrInvalidInput
	}
	if len(topic) > MaxMarketingTopicLength {
		return "", domain.ErrInvalidInput
	}

	workspace, err := s.workspaceRepo.GetByID(workspaceID)
	if err != nil {
		return "", err
	}

	audience := strings.TrimSpace(input.Audience)
	if audience == "" {
		audience = "local cyclists and commuters"
	}
	tone := strings.TrimSpace(input.Tone)
	if tone == "" {
		tone = "friendly"
	}

	prompt := fmt.Sprintf(`You write short marketing messages for a bicycle workshop named %q.

Write one %s promotional message (under 80 words, suitable for WhatsApp or SMS) aimed at %s about: %s

Return only the message text, no preamble.`, workspace.Name, tone, audience, topic)

	return s.generator.GenerateContent(ctx, prompt)
}
