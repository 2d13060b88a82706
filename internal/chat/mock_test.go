package chat

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/langkah-ekspor/exporo/internal/assess"
	"github.com/langkah-ekspor/exporo/internal/model"
	"github.com/langkah-ekspor/exporo/pkg/anthropic"
)

type mockAnthropicClient struct {
	mock.Mock
}

func (m *mockAnthropicClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.MessageResponse), args.Error(1)
}

type mockExtractor struct {
	mock.Mock
}

func (m *mockExtractor) Extract(ctx context.Context, turns []model.Turn) (map[string]any, error) {
	args := m.Called(ctx, turns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

type mockAnalyzer struct {
	mock.Mock
}

func (m *mockAnalyzer) Assess(ctx context.Context, p *model.BusinessProfile, country string, market assess.Market) (*assess.Result, error) {
	args := m.Called(ctx, p, country, market)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assess.Result), args.Error(1)
}

// mockSaver signals on saved so tests can wait out the detached save
// goroutine.
type mockSaver struct {
	saved chan *model.BusinessProfile
	err   error
}

func newMockSaver() *mockSaver {
	return &mockSaver{saved: make(chan *model.BusinessProfile, 4)}
}

func (m *mockSaver) SaveProfile(ctx context.Context, userID string, p *model.BusinessProfile) error {
	m.saved <- p
	return m.err
}

func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{Content: []anthropic.ContentBlock{{Type: "text", Text: text}}}
}
