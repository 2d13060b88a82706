// Package chat orchestrates conversation turns: dialogue generation, the two
// extraction passes, the merge into the business profile, and the switch into
// a scored country assessment when the user asks for one.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/langkah-ekspor/exporo/internal/assess"
	"github.com/langkah-ekspor/exporo/internal/extract"
	"github.com/langkah-ekspor/exporo/internal/merge"
	"github.com/langkah-ekspor/exporo/internal/model"
	"github.com/langkah-ekspor/exporo/pkg/anthropic"
)

const dialogueMaxTokens = 2000

// Analyzer runs a scored readiness assessment for one target country.
type Analyzer interface {
	Assess(ctx context.Context, p *model.BusinessProfile, country string, market assess.Market) (*assess.Result, error)
}

// ProfileSaver persists the merged profile after a turn. Saves are
// best-effort; a failure never rolls back the in-memory state.
type ProfileSaver interface {
	SaveProfile(ctx context.Context, userID string, p *model.BusinessProfile) error
}

// Engine processes conversation turns for a session.
type Engine struct {
	client      anthropic.Client
	model       string
	timeout     time.Duration
	profileEx   extract.Extractor
	readinessEx extract.Extractor
	analyzer    Analyzer
	saver       ProfileSaver
	catalog     *Catalog
}

// EngineOptions configures a new Engine. Client, Model, ProfileExtractor,
// ReadinessExtractor, and Analyzer are required; Saver and Catalog are
// optional (no persistence, embedded catalog).
type EngineOptions struct {
	Client             anthropic.Client
	Model              string
	Timeout            time.Duration
	ProfileExtractor   extract.Extractor
	ReadinessExtractor extract.Extractor
	Analyzer           Analyzer
	Saver              ProfileSaver
	Catalog            *Catalog
}

func NewEngine(opts EngineOptions) *Engine {
	catalog := opts.Catalog
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Engine{
		client:      opts.Client,
		model:       opts.Model,
		timeout:     opts.Timeout,
		profileEx:   opts.ProfileExtractor,
		readinessEx: opts.ReadinessExtractor,
		analyzer:    opts.Analyzer,
		saver:       opts.Saver,
		catalog:     catalog,
	}
}

// ProcessTurn handles one user message and returns the assistant reply. The
// session transcript and profile are updated in place.
func (e *Engine) ProcessTurn(ctx context.Context, sess *Session, userText string) (string, error) {
	sess.Append(model.RoleUser, userText)

	if requested, country := DetectAnalysisRequest(userText, sess.Profile, e.catalog); requested {
		reply := e.runAssessment(ctx, sess, country)
		sess.Append(model.RoleAssistant, reply)
		return reply, nil
	}

	reply := e.runDialogueTurn(ctx, sess)
	sess.Append(model.RoleAssistant, reply)
	return reply, nil
}

// runDialogueTurn executes dialogue generation and the two extractors
// concurrently. Fragments are merged only after all three calls return, so
// the profile is a single consistent snapshot per turn.
func (e *Engine) runDialogueTurn(ctx context.Context, sess *Session) string {
	var (
		reply             string
		dialogueErr       error
		profileFragment   map[string]any
		readinessFragment map[string]any
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		reply, dialogueErr = e.generateReply(gctx, sess)
		return nil
	})
	g.Go(func() error {
		fragment, err := e.profileEx.Extract(gctx, sess.Turns)
		if err != nil {
			zap.L().Warn("profile extraction failed", zap.String("session", sess.ID), zap.Error(err))
			fragment = map[string]any{}
		}
		profileFragment = fragment
		return nil
	})
	g.Go(func() error {
		fragment, err := e.readinessEx.Extract(gctx, sess.Turns)
		if err != nil {
			zap.L().Warn("readiness extraction failed", zap.String("session", sess.ID), zap.Error(err))
			fragment = map[string]any{}
		}
		readinessFragment = fragment
		return nil
	})
	_ = g.Wait() // closures always return nil

	merge.Apply(sess.Profile, profileFragment)
	merge.Apply(sess.Profile, readinessFragment)
	e.persist(sess)

	if dialogueErr != nil {
		zap.L().Error("dialogue generation failed", zap.String("session", sess.ID), zap.Error(dialogueErr))
		return "Maaf, terjadi kendala saat memproses pesan Anda. Silakan coba lagi dalam beberapa saat."
	}
	return reply
}

func (e *Engine) generateReply(ctx context.Context, sess *Session) (string, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	messages := make([]anthropic.Message, 0, len(sess.Turns))
	for _, t := range sess.Turns {
		messages = append(messages, anthropic.Message{Role: string(t.Role), Content: t.Text})
	}

	resp, err := e.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     e.model,
		MaxTokens: dialogueMaxTokens,
		System:    anthropic.BuildCachedSystemBlocks(SystemPrompt(sess.Profile)),
		Messages:  messages,
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// runAssessment handles a triggered readiness analysis. An empty country
// means the user has to pick one first.
func (e *Engine) runAssessment(ctx context.Context, sess *Session, country string) string {
	if country == "" {
		return e.clarificationReply()
	}

	info := e.catalog.Info(country)
	result, err := e.analyzer.Assess(ctx, sess.Profile, country,
		assess.Market{Difficulty: info.Difficulty, MarketSize: info.MarketSize})
	if err != nil {
		zap.L().Error("assessment failed", zap.String("session", sess.ID),
			zap.String("country", country), zap.Error(err))
		return fmt.Sprintf("❌ **Maaf, terjadi kesalahan saat menganalisis kesiapan ekspor ke %s.**\n\n💡 **Saran:** Coba lagi dalam beberapa saat.", country)
	}

	if result.Record != nil {
		merge.UpsertAssessment(sess.Profile, *result.Record)
		e.persist(sess)
	}
	return result.Reply
}

func (e *Engine) clarificationReply() string {
	var b strings.Builder
	b.WriteString("🤔 **Saya siap melakukan analisis kesiapan ekspor untuk Anda!**\n\n")
	b.WriteString("Namun, saya perlu tahu negara tujuan ekspor yang Anda inginkan. Berikut beberapa pilihan:\n\n")
	b.WriteString("🌏 **Negara yang Tersedia:**\n")
	for _, c := range e.catalog.Countries {
		fmt.Fprintf(&b, "• %s **%s** - Tingkat kesulitan: %s\n", c.Flag, c.Name, c.DifficultyLabel())
	}
	b.WriteString("\n💡 **Contoh perintah:**\n")
	b.WriteString("- \"Cek kesiapan ekspor ke Malaysia\"\n")
	b.WriteString("- \"Analisis ekspor ke Amerika Serikat\"\n")
	b.WriteString("- \"Siap ekspor ke Singapura tidak?\"\n\n")
	b.WriteString("Negara mana yang ingin Anda analisis?")
	return b.String()
}

func (e *Engine) persist(sess *Session) {
	if e.saver == nil || sess.UserID == "" {
		return
	}
	// Detached context: a slow store must not hold the reply hostage, and a
	// failed save never rolls back the in-memory merge.
	go func(snapshot *model.BusinessProfile) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.saver.SaveProfile(ctx, sess.UserID, snapshot); err != nil {
			zap.L().Warn("profile save failed", zap.String("user", sess.UserID), zap.Error(err))
		}
	}(sess.Profile.Clone())
}
