package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/set-night/endoally/internal/domain"
	"github.com/set-night/endoally/internal/profile"
	"google.golang.org/genai"
)

// GeminiRemote opens chat sessions on the Gemini API.
type GeminiRemote struct {
	client *genai.Client
}

func NewGeminiRemote(ctx context.Context, apiKey, baseURL string, timeout time.Duration) (*GeminiRemote, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	cc := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiRemote{client: client}, nil
}

func (g *GeminiRemote) CreateSession(ctx context.Context, p *profile.Profile, thinking bool) (RemoteSession, error) {
	model := p.Model(thinking)
	chat, err := g.client.Chats.Create(ctx, model.Name, GenerateConfig(p, thinking), nil)
	if err != nil {
		return nil, fmt.Errorf("create chat: %w", err)
	}
	return &geminiSession{chat: chat}, nil
}

// GenerateConfig builds the per-session generation settings for a profile.
func GenerateConfig(p *profile.Profile, thinking bool) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(p.Instruction(thinking), genai.RoleUser),
	}

	if len(p.Tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, 0, len(p.Tools))
		for _, t := range p.Tools {
			decls = append(decls, &genai.FunctionDeclaration{
				Name:        t.Name,
				Description: t.Description,
			})
		}
		cfg.Tools = append(cfg.Tools, &genai.Tool{FunctionDeclarations: decls})
	}
	if p.GoogleSearch {
		cfg.Tools = append(cfg.Tools, &genai.Tool{GoogleSearch: &genai.GoogleSearch{}})
	}

	if budget := p.Model(thinking).ThinkingBudget; thinking && budget > 0 {
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(budget)}
	}
	return cfg
}

type geminiSession struct {
	chat *genai.Chat
}

func (s *geminiSession) Send(ctx context.Context, content domain.Content) (*domain.Reply, error) {
	resp, err := s.chat.Send(ctx, ContentParts(content)...)
	if err != nil {
		return nil, fmt.Errorf("gemini send: %w", err)
	}
	return ReplyFromResponse(resp), nil
}

// ContentParts converts outgoing content into request parts.
func ContentParts(content domain.Content) []*genai.Part {
	if len(content.Results) == 0 {
		return []*genai.Part{genai.NewPartFromText(content.Text)}
	}
	parts := make([]*genai.Part, 0, len(content.Results))
	for _, r := range content.Results {
		response := make(map[string]any, len(r.Payload))
		for k, v := range r.Payload {
			response[k] = v
		}
		parts = append(parts, genai.NewPartFromFunctionResponse(r.Name, response))
	}
	return parts
}

// ReplyFromResponse extracts text, tool calls, grounding and usage from the
// first candidate.
func ReplyFromResponse(resp *genai.GenerateContentResponse) *domain.Reply {
	reply := &domain.Reply{}
	if resp == nil {
		return reply
	}

	reply.Text = resp.Text()
	for _, fc := range resp.FunctionCalls() {
		reply.ToolCalls = append(reply.ToolCalls, domain.FunctionCallRequest{Name: fc.Name})
	}

	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		reply.Grounding = groundingFromGenAI(resp.Candidates[0].GroundingMetadata)
	}

	if u := resp.UsageMetadata; u != nil {
		reply.Usage = domain.Usage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount + u.ThoughtsTokenCount),
		}
	}
	return reply
}

func groundingFromGenAI(meta *genai.GroundingMetadata) *domain.GroundingMetadata {
	out := &domain.GroundingMetadata{}
	if meta.GroundingChunks == nil {
		return out
	}
	out.Chunks = make([]domain.GroundingChunk, 0, len(meta.GroundingChunks))
	for _, chunk := range meta.GroundingChunks {
		var gc domain.GroundingChunk
		if chunk != nil && chunk.Web != nil {
			gc.Web = &domain.WebSource{
				URI:   optional(chunk.Web.URI),
				Title: optional(chunk.Web.Title),
			}
		}
		out.Chunks = append(out.Chunks, gc)
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
