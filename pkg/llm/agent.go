package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/sync/singleflight"

	"github.com/umputun/feedguard/pkg/config"
	"github.com/umputun/feedguard/pkg/domain"
)

var (
	// ErrRetriesExhausted returned when the model didn't produce a valid verdict within the retry budget
	ErrRetriesExhausted = errors.New("classification retries exhausted")
	// ErrTransport returned when the model request itself failed
	ErrTransport = errors.New("model request failed")
)

const previewToolName = "get_article_preview"

// default system prompt for entry classification
const defaultSystemPrompt = `Return true if the entry contains any of the specified content types. Return the types.
Check the article preview with the get_article_preview tool if you are not sure by the title.

Answer with a JSON object only: {"contains": boolean, "types": [matched content types]}.
Types must be taken from the specified content types. If nothing matches answer {"contains": false, "types": []}.`

//go:generate moq -out mocks/previewer.go -pkg mocks -skip-ensure -fmt goimports . Previewer

// Previewer makes a plain-text preview of an entry, fetching the article with the given client if needed
type Previewer interface {
	Preview(ctx context.Context, entry domain.Entry, client *http.Client) string
}

// Agent classifies feed entries against requested content types with LLM.
// The model gets entry title only and can request article preview via tool call.
// Verdicts are cached by entry title, link and requested types.
type Agent struct {
	client        *openai.Client
	config        config.LLMConfig
	systemMsg     string
	cache         *VerdictCache
	previewer     Previewer
	newHTTPClient func() *http.Client
	flight        *singleflight.Group // nil if concurrent misses are not collapsed
	retryDelay    time.Duration
}

// AgentParams holds dependencies and settings for Agent
type AgentParams struct {
	Config       config.LLMConfig
	CacheSize    int
	SingleFlight bool
	Previewer    Previewer
	HTTPClient   func() *http.Client // makes client for article fetches, called once per classification
}

// toolContext is created for a single classification call and never shared
type toolContext struct {
	entry  domain.Entry
	client *http.Client
}

// NewAgent creates a new classification agent
func NewAgent(params AgentParams) (*Agent, error) {
	if params.Previewer == nil {
		return nil, errors.New("previewer is required")
	}

	cache, err := NewVerdictCache(params.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("make verdict cache: %w", err)
	}

	cfg := params.Config
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	// use custom system prompt if provided, otherwise use default
	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}

	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if cfg.MaxToolRounds < 1 {
		cfg.MaxToolRounds = 5
	}
	if cfg.TransportRetries < 1 {
		cfg.TransportRetries = 1
	}

	newHTTPClient := params.HTTPClient
	if newHTTPClient == nil {
		newHTTPClient = func() *http.Client { return &http.Client{Timeout: 10 * time.Second} }
	}

	res := &Agent{
		client:        openai.NewClientWithConfig(clientConfig),
		config:        cfg,
		systemMsg:     systemMsg,
		cache:         cache,
		previewer:     params.Previewer,
		newHTTPClient: newHTTPClient,
		retryDelay:    500 * time.Millisecond,
	}
	if params.SingleFlight {
		res.flight = &singleflight.Group{}
	}
	return res, nil
}

// CheckEntry checks if the entry contains any of contentTypes. Cached verdict is returned without model call.
// Returned error wraps ErrRetriesExhausted or ErrTransport, nothing is cached in this case.
func (a *Agent) CheckEntry(ctx context.Context, entry domain.Entry, contentTypes []string) (domain.Verdict, error) {
	key := cacheKey(entry, contentTypes)
	if v, ok := a.cache.Get(key); ok {
		lgr.Printf("[DEBUG] cached verdict for %q: %+v", entry.Title, v)
		return v, nil
	}

	if a.flight == nil {
		return a.classifyAndStore(ctx, key, entry, contentTypes)
	}

	res, err, shared := a.flight.Do(key, func() (any, error) {
		// a flight for the same key may have just finished
		if v, ok := a.cache.Get(key); ok {
			return v, nil
		}
		return a.classifyAndStore(ctx, key, entry, contentTypes)
	})
	if err != nil {
		return domain.Verdict{}, err
	}
	if shared {
		lgr.Printf("[DEBUG] shared verdict for %q", entry.Title)
	}
	return res.(domain.Verdict).Clone(), nil
}

func (a *Agent) classifyAndStore(ctx context.Context, key string, entry domain.Entry, contentTypes []string) (domain.Verdict, error) {
	verdict, err := a.classify(ctx, entry, contentTypes)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("classify %q: %w", entry.Title, err)
	}
	a.cache.Put(key, verdict)
	lgr.Printf("[DEBUG] classified %q as %+v", entry.Title, verdict)
	return verdict, nil
}

// classify runs the model loop. Tool call rounds are not counted as attempts, an attempt is a final answer.
// Invalid answers are sent back to the model with the error until retries are exhausted.
func (a *Agent) classify(ctx context.Context, entry domain.Entry, contentTypes []string) (domain.Verdict, error) {
	tc := toolContext{entry: entry, client: a.newHTTPClient()}
	defer tc.client.CloseIdleConnections()

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: a.systemMsg},
		{Role: openai.ChatMessageRoleUser, Content: userPrompt(entry, contentTypes)},
	}

	toolRounds := 0
	var lastErr error
	for attempt := 0; attempt <= a.config.Retries; {
		resp, err := a.complete(ctx, a.request(messages, toolRounds >= a.config.MaxToolRounds))
		if err != nil {
			return domain.Verdict{}, fmt.Errorf("%w: %w", ErrTransport, err)
		}

		if len(resp.Choices) == 0 {
			lastErr = errors.New("no choices in response")
			attempt++
			messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: retryPrompt(lastErr)})
			continue
		}

		msg := resp.Choices[0].Message
		if len(msg.ToolCalls) > 0 && toolRounds < a.config.MaxToolRounds {
			toolRounds++
			messages = append(messages, msg)
			for _, call := range msg.ToolCalls {
				messages = append(messages, a.callTool(ctx, tc, call))
			}
			continue
		}

		verdict, err := parseVerdict(msg.Content, contentTypes)
		if err != nil {
			lastErr = err
			attempt++
			lgr.Printf("[DEBUG] invalid answer for %q, attempt %d: %v", entry.Title, attempt, err)
			messages = append(messages,
				openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: msg.Content},
				openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: retryPrompt(err)},
			)
			continue
		}
		return verdict, nil
	}

	return domain.Verdict{}, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, a.config.Retries+1, lastErr)
}

// request makes chat completion request for the current conversation
func (a *Agent) request(messages []openai.ChatCompletionMessage, noTools bool) openai.ChatCompletionRequest {
	req := openai.ChatCompletionRequest{
		Model:       a.config.Model,
		Temperature: float32(a.config.Temperature),
		MaxTokens:   a.config.MaxTokens,
		Messages:    messages,
		Tools:       []openai.Tool{previewTool},
	}
	if noTools {
		req.ToolChoice = "none"
	}

	switch a.config.ResponseFormat {
	case config.FormatJSONSchema:
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "verdict",
				Schema: outputSchema(),
			},
		}
	case config.FormatJSONObject:
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}
	return req
}

// complete sends the request, retrying transient failures. Client errors other than rate limit are not retried.
func (a *Agent) complete(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var resp openai.ChatCompletionResponse
	var permanentErr error
	retrier := repeater.NewBackoff(a.config.TransportRetries, a.retryDelay, repeater.WithMaxDelay(5*time.Second))
	err := retrier.Do(ctx, func() error {
		reqCtx, reqCancel := ctx, context.CancelFunc(func() {})
		if a.config.Timeout > 0 {
			reqCtx, reqCancel = context.WithTimeout(ctx, a.config.Timeout)
		}
		defer reqCancel()

		var err error
		resp, err = a.client.CreateChatCompletion(reqCtx, req)
		if err != nil && !isRetryable(err) {
			permanentErr = err
			cancel() // stops the repeater
		}
		return err
	})
	if permanentErr != nil {
		return openai.ChatCompletionResponse{}, permanentErr
	}
	if err != nil {
		return openai.ChatCompletionResponse{}, err
	}
	return resp, nil
}

// callTool executes model's tool call within the call context
func (a *Agent) callTool(ctx context.Context, tc toolContext, call openai.ToolCall) openai.ChatCompletionMessage {
	res := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleTool, ToolCallID: call.ID}
	if call.Function.Name != previewToolName {
		lgr.Printf("[DEBUG] unknown tool %q requested for %q", call.Function.Name, tc.entry.Title)
		res.Content = fmt.Sprintf("unknown tool %q, the only available tool is %s", call.Function.Name, previewToolName)
		return res
	}

	lgr.Printf("[DEBUG] preview requested for %q", tc.entry.Title)
	res.Content = a.previewer.Preview(ctx, tc.entry, tc.client)
	if res.Content == "" {
		res.Content = "article preview is not available, decide by the title"
	}
	return res
}

var previewTool = openai.Tool{
	Type: openai.ToolTypeFunction,
	Function: &openai.FunctionDefinition{
		Name:        previewToolName,
		Description: "Get a plain-text preview of the entry article. Use it if the title is not enough to decide.",
		Parameters:  json.RawMessage(`{"type":"object","properties":{}}`),
	},
}

func userPrompt(entry domain.Entry, contentTypes []string) string {
	return fmt.Sprintf("Content types: %s.\nEntry title: %s", typesList(contentTypes), entry.Title)
}

func retryPrompt(err error) string {
	return fmt.Sprintf("Invalid answer: %v. Answer again with a JSON object only: "+
		`{"contains": boolean, "types": [matched content types from the specified list]}.`, err)
}

// isRetryable checks if the model request error is worth retrying
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}
	if status == 0 {
		return true // network error
	}
	return status == http.StatusTooManyRequests || status >= 500
}
