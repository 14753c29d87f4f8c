package ai

import (
	"Explainer/core"
	"Explainer/lib/sl"
	"Explainer/storage"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

const msgEmptyCode = "Please enter some code to explain"

type Explainer struct {
	apiURL     string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	journal    storage.Journal
	log        *slog.Logger
	wg         sync.WaitGroup
}

// NewExplainer takes the credential and endpoint from conf, journal may be nil
func NewExplainer(conf *core.Config, log *slog.Logger, journal storage.Journal) *Explainer {
	apiURL := conf.ApiURL
	if apiURL == "" {
		apiURL = core.DefaultApiURL
	}
	timeout := conf.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Explainer{
		apiURL:  apiURL,
		apiKey:  conf.GroqApiKey,
		timeout: timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		journal: journal,
		log:     log.With(sl.Module("explainer")),
	}
}

func (e *Explainer) Models() []string {
	return SupportedModels()
}

func (e *Explainer) Levels() []string {
	return Levels()
}

// Explain returns the explanation of code for the audience level using model;
// empty level and model fall back to beginner and the default model
func (e *Explainer) Explain(ctx context.Context, code, level, model string) core.Outcome {
	if level == "" {
		level = LevelBeginner
	}
	if model == "" {
		model = DefaultModel()
	}

	start := time.Now()
	outcome := e.explain(ctx, code, level, model)
	took := time.Since(start)

	log := e.log.With(
		slog.String("model", model),
		slog.String("level", level),
		slog.Int("code", len(code)),
		slog.Duration("took", took),
	)
	if outcome.IsError() {
		log.With(slog.String("kind", string(outcome.Kind))).Warn("explanation failed")
		log.Debug("error details", slog.String("message", outcome.Message))
	} else {
		log.Info("explanation ready", slog.Int("length", len(outcome.Explanation)))
	}

	e.record(storage.NewEntry(model, level, string(outcome.Kind), len(code), took))
	return outcome
}

func (e *Explainer) explain(ctx context.Context, code, level, model string) core.Outcome {
	if strings.TrimSpace(code) == "" {
		return core.Failure(core.InvalidInput, msgEmptyCode)
	}
	if !IsSupportedModel(model) {
		return core.Failure(core.UnsupportedModel, fmt.Sprintf("Unsupported model %s", model))
	}
	systemPrompt, ok := SystemPrompt(level)
	if !ok {
		return core.Failure(core.InvalidInput, fmt.Sprintf("Unsupported expertise level %s", level))
	}

	content, err := e.complete(ctx, NewRequest(model, systemPrompt, code))
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			return core.Failure(core.ApiError, statusErr.Error())
		}
		return core.Failure(core.Unexpected, err.Error())
	}
	return core.Success(content)
}

// complete makes a single round trip to the chat-completions endpoint
func (e *Explainer) complete(ctx context.Context, request *ChatRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	jsonBytes, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("marshalling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.apiURL, bytes.NewReader(jsonBytes))
	if err != nil {
		return "", fmt.Errorf("making request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", e.apiKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("getting response: %w", err)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			e.log.Warn("closing response body", sl.Err(err))
		}
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var chatCompletion ChatCompletion
	if err := json.Unmarshal(body, &chatCompletion); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	e.log.With(
		slog.String("model", chatCompletion.Model),
		slog.Int("choices", len(chatCompletion.Choices)),
	).Debug("chat completion")

	return chatCompletion.Content()
}

// record writes the entry in the background, a slow journal never delays Explain
func (e *Explainer) record(entry storage.Entry) {
	if e.journal == nil {
		return
	}
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		if err := e.journal.Record(entry); err != nil {
			e.log.Error("recording journal entry", sl.Err(err))
		}
	}()
}

// Close waits for pending journal writes
func (e *Explainer) Close() {
	e.wg.Wait()
}
