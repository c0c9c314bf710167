package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

// HTTPClient lets tests stub the inference transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Strategy is one candidate way to produce a reply. Attempt returns an
// explicit error for any unusable result so the caller can fall through to
// the next strategy in order.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, input string) (string, error)
}

// AssistantConfig carries the remote inference settings. The bearer token is
// sourced from the environment at startup, never from checked-in constants.
type AssistantConfig struct {
	Endpoint      string
	Model         string
	FallbackModel string
	Token         string
}

const (
	defaultInferenceEndpoint = "https://api-inference.huggingface.co"
	defaultChatModel         = "facebook/blenderbot-400M-distill"
	defaultFallbackModel     = "google/flan-t5-large"

	// Trimmed answers shorter than this count as low-quality and trigger
	// fallthrough, same as a failed call.
	minAnswerLen = 10

	loadingRetryDelay = 15 * time.Second
)

// AssistantService resolves chat replies and summary narratives through an
// ordered strategy list: primary model, fallback model, then a deterministic
// responder that cannot fail.
type AssistantService struct {
	cfg    AssistantConfig
	client HTTPClient
	delay  func(time.Duration)
	pick   func(n int) int
}

func NewAssistantService(cfg AssistantConfig, client HTTPClient) *AssistantService {
	if client == nil {
		client = http.DefaultClient
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultInferenceEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = defaultChatModel
	}
	if cfg.FallbackModel == "" {
		cfg.FallbackModel = defaultFallbackModel
	}
	return &AssistantService{
		cfg:    cfg,
		client: client,
		delay:  time.Sleep,
		pick:   rand.Intn,
	}
}

// Chat resolves a reply for one user utterance. It never fails outward: the
// rule-based responder terminates the pipeline unconditionally.
func (s *AssistantService) Chat(ctx context.Context, message string) string {
	message = strings.TrimSpace(message)
	for _, st := range s.chatStrategies() {
		reply, err := st.Attempt(ctx, message)
		if err == nil {
			return reply
		}
		log.Printf("assistant: %s: %v", st.Name(), err)
	}
	// unreachable: the rule responder always succeeds
	return ""
}

func (s *AssistantService) chatStrategies() []Strategy {
	return []Strategy{
		&modelStrategy{
			client:         s.client,
			endpoint:       s.cfg.Endpoint,
			model:          s.cfg.Model,
			token:          s.cfg.Token,
			buildPrompt:    chatPrompt,
			maxLength:      200,
			doSample:       true,
			retryOnLoading: true,
			delay:          s.delay,
		},
		&modelStrategy{
			client:      s.client,
			endpoint:    s.cfg.Endpoint,
			model:       s.cfg.FallbackModel,
			token:       s.cfg.Token,
			buildPrompt: chatFallbackPrompt,
			maxLength:   200,
		},
		&ruleResponder{pick: s.pick},
	}
}

// SummaryNarrative produces the analytical narrative for the aggregate view.
// Both remote strategies receive a digest of the statistics; when both fail
// the templated sentence built from the statistics terminates the pipeline.
func (s *AssistantService) SummaryNarrative(ctx context.Context, sum *Summary) string {
	digest := summaryPrompt(sum)
	passthrough := func(in string) string { return in }
	strategies := []Strategy{
		&modelStrategy{
			client:         s.client,
			endpoint:       s.cfg.Endpoint,
			model:          s.cfg.Model,
			token:          s.cfg.Token,
			buildPrompt:    passthrough,
			maxLength:      500,
			doSample:       true,
			retryOnLoading: true,
			delay:          s.delay,
		},
		&modelStrategy{
			client:      s.client,
			endpoint:    s.cfg.Endpoint,
			model:       s.cfg.FallbackModel,
			token:       s.cfg.Token,
			buildPrompt: passthrough,
			maxLength:   500,
		},
	}
	for _, st := range strategies {
		text, err := st.Attempt(ctx, digest)
		if err == nil {
			return text
		}
		log.Printf("assistant: summary %s: %v", st.Name(), err)
	}
	return templatedSummary(sum)
}

// modelStrategy posts a prompt to a hosted text-generation model.
type modelStrategy struct {
	client         HTTPClient
	endpoint       string
	model          string
	token          string
	buildPrompt    func(input string) string
	maxLength      int
	doSample       bool
	retryOnLoading bool
	delay          func(time.Duration)
}

func (m *modelStrategy) Name() string { return "model " + m.model }

func (m *modelStrategy) Attempt(ctx context.Context, input string) (string, error) {
	prompt := m.buildPrompt(input)
	retried := false
	for {
		answer, loading, err := m.call(ctx, prompt)
		if err != nil {
			// A model still warming up gets exactly one delayed retry.
			if loading && m.retryOnLoading && !retried {
				retried = true
				m.delay(loadingRetryDelay)
				continue
			}
			return "", err
		}
		answer = strings.TrimSpace(strings.ReplaceAll(answer, prompt, ""))
		if len(answer) < minAnswerLen {
			return "", NewBadGatewayError("low-quality answer from " + m.model)
		}
		return answer, nil
	}
}

func (m *modelStrategy) call(ctx context.Context, prompt string) (answer string, loading bool, err error) {
	payload := map[string]any{
		"inputs": prompt,
		"parameters": map[string]any{
			"max_length":       m.maxLength,
			"temperature":      0.7,
			"return_full_text": false,
			"do_sample":        m.doSample,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", false, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint+"/models/"+m.model, bytes.NewReader(body))
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Content-Type", "application/json")
	if m.token != "" {
		req.Header.Set("Authorization", "Bearer "+m.token)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return "", false, NewBadGatewayError(err.Error())
	}
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false, NewBadGatewayError(err.Error())
	}
	if resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &apiErr)
		msg := apiErr.Error
		if msg == "" {
			msg = resp.Status
		}
		return "", strings.Contains(strings.ToLower(apiErr.Error), "loading"), NewBadGatewayError(msg)
	}
	return decodeGeneratedText(raw), false, nil
}

// decodeGeneratedText accepts the three documented response shapes: an array
// whose first element carries generated_text, an object with a top-level
// generated_text, or a bare string. Anything else decodes to empty.
func decodeGeneratedText(raw []byte) string {
	var arr []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(raw, &arr); err == nil && len(arr) > 0 {
		return arr[0].GeneratedText
	}
	var obj struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.GeneratedText != "" {
		return obj.GeneratedText
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}

func chatPrompt(message string) string {
	return "You are a helpful and friendly assistant for Sightshare, a volunteer organization. You help volunteers with questions about volunteering, surveys, and the organization. Keep responses conversational, warm, and concise. All surveys are anonymous. User: " + message + " Assistant:"
}

func chatFallbackPrompt(message string) string {
	return "You are a helpful assistant for Sightshare, a volunteer organization. Answer this question about volunteering or surveys in a friendly, concise way: " + message
}

func summaryPrompt(sum *Summary) string {
	top := TopTasks(sum.TaskFrequency, 5)
	parts := make([]string, 0, len(top))
	for _, t := range top {
		parts = append(parts, fmt.Sprintf("%s (%d)", TaskLabel(t.Key), t.Count))
	}
	easeParts := make([]string, 0, len(CommunicationEaseBuckets))
	for _, b := range CommunicationEaseBuckets {
		easeParts = append(easeParts, fmt.Sprintf("%s: %d", CommunicationEaseLabel(b), sum.CommunicationEase[b]))
	}
	return fmt.Sprintf(`Analyze these volunteer survey results and provide a comprehensive summary:
- Total responses: %d
- Average rating: %.2f/5
- High school students: %d, College students: %d
- First time volunteers: %d, Returning volunteers: %d
- Total volunteer hours: %.1f
- Top tasks: %s
- Communication ease: %s

Provide a professional summary highlighting key insights, trends, and recommendations for improving the volunteer experience. Keep it concise and actionable.`,
		sum.Total, sum.AverageRating,
		sum.StudentTypes[StudentHighSchool], sum.StudentTypes[StudentCollege],
		sum.FirstTime["yes"], sum.FirstTime["no"],
		sum.TotalHours, strings.Join(parts, ", "),
		strings.Join(easeParts, ", "))
}

// templatedSummary is the deterministic terminal fallback for the summary
// pipeline, built directly from the statistics.
func templatedSummary(sum *Summary) string {
	top := TopTasks(sum.TaskFrequency, 5)
	names := make([]string, 0, len(top))
	for _, t := range top {
		names = append(names, TaskLabel(t.Key))
	}
	return fmt.Sprintf("Based on %d volunteer reflections, the average experience rating is %.2f/5. Volunteers contributed approximately %.1f total hours. The most common tasks performed were %s. The volunteer program shows %d high school students and %d college students participating.",
		sum.Total, sum.AverageRating, sum.TotalHours, strings.Join(names, ", "),
		sum.StudentTypes[StudentHighSchool], sum.StudentTypes[StudentCollege])
}
