package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"quickestimate/internal/domain/entities"
	"quickestimate/internal/usecase/interfaces"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const (
	defaultTranscriptionModel = "whisper-1"
	defaultExtractionModel    = "gpt-3.5-turbo"
	defaultTimeout            = 60 * time.Second

	defaultAudioFilename    = "audio.webm"
	defaultAudioContentType = "application/octet-stream"
)

const extractionSystemPrompt = "You are an assistant that extracts estimate data from a transcript. " +
	"Return strict JSON with keys: client_name, job_type, job_description, " +
	"items (array of {description, quantity, unit_price}), notes (string). " +
	"quantity is an integer and unit_price a number. " +
	"Tax, totals, etc. are NOT included."

var (
	ErrMissingOpenAIAPIKey = errors.New("missing OPENAI_API_KEY")
	ErrEmptyCompletion     = errors.New("extraction returned no content")
)

// Options configures the OpenAI gateway. Zero values fall back to defaults.
type Options struct {
	APIKey             string
	BaseURL            string
	TranscriptionModel string
	ExtractionModel    string
	Timeout            time.Duration
}

// OpenAIGateway talks to OpenAI for both transcription (Whisper) and
// structured extraction (chat completions in JSON mode).
//
// SDK retries are disabled: upstream failures surface immediately.
type OpenAIGateway struct {
	client             openai.Client
	transcriptionModel string
	extractionModel    string
	timeout            time.Duration
}

var (
	_ interfaces.ITranscriber       = (*OpenAIGateway)(nil)
	_ interfaces.IEstimateExtractor = (*OpenAIGateway)(nil)
)

func NewOpenAIGateway(opts Options) (*OpenAIGateway, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		log.Printf("[estimate][gateway] missing OPENAI_API_KEY")
		return nil, ErrMissingOpenAIAPIKey
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	g := &OpenAIGateway{
		client:             openai.NewClient(reqOpts...),
		transcriptionModel: firstNonEmpty(opts.TranscriptionModel, defaultTranscriptionModel),
		extractionModel:    firstNonEmpty(opts.ExtractionModel, defaultExtractionModel),
		timeout:            opts.Timeout,
	}
	if g.timeout <= 0 {
		g.timeout = defaultTimeout
	}
	log.Printf("[estimate][gateway] OpenAI client initialized transcription_model=%s extraction_model=%s", g.transcriptionModel, g.extractionModel)
	return g, nil
}

// Transcribe sends the recording to Whisper and returns the transcript text.
func (g *OpenAIGateway) Transcribe(ctx context.Context, audio entities.AudioUpload) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	filename := firstNonEmpty(audio.Filename, defaultAudioFilename)
	contentType := firstNonEmpty(audio.ContentType, defaultAudioContentType)
	log.Printf("[estimate][gateway] transcribe start filename=%q size=%d", filename, len(audio.Data))

	resp, err := g.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:  openai.File(bytes.NewReader(audio.Data), filename, contentType),
		Model: openai.AudioModel(g.transcriptionModel),
	})
	if err != nil {
		logProviderError("transcribe", err)
		return "", err
	}
	log.Printf("[estimate][gateway] transcribe success text_len=%d", len(resp.Text))
	return resp.Text, nil
}

// Extract asks the language model for the estimate JSON object.
func (g *OpenAIGateway) Extract(ctx context.Context, transcript string) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	log.Printf("[estimate][gateway] extract start transcript_len=%d", len(transcript))
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(g.extractionModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(extractionSystemPrompt),
			openai.UserMessage("Transcript:\n" + transcript),
		},
		Temperature: openai.Float(0),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		logProviderError("extract", err)
		return nil, err
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		log.Printf("[estimate][gateway] extract returned empty content")
		return nil, ErrEmptyCompletion
	}

	content := resp.Choices[0].Message.Content
	log.Printf("[estimate][gateway] extract success content_len=%d", len(content))
	return json.RawMessage(content), nil
}

func logProviderError(op string, err error) {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		log.Printf("[estimate][gateway] %s failed status=%d err=%v", op, apiErr.StatusCode, err)
		return
	}
	log.Printf("[estimate][gateway] %s failed err=%v", op, err)
}

func firstNonEmpty(v, def string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return def
}
