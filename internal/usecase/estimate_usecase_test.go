package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"quickestimate/internal/domain/entities"
	"quickestimate/internal/infrastructure/ai"
	mock_interfaces "quickestimate/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

const extractedJSON = `{"client_name":"Jane","job_type":"Plumbing","job_description":"Fix sink","items":[{"description":"Valve","quantity":2,"unit_price":12.5}],"notes":""}`

var testSettings = Settings{
	Company: entities.CompanyProfile{Name: "E & A"},
	TaxRate: decimal.RequireFromString("0.10"),
}

type fixture struct {
	transcriber *mock_interfaces.MockITranscriber
	extractor   *mock_interfaces.MockIEstimateExtractor
	renderer    *mock_interfaces.MockIDocumentRenderer
	uc          *EstimateUseCase
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	f := fixture{
		transcriber: mock_interfaces.NewMockITranscriber(ctrl),
		extractor:   mock_interfaces.NewMockIEstimateExtractor(ctrl),
		renderer:    mock_interfaces.NewMockIDocumentRenderer(ctrl),
	}
	f.uc = NewEstimateUseCase(f.transcriber, f.extractor, f.renderer, testSettings)
	return f
}

func TestEstimateUseCase_TranscribeAndExtract(t *testing.T) {
	audio := entities.AudioUpload{Filename: "note.webm", ContentType: "audio/webm", Data: []byte("RIFF")}

	t.Run("empty audio", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.TranscribeAndExtract(context.Background(), entities.AudioUpload{Filename: "x.wav"})
		if !errors.Is(err, ErrEmptyAudio) {
			t.Fatalf("expected ErrEmptyAudio, got %v", err)
		}
	})

	t.Run("transcription failure is upstream", func(t *testing.T) {
		f := newFixture(t)
		cause := errors.New("503 from provider")
		f.transcriber.EXPECT().Transcribe(gomock.Any(), audio).Return("", cause)

		_, err := f.uc.TranscribeAndExtract(context.Background(), audio)
		if !errors.Is(err, ErrUpstreamService) || !errors.Is(err, cause) {
			t.Fatalf("expected upstream error wrapping cause, got %v", err)
		}
	})

	t.Run("extraction failure is upstream", func(t *testing.T) {
		f := newFixture(t)
		f.transcriber.EXPECT().Transcribe(gomock.Any(), audio).Return("fix the sink", nil)
		f.extractor.EXPECT().Extract(gomock.Any(), "fix the sink").Return(nil, errors.New("timeout"))

		_, err := f.uc.TranscribeAndExtract(context.Background(), audio)
		if !errors.Is(err, ErrUpstreamService) {
			t.Fatalf("expected ErrUpstreamService, got %v", err)
		}
	})

	t.Run("empty completion is upstream", func(t *testing.T) {
		f := newFixture(t)
		f.transcriber.EXPECT().Transcribe(gomock.Any(), audio).Return("fix the sink", nil)
		f.extractor.EXPECT().Extract(gomock.Any(), "fix the sink").Return(nil, ai.ErrEmptyCompletion)

		_, err := f.uc.TranscribeAndExtract(context.Background(), audio)
		if !errors.Is(err, ErrUpstreamService) || !errors.Is(err, ai.ErrEmptyCompletion) {
			t.Fatalf("expected upstream error wrapping ErrEmptyCompletion, got %v", err)
		}
		var verr *entities.ValidationError
		if errors.As(err, &verr) {
			t.Fatalf("empty completion must not be reported as invalid input")
		}
	})

	t.Run("invalid extraction is a validation error", func(t *testing.T) {
		f := newFixture(t)
		f.transcriber.EXPECT().Transcribe(gomock.Any(), audio).Return("fix the sink", nil)
		f.extractor.EXPECT().Extract(gomock.Any(), "fix the sink").Return(json.RawMessage(`{"client_name":"Jane"}`), nil)

		_, err := f.uc.TranscribeAndExtract(context.Background(), audio)
		var verr *entities.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if errors.Is(err, ErrUpstreamService) {
			t.Fatalf("validation error must not be classified as upstream")
		}
	})

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.transcriber.EXPECT().Transcribe(gomock.Any(), audio).Return("fix the sink", nil)
		f.extractor.EXPECT().Extract(gomock.Any(), "fix the sink").Return(json.RawMessage(extractedJSON), nil)

		res, err := f.uc.TranscribeAndExtract(context.Background(), audio)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Transcript != "fix the sink" {
			t.Fatalf("unexpected transcript %q", res.Transcript)
		}
		if res.Document.ClientName != "Jane" || len(res.Document.Items) != 1 {
			t.Fatalf("unexpected document %+v", res.Document)
		}
	})
}

func TestEstimateUseCase_GenerateDocument(t *testing.T) {
	t.Run("malformed document never reaches renderer", func(t *testing.T) {
		f := newFixture(t)
		f.renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		payload := `{"client_name":"Jane","job_type":"x","job_description":"y","items":[{"description":"a","quantity":0,"unit_price":1}]}`
		_, err := f.uc.GenerateDocument(context.Background(), []byte(payload))
		var verr *entities.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("render failure", func(t *testing.T) {
		f := newFixture(t)
		cause := errors.New("unsupported character")
		f.renderer.EXPECT().Render(gomock.Any(), testSettings.Company, testSettings.TaxRate).Return(nil, cause)

		_, err := f.uc.GenerateDocument(context.Background(), []byte(extractedJSON))
		if !errors.Is(err, ErrRender) || !errors.Is(err, cause) {
			t.Fatalf("expected ErrRender wrapping cause, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		f := newFixture(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := f.uc.GenerateDocument(ctx, []byte(extractedJSON))
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.renderer.EXPECT().Render(gomock.Any(), testSettings.Company, testSettings.TaxRate).DoAndReturn(
			func(doc entities.EstimateDocument, _ entities.CompanyProfile, _ decimal.Decimal) ([]byte, error) {
				if doc.ClientName != "Jane" || len(doc.Items) != 1 || doc.Items[0].Quantity != 2 {
					t.Fatalf("unexpected document passed to renderer: %+v", doc)
				}
				return []byte("%PDF-1.3"), nil
			},
		)

		out, err := f.uc.GenerateDocument(context.Background(), []byte(extractedJSON))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(out) != "%PDF-1.3" {
			t.Fatalf("unexpected output %q", out)
		}
	})
}
