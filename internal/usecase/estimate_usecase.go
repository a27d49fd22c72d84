package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"quickestimate/internal/domain/entities"
	"quickestimate/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyAudio      = errors.New("empty audio")
	ErrUpstreamService = errors.New("upstream service error")
	ErrRender          = errors.New("document generation failed")
)

// IEstimateUseCase exposes the estimate operations served over HTTP.
//
//   - transcribe-and-parse => TranscribeAndExtract()
//   - generate-pdf         => GenerateDocument()
//
// Validation failures are returned as *entities.ValidationError.
type IEstimateUseCase interface {
	TranscribeAndExtract(ctx context.Context, audio entities.AudioUpload) (entities.ExtractionResult, error)
	GenerateDocument(ctx context.Context, payload []byte) ([]byte, error)
}

// Settings is the read-only configuration shared by every request.
type Settings struct {
	Company entities.CompanyProfile
	TaxRate decimal.Decimal
}

type EstimateUseCase struct {
	transcriber interfaces.ITranscriber
	extractor   interfaces.IEstimateExtractor
	renderer    interfaces.IDocumentRenderer
	settings    Settings
}

var _ IEstimateUseCase = (*EstimateUseCase)(nil)

func NewEstimateUseCase(
	transcriber interfaces.ITranscriber,
	extractor interfaces.IEstimateExtractor,
	renderer interfaces.IDocumentRenderer,
	settings Settings,
) *EstimateUseCase {
	return &EstimateUseCase{
		transcriber: transcriber,
		extractor:   extractor,
		renderer:    renderer,
		settings:    settings,
	}
}

func (u *EstimateUseCase) TranscribeAndExtract(ctx context.Context, audio entities.AudioUpload) (entities.ExtractionResult, error) {
	log.Printf("[estimate][usecase] transcribe-and-extract start filename=%q size=%d", audio.Filename, len(audio.Data))
	if len(audio.Data) == 0 {
		return entities.ExtractionResult{}, ErrEmptyAudio
	}

	transcript, err := u.transcriber.Transcribe(ctx, audio)
	if err != nil {
		log.Printf("[estimate][usecase] transcription failed err=%v", err)
		return entities.ExtractionResult{}, fmt.Errorf("%w: transcription: %w", ErrUpstreamService, err)
	}
	log.Printf("[estimate][usecase] transcription done transcript_len=%d", len(transcript))

	raw, err := u.extractor.Extract(ctx, transcript)
	if err != nil {
		log.Printf("[estimate][usecase] extraction failed err=%v", err)
		return entities.ExtractionResult{}, fmt.Errorf("%w: extraction: %w", ErrUpstreamService, err)
	}

	doc, err := entities.ParseEstimate(raw)
	if err != nil {
		log.Printf("[estimate][usecase] extracted payload rejected err=%v", err)
		return entities.ExtractionResult{}, err
	}
	log.Printf("[estimate][usecase] transcribe-and-extract success items=%d", len(doc.Items))

	return entities.ExtractionResult{Transcript: transcript, Document: doc}, nil
}

func (u *EstimateUseCase) GenerateDocument(ctx context.Context, payload []byte) ([]byte, error) {
	doc, err := entities.ParseEstimate(payload)
	if err != nil {
		log.Printf("[estimate][usecase] generate-document rejected payload err=%v", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := u.renderer.Render(doc, u.settings.Company, u.settings.TaxRate)
	if err != nil {
		log.Printf("[estimate][usecase] render failed err=%v", err)
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	log.Printf("[estimate][usecase] generate-document success items=%d bytes=%d", len(doc.Items), len(out))
	return out, nil
}
