package interfaces

import (
	"context"

	"quickestimate/internal/domain/entities"
)

// ITranscriber abstracts speech-to-text providers (e.g. OpenAI Whisper).
//
// Implementations return the raw transcript; any provider failure is reported
// as an error and classified by the use case as an upstream failure.
type ITranscriber interface {
	Transcribe(ctx context.Context, audio entities.AudioUpload) (string, error)
}
