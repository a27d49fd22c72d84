package request

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"

	"quickestimate/internal/domain/entities"
)

const (
	// AudioField is the multipart form field carrying the recording.
	AudioField = "audio"

	// MaxDocumentBytes bounds the JSON body accepted by generate-pdf.
	MaxDocumentBytes = 1 << 20
)

var (
	ErrMissingAudio     = errors.New("missing audio file")
	ErrAudioTooLarge    = errors.New("audio file too large")
	ErrDocumentTooLarge = errors.New("estimate document too large")
)

// ReadAudioUpload loads the uploaded recording into memory, refusing
// anything larger than maxBytes.
func ReadAudioUpload(fh *multipart.FileHeader, maxBytes int64) (entities.AudioUpload, error) {
	if fh == nil {
		return entities.AudioUpload{}, ErrMissingAudio
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return entities.AudioUpload{}, ErrAudioTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return entities.AudioUpload{}, fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	// Size comes from the client; read one byte past the limit to be sure.
	var r io.Reader = f
	if maxBytes > 0 {
		r = io.LimitReader(f, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return entities.AudioUpload{}, fmt.Errorf("read audio: %w", err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return entities.AudioUpload{}, ErrAudioTooLarge
	}

	return entities.AudioUpload{
		Filename:    filepath.Base(fh.Filename),
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
