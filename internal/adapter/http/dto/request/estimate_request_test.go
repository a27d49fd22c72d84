package request

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"
)

func uploadedFile(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="audio"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	_, _ = part.Write(data)
	_ = mw.Close()

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("parse form: %v", err)
	}
	return req.MultipartForm.File[AudioField][0]
}

func TestReadAudioUpload(t *testing.T) {
	t.Run("nil header", func(t *testing.T) {
		if _, err := ReadAudioUpload(nil, 10); !errors.Is(err, ErrMissingAudio) {
			t.Fatalf("expected ErrMissingAudio, got %v", err)
		}
	})

	t.Run("reads file", func(t *testing.T) {
		fh := uploadedFile(t, "job.webm", "audio/webm", []byte("abc"))
		audio, err := ReadAudioUpload(fh, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if audio.Filename != "job.webm" || audio.ContentType != "audio/webm" || string(audio.Data) != "abc" {
			t.Fatalf("unexpected upload: %+v", audio)
		}
	})

	t.Run("exactly at limit", func(t *testing.T) {
		fh := uploadedFile(t, "a.wav", "audio/wav", []byte("1234"))
		if _, err := ReadAudioUpload(fh, 4); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("too large", func(t *testing.T) {
		fh := uploadedFile(t, "a.wav", "audio/wav", []byte("12345"))
		if _, err := ReadAudioUpload(fh, 4); !errors.Is(err, ErrAudioTooLarge) {
			t.Fatalf("expected ErrAudioTooLarge, got %v", err)
		}
	})

	t.Run("empty file is passed through", func(t *testing.T) {
		fh := uploadedFile(t, "a.wav", "audio/wav", nil)
		audio, err := ReadAudioUpload(fh, 4)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(audio.Data) != 0 {
			t.Fatalf("expected no data, got %d bytes", len(audio.Data))
		}
	})
}
