package handlers

import (
	"errors"
	"log"
	"net/http"

	request "quickestimate/internal/adapter/http/dto/request"
	response "quickestimate/internal/adapter/http/dto/response"
	"quickestimate/internal/domain/entities"
	"quickestimate/internal/usecase"
	"quickestimate/pkg"

	"github.com/gin-gonic/gin"
)

const (
	pdfContentType        = "application/pdf"
	pdfContentDisposition = `attachment; filename="estimate.pdf"`

	// multipartOverhead leaves room for boundaries and part headers on top
	// of the audio itself.
	multipartOverhead = 1 << 20
)

// EstimateHandler serves the two estimate endpoints:
//
//   - POST /transcribe-and-parse
//   - POST /generate-pdf
type EstimateHandler struct {
	usecase       usecase.IEstimateUseCase
	maxAudioBytes int64
}

func NewEstimateHandler(uc usecase.IEstimateUseCase, maxAudioBytes int64) *EstimateHandler {
	return &EstimateHandler{usecase: uc, maxAudioBytes: maxAudioBytes}
}

// TranscribeAndParse godoc
// @Summary      Transcribe a recording and extract an estimate
// @Description  Sends the uploaded audio to speech transcription, then extracts a structured estimate from the transcript.
// @Tags         estimates
// @Accept       multipart/form-data
// @Produce      json
// @Param        audio  formData  file  true  "Job description recording"
// @Success      200  {object}  response.TranscribeAndParseResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      413  {object}  pkg.HTTPError
// @Failure      502  {object}  pkg.HTTPError
// @Router       /transcribe-and-parse [post]
func (h *EstimateHandler) TranscribeAndParse(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxAudioBytes+multipartOverhead)

	fh, err := c.FormFile(request.AudioField)
	if err != nil {
		log.Printf("[estimate][handler] transcribe-and-parse no audio err=%v", err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = request.ErrAudioTooLarge
		} else {
			err = request.ErrMissingAudio
		}
		respondError(c, err)
		return
	}

	audio, err := request.ReadAudioUpload(fh, h.maxAudioBytes)
	if err != nil {
		log.Printf("[estimate][handler] transcribe-and-parse read failed err=%v", err)
		respondError(c, err)
		return
	}

	result, err := h.usecase.TranscribeAndExtract(c.Request.Context(), audio)
	if err != nil {
		log.Printf("[estimate][handler] transcribe-and-parse failed err=%v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromExtraction(result))
}

// GenerateDocument godoc
// @Summary      Render an estimate as PDF
// @Description  Validates the estimate document and returns it as an A4 PDF attachment.
// @Tags         estimates
// @Accept       json
// @Produce      application/pdf
// @Param        estimate  body  response.EstimateResponse  true  "Estimate document"
// @Success      200  {file}    file
// @Failure      400  {object}  pkg.HTTPError
// @Failure      413  {object}  pkg.HTTPError
// @Failure      500  {object}  pkg.HTTPError
// @Router       /generate-pdf [post]
func (h *EstimateHandler) GenerateDocument(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, request.MaxDocumentBytes)

	payload, err := c.GetRawData()
	if err != nil {
		log.Printf("[estimate][handler] generate-pdf read body failed err=%v", err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = request.ErrDocumentTooLarge
		}
		respondError(c, err)
		return
	}

	out, err := h.usecase.GenerateDocument(c.Request.Context(), payload)
	if err != nil {
		log.Printf("[estimate][handler] generate-pdf failed err=%v", err)
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", pdfContentDisposition)
	c.Data(http.StatusOK, pdfContentType, out)
}

func respondError(c *gin.Context, err error) {
	appErr := mapEstimateError(err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapEstimateError(err error) *pkg.AppError {
	var invalid *entities.ValidationError
	switch {
	case errors.As(err, &invalid):
		return pkg.NewDomainError("INVALID_ESTIMATE", "Invalid estimate document", err, http.StatusBadRequest).WithDetails(invalid.Fields)
	case errors.Is(err, request.ErrMissingAudio), errors.Is(err, usecase.ErrEmptyAudio):
		return pkg.NewDomainError("INVALID_AUDIO", "An audio file is required", err, http.StatusBadRequest)
	case errors.Is(err, request.ErrAudioTooLarge):
		return pkg.NewDomainError("AUDIO_TOO_LARGE", "Audio file exceeds the size limit", err, http.StatusRequestEntityTooLarge)
	case errors.Is(err, request.ErrDocumentTooLarge):
		return pkg.NewDomainError("DOCUMENT_TOO_LARGE", "Estimate document exceeds the size limit", err, http.StatusRequestEntityTooLarge)
	case errors.Is(err, usecase.ErrUpstreamService):
		return pkg.NewDomainError("UPSTREAM_SERVICE_ERROR", "Transcription or extraction service failed", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrRender):
		return pkg.NewDomainError("DOCUMENT_GENERATION_FAILED", "Could not generate the estimate document", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
