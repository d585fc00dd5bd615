package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studymate/studymate-backend/internal/logging"
	"github.com/studymate/studymate-backend/internal/study_assistant/domain"
	"github.com/studymate/studymate-backend/internal/study_assistant/service"
)

const (
	msgNoTopic       = "No topic provided."
	msgTopicFailed   = "Failed to generate topic explanation."
	msgNoText        = "No text provided for quiz generation."
	msgQuizFailed    = "Failed to generate quiz."
	msgNoFilePart    = "No file part"
	msgNoFile        = "No selected file"
	msgFileTooLarge  = "File too large"
	msgSummaryFailed = "Failed to summarize file."
)

// StudyAssistant is what the routes need from the service layer.
type StudyAssistant interface {
	ExplainTopic(ctx context.Context, topic string) (*domain.TopicExplanation, error)
	GenerateQuiz(ctx context.Context, text string) (*domain.QuizItem, error)
}

type Handler struct {
	svc            StudyAssistant
	summarizer     service.Summarizer
	maxUploadBytes int64
}

func New(svc StudyAssistant, summarizer service.Summarizer, maxUploadBytes int64) *Handler {
	if summarizer == nil {
		summarizer = service.PlaceholderSummarizer{}
	}
	return &Handler{svc: svc, summarizer: summarizer, maxUploadBytes: maxUploadBytes}
}

func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api")
	api.POST("/generate_topic", h.GenerateTopic)
	api.POST("/generate_quiz", h.GenerateQuiz)
	api.POST("/upload_pdf", h.UploadPDF)
}

func (h *Handler) GenerateTopic(c *gin.Context) {
	var req domain.TopicRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Topic == "" {
		c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: msgNoTopic})
		return
	}

	out, err := h.svc.ExplainTopic(c.Request.Context(), req.Topic)
	if err != nil {
		c.JSON(http.StatusInternalServerError, domain.ErrorResponse{Error: msgTopicFailed})
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *Handler) GenerateQuiz(c *gin.Context) {
	var req domain.QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: msgNoText})
		return
	}

	out, err := h.svc.GenerateQuiz(c.Request.Context(), req.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, domain.ErrorResponse{Error: msgQuizFailed})
		return
	}

	c.JSON(http.StatusOK, out)
}

// UploadPDF accepts a multipart "file" part. The summary is a placeholder until
// a real Summarizer is wired in.
func (h *Handler) UploadPDF(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, domain.ErrorResponse{Error: msgFileTooLarge})
			return
		}
		c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: msgNoFilePart})
		return
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: msgNoFilePart})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		// filename="" and a missing filename both land in form.Value; only the
		// former is a file input left empty.
		if hasFilenameParam(c.GetHeader("Content-Type"), raw) {
			c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: msgNoFile})
			return
		}
		c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: msgNoFilePart})
		return
	}
	if files[0].Filename == "" {
		c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: msgNoFile})
		return
	}

	summary, err := h.summarizer.Summarize(c.Request.Context(), files[0])
	if err != nil {
		logging.NewLogger(c.Request.Context()).LogError("upload_pdf", err)
		c.JSON(http.StatusInternalServerError, domain.ErrorResponse{Error: msgSummaryFailed})
		return
	}

	c.JSON(http.StatusOK, domain.SummaryResponse{Summary: summary})
}

// hasFilenameParam reports whether body has a "file" part whose
// Content-Disposition carries a filename parameter, even an empty one.
func hasFilenameParam(contentType string, body []byte) bool {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil || params["boundary"] == "" {
		return false
	}
	mr := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	for {
		p, err := mr.NextPart()
		if err != nil {
			return false
		}
		if p.FormName() != "file" {
			continue
		}
		if _, disp, err := mime.ParseMediaType(p.Header.Get("Content-Disposition")); err == nil {
			if _, ok := disp["filename"]; ok {
				return true
			}
		}
	}
}
