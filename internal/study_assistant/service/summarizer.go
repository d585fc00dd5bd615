package service

import (
	"context"
	"mime/multipart"
)

// PlaceholderSummary is returned until PDF extraction exists.
const PlaceholderSummary = "PDF summary feature coming soon!"

// Summarizer turns an uploaded document into a short summary.
type Summarizer interface {
	Summarize(ctx context.Context, file *multipart.FileHeader) (string, error)
}

// PlaceholderSummarizer is not implemented yet: it never opens the file and
// always returns PlaceholderSummary.
type PlaceholderSummarizer struct{}

func (PlaceholderSummarizer) Summarize(context.Context, *multipart.FileHeader) (string, error) {
	return PlaceholderSummary, nil
}
