package client

import (
	"context"
	"mime"
	"strconv"
)

// ExportService downloads CSV reports
type ExportService struct {
	client *Client
}

// Report is a downloaded CSV attachment
type Report struct {
	Filename string
	Content  []byte
}

// Costs downloads the last days days of cost rows
func (s *ExportService) Costs(ctx context.Context, days int) (*Report, error) {
	path := "/api/export/costs"
	if days > 0 {
		path += "?days=" + strconv.Itoa(days)
	}
	return s.download(ctx, path)
}

// Recommendations downloads every recommendation
func (s *ExportService) Recommendations(ctx context.Context) (*Report, error) {
	return s.download(ctx, "/api/export/recommendations")
}

// Deletions downloads the deletion history
func (s *ExportService) Deletions(ctx context.Context) (*Report, error) {
	return s.download(ctx, "/api/export/deletions")
}

func (s *ExportService) download(ctx context.Context, path string) (*Report, error) {
	resp, body, err := s.client.send(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	report := &Report{Content: body}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		report.Filename = params["filename"]
	}
	return report, nil
}
