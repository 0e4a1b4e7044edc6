package service

import (
	"context"
	"fmt"
	"time"

	"github.com/noah-isme/academy-api/internal/models"
	appErrors "github.com/noah-isme/academy-api/pkg/errors"
	"github.com/noah-isme/academy-api/pkg/export"
)

const transcriptDateLayout = "2006-01-02"

var transcriptHeaders = []string{"course_id", "course", "start_date", "end_date", "status", "enroll_date", "conclusion_date"}

type enrolledCoursesSource interface {
	GetUserEnrolledCourses(ctx context.Context, userID int64) ([]models.CourseWithEnrollment, error)
}

// TranscriptFile is a rendered export.
type TranscriptFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// TranscriptService renders a user's enrolled courses as CSV or PDF.
type TranscriptService struct {
	source    enrolledCoursesSource
	renderers map[export.Format]export.Renderer
}

// NewTranscriptService constructs the service with the default renderers.
func NewTranscriptService(source enrolledCoursesSource) *TranscriptService {
	return &TranscriptService{
		source: source,
		renderers: map[export.Format]export.Renderer{
			export.FormatCSV: export.NewCSVExporter(),
			export.FormatPDF: export.NewPDFExporter(),
		},
	}
}

// Export builds the transcript for userID in the requested format.
func (s *TranscriptService) Export(ctx context.Context, userID int64, format export.Format) (*TranscriptFile, error) {
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Validation(fmt.Sprintf("unsupported export format %q", format))
	}
	items, err := s.source.GetUserEnrolledCourses(ctx, userID)
	if err != nil {
		return nil, err
	}

	content, err := renderer.Render(transcriptDataset(userID, items))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render transcript")
	}
	return &TranscriptFile{
		Filename:    fmt.Sprintf("transcript-user-%d.%s", userID, format),
		ContentType: format.ContentType(),
		Content:     content,
	}, nil
}

func transcriptDataset(userID int64, items []models.CourseWithEnrollment) export.Dataset {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		row := []string{
			fmt.Sprintf("%d", item.ID),
			item.Name,
			item.StartDate.Format(transcriptDateLayout),
			item.EndDate.Format(transcriptDateLayout),
			"",
			"",
			"",
		}
		if e := item.UserEnrollment; e != nil {
			row[4] = string(e.Status)
			row[5] = e.EnrollDate.Format(transcriptDateLayout)
			row[6] = formatOptionalDate(e.ConclusionDate)
		}
		rows = append(rows, row)
	}
	return export.Dataset{
		Title:   fmt.Sprintf("Transcript for user %d", userID),
		Headers: transcriptHeaders,
		Rows:    rows,
	}
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(transcriptDateLayout)
}
