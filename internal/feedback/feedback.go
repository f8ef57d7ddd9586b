package feedback

import (
	"math"
	"time"

	"github.com/frahmantamala/kpi-portal/internal/calendar"
	feedbackDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/feedback"
)

type Feedback struct {
	ID              int64     `json:"id"`
	WriterID        int64     `json:"writerId"`
	WriterName      string    `json:"writerName"`
	WorkgroupID     int64     `json:"workgroupId"`
	WorkgroupName   string    `json:"workgroupName"`
	Year            int       `json:"year"`
	Month           int       `json:"month"`
	PeriodLabel     string    `json:"periodLabel"`
	Communication   int       `json:"communication"`
	Support         int       `json:"support"`
	Clarity         int       `json:"clarity"`
	FeedbackQuality int       `json:"feedbackQuality"`
	AverageRating   float64   `json:"averageRating"`
	Comment         string    `json:"comment"`
	CreatedAt       time.Time `json:"createdAt"`
	CreatedAtFa     string    `json:"createdAtFa"`
}

func (f *Feedback) Ratings() []int {
	return []int{f.Communication, f.Support, f.Clarity, f.FeedbackQuality}
}

// AverageRating is the mean of ratings to one decimal place.
func AverageRating(ratings ...int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return math.Round(float64(sum)/float64(len(ratings))*10) / 10
}

func FromDataModel(row *feedbackDatamodel.WriterFeedback) *Feedback {
	f := &Feedback{
		ID:              row.ID,
		WriterID:        row.WriterID,
		WorkgroupID:     row.WorkgroupID,
		Year:            row.Year,
		Month:           row.Month,
		PeriodLabel:     calendar.Period{Year: row.Year, Month: row.Month}.Label(),
		Communication:   row.Communication,
		Support:         row.Support,
		Clarity:         row.Clarity,
		FeedbackQuality: row.FeedbackQuality,
		Comment:         row.Comment,
		CreatedAt:       row.CreatedAt,
		CreatedAtFa:     calendar.FormatDate(row.CreatedAt),
	}
	f.AverageRating = AverageRating(f.Ratings()...)
	return f
}
