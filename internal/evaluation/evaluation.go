package evaluation

import (
	"time"

	"github.com/frahmantamala/kpi-portal/internal/calendar"
	evaluationDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/evaluation"
)

const (
	KindStrategist = "STRATEGIST"
	KindWriter     = "WRITER"
)

// Summary is the derived part of every evaluation view. It is computed on
// read and never stored.
type Summary struct {
	PeriodLabel string `json:"periodLabel"`
	Average     int    `json:"average"`
	Grade       Grade  `json:"grade"`
	GradeLabel  string `json:"gradeLabel"`
	CreatedAtFa string `json:"createdAtFa"`
}

func summarize(year, month int, createdAt time.Time, scores ...int) Summary {
	avg := Average(scores...)
	grade := Classify(avg)
	return Summary{
		PeriodLabel: calendar.Period{Year: year, Month: month}.Label(),
		Average:     avg,
		Grade:       grade,
		GradeLabel:  grade.Label(),
		CreatedAtFa: calendar.FormatDate(createdAt),
	}
}

type StrategistEvaluation struct {
	ID                int64     `json:"id"`
	StrategistID      int64     `json:"strategistId"`
	StrategistName    string    `json:"strategistName"`
	EvaluatorID       int64     `json:"evaluatorId"`
	EvaluatorName     string    `json:"evaluatorName"`
	Year              int       `json:"year"`
	Month             int       `json:"month"`
	Planning          int       `json:"planning"`
	ContentQuality    int       `json:"contentQuality"`
	TeamLeadership    int       `json:"teamLeadership"`
	Communication     int       `json:"communication"`
	Innovation        int       `json:"innovation"`
	DeadlineAdherence int       `json:"deadlineAdherence"`
	Reporting         int       `json:"reporting"`
	Strengths         string    `json:"strengths"`
	Improvements      string    `json:"improvements"`
	Notes             string    `json:"notes"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	Summary
}

func (e *StrategistEvaluation) Scores() []int {
	return []int{
		e.Planning,
		e.ContentQuality,
		e.TeamLeadership,
		e.Communication,
		e.Innovation,
		e.DeadlineAdherence,
		e.Reporting,
	}
}

func StrategistFromDataModel(row *evaluationDatamodel.StrategistEvaluation) *StrategistEvaluation {
	e := &StrategistEvaluation{
		ID:                row.ID,
		StrategistID:      row.StrategistID,
		EvaluatorID:       row.EvaluatorID,
		Year:              row.Year,
		Month:             row.Month,
		Planning:          row.Planning,
		ContentQuality:    row.ContentQuality,
		TeamLeadership:    row.TeamLeadership,
		Communication:     row.Communication,
		Innovation:        row.Innovation,
		DeadlineAdherence: row.DeadlineAdherence,
		Reporting:         row.Reporting,
		Strengths:         row.Strengths,
		Improvements:      row.Improvements,
		Notes:             row.Notes,
		Status:            row.Status,
		CreatedAt:         row.CreatedAt,
	}
	e.Summary = summarize(e.Year, e.Month, e.CreatedAt, e.Scores()...)
	return e
}

type WriterEvaluation struct {
	ID                int64     `json:"id"`
	WriterID          int64     `json:"writerId"`
	WriterName        string    `json:"writerName"`
	StrategistID      int64     `json:"strategistId"`
	StrategistName    string    `json:"strategistName"`
	WorkgroupID       int64     `json:"workgroupId"`
	WorkgroupName     string    `json:"workgroupName"`
	Year              int       `json:"year"`
	Month             int       `json:"month"`
	WritingQuality    int       `json:"writingQuality"`
	Creativity        int       `json:"creativity"`
	Research          int       `json:"research"`
	DeadlineAdherence int       `json:"deadlineAdherence"`
	SEOCompliance     int       `json:"seoCompliance"`
	Teamwork          int       `json:"teamwork"`
	Strengths         string    `json:"strengths"`
	Improvements      string    `json:"improvements"`
	Notes             string    `json:"notes"`
	CreatedAt         time.Time `json:"createdAt"`
	Summary
}

func (e *WriterEvaluation) Scores() []int {
	return []int{
		e.WritingQuality,
		e.Creativity,
		e.Research,
		e.DeadlineAdherence,
		e.SEOCompliance,
		e.Teamwork,
	}
}

func WriterFromDataModel(row *evaluationDatamodel.WriterEvaluation) *WriterEvaluation {
	e := &WriterEvaluation{
		ID:                row.ID,
		WriterID:          row.WriterID,
		StrategistID:      row.StrategistID,
		WorkgroupID:       row.WorkgroupID,
		Year:              row.Year,
		Month:             row.Month,
		WritingQuality:    row.WritingQuality,
		Creativity:        row.Creativity,
		Research:          row.Research,
		DeadlineAdherence: row.DeadlineAdherence,
		SEOCompliance:     row.SEOCompliance,
		Teamwork:          row.Teamwork,
		Strengths:         row.Strengths,
		Improvements:      row.Improvements,
		Notes:             row.Notes,
		CreatedAt:         row.CreatedAt,
	}
	e.Summary = summarize(e.Year, e.Month, e.CreatedAt, e.Scores()...)
	return e
}
