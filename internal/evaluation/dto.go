package evaluation

// Year and month may both be left zero to mean the current period.
type SubmitStrategistEvaluationDTO struct {
	StrategistID      int64  `json:"strategistId" validate:"required,gt=0"`
	Year              int    `json:"year" validate:"pyear"`
	Month             int    `json:"month" validate:"pmonth"`
	Planning          int    `json:"planning" validate:"score"`
	ContentQuality    int    `json:"contentQuality" validate:"score"`
	TeamLeadership    int    `json:"teamLeadership" validate:"score"`
	Communication     int    `json:"communication" validate:"score"`
	Innovation        int    `json:"innovation" validate:"score"`
	DeadlineAdherence int    `json:"deadlineAdherence" validate:"score"`
	Reporting         int    `json:"reporting" validate:"score"`
	Strengths         string `json:"strengths" validate:"max=2000"`
	Improvements      string `json:"improvements" validate:"max=2000"`
	Notes             string `json:"notes" validate:"max=2000"`
	Status            string `json:"status" validate:"omitempty,oneof=PENDING COMPLETED"`
}

type SubmitWriterEvaluationDTO struct {
	WriterID          int64  `json:"writerId" validate:"required,gt=0"`
	WorkgroupID       int64  `json:"workgroupId" validate:"required,gt=0"`
	Year              int    `json:"year" validate:"pyear"`
	Month             int    `json:"month" validate:"pmonth"`
	WritingQuality    int    `json:"writingQuality" validate:"score"`
	Creativity        int    `json:"creativity" validate:"score"`
	Research          int    `json:"research" validate:"score"`
	DeadlineAdherence int    `json:"deadlineAdherence" validate:"score"`
	SEOCompliance     int    `json:"seoCompliance" validate:"score"`
	Teamwork          int    `json:"teamwork" validate:"score"`
	Strengths         string `json:"strengths" validate:"max=2000"`
	Improvements      string `json:"improvements" validate:"max=2000"`
	Notes             string `json:"notes" validate:"max=2000"`
}

// ListFilter narrows a listing. Zero fields match everything.
type ListFilter struct {
	EvaluatorID int64
	SubjectID   int64
	Year        int
	Month       int
}
