package feedback

type SubmitFeedbackDTO struct {
	WorkgroupID     int64  `json:"workgroupId" validate:"required,gt=0"`
	Year            int    `json:"year" validate:"pyear"`
	Month           int    `json:"month" validate:"pmonth"`
	Communication   int    `json:"communication" validate:"rating"`
	Support         int    `json:"support" validate:"rating"`
	Clarity         int    `json:"clarity" validate:"rating"`
	FeedbackQuality int    `json:"feedbackQuality" validate:"rating"`
	Comment         string `json:"comment" validate:"max=2000"`
}
