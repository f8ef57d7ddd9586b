package feedback

import "time"

// WriterFeedback is a member's rating of their workgroup and its strategist,
// one per (writer, workgroup, year, month).
type WriterFeedback struct {
	ID              int64     `gorm:"primaryKey"`
	WriterID        int64     `gorm:"column:writer_id;not null;uniqueIndex:idx_writer_feedbacks_period"`
	WorkgroupID     int64     `gorm:"column:workgroup_id;not null;uniqueIndex:idx_writer_feedbacks_period;index"`
	Year            int       `gorm:"column:year;not null;uniqueIndex:idx_writer_feedbacks_period"`
	Month           int       `gorm:"column:month;not null;uniqueIndex:idx_writer_feedbacks_period"`
	Communication   int       `gorm:"column:communication;not null"`
	Support         int       `gorm:"column:support;not null"`
	Clarity         int       `gorm:"column:clarity;not null"`
	FeedbackQuality int       `gorm:"column:feedback_quality;not null"`
	Comment         string    `gorm:"column:comment"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (WriterFeedback) TableName() string {
	return "writer_feedbacks"
}
