// Package datamodel lists every persisted model, in dependency order.
package datamodel

import (
	"github.com/frahmantamala/kpi-portal/internal/core/datamodel/comment"
	"github.com/frahmantamala/kpi-portal/internal/core/datamodel/evaluation"
	"github.com/frahmantamala/kpi-portal/internal/core/datamodel/feedback"
	"github.com/frahmantamala/kpi-portal/internal/core/datamodel/goal"
	"github.com/frahmantamala/kpi-portal/internal/core/datamodel/message"
	"github.com/frahmantamala/kpi-portal/internal/core/datamodel/user"
	"github.com/frahmantamala/kpi-portal/internal/core/datamodel/workgroup"
)

// All returns fresh instances of every model, suitable for gorm AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&user.User{},
		&workgroup.Workgroup{},
		&workgroup.WorkgroupMember{},
		&evaluation.StrategistEvaluation{},
		&evaluation.WriterEvaluation{},
		&feedback.WriterFeedback{},
		&message.Message{},
		&comment.Comment{},
		&goal.Goal{},
		&goal.Task{},
	}
}
