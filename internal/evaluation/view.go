package evaluation

import (
	"context"

	"github.com/frahmantamala/kpi-portal/internal"
)

const unknownName = "نامشخص"

// NameDirectory resolves display names. Missing ids are absent from the map.
type NameDirectory interface {
	NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
}

func (s *Service) decorateStrategist(ctx context.Context, list []*StrategistEvaluation) error {
	ids := make([]int64, 0, len(list)*2)
	for _, e := range list {
		ids = append(ids, e.StrategistID, e.EvaluatorID)
	}
	names, err := s.users.NamesByIDs(ctx, distinct(ids))
	if err != nil {
		return internal.NewInternalError(internal.MsgInternal, err)
	}
	for _, e := range list {
		e.StrategistName = nameOr(names, e.StrategistID)
		e.EvaluatorName = nameOr(names, e.EvaluatorID)
	}
	return nil
}

func (s *Service) decorateWriter(ctx context.Context, list []*WriterEvaluation) error {
	userIDs := make([]int64, 0, len(list)*2)
	groupIDs := make([]int64, 0, len(list))
	for _, e := range list {
		userIDs = append(userIDs, e.WriterID, e.StrategistID)
		groupIDs = append(groupIDs, e.WorkgroupID)
	}
	names, err := s.users.NamesByIDs(ctx, distinct(userIDs))
	if err != nil {
		return internal.NewInternalError(internal.MsgInternal, err)
	}
	groups, err := s.workgroups.NamesByIDs(ctx, distinct(groupIDs))
	if err != nil {
		return internal.NewInternalError(internal.MsgInternal, err)
	}
	for _, e := range list {
		e.WriterName = nameOr(names, e.WriterID)
		e.StrategistName = nameOr(names, e.StrategistID)
		e.WorkgroupName = nameOr(groups, e.WorkgroupID)
	}
	return nil
}

func nameOr(names map[int64]string, id int64) string {
	if n, ok := names[id]; ok {
		return n
	}
	return unknownName
}

func distinct(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
