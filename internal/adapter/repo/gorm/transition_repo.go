package gormrepo

import (
	"context"
	"encoding/json"

	"github.com/timf34/cpr-appropriation/internal/adapter/repo/gorm/model"
	"github.com/timf34/cpr-appropriation/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransitionRepo struct {
	db *gorm.DB
}

func NewTransitionRepo(db *gorm.DB) TransitionRepo {
	return TransitionRepo{db: db}
}

func (r TransitionRepo) Append(ctx context.Context, rec ports.TransitionRecord) error {
	actions, err := json.Marshal(rec.Actions)
	if err != nil {
		return err
	}
	rewards, err := json.Marshal(rec.Rewards)
	if err != nil {
		return err
	}
	m := model.Transition{
		EpisodeID:     rec.EpisodeID,
		Step:          int32(rec.Step),
		Actions:       actions,
		Rewards:       rewards,
		Done:          rec.Done,
		ResourceCount: int32(rec.ResourceCount),
		OccurredAt:    rec.OccurredAt,
	}
	return getDBFromCtx(ctx, r.db).Create(&m).Error
}

func (r TransitionRepo) ListByEpisodeID(ctx context.Context, episodeID string, fromStep, toStep, limit int) ([]ports.TransitionRecord, error) {
	rows := []model.Transition{}
	query := getDBFromCtx(ctx, r.db).
		Where("episode_id = ?", episodeID).
		Where("step >= ?", fromStep).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "step"}}},
		})
	if toStep > 0 {
		query = query.Where("step <= ?", toStep)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]ports.TransitionRecord, 0, len(rows))
	for _, row := range rows {
		var actions []int
		var rewards []float64
		if len(row.Actions) > 0 {
			_ = json.Unmarshal(row.Actions, &actions)
		}
		if len(row.Rewards) > 0 {
			_ = json.Unmarshal(row.Rewards, &rewards)
		}
		out = append(out, ports.TransitionRecord{
			EpisodeID:     row.EpisodeID,
			Step:          int(row.Step),
			Actions:       actions,
			Rewards:       rewards,
			Done:          row.Done,
			ResourceCount: int(row.ResourceCount),
			OccurredAt:    row.OccurredAt,
		})
	}
	return out, nil
}
