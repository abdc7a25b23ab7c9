package gormrepo

import (
	"context"
	"errors"
	"time"

	"github.com/timf34/cpr-appropriation/internal/adapter/repo/gorm/model"
	"github.com/timf34/cpr-appropriation/internal/app/ports"

	"gorm.io/gorm"
)

type EpisodeRepo struct {
	db *gorm.DB
}

func NewEpisodeRepo(db *gorm.DB) EpisodeRepo {
	return EpisodeRepo{db: db}
}

func (r EpisodeRepo) Create(ctx context.Context, rec ports.EpisodeRecord) error {
	m := model.Episode{
		EpisodeID:    rec.EpisodeID,
		Seed:         rec.Seed,
		NAgents:      int32(rec.NAgents),
		GridWidth:    int32(rec.GridWidth),
		GridHeight:   int32(rec.GridHeight),
		MaxSteps:     int32(rec.MaxSteps),
		Status:       rec.Status,
		ElapsedSteps: int32(rec.ElapsedSteps),
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r EpisodeRepo) GetByID(ctx context.Context, episodeID string) (ports.EpisodeRecord, error) {
	var m model.Episode
	if err := getDBFromCtx(ctx, r.db).Where("episode_id = ?", episodeID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.EpisodeRecord{}, ports.ErrNotFound
		}
		return ports.EpisodeRecord{}, err
	}
	return ports.EpisodeRecord{
		EpisodeID:    m.EpisodeID,
		Seed:         m.Seed,
		NAgents:      int(m.NAgents),
		GridWidth:    int(m.GridWidth),
		GridHeight:   int(m.GridHeight),
		MaxSteps:     int(m.MaxSteps),
		Status:       m.Status,
		ElapsedSteps: int(m.ElapsedSteps),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

func (r EpisodeRepo) UpdateProgress(ctx context.Context, episodeID string, elapsedSteps int, status string, updatedAt time.Time) error {
	res := getDBFromCtx(ctx, r.db).Model(&model.Episode{}).
		Where("episode_id = ?", episodeID).
		Updates(map[string]any{
			"elapsed_steps": int32(elapsedSteps),
			"status":        status,
			"updated_at":    updatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}
