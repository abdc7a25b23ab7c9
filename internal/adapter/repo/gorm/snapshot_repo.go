package gormrepo

import (
	"context"
	"errors"

	"github.com/timf34/cpr-appropriation/internal/adapter/repo/gorm/model"
	"github.com/timf34/cpr-appropriation/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GridSnapshotRepo struct {
	db *gorm.DB
}

func NewGridSnapshotRepo(db *gorm.DB) GridSnapshotRepo {
	return GridSnapshotRepo{db: db}
}

func (r GridSnapshotRepo) Save(ctx context.Context, rec ports.GridSnapshotRecord) error {
	m := model.GridSnapshot{
		EpisodeID: rec.EpisodeID,
		Step:      int32(rec.Step),
		Width:     int32(rec.Width),
		Height:    int32(rec.Height),
		Cells:     rec.Cells,
		TakenAt:   rec.TakenAt,
	}
	return getDBFromCtx(ctx, r.db).Create(&m).Error
}

func (r GridSnapshotRepo) Latest(ctx context.Context, episodeID string) (ports.GridSnapshotRecord, error) {
	var m model.GridSnapshot
	err := getDBFromCtx(ctx, r.db).
		Where("episode_id = ?", episodeID).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "step"}, Desc: true}},
		}).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.GridSnapshotRecord{}, ports.ErrNotFound
		}
		return ports.GridSnapshotRecord{}, err
	}
	return ports.GridSnapshotRecord{
		EpisodeID: m.EpisodeID,
		Step:      int(m.Step),
		Width:     int(m.Width),
		Height:    int(m.Height),
		Cells:     m.Cells,
		TakenAt:   m.TakenAt,
	}, nil
}
