package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/timf34/cpr-appropriation/internal/app/observe"
	"github.com/timf34/cpr-appropriation/internal/app/ports"
	"github.com/timf34/cpr-appropriation/internal/app/replay"
	"github.com/timf34/cpr-appropriation/internal/app/sim"
	"github.com/timf34/cpr-appropriation/internal/app/status"
	"github.com/timf34/cpr-appropriation/internal/domain/commons"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	SimUC     sim.UseCase
	ObserveUC observe.UseCase
	StatusUC  status.UseCase
	ReplayUC  replay.UseCase
	KPI       kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	env := s.Group("/api/env")
	env.POST("", h.create)
	env.POST("/:id/reset", h.reset)
	env.POST("/:id/step", h.step)
	env.GET("/:id/observation", h.observation)
	env.GET("/:id/render", h.render)
	env.GET("/:id/status", h.status)
	env.GET("/:id/replay", h.replay)

	s.GET("/ops/kpi", h.kpi)
}

type stepRequest struct {
	Actions []int `json:"actions"`
}

func (h Handler) create(c context.Context, ctx *app.RequestContext) {
	var body sim.CreateRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.SimUC.Create(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) reset(c context.Context, ctx *app.RequestContext) {
	resp, err := h.SimUC.Reset(c, sim.ResetRequest{EpisodeID: ctx.Param("id")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) step(c context.Context, ctx *app.RequestContext) {
	var body stepRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.SimUC.Step(c, sim.StepRequest{
		EpisodeID: ctx.Param("id"),
		Actions:   body.Actions,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) observation(c context.Context, ctx *app.RequestContext) {
	agent, err := strconv.Atoi(string(ctx.Query("agent")))
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_agent", "agent must be an integer index")
		return
	}
	resp, err := h.ObserveUC.Execute(c, observe.Request{
		EpisodeID: ctx.Param("id"),
		Agent:     agent,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) render(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ObserveUC.Render(c, observe.RenderRequest{EpisodeID: ctx.Param("id")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	resp, err := h.StatusUC.Execute(c, status.Request{EpisodeID: ctx.Param("id")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	fromStep, _ := strconv.Atoi(string(ctx.Query("from_step")))
	toStep, _ := strconv.Atoi(string(ctx.Query("to_step")))
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		EpisodeID: ctx.Param("id"),
		FromStep:  fromStep,
		ToStep:    toStep,
		Limit:     limit,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, sim.ErrInvalidRequest),
		errors.Is(err, observe.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, commons.ErrInvalidConfig),
		errors.Is(err, commons.ErrGridTooSmall):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_config", err.Error())
	case errors.Is(err, commons.ErrActionCount):
		writeErrorBody(ctx, consts.StatusBadRequest, "action_count_mismatch", err.Error())
	case errors.Is(err, commons.ErrInvalidAction):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_action", err.Error())
	case errors.Is(err, commons.ErrAgentOutOfRange):
		writeErrorBody(ctx, consts.StatusBadRequest, "agent_out_of_range", err.Error())
	case errors.Is(err, commons.ErrEpisodeDone):
		writeErrorBody(ctx, consts.StatusConflict, "episode_done", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
