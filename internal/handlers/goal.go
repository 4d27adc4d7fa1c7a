package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"peels/internal/auth"
	"peels/internal/models"
	"peels/internal/storage"
	"peels/internal/usecases"
)

type GoalHandler struct {
	goals    GoalStore
	tracker  GoalTracker
	validate *validator.Validate
	log      *zap.Logger
}

func NewGoalHandler(goals GoalStore, tracker GoalTracker, v *validator.Validate, log *zap.Logger) *GoalHandler {
	return &GoalHandler{goals: goals, tracker: tracker, validate: v, log: log}
}

func (h *GoalHandler) own(ctx context.Context, r *http.Request) (models.Goal, error) {
	id, err := pathID(r, "id")
	if err != nil {
		return models.Goal{}, err
	}
	g, err := h.goals.GetGoal(ctx, id)
	if err != nil {
		return models.Goal{}, err
	}
	if g.UserID != auth.UserID(ctx) {
		return models.Goal{}, fmt.Errorf("goal %d: %w", id, usecases.ErrForbidden)
	}
	return g, nil
}

// GET /goals
func (h *GoalHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/goal.go HandleList"

	goals, err := h.goals.ListGoals(r.Context(), auth.UserID(r.Context()), false)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	for i := range goals {
		if err := h.tracker.Progress(r.Context(), &goals[i]); err != nil {
			writeError(w, h.log, op, err)
			return
		}
	}
	writeJSON(w, h.log, op, http.StatusOK, goals)
}

// POST /goals. Rewards scale with period and target.
func (h *GoalHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/goal.go HandleCreate"
	userID := auth.UserID(r.Context())

	var in models.GoalInput
	if err := decode(w, r, h.validate, &in); err != nil {
		writeError(w, h.log, op, err)
		return
	}

	g := models.Goal{UserID: userID}
	applyGoal(&g, in)
	if err := h.goals.CreateGoal(r.Context(), &g); err != nil {
		writeError(w, h.log, op, err)
		return
	}

	h.settle(r.Context(), op, &g)
	writeJSON(w, h.log, op, http.StatusCreated, g)
}

// GET /goals/{id}
func (h *GoalHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/goal.go HandleGet"

	g, err := h.own(r.Context(), r)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	if err := h.tracker.Progress(r.Context(), &g); err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusOK, g)
}

// PUT /goals/{id}. Completed goals are frozen.
func (h *GoalHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/goal.go HandleUpdate"

	var in models.GoalInput
	if err := decode(w, r, h.validate, &in); err != nil {
		writeError(w, h.log, op, err)
		return
	}

	g, err := h.own(r.Context(), r)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	if g.Completed {
		writeError(w, h.log, op, fmt.Errorf("goal %d is completed: %w", g.ID, storage.ErrConflict))
		return
	}

	applyGoal(&g, in)
	if err := h.goals.UpdateGoal(r.Context(), &g); err != nil {
		writeError(w, h.log, op, err)
		return
	}

	h.settle(r.Context(), op, &g)
	writeJSON(w, h.log, op, http.StatusOK, g)
}

// DELETE /goals/{id}
func (h *GoalHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/goal.go HandleDelete"

	g, err := h.own(r.Context(), r)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	if err := h.goals.DeleteGoal(r.Context(), g.ID); err != nil {
		writeError(w, h.log, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// settle completes g right away when entries already written reach its
// target, then refreshes its progress.
func (h *GoalHandler) settle(ctx context.Context, op string, g *models.Goal) {
	done, err := h.tracker.Evaluate(ctx, g.UserID)
	if err != nil {
		h.log.Error("goal evaluation failed", zap.String("op", op), zap.Int("goal_id", g.ID), zap.Error(err))
	}
	for _, d := range done {
		if d.ID == g.ID {
			g.Completed, g.CompletedAt = true, d.CompletedAt
		}
	}
	if err := h.tracker.Progress(ctx, g); err != nil {
		h.log.Warn("goal progress failed", zap.String("op", op), zap.Int("goal_id", g.ID), zap.Error(err))
	}
}

func applyGoal(g *models.Goal, in models.GoalInput) {
	g.Title = in.Title
	g.Description = in.Description
	g.Period = in.Period
	g.Target = in.Target
	g.RewardXP, g.RewardBananas = usecases.DefaultGoalReward(in.Period, in.Target)
}
