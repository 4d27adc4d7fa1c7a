package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"peels/internal/auth"
	"peels/internal/models"
	"peels/internal/storage"
	"peels/internal/usecases"
)

const (
	defaultBoard = 10
	maxBoard     = 100
)

type LeaderboardHandler struct {
	boards  BoardStore
	friends FriendStore
	log     *zap.Logger
}

func NewLeaderboardHandler(boards BoardStore, friends FriendStore, log *zap.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{boards: boards, friends: friends, log: log}
}

type board struct {
	Period string               `json:"period"`
	Scope  string               `json:"scope"`
	Top    []models.Leaderboard `json:"top"`
	Me     *models.Leaderboard  `json:"me,omitempty"`
}

// GET /leaderboard?period=weekly|monthly|all_time&limit=&scope=friends
//
// The friends scope ranks the caller and their friends among themselves.
func (h *LeaderboardHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/leaderboard.go HandleGet"
	ctx := r.Context()
	userID := auth.UserID(ctx)

	period := r.URL.Query().Get("period")
	if period == "" {
		period = models.BoardWeekly
	}
	if !usecases.ValidBoardPeriod(period) {
		writeError(w, h.log, op, fmt.Errorf("%w: unknown period %q", usecases.ErrInvalidInput, period))
		return
	}

	limit, err := queryInt(r, "limit", defaultBoard, maxBoard)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	if limit == 0 {
		limit = defaultBoard
	}

	resp := board{Period: period, Scope: "global"}

	var only []int
	if r.URL.Query().Get("scope") == "friends" {
		resp.Scope = "friends"
		if only, err = h.friends.FriendIDs(ctx, userID); err != nil {
			writeError(w, h.log, op, err)
			return
		}
		only = append(only, userID)
	}

	if only == nil {
		resp.Top, err = h.boards.TopLeaderboard(ctx, period, limit, nil)
	} else {
		// rank the whole circle before cutting to limit
		resp.Top, err = h.boards.TopLeaderboard(ctx, period, len(only), only)
		if err == nil {
			resp.Top = usecases.RankBoard(resp.Top)
			if len(resp.Top) > limit {
				resp.Top = resp.Top[:limit]
			}
		}
	}
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	me, err := h.boards.UserLeaderboard(ctx, period, userID)
	switch {
	case err == nil:
		if only != nil {
			me.Rank = circleRank(resp.Top, me)
		}
		resp.Me = &me
	case !errors.Is(err, storage.ErrNotFound):
		writeError(w, h.log, op, err)
		return
	}

	writeJSON(w, h.log, op, http.StatusOK, resp)
}

// circleRank finds me's dense rank among ranked rows, or the rank after the
// last row with a higher score when me was cut off.
func circleRank(ranked []models.Leaderboard, me models.Leaderboard) int {
	rank := 1
	for _, l := range ranked {
		if l.UserID == me.UserID {
			return l.Rank
		}
		if l.Score > me.Score {
			rank = l.Rank + 1
		}
	}
	return rank
}
