package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/liamgecko/fantasy-football/internal/domain/player"
	"github.com/liamgecko/fantasy-football/internal/usecase"
)

const defaultSeasonType = 2

type Handler struct {
	teamService    *usecase.TeamService
	athleteService *usecase.AthleteService
	playerService  *usecase.PlayerService
	logger         *slog.Logger
	validator      *validator.Validate
	now            func() time.Time
}

func NewHandler(
	teamService *usecase.TeamService,
	athleteService *usecase.AthleteService,
	playerService *usecase.PlayerService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		teamService:    teamService,
		athleteService: athleteService,
		playerService:  playerService,
		logger:         logger,
		validator:      validator.New(),
		now:            time.Now,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.teamService.ListTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, "teams", err)
		return
	}

	writeData(ctx, w, teams)
}

func (h *Handler) GetTeamDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamDetail")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	if teamID == "" {
		writeError(ctx, w, "team detail", fmt.Errorf("%w: missing team id", usecase.ErrInvalidInput))
		return
	}

	query := r.URL.Query()
	season := queryInt(query.Get("season"), player.CurrentSeason(h.now()))
	seasonType := queryInt(query.Get("seasonType"), defaultSeasonType)

	detail, err := h.teamService.GetTeamDetail(ctx, teamID, season, seasonType)
	if err != nil {
		h.logger.WarnContext(ctx, "get team detail failed",
			"team_id", teamID,
			"season", season,
			"season_type", seasonType,
			"error", err,
		)
		writeError(ctx, w, "team detail", err)
		return
	}

	writeDataWithMeta(ctx, w, detail, teamDetailMeta{
		Season:     season,
		SeasonType: seasonType,
	})
}

func (h *Handler) ListAthletes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAthletes")
	defer span.End()

	query := r.URL.Query()
	req := listAthletesRequest{
		Page:       queryInt(query.Get("page"), 0),
		Limit:      queryInt(query.Get("limit"), 0),
		ActiveOnly: query.Get("activeOnly") != "false",
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, "athletes", err)
		return
	}

	directory, err := h.athleteService.ListAthletes(ctx, usecase.ListAthletesInput{
		Page:       req.Page,
		Limit:      req.Limit,
		ActiveOnly: req.ActiveOnly,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list athletes failed", "error", err)
		writeError(ctx, w, "athletes", err)
		return
	}

	writeData(ctx, w, directory)
}

func (h *Handler) ListActivePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListActivePlayers")
	defer span.End()

	query := r.URL.Query()
	players, err := h.playerService.ListActivePlayers(ctx, usecase.ListActivePlayersInput{
		Position: query.Get("position"),
		Search:   query.Get("search"),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "list active players failed", "error", err)
		writeError(ctx, w, "players", err)
		return
	}

	writeData(ctx, w, players)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// queryInt parses an optional integer query parameter. Absent or
// malformed values fall back to the default.
func queryInt(value string, fallback int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

type listAthletesRequest struct {
	Page       int  `validate:"min=0"`
	Limit      int  `validate:"min=0,max=20000"`
	ActiveOnly bool `validate:"-"`
}

type teamDetailMeta struct {
	Season     int `json:"season"`
	SeasonType int `json:"seasonType"`
}
