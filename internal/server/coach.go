package server

import (
	"context"
	"errors"
	"net/http"
	"time"
	"wrestling-coach/internal/domain"
	"wrestling-coach/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

const CoachServicePath = "/wrestling.v1.CoachService/"

const (
	GetSeasonProcedure           = CoachServicePath + "GetSeason"
	SetRosterProcedure           = CoachServicePath + "SetRoster"
	RecruitProcedure             = CoachServicePath + "Recruit"
	SetLineupProcedure           = CoachServicePath + "SetLineup"
	ValidateLineupProcedure      = CoachServicePath + "ValidateLineup"
	AutoFillLineupProcedure      = CoachServicePath + "AutoFillLineup"
	SimulateDualProcedure        = CoachServicePath + "SimulateDual"
	StartLiveDualProcedure       = CoachServicePath + "StartLiveDual"
	ApplyModifierProcedure       = CoachServicePath + "ApplyModifier"
	SetStrategyProcedure         = CoachServicePath + "SetStrategy"
	AdvanceLiveBoutProcedure     = CoachServicePath + "AdvanceLiveBout"
	QuickFinishLiveDualProcedure = CoachServicePath + "QuickFinishLiveDual"
	AbandonLiveDualProcedure     = CoachServicePath + "AbandonLiveDual"
	GetStandingsProcedure        = CoachServicePath + "GetStandings"
	SimulateTournamentProcedure  = CoachServicePath + "SimulateTournament"
	RunPostseasonProcedure       = CoachServicePath + "RunPostseason"
	ResetSeasonProcedure         = CoachServicePath + "ResetSeason"
)

type Empty struct{}

type SetRosterRequest struct {
	Wrestlers []*domain.Wrestler `json:"wrestlers"`
}

type RecruitRequest struct {
	PerClass int `json:"per_class"`
}

type SetLineupRequest struct {
	WeightClass domain.WeightClass `json:"weight_class"`
	WrestlerID  string             `json:"wrestler_id"`
}

type ValidateLineupResponse struct {
	Ready   bool                 `json:"ready"`
	Missing []domain.WeightClass `json:"missing,omitempty"`
	Message string               `json:"message,omitempty"`
}

type AutoFillLineupResponse struct {
	Filled int `json:"filled"`
}

type OpponentRequest struct {
	Opponent     string `json:"opponent"`
	IsPostseason bool   `json:"is_postseason,omitempty"`
}

type ApplyModifierRequest struct {
	Modifier domain.ModifierKind `json:"modifier"`
}

type SetStrategyRequest struct {
	Strategy domain.Strategy `json:"strategy"`
}

type CoachServer struct {
	seasons *service.SeasonService
	logger  zerolog.Logger
}

func NewCoachServer(seasons *service.SeasonService, logger zerolog.Logger) *CoachServer {
	return &CoachServer{seasons: seasons, logger: logger}
}

// toConnectError maps service errors onto connect codes. Anything unknown is
// internal.
func toConnectError(err error) error {
	var lineupErr *service.LineupError
	switch {
	case errors.As(err, &lineupErr),
		errors.Is(err, service.ErrLiveDualActive),
		errors.Is(err, service.ErrNoLiveDual),
		errors.Is(err, service.ErrLiveDualIncomplete),
		errors.Is(err, service.ErrEmptyRoster),
		errors.Is(err, service.ErrNotEnoughTeams),
		errors.Is(err, service.ErrPostseasonPlayed):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, service.ErrInvalidModifier),
		errors.Is(err, service.ErrInvalidStrategy),
		errors.Is(err, service.ErrUnknownOpponent),
		errors.Is(err, service.ErrUnknownWrestler),
		errors.Is(err, service.ErrWrongClass),
		errors.Is(err, service.ErrInvalidRoster):
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

func unary[Req, Res any](s *CoachServer, procedure string, fn func(context.Context, *Req) (*Res, error)) http.Handler {
	return connect.NewUnaryHandler(procedure,
		func(ctx context.Context, req *connect.Request[Req]) (*connect.Response[Res], error) {
			start := time.Now()
			res, err := fn(ctx, req.Msg)
			if err != nil {
				s.logger.Warn().Err(err).Str("procedure", procedure).Msg("procedure failed")
				return nil, toConnectError(err)
			}
			s.logger.Debug().
				Str("procedure", procedure).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Msg("procedure completed")
			return connect.NewResponse(res), nil
		},
		connect.WithCodec(jsonCodec{}),
	)
}

// Handler returns the service path prefix and a handler serving every
// procedure under it.
func (s *CoachServer) Handler() (string, http.Handler) {
	mux := http.NewServeMux()
	mux.Handle(GetSeasonProcedure, unary(s, GetSeasonProcedure, s.GetSeason))
	mux.Handle(SetRosterProcedure, unary(s, SetRosterProcedure, s.SetRoster))
	mux.Handle(RecruitProcedure, unary(s, RecruitProcedure, s.Recruit))
	mux.Handle(SetLineupProcedure, unary(s, SetLineupProcedure, s.SetLineup))
	mux.Handle(ValidateLineupProcedure, unary(s, ValidateLineupProcedure, s.ValidateLineup))
	mux.Handle(AutoFillLineupProcedure, unary(s, AutoFillLineupProcedure, s.AutoFillLineup))
	mux.Handle(SimulateDualProcedure, unary(s, SimulateDualProcedure, s.SimulateDual))
	mux.Handle(StartLiveDualProcedure, unary(s, StartLiveDualProcedure, s.StartLiveDual))
	mux.Handle(ApplyModifierProcedure, unary(s, ApplyModifierProcedure, s.ApplyModifier))
	mux.Handle(SetStrategyProcedure, unary(s, SetStrategyProcedure, s.SetStrategy))
	mux.Handle(AdvanceLiveBoutProcedure, unary(s, AdvanceLiveBoutProcedure, s.AdvanceLiveBout))
	mux.Handle(QuickFinishLiveDualProcedure, unary(s, QuickFinishLiveDualProcedure, s.QuickFinishLiveDual))
	mux.Handle(AbandonLiveDualProcedure, unary(s, AbandonLiveDualProcedure, s.AbandonLiveDual))
	mux.Handle(GetStandingsProcedure, unary(s, GetStandingsProcedure, s.GetStandings))
	mux.Handle(SimulateTournamentProcedure, unary(s, SimulateTournamentProcedure, s.SimulateTournament))
	mux.Handle(RunPostseasonProcedure, unary(s, RunPostseasonProcedure, s.RunPostseason))
	mux.Handle(ResetSeasonProcedure, unary(s, ResetSeasonProcedure, s.ResetSeason))
	return CoachServicePath, mux
}

func (s *CoachServer) GetSeason(ctx context.Context, _ *Empty) (*service.SeasonView, error) {
	return s.seasons.Snapshot(ctx), nil
}

func (s *CoachServer) SetRoster(ctx context.Context, req *SetRosterRequest) (*service.SeasonView, error) {
	return s.seasons.SetRoster(ctx, req.Wrestlers)
}

func (s *CoachServer) Recruit(ctx context.Context, req *RecruitRequest) (*service.SeasonView, error) {
	return s.seasons.Recruit(ctx, req.PerClass)
}

func (s *CoachServer) SetLineup(ctx context.Context, req *SetLineupRequest) (*Empty, error) {
	if err := s.seasons.SetLineup(ctx, req.WeightClass, req.WrestlerID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

// ValidateLineup reports an unfillable lineup in the response body rather
// than as an error.
func (s *CoachServer) ValidateLineup(ctx context.Context, _ *Empty) (*ValidateLineupResponse, error) {
	err := s.seasons.ValidateLineup(ctx)
	if err == nil {
		return &ValidateLineupResponse{Ready: true}, nil
	}
	var lineupErr *service.LineupError
	if errors.As(err, &lineupErr) {
		return &ValidateLineupResponse{Missing: lineupErr.Missing, Message: lineupErr.Error()}, nil
	}
	return nil, err
}

func (s *CoachServer) AutoFillLineup(ctx context.Context, _ *Empty) (*AutoFillLineupResponse, error) {
	return &AutoFillLineupResponse{Filled: s.seasons.AutoFillLineup(ctx)}, nil
}

func (s *CoachServer) SimulateDual(ctx context.Context, req *OpponentRequest) (*service.DualOutcome, error) {
	return s.seasons.SimulateDual(ctx, req.Opponent)
}

func (s *CoachServer) StartLiveDual(ctx context.Context, req *OpponentRequest) (*service.LiveView, error) {
	return s.seasons.StartLiveDual(ctx, req.Opponent, req.IsPostseason)
}

func (s *CoachServer) ApplyModifier(ctx context.Context, req *ApplyModifierRequest) (*service.LiveView, error) {
	return s.seasons.ApplyModifier(ctx, req.Modifier)
}

func (s *CoachServer) SetStrategy(ctx context.Context, req *SetStrategyRequest) (*Empty, error) {
	if err := s.seasons.SetStrategy(ctx, req.Strategy); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (s *CoachServer) AdvanceLiveBout(ctx context.Context, _ *Empty) (*service.LiveStep, error) {
	return s.seasons.AdvanceLiveBout(ctx)
}

func (s *CoachServer) QuickFinishLiveDual(ctx context.Context, _ *Empty) (*service.DualOutcome, error) {
	return s.seasons.QuickFinishLiveDual(ctx)
}

func (s *CoachServer) AbandonLiveDual(ctx context.Context, _ *Empty) (*Empty, error) {
	if err := s.seasons.AbandonLiveDual(ctx); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (s *CoachServer) GetStandings(ctx context.Context, _ *Empty) (*service.StandingsView, error) {
	return s.seasons.Standings(ctx)
}

func (s *CoachServer) SimulateTournament(ctx context.Context, _ *Empty) (*domain.TournamentBracket, error) {
	return s.seasons.Tournament(ctx)
}

func (s *CoachServer) RunPostseason(ctx context.Context, _ *Empty) (*domain.PostseasonResult, error) {
	return s.seasons.RunPostseason(ctx)
}

func (s *CoachServer) ResetSeason(ctx context.Context, _ *Empty) (*service.SeasonView, error) {
	return s.seasons.ResetSeason(ctx), nil
}
