// Package server provides Connect RPC handlers for the drill service.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/at-ishikawa/verbdrill/internal/conjugation"
	"github.com/at-ishikawa/verbdrill/internal/learning"
	"github.com/at-ishikawa/verbdrill/internal/practice"
)

const (
	DrillServiceName = "verbdrill.v1.DrillService"

	DrillServiceGetOptionsProcedure   = "/" + DrillServiceName + "/GetOptions"
	DrillServiceStartRoundProcedure   = "/" + DrillServiceName + "/StartRound"
	DrillServiceSubmitAnswerProcedure = "/" + DrillServiceName + "/SubmitAnswer"
)

// maxStoredRounds bounds the rounds kept in memory. The oldest rounds are forgotten first.
const maxStoredRounds = 10000

// storedRound is a round started by StartRound and its session.
type storedRound struct {
	sessionID string
	round     *practice.Round
	startedAt time.Time
}

// DrillHandler serves practice rounds over Connect.
type DrillHandler struct {
	lexicon    *conjugation.Lexicon
	defaults   practice.Settings
	repository learning.AttemptRepository
	validator  *requestValidator
	now        func() time.Time
	newID      func() string

	mu     sync.Mutex
	rng    practice.Rand
	rounds map[string]*storedRound
	order  []string
}

// NewDrillHandler creates a DrillHandler. A nil repository disables attempt recording.
func NewDrillHandler(
	lexicon *conjugation.Lexicon,
	defaults practice.Settings,
	repository learning.AttemptRepository,
	rng practice.Rand,
) (*DrillHandler, error) {
	if err := defaults.Validate(lexicon); err != nil {
		return nil, fmt.Errorf("defaults.Validate() > %w", err)
	}
	v, err := newRequestValidator()
	if err != nil {
		return nil, fmt.Errorf("newRequestValidator() > %w", err)
	}
	return &DrillHandler{
		lexicon:    lexicon,
		defaults:   defaults,
		repository: repository,
		validator:  v,
		now:        time.Now,
		newID:      uuid.NewString,
		rng:        rng,
		rounds:     make(map[string]*storedRound),
	}, nil
}

// NewDrillServiceHandler builds the HTTP handler of every DrillService procedure.
// It returns the path to mount the handler on.
func NewDrillServiceHandler(h *DrillHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	getOptions := connect.NewUnaryHandler(DrillServiceGetOptionsProcedure, h.GetOptions, opts...)
	startRound := connect.NewUnaryHandler(DrillServiceStartRoundProcedure, h.StartRound, opts...)
	submitAnswer := connect.NewUnaryHandler(DrillServiceSubmitAnswerProcedure, h.SubmitAnswer, opts...)

	return "/" + DrillServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case DrillServiceGetOptionsProcedure:
			getOptions.ServeHTTP(w, r)
		case DrillServiceStartRoundProcedure:
			startRound.ServeHTTP(w, r)
		case DrillServiceSubmitAnswerProcedure:
			submitAnswer.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// GetOptions returns the values a client can choose from.
func (h *DrillHandler) GetOptions(
	ctx context.Context,
	req *connect.Request[GetOptionsRequest],
) (*connect.Response[GetOptionsResponse], error) {
	resp := &GetOptionsResponse{
		Verbs:            h.lexicon.Verbs(),
		DefaultVerbCount: h.defaults.VerbCount,
	}
	for _, p := range conjugation.Pronouns() {
		resp.Pronouns = append(resp.Pronouns, string(p))
	}
	for _, t := range conjugation.Tenses() {
		resp.Tenses = append(resp.Tenses, string(t))
	}
	for _, f := range conjugation.Forms() {
		resp.Forms = append(resp.Forms, string(f))
	}
	return connect.NewResponse(resp), nil
}

// StartRound generates a task from the requested settings.
// Unset fields fall back to the handler's default settings.
func (h *DrillHandler) StartRound(
	ctx context.Context,
	req *connect.Request[StartRoundRequest],
) (*connect.Response[StartRoundResponse], error) {
	if err := h.validator.validateRequest(req.Msg); err != nil {
		return nil, err
	}

	settings, err := h.settings(req.Msg)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	sessionID := req.Msg.SessionID
	if sessionID == "" {
		sessionID = h.newID()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	trainer, err := practice.NewTrainer(h.lexicon, settings, h.rng)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("practice.NewTrainer() > %w", err))
	}
	round, err := trainer.NextRound()
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("trainer.NextRound() > %w", err))
	}

	roundID := h.newID()
	h.storeRound(roundID, &storedRound{
		sessionID: sessionID,
		round:     round,
		startedAt: h.now(),
	})

	task := round.Task()
	return connect.NewResponse(&StartRoundResponse{
		RoundID:   roundID,
		SessionID: sessionID,
		Task:      newTaskMessage(task),
		Prompt:    task.String(),
	}), nil
}

// SubmitAnswer grades the answer of a started round and records the attempt.
// A round accepts a single answer.
func (h *DrillHandler) SubmitAnswer(
	ctx context.Context,
	req *connect.Request[SubmitAnswerRequest],
) (*connect.Response[SubmitAnswerResponse], error) {
	if err := h.validator.validateRequest(req.Msg); err != nil {
		return nil, err
	}

	h.mu.Lock()
	stored, ok := h.rounds[req.Msg.RoundID]
	if !ok {
		h.mu.Unlock()
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("round %q not found", req.Msg.RoundID))
	}
	result, err := stored.round.Submit(req.Msg.Answer)
	answeredAt := h.now()
	h.mu.Unlock()

	if errors.Is(err, practice.ErrAlreadyGraded) {
		return nil, connect.NewError(connect.CodeFailedPrecondition, fmt.Errorf("round %q: %w", req.Msg.RoundID, err))
	}
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("round.Submit() > %w", err))
	}

	if h.repository != nil {
		attempt := learning.NewAttempt(stored.sessionID, stored.round.Task(), result, answeredAt.Sub(stored.startedAt), answeredAt)
		if err := h.repository.Create(ctx, &attempt); err != nil {
			return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("record attempt: %w", err))
		}
		slog.Default().Debug("recorded attempt", "session_id", stored.sessionID, "round_id", req.Msg.RoundID, "correct", result.Correct)
	}

	return connect.NewResponse(&SubmitAnswerResponse{
		Correct:  result.Correct,
		Expected: result.Expected,
		Given:    result.Given,
	}), nil
}

func (h *DrillHandler) settings(req *StartRoundRequest) (practice.Settings, error) {
	verbCount := req.VerbCount
	if verbCount == 0 {
		verbCount = h.defaults.VerbCount
	}
	settings, err := practice.ParseSettings(verbCount, req.Pronouns, req.Tenses, req.Forms)
	if err != nil {
		return practice.Settings{}, fmt.Errorf("practice.ParseSettings() > %w", err)
	}
	if len(req.Pronouns) == 0 {
		settings.Pronouns = h.defaults.Pronouns
	}
	if len(req.Tenses) == 0 {
		settings.Tenses = h.defaults.Tenses
	}
	if len(req.Forms) == 0 {
		settings.Forms = h.defaults.Forms
	}
	return settings, nil
}

// storeRound must be called with h.mu held.
func (h *DrillHandler) storeRound(id string, round *storedRound) {
	h.rounds[id] = round
	h.order = append(h.order, id)
	if len(h.order) > maxStoredRounds {
		delete(h.rounds, h.order[0])
		h.order = h.order[1:]
	}
}
