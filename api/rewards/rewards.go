// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package rewards exposes the reward paths of the engine over http.
package rewards

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/speedyracing/speedy/api/restutil"
	"github.com/speedyracing/speedy/ledger"
	"github.com/speedyracing/speedy/rewards"
	"github.com/speedyracing/speedy/speedy"
)

type Rewards struct {
	eng *ledger.Ledger
}

func New(eng *ledger.Ledger) *Rewards {
	return &Rewards{eng}
}

// PayoutResponse reports a paid reward.
type PayoutResponse struct {
	Player   speedy.Address   `json:"player"`
	Category rewards.Category `json:"category"`
	Amount   uint64           `json:"amount"`
}

// RaceRequest submits race statistics for a player.
type RaceRequest struct {
	Player speedy.Address `json:"player"`
	rewards.RaceResult
}

func (rw *Rewards) handleRace(w http.ResponseWriter, req *http.Request) error {
	var r RaceRequest
	if err := restutil.ParseJSON(req.Body, &r); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	amount, err := rw.eng.AwardRace(r.Player, r.RaceResult)
	if err != nil {
		return restutil.ConvertEngineError(err)
	}
	return restutil.WriteJSON(w, &PayoutResponse{r.Player, rewards.CategoryRace, amount})
}

// ChallengeRequest submits a completed daily challenge for a player.
type ChallengeRequest struct {
	Player speedy.Address `json:"player"`
	rewards.ChallengeResult
}

func (rw *Rewards) handleChallenge(w http.ResponseWriter, req *http.Request) error {
	var r ChallengeRequest
	if err := restutil.ParseJSON(req.Body, &r); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	amount, err := rw.eng.AwardChallenge(r.Player, r.ChallengeResult)
	if err != nil {
		return restutil.ConvertEngineError(err)
	}
	return restutil.WriteJSON(w, &PayoutResponse{r.Player, rewards.CategoryChallenge, amount})
}

// TournamentRequest submits a tournament outcome for a player.
type TournamentRequest struct {
	Player speedy.Address `json:"player"`
	rewards.TournamentResult
}

func (rw *Rewards) handleTournament(w http.ResponseWriter, req *http.Request) error {
	var r TournamentRequest
	if err := restutil.ParseJSON(req.Body, &r); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	amount, err := rw.eng.AwardTournament(r.Player, r.TournamentResult)
	if err != nil {
		return restutil.ConvertEngineError(err)
	}
	return restutil.WriteJSON(w, &PayoutResponse{r.Player, rewards.CategoryTournament, amount})
}

// WelcomeRequest claims the welcome bonus for a player.
type WelcomeRequest struct {
	Player speedy.Address `json:"player"`
}

func (rw *Rewards) handleWelcome(w http.ResponseWriter, req *http.Request) error {
	var r WelcomeRequest
	if err := restutil.ParseJSON(req.Body, &r); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	amount, err := rw.eng.AwardWelcomeBonus(r.Player)
	if err != nil {
		return restutil.ConvertEngineError(err)
	}
	return restutil.WriteJSON(w, &PayoutResponse{r.Player, rewards.CategoryWelcome, amount})
}

// StakingRequest claims accrued staking yield for a player.
type StakingRequest struct {
	Player speedy.Address `json:"player"`
	rewards.StakingYield
}

func (rw *Rewards) handleStaking(w http.ResponseWriter, req *http.Request) error {
	var r StakingRequest
	if err := restutil.ParseJSON(req.Body, &r); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	amount, err := rw.eng.AwardStaking(r.Player, r.StakingYield)
	if err != nil {
		return restutil.ConvertEngineError(err)
	}
	return restutil.WriteJSON(w, &PayoutResponse{r.Player, rewards.CategoryStaking, amount})
}

func (rw *Rewards) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/race").
		Methods(http.MethodPost).
		Name("POST /rewards/race").
		HandlerFunc(restutil.WrapHandlerFunc(rw.handleRace))
	sub.Path("/challenge").
		Methods(http.MethodPost).
		Name("POST /rewards/challenge").
		HandlerFunc(restutil.WrapHandlerFunc(rw.handleChallenge))
	sub.Path("/tournament").
		Methods(http.MethodPost).
		Name("POST /rewards/tournament").
		HandlerFunc(restutil.WrapHandlerFunc(rw.handleTournament))
	sub.Path("/welcome").
		Methods(http.MethodPost).
		Name("POST /rewards/welcome").
		HandlerFunc(restutil.WrapHandlerFunc(rw.handleWelcome))
	sub.Path("/staking").
		Methods(http.MethodPost).
		Name("POST /rewards/staking").
		HandlerFunc(restutil.WrapHandlerFunc(rw.handleStaking))
}
