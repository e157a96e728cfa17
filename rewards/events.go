// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package rewards computes payout amounts for gameplay events.
package rewards

import "github.com/pkg/errors"

// Category tags the reward path that produced a payout.
type Category string

const (
	CategoryRace       Category = "race"
	CategoryChallenge  Category = "challenge"
	CategoryTournament Category = "tournament"
	CategoryWelcome    Category = "welcome"
	CategoryStaking    Category = "staking"
)

// Difficulty of a daily challenge. The set is closed.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether the difficulty is a member of the closed set.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Placement of a tournament result. The set is closed.
type Placement string

const (
	PlacementParticipation Placement = "participation"
	PlacementWinner        Placement = "winner"
)

// Valid reports whether the placement is a member of the closed set.
func (p Placement) Valid() bool {
	switch p {
	case PlacementParticipation, PlacementWinner:
		return true
	}
	return false
}

// Rarity tier of a staked car. The set is closed.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Valid reports whether the rarity is a member of the closed set.
func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

// ErrUnknownVariant marks a value outside one of the closed enum sets.
var ErrUnknownVariant = errors.New("unknown variant")

// Event is a gameplay event eligible for a reward. The variant set is closed:
// RaceResult, ChallengeResult, TournamentResult, WelcomeGrant, StakingYield.
type Event interface {
	// Category returns the reward category of the event.
	Category() Category
	// RefID returns the correlating id recorded in the audit log.
	RefID() uint64

	isEvent()
}

// RaceResult carries the per-race statistics the race formula consumes.
// LapTime and Score are accepted for wire compatibility but do not affect
// the payout.
type RaceResult struct {
	RaceID           uint64 `json:"raceId"`
	Completed        bool   `json:"completed"`
	Won              bool   `json:"won"`
	Distance         uint64 `json:"distance"`
	ObstaclesAvoided uint64 `json:"obstaclesAvoided"`
	BonusesCollected uint64 `json:"bonusesCollected"`
	LapTime          uint64 `json:"lapTime"`
	Score            uint64 `json:"score"`
}

func (RaceResult) Category() Category { return CategoryRace }
func (r RaceResult) RefID() uint64    { return r.RaceID }
func (RaceResult) isEvent()           {}

// ChallengeResult reports a completed daily challenge.
type ChallengeResult struct {
	Difficulty  Difficulty `json:"difficulty"`
	ChallengeID uint64     `json:"challengeId"`
}

func (ChallengeResult) Category() Category { return CategoryChallenge }
func (c ChallengeResult) RefID() uint64    { return c.ChallengeID }
func (ChallengeResult) isEvent()           {}

// TournamentResult reports a tournament outcome.
type TournamentResult struct {
	Placement    Placement `json:"placement"`
	TournamentID uint64    `json:"tournamentId"`
}

func (TournamentResult) Category() Category { return CategoryTournament }
func (t TournamentResult) RefID() uint64    { return t.TournamentID }
func (TournamentResult) isEvent()           {}

// WelcomeGrant is the unconditional one-shot bonus for a new player.
type WelcomeGrant struct{}

func (WelcomeGrant) Category() Category { return CategoryWelcome }
func (WelcomeGrant) RefID() uint64      { return 0 }
func (WelcomeGrant) isEvent()           {}

// StakingYield reports accrued staking hours for a car. Hours is
// caller-supplied and untrusted; oversized values fail closed via the
// checked multiply.
type StakingYield struct {
	Rarity     Rarity `json:"rarity"`
	Hours      uint64 `json:"hours"`
	PositionID uint64 `json:"positionId"`
}

func (StakingYield) Category() Category { return CategoryStaking }
func (s StakingYield) RefID() uint64    { return s.PositionID }
func (StakingYield) isEvent()           {}
