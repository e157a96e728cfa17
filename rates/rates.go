// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package rates holds the reward price list of the ledger.
package rates

import "github.com/speedyracing/speedy/speedy"

// Table is the price list for every reward-producing event, in smallest token
// units. Each field is independent; zero disables its category. The layout is
// fixed for storage compatibility: new categories must be appended, never
// inserted.
type Table struct {
	RaceCompletion          uint64 `json:"raceCompletion"`
	RaceWin                 uint64 `json:"raceWin"`
	DistancePer100          uint64 `json:"distancePer100"`
	ObstacleAvoided         uint64 `json:"obstacleAvoided"`
	BonusCollected          uint64 `json:"bonusCollected"`
	DailyChallengeEasy      uint64 `json:"dailyChallengeEasy"`
	DailyChallengeMedium    uint64 `json:"dailyChallengeMedium"`
	DailyChallengeHard      uint64 `json:"dailyChallengeHard"`
	TournamentParticipation uint64 `json:"tournamentParticipation"`
	TournamentWinner        uint64 `json:"tournamentWinner"`
	WelcomeBonus            uint64 `json:"welcomeBonus"`
	StakingPerHourCommon    uint64 `json:"stakingPerHourCommon"`
	StakingPerHourRare      uint64 `json:"stakingPerHourRare"`
	StakingPerHourEpic      uint64 `json:"stakingPerHourEpic"`
	StakingPerHourLegendary uint64 `json:"stakingPerHourLegendary"`
}

// Defaults returns the initial price list installed at ledger creation.
func Defaults() Table {
	return Table{
		RaceCompletion:          100 * speedy.TokenUnit,
		RaceWin:                 50 * speedy.TokenUnit,
		DistancePer100:          speedy.TokenUnit / 2,
		ObstacleAvoided:         speedy.TokenUnit / 5,
		BonusCollected:          speedy.TokenUnit / 2,
		DailyChallengeEasy:      50 * speedy.TokenUnit,
		DailyChallengeMedium:    100 * speedy.TokenUnit,
		DailyChallengeHard:      200 * speedy.TokenUnit,
		TournamentParticipation: 100 * speedy.TokenUnit,
		TournamentWinner:        1000 * speedy.TokenUnit,
		WelcomeBonus:            100 * speedy.TokenUnit,
		StakingPerHourCommon:    1 * speedy.TokenUnit,
		StakingPerHourRare:      3 * speedy.TokenUnit,
		StakingPerHourEpic:      10 * speedy.TokenUnit,
		StakingPerHourLegendary: 25 * speedy.TokenUnit,
	}
}
