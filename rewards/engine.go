// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math/bits"

	"github.com/pkg/errors"

	"github.com/speedyracing/speedy/rates"
)

// ErrArithmeticOverflow marks a reward computation whose checked add or
// multiply would exceed the uint64 range. The whole computation fails;
// no saturation, no partial credit.
var ErrArithmeticOverflow = errors.New("arithmetic overflow")

// Compute maps a gameplay event and the current rate table to a payout
// amount. It is a pure function with no ledger or custody dependency.
func Compute(ev Event, r rates.Table) (uint64, error) {
	switch ev := ev.(type) {
	case RaceResult:
		return raceReward(ev, r)
	case ChallengeResult:
		return challengeReward(ev, r)
	case TournamentResult:
		return tournamentReward(ev, r)
	case WelcomeGrant:
		return r.WelcomeBonus, nil
	case StakingYield:
		return stakingReward(ev, r)
	default:
		// the Event set is sealed; this is unreachable from outside the package
		return 0, errors.WithMessage(ErrUnknownVariant, "event")
	}
}

func raceReward(ev RaceResult, r rates.Table) (total uint64, err error) {
	ok := true
	if ev.Completed {
		if total, ok = checkedAdd(total, r.RaceCompletion); !ok {
			return 0, ErrArithmeticOverflow
		}
	}
	if ev.Won {
		if total, ok = checkedAdd(total, r.RaceWin); !ok {
			return 0, ErrArithmeticOverflow
		}
	}

	distanceBonus, ok := checkedMul(ev.Distance/100, r.DistancePer100)
	if !ok {
		return 0, ErrArithmeticOverflow
	}
	if total, ok = checkedAdd(total, distanceBonus); !ok {
		return 0, ErrArithmeticOverflow
	}

	obstacleBonus, ok := checkedMul(ev.ObstaclesAvoided, r.ObstacleAvoided)
	if !ok {
		return 0, ErrArithmeticOverflow
	}
	if total, ok = checkedAdd(total, obstacleBonus); !ok {
		return 0, ErrArithmeticOverflow
	}

	bonusReward, ok := checkedMul(ev.BonusesCollected, r.BonusCollected)
	if !ok {
		return 0, ErrArithmeticOverflow
	}
	if total, ok = checkedAdd(total, bonusReward); !ok {
		return 0, ErrArithmeticOverflow
	}
	return total, nil
}

func challengeReward(ev ChallengeResult, r rates.Table) (uint64, error) {
	switch ev.Difficulty {
	case DifficultyEasy:
		return r.DailyChallengeEasy, nil
	case DifficultyMedium:
		return r.DailyChallengeMedium, nil
	case DifficultyHard:
		return r.DailyChallengeHard, nil
	default:
		return 0, errors.WithMessage(ErrUnknownVariant, "difficulty")
	}
}

func tournamentReward(ev TournamentResult, r rates.Table) (uint64, error) {
	switch ev.Placement {
	case PlacementParticipation:
		return r.TournamentParticipation, nil
	case PlacementWinner:
		return r.TournamentWinner, nil
	default:
		return 0, errors.WithMessage(ErrUnknownVariant, "placement")
	}
}

func stakingReward(ev StakingYield, r rates.Table) (uint64, error) {
	var hourly uint64
	switch ev.Rarity {
	case RarityCommon:
		hourly = r.StakingPerHourCommon
	case RarityRare:
		hourly = r.StakingPerHourRare
	case RarityEpic:
		hourly = r.StakingPerHourEpic
	case RarityLegendary:
		hourly = r.StakingPerHourLegendary
	default:
		return 0, errors.WithMessage(ErrUnknownVariant, "rarity")
	}

	amount, ok := checkedMul(hourly, ev.Hours)
	if !ok {
		return 0, ErrArithmeticOverflow
	}
	return amount, nil
}

func checkedAdd(a, b uint64) (uint64, bool) {
	sum, carry := bits.Add64(a, b, 0)
	return sum, carry == 0
}

func checkedMul(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi == 0
}
