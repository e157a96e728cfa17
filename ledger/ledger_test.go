// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speedyracing/speedy/kv"
	"github.com/speedyracing/speedy/logdb"
	"github.com/speedyracing/speedy/rates"
	"github.com/speedyracing/speedy/rewards"
	"github.com/speedyracing/speedy/speedy"
	"github.com/speedyracing/speedy/token"
	"github.com/speedyracing/speedy/vault"
)

var (
	admin  = speedy.BytesToAddress([]byte("admin"))
	player = speedy.BytesToAddress([]byte("player"))
)

const initialSupply = 1_000_000 * 1_000_000 // one million whole tokens

func newTestLedger(t *testing.T) *Ledger {
	store, err := kv.NewMem()
	require.NoError(t, err)
	logs, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(logs.Close)

	l, err := New(store, logs)
	require.NoError(t, err)
	l.now = func() uint64 { return 1700000000 }
	return l
}

func newFundedLedger(t *testing.T) *Ledger {
	l := newTestLedger(t)
	require.NoError(t, l.Initialize(admin, speedy.AssetID, initialSupply))
	require.NoError(t, l.FundPool(admin, initialSupply/2))
	return l
}

func TestInitialize(t *testing.T) {
	l := newTestLedger(t)

	_, err := l.State()
	assert.ErrorIs(t, err, ErrNotInitialized)

	require.NoError(t, l.Initialize(admin, speedy.AssetID, initialSupply))

	st, err := l.State()
	require.NoError(t, err)
	assert.Equal(t, admin, st.Admin)
	assert.Equal(t, speedy.AssetID, st.AssetID)
	assert.Equal(t, st.Proof.Address(), st.Pool)
	assert.Equal(t, rates.Defaults(), st.Rates)
	assert.Zero(t, st.CumulativeDistributed)

	adminBalance, err := l.BalanceOf(admin)
	require.NoError(t, err)
	assert.Equal(t, uint64(initialSupply), adminBalance)

	poolBalance, err := l.PoolBalance()
	require.NoError(t, err)
	assert.Zero(t, poolBalance)
}

func TestInitializeTwice(t *testing.T) {
	l := newTestLedger(t)
	require.NoError(t, l.Initialize(admin, speedy.AssetID, initialSupply))

	other := speedy.BytesToAddress([]byte("other"))
	err := l.Initialize(other, speedy.AssetID, 42)
	assert.ErrorIs(t, err, ErrAlreadyInitialized)

	// the first recorded state is preserved untouched
	st, err := l.State()
	require.NoError(t, err)
	assert.Equal(t, admin, st.Admin)
}

func TestReopen(t *testing.T) {
	store, err := kv.NewMem()
	require.NoError(t, err)
	logs, err := logdb.NewMem()
	require.NoError(t, err)
	defer logs.Close()

	l, err := New(store, logs)
	require.NoError(t, err)
	require.NoError(t, l.Initialize(admin, speedy.AssetID, initialSupply))
	require.NoError(t, l.FundPool(admin, 1000))

	// a fresh engine over the same store restores the control record
	reopened, err := New(store, logs)
	require.NoError(t, err)

	st, err := reopened.State()
	require.NoError(t, err)
	assert.Equal(t, admin, st.Admin)

	poolBalance, err := reopened.PoolBalance()
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), poolBalance)
}

func TestFundPool(t *testing.T) {
	l := newTestLedger(t)
	require.NoError(t, l.Initialize(admin, speedy.AssetID, initialSupply))

	require.NoError(t, l.FundPool(admin, 5000))

	poolBalance, err := l.PoolBalance()
	require.NoError(t, err)
	assert.Equal(t, uint64(5000), poolBalance)

	err = l.FundPool(player, 1)
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = l.FundPool(admin, initialSupply)
	assert.ErrorIs(t, err, token.ErrInsufficientFunds)
}

func TestAwardRace(t *testing.T) {
	l := newFundedLedger(t)

	amount, err := l.AwardRace(player, rewards.RaceResult{
		RaceID:           7,
		Completed:        true,
		Won:              true,
		Distance:         520,
		ObstaclesAvoided: 3,
		BonusesCollected: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(153_600_000), amount)

	balance, err := l.BalanceOf(player)
	require.NoError(t, err)
	assert.Equal(t, amount, balance)

	st, err := l.State()
	require.NoError(t, err)
	assert.Equal(t, amount, st.CumulativeDistributed)

	records, err := l.logs.FilterRewards(context.Background(), &logdb.RewardFilter{Player: &player})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, amount, records[0].Amount)
	assert.Equal(t, "race", records[0].Category)
	assert.Equal(t, uint64(7), records[0].RefID)
	assert.Equal(t, uint64(1700000000), records[0].Timestamp)
}

func TestAwardInsufficientPool(t *testing.T) {
	l := newTestLedger(t)
	require.NoError(t, l.Initialize(admin, speedy.AssetID, initialSupply))
	// pool left empty on purpose

	_, err := l.AwardWelcomeBonus(player)
	assert.ErrorIs(t, err, vault.ErrInsufficientPoolBalance)

	// the failed payout left no trace in the audit log
	records, err := l.logs.FilterRewards(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, records)

	balance, err := l.BalanceOf(player)
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestAwardPaths(t *testing.T) {
	l := newFundedLedger(t)

	amount, err := l.AwardChallenge(player, rewards.ChallengeResult{Difficulty: rewards.DifficultyHard, ChallengeID: 1})
	require.NoError(t, err)
	assert.Equal(t, uint64(200_000_000), amount)

	amount, err = l.AwardTournament(player, rewards.TournamentResult{Placement: rewards.PlacementWinner, TournamentID: 2})
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000_000), amount)

	amount, err = l.AwardWelcomeBonus(player)
	require.NoError(t, err)
	assert.Equal(t, uint64(100_000_000), amount)

	amount, err = l.AwardStaking(player, rewards.StakingYield{Rarity: rewards.RarityEpic, Hours: 3, PositionID: 9})
	require.NoError(t, err)
	assert.Equal(t, uint64(30_000_000), amount)

	st, err := l.State()
	require.NoError(t, err)
	assert.Equal(t, uint64(1_330_000_000), st.CumulativeDistributed)

	records, err := l.logs.FilterRewards(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestAwardRejectsUnknownVariants(t *testing.T) {
	l := newFundedLedger(t)

	_, err := l.AwardChallenge(player, rewards.ChallengeResult{Difficulty: "nightmare"})
	assert.ErrorIs(t, err, rewards.ErrUnknownVariant)

	_, err = l.AwardTournament(player, rewards.TournamentResult{Placement: "third"})
	assert.ErrorIs(t, err, rewards.ErrUnknownVariant)

	_, err = l.AwardStaking(player, rewards.StakingYield{Rarity: "mythic", Hours: 1})
	assert.ErrorIs(t, err, rewards.ErrUnknownVariant)
}

func TestSpend(t *testing.T) {
	l := newFundedLedger(t)

	amount, err := l.AwardWelcomeBonus(player)
	require.NoError(t, err)

	supplyBefore, _, err := l.Supply()
	require.NoError(t, err)

	require.NoError(t, l.Spend(player, 40_000_000, SpendCarUpgrade))

	balance, err := l.BalanceOf(player)
	require.NoError(t, err)
	assert.Equal(t, amount-40_000_000, balance)

	// spent tokens leave circulation
	supplyAfter, burned, err := l.Supply()
	require.NoError(t, err)
	assert.Equal(t, supplyBefore-40_000_000, supplyAfter)
	assert.Equal(t, uint64(40_000_000), burned)

	records, err := l.logs.FilterSpends(context.Background(), &logdb.SpendFilter{Player: &player})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, uint64(40_000_000), records[0].Amount)
	assert.Equal(t, string(SpendCarUpgrade), records[0].Category)
}

func TestSpendRejections(t *testing.T) {
	l := newFundedLedger(t)

	err := l.Spend(player, 1, SpendCategory("groceries"))
	assert.ErrorIs(t, err, ErrUnknownCategory)

	err = l.Spend(player, 1, SpendTournamentEntry)
	assert.ErrorIs(t, err, token.ErrInsufficientFunds)

	// zero-amount spends are accepted and logged
	require.NoError(t, l.Spend(player, 0, SpendCustomization))
	records, err := l.logs.FilterSpends(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestUpdateRates(t *testing.T) {
	l := newFundedLedger(t)

	tbl := rates.Defaults()
	tbl.RaceCompletion = 0 // disable race completion rewards

	err := l.UpdateRates(player, tbl)
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, l.UpdateRates(admin, tbl))

	amount, err := l.AwardRace(player, rewards.RaceResult{Completed: true})
	require.NoError(t, err)
	assert.Zero(t, amount)

	st, err := l.State()
	require.NoError(t, err)
	assert.Equal(t, tbl, st.Rates)
}

func TestSolvencyInvariant(t *testing.T) {
	l := newTestLedger(t)
	require.NoError(t, l.Initialize(admin, speedy.AssetID, initialSupply))
	require.NoError(t, l.FundPool(admin, 150_000_000))

	// first welcome grant fits, second exceeds the remaining pool
	_, err := l.AwardWelcomeBonus(player)
	require.NoError(t, err)

	_, err = l.AwardWelcomeBonus(player)
	assert.ErrorIs(t, err, vault.ErrInsufficientPoolBalance)

	poolBalance, err := l.PoolBalance()
	require.NoError(t, err)
	assert.Equal(t, uint64(50_000_000), poolBalance)

	st, err := l.State()
	require.NoError(t, err)
	assert.Equal(t, uint64(100_000_000), st.CumulativeDistributed)
}
