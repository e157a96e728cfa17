// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

// SpendCategory tags what a burn paid for. The set is closed.
type SpendCategory string

const (
	SpendTournamentEntry SpendCategory = "tournament_entry"
	SpendCarUpgrade      SpendCategory = "car_upgrade"
	SpendCustomization   SpendCategory = "customization"
	SpendStakingBoost    SpendCategory = "staking_boost"
)

// Valid reports whether the category is a member of the closed set.
func (c SpendCategory) Valid() bool {
	switch c {
	case SpendTournamentEntry, SpendCarUpgrade, SpendCustomization, SpendStakingBoost:
		return true
	}
	return false
}
