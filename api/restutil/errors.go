// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package restutil

import (
	"errors"

	"github.com/speedyracing/speedy/ledger"
	"github.com/speedyracing/speedy/rewards"
	"github.com/speedyracing/speedy/token"
	"github.com/speedyracing/speedy/vault"
)

// ConvertEngineError maps well-known engine errors onto http statuses.
// Input the engine rejects is a bad request, authority failures are
// forbidden, and state conflicts such as a short pool or a double
// initialization respond conflict. Anything else passes through as an
// internal error.
func ConvertEngineError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, rewards.ErrUnknownVariant),
		errors.Is(err, ledger.ErrUnknownCategory),
		errors.Is(err, rewards.ErrArithmeticOverflow),
		errors.Is(err, token.ErrAmountOverflow):
		return BadRequest(err)
	case errors.Is(err, ledger.ErrUnauthorized),
		errors.Is(err, token.ErrAuthorityRejected):
		return Forbidden(err)
	case errors.Is(err, ledger.ErrAlreadyInitialized),
		errors.Is(err, ledger.ErrNotInitialized),
		errors.Is(err, vault.ErrInsufficientPoolBalance),
		errors.Is(err, token.ErrInsufficientFunds):
		return Conflict(err)
	default:
		return err
	}
}
