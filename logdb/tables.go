// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

// rewardTableSchema creates the reward table.
const rewardTableSchema = `
create table if not exists reward (
	seq integer primary key autoincrement,
	player char(42),
	amount blob,
	category text,
	refID decimal(32,0),
	ts decimal(32,0)
);

CREATE INDEX if not exists rewardPlayerIndex on reward(player);
CREATE INDEX if not exists rewardCategoryIndex on reward(category);
CREATE INDEX if not exists rewardTsIndex on reward(ts);
`

// spendTableSchema creates the spend table.
const spendTableSchema = `
create table if not exists spend (
	seq integer primary key autoincrement,
	player char(42),
	amount blob,
	category text,
	ts decimal(32,0)
);

CREATE INDEX if not exists spendPlayerIndex on spend(player);
CREATE INDEX if not exists spendCategoryIndex on spend(category);
CREATE INDEX if not exists spendTsIndex on spend(ts);
`
