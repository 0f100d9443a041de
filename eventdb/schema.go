// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

const eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	blockNumber INTEGER NOT NULL,
	eventIndex INTEGER NOT NULL,
	era INTEGER NOT NULL,
	module TEXT NOT NULL,
	name TEXT NOT NULL,
	account BLOB(20),
	validator BLOB(20),
	amount BLOB,
	value INTEGER NOT NULL,
	PRIMARY KEY (blockNumber, eventIndex)
);

CREATE INDEX IF NOT EXISTS eventAccountIndex ON event(account);
CREATE INDEX IF NOT EXISTS eventValidatorIndex ON event(validator);
CREATE INDEX IF NOT EXISTS eventNameIndex ON event(module, name);
`
