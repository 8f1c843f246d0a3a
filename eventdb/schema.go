// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

// create a table for pool events
const eventTableSchema = `
create table if not exists event (
	seq integer primary key autoincrement,
	kind text not null,
	time integer not null,
	account blob(20),
	asset blob(20),
	amount text,
	periodStart integer,
	periodEnd integer,
	rate text
);

CREATE INDEX if not exists kindIndex on event(kind);
CREATE INDEX if not exists accountIndex on event(account);
CREATE INDEX if not exists timeIndex on event(time);
`
