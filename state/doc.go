// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages contract storage slots persisted in a kv store.
// It follows the flow as bellow:
//
//	         o
//	         |
//	[ revertable state ]
//	         |
//	  [ stacked map ] -> [ journal ] -> [ bulk write ] -> [ kv store ]
//	         |
//	  [ lru cache ]
//	         |
//	  [ kv store ]
//
// Every change is kept in the stacked map until Commit, so a checkpoint can be
// reverted without touching the store.
package state
