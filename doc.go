// Package auragold provides the functions and types of a personal gold trading
// tracker. It is local-first: the user's ledgers live in a local store and can
// be exported to, and restored from, human-readable JSON files.
//
// The core functionalities include:
//   - Ledgers: named collections of buy/sell trade records, see [Ledger] and [TradeRecord].
//   - Import: turning untrusted JSON into ledgers, see [NormalizeAllImport] and
//     [NormalizeLedgerImport]. Any defect rejects the whole import.
//   - Merge: reconciling imported ledgers with existing ones by identity, see [MergeLedgers].
//   - Export: the versioned export envelope, see [ExportAll] and [ExportLedger].
//   - Statistics: profit and loss figures per ledger or across ledgers, see [AggregateStats].
//
// Functions in this package are pure transforms: they receive a [State] and
// return a new one. Persistence is left to a [Store] implementation.
//
// This package serves as the foundational logic for the `auragold`
// command-line tool.
package auragold
