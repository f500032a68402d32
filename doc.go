// Package investpro is the client-side core of the investment platform: the
// domain types fetched from the backend and the pure functions that derive
// what a user must see before committing an action.
//
// The core functionalities include:
//   - Balance Projection: the balance after a pending deposit or withdrawal,
//     and whether the withdrawal is covered by the available cash.
//   - Order Projection: filtering of the tradable-asset catalog, the total of
//     a pending buy or sell order and the sufficiency check of a buy.
//   - Report Aggregation: per-asset and total profit/loss over a period,
//     shaped into a chart-ready series.
//   - View State: an immutable snapshot of everything a screen shows,
//     threaded through the projections.
//
// Nothing in this package performs I/O. The backend is reached through the
// api package and kept in sync by the session package.
package investpro
