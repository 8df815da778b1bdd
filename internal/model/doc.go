// Package model loads pre-trained regression artifacts from disk and runs
// them on numeric feature rows.
//
// Two JSON artifact formats are supported:
//
//   - "gbtree": an additive ensemble of regression trees exported from a
//     gradient boosting trainer. Each tree is a flat node array; node 0 is
//     the root and children always sit at higher indices than their parent.
//   - "linear": an intercept plus one weight per feature.
//
// A loaded Regressor is immutable and safe for concurrent use.
package model
