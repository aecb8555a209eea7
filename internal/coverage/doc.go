// Package coverage counts the distinct grid points visited by a walk made of
// axis-aligned moves without materializing the points themselves.
//
// Every move is reduced to an inclusive segment on a single row (horizontal
// moves) or column (vertical moves). Each row and column keeps a sorted list of
// disjoint, maximal segments, so the per-axis totals are plain sums of segment
// magnitudes. A point that lies on both a row segment and a column segment is
// counted once per axis, and CountUnique subtracts those crossings.
//
// Memory grows with the number of distinct rows and columns touched, never
// with the length of a move.
//
// Evaluations are independent: an ExecutionState is owned by a single call and
// is never shared, so concurrent evaluations need no coordination.
package coverage
