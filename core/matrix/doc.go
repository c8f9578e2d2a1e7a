// Package matrix holds the small dense helpers shared by the transportation
// solvers: deep copies, row and column sums, and minimum searches that honour
// exclusion masks.
//
// Every scan runs in fixed index order (row-major for matrices) and uses a
// strict comparison, so the first occurrence of a minimum always wins. The
// solvers rely on this for reproducible tie-breaking.
package matrix
