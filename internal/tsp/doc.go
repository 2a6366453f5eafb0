// Package tsp solves the closed Travelling Salesman Problem exactly with the
// Held–Karp dynamic-programming algorithm.
//
// The tour is anchored at index 0 of the input: it starts there, visits every
// other point once and returns to it.
//
//   - Complexity: O(n²·2ⁿ) time, O(n·2ⁿ) memory.
//   - Size bound: MaxPoints. Larger inputs are rejected with ErrTooManyPoints
//     before any table is allocated.
//   - Input check: non-finite or out-of-range coordinates are rejected with
//     ErrInvalidPoint.
//
// Ties between equal-cost predecessors resolve to the lowest index, so the same
// input always yields the same tour.
package tsp
