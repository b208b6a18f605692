// Package pathfinding runs the two maze traversals over a grid.Grid.
//
//   - ExploreAll: depth-first, exhaustive. Visits every cell reachable from
//     start exactly once and notes whether the target was met on the way.
//   - ShortestPath: breadth-first. Stops at end and rebuilds the path as
//     parent->child Segments.
//
// Both iterate directions in grid.Directions order, keep their frontier and
// visited set local to the call, and never mutate the grid. Cells move strictly
// Unvisited -> Frontier -> Emitted.
//
// Complexity:
//
//   - Time:   O(N) passage checks with N = cells in start's component (4 per cell).
//   - Memory: O(N) for the visited set and frontier.
package pathfinding
