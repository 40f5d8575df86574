// Package collide implements the collision hull pipeline: extraction of
// connected hull candidates, convexification, similarity merging,
// containment culling, thin-face cleanup, and fixed-size partitioning for
// export. All operators are synchronous and own their working copy for the
// duration of one invocation.
package collide
