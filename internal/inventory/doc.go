// Package inventory normalizes the three discovery query results into the
// single ordered element list the report loop walks. Merge concatenates
// nodes, interfaces and volumes in that fixed order; Arrange then either
// sorts the list by caption (the default, reproducible presentation) or
// replaces it with a fixed-size uniform random sample for constrained
// debug runs.
package inventory
