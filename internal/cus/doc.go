// Package cus holds the regulatory body ("cus") data model returned by the
// contacts API together with the pure selection, ordering and counting steps
// of the report pipeline, and the interfaces the pipeline depends on.
package cus
