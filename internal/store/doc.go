// Package store persists a crawled graph as two plain text files.
//
// vertices.txt holds one page identifier per line. edges.txt holds one line
// per edge record in the form
//
//	Source: Dest1, Dest2, Dest3
//
// and a page without links is written as "Source: " with an empty list.
// Lines are joined with "\n" and there is no escaping, so identifiers that
// contain a newline, ": " or ", " do not survive a round trip.
//
// Reading is strict about edge lines: a line without the ": " separator
// aborts the load with ErrMalformedEdgeLine rather than being skipped.
package store
