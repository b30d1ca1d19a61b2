// Package catalog is the client for the remote back-office catalog API.
//
// Collections are read with limit/offset pagination until a page shorter than the
// page limit arrives. A failed page stops the walk and the rows collected so far are
// returned with the error, so callers can keep going with partial data. Requests are
// paced with a token bucket to stay inside the API quota; there is no retry.
package catalog
