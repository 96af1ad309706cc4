// Package searchproducts implements the product search use case: resolving
// the requested category ids, composing the filter predicates, fetching one
// hydrated page, and aggregating facets over it.
//
// The handler holds no per-request state; the filter travels through every
// call as an argument, so one handler instance serves concurrent requests
// without cross-talk.
package searchproducts
