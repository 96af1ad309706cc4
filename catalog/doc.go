// Package catalog contains the core domain model of the product catalog:
// products, categories, free-form attributes, the immutable SearchFilter
// value object with its builder and query-parameter parser, and the pure
// facet aggregation over a result page.
//
// Nothing in this package touches a database or holds per-request state in
// shared objects. A SearchFilter is built once per request and threaded
// explicitly into the store layer; predicate building happens in
// catalog/postgresengine against the filter it is handed.
package catalog
