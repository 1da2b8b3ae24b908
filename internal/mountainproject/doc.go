// Package mountainproject provides a client for the Mountain Project data API.
//
// The client lists routes around a latitude/longitude. Helpers narrow that list
// to a single climbing area (by an exact element of the route's location path)
// and to a radius around a point.
package mountainproject
