// Package server exposes the recommendation service over HTTP. It provides
// a root banner, a health check, and the POST /recommend endpoint, which
// answers with a bare JSON array of recommendations.
package server
