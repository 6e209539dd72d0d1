// Package catalog fetches the remote app catalog.
//
// # Overview
//
// The catalog is a single JSON document (apps.json) hosted next to the app
// artwork:
//
//	{ "apps": [ { "id": "12", "name": "Netflix", "imageUrl": "12.jpg" }, ... ] }
//
// Three layers live here:
//
//   - Record: one decoded app. Every element must carry id, name and imageUrl;
//     a missing key fails the whole decode rather than producing a partial
//     record. Unknown keys are ignored at every level and a missing "apps" key
//     decodes to an empty list.
//   - Client: performs the GET against the configured base URL. Anything other
//     than 200 OK, a network failure, or a body that does not decode is
//     returned as an *Error whose Kind is KindTransport or KindDecode.
//   - Repository: the abstraction the fetch controller depends on. The HTTP
//     implementation passes the client's records through unchanged and labels
//     failures with "fetch apps" without hiding them.
//
// # Errors
//
// Callers that need the category use KindOf:
//
//	records, err := repo.FetchAll(ctx)
//	switch catalog.KindOf(err) {
//	case catalog.KindTransport:
//		// connection, timeout or status
//	case catalog.KindDecode:
//		// payload shape
//	}
//
// The user-facing layers do not distinguish the two; they render err.Error().
//
// # Images
//
// Record.ImageRef is usually a path relative to the catalog root.
// Record.ImageURL(base) joins it onto the base URL for display.
package catalog
