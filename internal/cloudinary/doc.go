// Package cloudinary talks to the external media host's Admin API to
// enumerate the stored objects for one event folder.
//
// The host pages its results behind an opaque continuation cursor; the client
// follows the cursor chain transparently and returns the accumulated HTTPS
// URLs in enumeration order. Credentials are environment-only and checked
// before any network activity.
package cloudinary
