// Package storage uploads binary media to an external object store and
// returns the public URL where the object can be fetched.  Uploads are a
// single attempt with no retry; callers decide what a failed upload means
// for their operation.
package storage

import "context"

// Uploader is the interface the services depend on for image uploads.
// Upload stores data under a key derived from the folder hint and returns
// the object's public URL.  The bytes are forwarded as-is: no resizing or
// content validation happens here.
type Uploader interface {
	Upload(ctx context.Context, data []byte, contentType, folder string) (string, error)
}
