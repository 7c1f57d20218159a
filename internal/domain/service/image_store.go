package service

import "context"

// ImageStore uploads profile images and returns their public URL.
type ImageStore interface {
	// Upload stores the image referenced by imgURL for the given owner.
	// imgURL is either a data: URL or an already hosted http(s) URL.
	Upload(ctx context.Context, owner, imgURL string) (string, error)
}
