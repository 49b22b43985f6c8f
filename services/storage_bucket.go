package services

import (
	"context"
	"time"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
)

const signedUrlTTL = time.Minute * 15

type StorageBucket struct {
	*storage.BucketHandle
}

func NewStorageBucket(ctx context.Context, app *firebase.App, bucketName string) (*StorageBucket, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, err
	}
	bucketHandle, err := client.Bucket(bucketName)
	if err != nil {
		return nil, err
	}

	return &StorageBucket{
		bucketHandle,
	}, nil
}

func (sb *StorageBucket) Exists(ctx context.Context, blobName string) (bool, error) {
	if len(blobName) == 0 {
		return false, nil
	}
	handle := sb.Object(blobName)
	if _, err := handle.Attrs(ctx); err != nil {
		if err == storage.ErrObjectNotExist {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// SignedUrl resolves a blob name to a time-limited read URL. Selection
// logic never depends on this; it is a display-time enrichment.
func (sb *StorageBucket) SignedUrl(blobName string) (string, error) {
	return sb.SignedURL(blobName, &storage.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(signedUrlTTL),
	})
}

// SignedUrls resolves a batch of blob names, preserving order.
func (sb *StorageBucket) SignedUrls(blobNames []string) ([]string, error) {
	urls := make([]string, len(blobNames))
	for i, blobName := range blobNames {
		url, err := sb.SignedUrl(blobName)
		if err != nil {
			return nil, err
		}
		urls[i] = url
	}
	return urls, nil
}
