package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/sirupsen/logrus"
)

// AzureStore keeps feedback records in Azure Blob Storage
type AzureStore struct {
	client        *azblob.Client
	containerName string

	readyOnce sync.Once
	readyErr  error
}

// Ensure AzureStore implements Store
var _ Store = (*AzureStore)(nil)

// NewAzureStore creates a new Azure Blob store using managed identity. The
// container is created lazily on first use via EnsureReady.
func NewAzureStore(accountName, containerName string) (*AzureStore, error) {
	if accountName == "" {
		return nil, fmt.Errorf("storage account name is required")
	}

	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", accountName)
	client, err := azblob.NewClient(serviceURL, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure blob client: %w", err)
	}

	return &AzureStore{
		client:        client,
		containerName: containerName,
	}, nil
}

// EnsureReady creates the backing container once per process.
func (s *AzureStore) EnsureReady() error {
	s.readyOnce.Do(func() {
		ctx := context.Background()

		_, err := s.client.CreateContainer(ctx, s.containerName, nil)
		if err != nil {
			if !strings.Contains(err.Error(), "ContainerAlreadyExists") {
				s.readyErr = fmt.Errorf("failed to create container: %w", err)
				return
			}
			logrus.Debugf("Container %s already exists", s.containerName)
		} else {
			logrus.Infof("Created container %s", s.containerName)
		}
	})

	return s.readyErr
}

// Store saves data to Azure Blob Storage
func (s *AzureStore) Store(filename string, data []byte) error {
	if err := s.EnsureReady(); err != nil {
		return err
	}

	ctx := context.Background()
	_, err := s.client.UploadBuffer(ctx, s.containerName, filename, data, &azblob.UploadBufferOptions{
		BlockSize:   int64(1024 * 1024),
		Concurrency: 3,
	})

	if err != nil {
		return fmt.Errorf("failed to upload blob %s: %w", filename, err)
	}

	logrus.Debugf("Stored %s in Azure Blob Storage", filename)
	return nil
}

// Retrieve gets data from Azure Blob Storage
func (s *AzureStore) Retrieve(filename string) ([]byte, error) {
	if err := s.EnsureReady(); err != nil {
		return nil, err
	}

	ctx := context.Background()
	response, err := s.client.DownloadStream(ctx, s.containerName, filename, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download blob %s: %w", filename, err)
	}
	defer response.Body.Close()

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read blob content: %w", err)
	}

	return data, nil
}

// List returns the names of blobs in the container matching prefix
func (s *AzureStore) List(prefix string) ([]string, error) {
	if err := s.EnsureReady(); err != nil {
		return nil, err
	}

	ctx := context.Background()
	var blobNames []string
	pager := s.client.NewListBlobsFlatPager(s.containerName, &azblob.ListBlobsFlatOptions{
		Prefix: &prefix,
	})

	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list blobs: %w", err)
		}

		for _, blob := range page.Segment.BlobItems {
			if blob.Name != nil {
				blobNames = append(blobNames, *blob.Name)
			}
		}
	}

	return blobNames, nil
}

// Delete removes a blob from Azure Blob Storage
func (s *AzureStore) Delete(filename string) error {
	if err := s.EnsureReady(); err != nil {
		return err
	}

	ctx := context.Background()
	_, err := s.client.DeleteBlob(ctx, s.containerName, filename, nil)
	if err != nil {
		return fmt.Errorf("failed to delete blob %s: %w", filename, err)
	}

	logrus.Infof("Deleted %s from Azure Blob Storage", filename)
	return nil
}
