package sink

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

type AzureBlobStore struct {
	client    *azblob.Client
	container string
}

// NewAzureBlobStore accepts either a 'connection_string' option or an
// 'account'+'key' pair, plus the target 'container'.
func NewAzureBlobStore(opts map[string]interface{}) (Store, error) {
	container, _ := opts["container"].(string)
	if container == "" {
		return nil, fmt.Errorf("azureblob store requires 'container' option")
	}

	if connStr, _ := opts["connection_string"].(string); connStr != "" {
		client, err := azblob.NewClientFromConnectionString(connStr, nil)
		if err != nil {
			return nil, fmt.Errorf("azure blob client init error: %w", err)
		}
		return &AzureBlobStore{client: client, container: container}, nil
	}

	account, _ := opts["account"].(string)
	key, _ := opts["key"].(string)
	if account == "" || key == "" {
		return nil, fmt.Errorf("azureblob store requires 'connection_string' or 'account' and 'key' options")
	}
	cred, err := azblob.NewSharedKeyCredential(account, key)
	if err != nil {
		return nil, fmt.Errorf("azure shared key credential error: %w", err)
	}
	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", account)
	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("azure blob client init error: %w", err)
	}
	return &AzureBlobStore{client: client, container: container}, nil
}

func (a *AzureBlobStore) Upload(ctx context.Context, name string, data []byte) error {
	if _, err := a.client.UploadBuffer(ctx, a.container, name, data, nil); err != nil {
		return fmt.Errorf("azure blob upload %s: %w", name, err)
	}
	return nil
}

func (a *AzureBlobStore) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	pager := a.client.NewListBlobsFlatPager(a.container, &azblob.ListBlobsFlatOptions{
		Prefix: &prefix,
	})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("azure blob list %q: %w", prefix, err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name != nil {
				names = append(names, *item.Name)
			}
		}
	}
	return names, nil
}

func init() {
	Register("azureblob", NewAzureBlobStore)
}
