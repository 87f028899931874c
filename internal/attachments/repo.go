package attachments

import "context"

// Repo persists attachment metadata. The bytes themselves live in the
// configured object store.
type Repo interface {
	Create(ctx context.Context, a Attachment) error
	GetByID(ctx context.Context, id string) (Attachment, error)
	ListByApplication(ctx context.Context, applicationID string) ([]Attachment, error)
	Delete(ctx context.Context, id string) error
}
