// Package pending persists stories authored while offline, awaiting
// submission to the remote API.
package pending

import (
	"context"

	"github.com/dmitrijs2005/distory/internal/client/models"
)

// Repository describes operations over the pending-story table. Pending
// records are insert-and-delete only; there is no update path.
type Repository interface {
	// Insert stores a new pending story. The caller assigns ID, device id
	// and timestamps beforehand.
	Insert(ctx context.Context, story *models.PendingStory) error

	// GetAll returns all pending stories. Order is not significant.
	GetAll(ctx context.Context) ([]*models.PendingStory, error)

	// GetByDevice returns pending stories created by the given device.
	GetByDevice(ctx context.Context, deviceID string) ([]*models.PendingStory, error)

	// Delete removes a pending story by id. Deleting a missing id is not
	// an error.
	Delete(ctx context.Context, id string) error
}
