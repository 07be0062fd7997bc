package providers

import (
	"context"

	"github.com/Noodieknoodie/AI-HELPER/internal/models"
	"github.com/Noodieknoodie/AI-HELPER/internal/providers/progress"
)

// Adapter issues one prompt against a provider API and extracts the reply.
// Implementations report progress.Prepared, progress.Dispatched,
// progress.Received and progress.Done through report.
type Adapter interface {
	Send(ctx context.Context, call models.Call, report progress.Func) (models.Result, error)
}

// Resetter is implemented by adapters that hold a client bound to a
// credential. Reset drops that client so the next Send initialises a new one.
type Resetter interface {
	Reset()
}
