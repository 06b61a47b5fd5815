package driven

import "context"

// Dataset is a read-only, ordered view of a source's normalised
// records. Datasets are written once by the normalise stage and only
// read afterwards.
type Dataset interface {
	// Scan iterates the dataset in record order, delivering batches of
	// at most batchSize values to fn. Scanning stops on the first
	// error from fn or from the underlying storage. Implementations
	// that cannot scan incrementally return an error immediately so
	// the caller can fall back to Load.
	Scan(ctx context.Context, batchSize int, fn func(batch []string) error) error

	// Load materialises the full dataset in record order.
	Load(ctx context.Context) ([]string, error)
}

// DatasetStore persists normalised datasets keyed by source slug.
type DatasetStore interface {
	// Save stores an ordered dataset for a slug, replacing any
	// existing dataset for that slug.
	Save(ctx context.Context, slug string, values []string) error

	// Open returns the dataset for a slug.
	// Returns domain.ErrNotFound if no dataset exists.
	Open(ctx context.Context, slug string) (Dataset, error)

	// Exists reports whether a dataset for the slug is present.
	Exists(ctx context.Context, slug string) (bool, error)

	// List returns the slugs of all stored datasets, sorted.
	List(ctx context.Context) ([]string, error)

	// Delete removes the dataset for a slug. Deleting a missing
	// dataset is not an error.
	Delete(ctx context.Context, slug string) error
}
