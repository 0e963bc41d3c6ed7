package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/canopy-network/votecollector/pkg/retry"
	"go.uber.org/zap"
)

// Retrying wraps a Reader so every call is retried with backoff. Gateway rejections (4xx) are not retried.
func Retrying(inner Reader, cfg retry.Config, logger *zap.Logger) Reader {
	return &retryingReader{inner: inner, cfg: cfg, logger: logger}
}

type retryingReader struct {
	inner  Reader
	cfg    retry.Config
	logger *zap.Logger
}

func classify(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return retry.Permanent(err)
	}
	return err
}

func call[T any](ctx context.Context, r *retryingReader, op string, fn func() (T, error)) (T, error) {
	return retry.Do(ctx, r.cfg, r.logger, op, func() (T, error) {
		v, err := fn()
		return v, classify(err)
	})
}

func (r *retryingReader) CurrentStateVersion(ctx context.Context) (uint64, error) {
	return call(ctx, r, "gateway.current_state_version", func() (uint64, error) {
		return r.inner.CurrentStateVersion(ctx)
	})
}

func (r *retryingReader) StateVersionAt(ctx context.Context, at time.Time) (uint64, error) {
	return call(ctx, r, "gateway.state_version_at", func() (uint64, error) {
		return r.inner.StateVersionAt(ctx, at)
	})
}

func (r *retryingReader) TransactionStream(ctx context.Context, req StreamRequest) (TransactionPage, error) {
	return call(ctx, r, "gateway.transaction_stream", func() (TransactionPage, error) {
		return r.inner.TransactionStream(ctx, req)
	})
}

func (r *retryingReader) EntityDetails(ctx context.Context, addresses []string, opts DetailsOpts, stateVersion uint64) ([]EntityDetails, error) {
	return call(ctx, r, "gateway.entity_details", func() ([]EntityDetails, error) {
		return r.inner.EntityDetails(ctx, addresses, opts, stateVersion)
	})
}

func (r *retryingReader) KeyValueStoreData(ctx context.Context, store string, keys []Value, stateVersion uint64) ([]KeyValueEntry, error) {
	return call(ctx, r, "gateway.kvs_data", func() ([]KeyValueEntry, error) {
		return r.inner.KeyValueStoreData(ctx, store, keys, stateVersion)
	})
}

func (r *retryingReader) KeyValueStoreEntries(ctx context.Context, store string, stateVersion uint64) ([]KeyValueEntry, error) {
	return call(ctx, r, "gateway.kvs_entries", func() ([]KeyValueEntry, error) {
		return r.inner.KeyValueStoreEntries(ctx, store, stateVersion)
	})
}

func (r *retryingReader) FungibleBalances(ctx context.Context, address string, stateVersion uint64) ([]FungibleAmount, error) {
	return call(ctx, r, "gateway.fungible_balances", func() ([]FungibleAmount, error) {
		return r.inner.FungibleBalances(ctx, address, stateVersion)
	})
}

func (r *retryingReader) NonFungibles(ctx context.Context, address string, resources []string, stateVersion uint64) ([]NonFungibleResource, error) {
	return call(ctx, r, "gateway.non_fungibles", func() ([]NonFungibleResource, error) {
		return r.inner.NonFungibles(ctx, address, resources, stateVersion)
	})
}

func (r *retryingReader) Validators(ctx context.Context, stateVersion uint64) ([]Validator, error) {
	return call(ctx, r, "gateway.validators", func() ([]Validator, error) {
		return r.inner.Validators(ctx, stateVersion)
	})
}
