package store

import (
	"errors"
	"fmt"

	"github.com/eigerco/ibtbridge/internal/bridge"
	"github.com/eigerco/ibtbridge/internal/crypto"
	"github.com/eigerco/ibtbridge/pkg/db"
	"github.com/eigerco/ibtbridge/pkg/db/pebble"
	"github.com/eigerco/ibtbridge/pkg/log"
	"github.com/eigerco/ibtbridge/pkg/serialization/codec/bcs"
)

var ErrCallNotFound = errors.New("call not found")

// Calls archives prepared bridge calls keyed by their digest so the signing
// layer can audit or replay them.
type Calls struct {
	db.KVStore
	codec bcs.Codec
}

// NewCalls creates a call store using KVStore
func NewCalls(db db.KVStore, codec bcs.Codec) *Calls {
	return &Calls{KVStore: db, codec: codec}
}

// PutCall stores a call under its digest and returns the digest.
func (c *Calls) PutCall(call bridge.Call) (crypto.Hash, error) {
	bytes, err := call.Encode(c.codec)
	if err != nil {
		return crypto.Hash{}, err
	}
	digest := crypto.HashData(bytes)
	if err := c.Put(makeKey(prefixCall, digest[:]), bytes); err != nil {
		return crypto.Hash{}, fmt.Errorf("put call: %w", err)
	}
	log.Store.Debug().Str("digest", digest.String()).Str("function", call.Function).Msg("stored call")
	return digest, nil
}

// PutCalls stores several calls atomically.
func (c *Calls) PutCalls(calls []bridge.Call) ([]crypto.Hash, error) {
	batch := c.NewBatch()
	defer batch.Close() //nolint:errcheck

	digests := make([]crypto.Hash, 0, len(calls))
	for _, call := range calls {
		bytes, err := call.Encode(c.codec)
		if err != nil {
			return nil, err
		}
		digest := crypto.HashData(bytes)
		if err := batch.Put(makeKey(prefixCall, digest[:]), bytes); err != nil {
			return nil, fmt.Errorf("put call: %w", err)
		}
		digests = append(digests, digest)
	}
	if err := batch.Commit(); err != nil {
		return nil, fmt.Errorf(ErrFailedBatchCommit, err)
	}
	log.Store.Debug().Int("count", len(digests)).Msg("stored calls")
	return digests, nil
}

// GetCall retrieves a call by digest
func (c *Calls) GetCall(digest crypto.Hash) (bridge.Call, error) {
	bytes, err := c.Get(makeKey(prefixCall, digest[:]))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return bridge.Call{}, fmt.Errorf("%w: %s", ErrCallNotFound, digest)
		}
		return bridge.Call{}, fmt.Errorf("get call: %w", err)
	}
	call, err := bridge.DecodeCall(c.codec, bytes)
	if err != nil {
		return bridge.Call{}, err
	}
	return call, nil
}

// DeleteCall removes a call. Deleting an unknown digest is not an error.
func (c *Calls) DeleteCall(digest crypto.Hash) error {
	if err := c.Delete(makeKey(prefixCall, digest[:])); err != nil {
		return fmt.Errorf("delete call: %w", err)
	}
	return nil
}

// StoredCall pairs a call with the digest it is stored under.
type StoredCall struct {
	Digest crypto.Hash
	Call   bridge.Call
}

// ListCalls returns every stored call in digest order.
func (c *Calls) ListCalls() ([]StoredCall, error) {
	prefix := []byte{prefixCall}
	iter, err := c.NewIterator(prefix, db.PrefixEnd(prefix))
	if err != nil {
		return nil, fmt.Errorf("create iterator: %w", err)
	}
	defer iter.Close() //nolint:errcheck

	var calls []StoredCall
	for iter.Next() {
		key := iter.Key()
		if len(key) != 1+crypto.HashSize {
			log.Store.Warn().
				Str("prefix", PrefixToString(key[0])).
				Hex("key", key).
				Msg("skipping malformed call key")
			continue
		}
		value, err := iter.Value()
		if err != nil {
			return nil, fmt.Errorf("get value: %w", err)
		}
		call, err := bridge.DecodeCall(c.codec, value)
		if err != nil {
			return nil, err
		}
		var digest crypto.Hash
		copy(digest[:], key[1:])
		calls = append(calls, StoredCall{Digest: digest, Call: call})
	}
	return calls, nil
}
