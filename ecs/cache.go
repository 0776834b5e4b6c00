package ecs

import (
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/kamstrup/intmap"
)

// Signature returns the normalized cache key for a set of component types:
// the type names sorted lexicographically and joined with "_". The result does
// not depend on the order of types.
func Signature(types []ComponentType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	sort.Strings(names)
	return strings.Join(names, "_")
}

// CacheEntry is a read-only view of one cached signature.
type CacheEntry struct {
	Signature string
	IDs       []EntityID
}

type cacheEntry struct {
	signature string
	ids       []EntityID
}

// signatureCache maps signatures to entity id lists. Buckets are keyed by the
// xxhash of the signature; each bucket holds every signature sharing the hash.
type signatureCache struct {
	buckets    *intmap.Map[uint64, []*cacheEntry]
	signatures []string
	hash       func(string) uint64
}

func newSignatureCache() *signatureCache {
	return &signatureCache{
		buckets: intmap.New[uint64, []*cacheEntry](64),
		hash:    xxhash.Sum64String,
	}
}

func (c *signatureCache) get(signature string) ([]EntityID, bool) {
	bucket, ok := c.buckets.Get(c.hash(signature))
	if !ok {
		return nil, false
	}
	for _, entry := range bucket {
		if entry.signature == signature {
			return entry.ids, true
		}
	}
	return nil, false
}

// putIfAbsent stores ids under signature unless an entry already exists.
func (c *signatureCache) putIfAbsent(signature string, ids []EntityID) {
	hash := c.hash(signature)
	bucket, _ := c.buckets.Get(hash)
	for _, entry := range bucket {
		if entry.signature == signature {
			return
		}
	}
	c.buckets.Put(hash, append(bucket, &cacheEntry{signature: signature, ids: ids}))
	c.signatures = append(c.signatures, signature)
}

func (c *signatureCache) len() int {
	return len(c.signatures)
}

func (c *signatureCache) clear() {
	c.buckets.Clear()
	c.signatures = nil
}

// entries returns a copy of every cached signature in the order they were populated.
func (c *signatureCache) entries() []CacheEntry {
	out := make([]CacheEntry, 0, len(c.signatures))
	for _, sig := range c.signatures {
		ids, ok := c.get(sig)
		if !ok {
			continue
		}
		copied := make([]EntityID, len(ids))
		copy(copied, ids)
		out = append(out, CacheEntry{Signature: sig, IDs: copied})
	}
	return out
}
