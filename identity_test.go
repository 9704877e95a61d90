package stackaddr

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityDisplay(t *testing.T) {
	t.Run("node renders base32", func(t *testing.T) {
		id := NodeID([]byte{1, 2, 3, 4, 5})
		want := "/node/" + base32Codec.EncodeToString([]byte{1, 2, 3, 4, 5})
		assert.Equal(t, want, id.String())
	})

	t.Run("peer renders base32", func(t *testing.T) {
		id := PeerID([]byte{9, 8, 7})
		want := "/peer/" + base32Codec.EncodeToString([]byte{9, 8, 7})
		assert.Equal(t, want, id.String())
	})

	t.Run("uuid renders hyphenless hex", func(t *testing.T) {
		u := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
		id := UUID(u)
		assert.Equal(t, "/uuid/6ba7b8109dad11d180b400c04fd430c8", id.String())
	})

	t.Run("custom renders kind then base32", func(t *testing.T) {
		id := CustomIdentity("session", []byte{0xde, 0xad})
		want := "/identity/session/" + base32Codec.EncodeToString([]byte{0xde, 0xad})
		assert.Equal(t, want, id.String())
	})
}

func TestIdentityBase32RoundTrip(t *testing.T) {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = byte(i * 7)
	}
	encoded := base32Codec.EncodeToString(raw)

	t.Run("node", func(t *testing.T) {
		id, err := NodeIDFromBase32(encoded)
		require.NoError(t, err)
		assert.Equal(t, IdentityNode, id.Code)
		assert.True(t, bytes.Equal(raw, id.ID))
		assert.Equal(t, encoded, id.ToBase32())
	})

	t.Run("peer", func(t *testing.T) {
		id, err := PeerIDFromBase32(encoded)
		require.NoError(t, err)
		assert.Equal(t, IdentityPeer, id.Code)
		assert.True(t, bytes.Equal(raw, id.ID))
	})

	t.Run("custom", func(t *testing.T) {
		id, err := CustomIdentityFromBase32("device", encoded)
		require.NoError(t, err)
		assert.Equal(t, "device", id.Kind)
		assert.True(t, bytes.Equal(raw, id.ID))
	})

	t.Run("lowercase input accepted", func(t *testing.T) {
		id, err := NodeIDFromBase32(strings.ToLower(encoded))
		require.NoError(t, err)
		assert.True(t, bytes.Equal(raw, id.ID))
	})

	t.Run("invalid input rejected", func(t *testing.T) {
		_, err := NodeIDFromBase32("not!base32")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidEncoding))
	})
}

func TestIdentityIDBytes(t *testing.T) {
	t.Run("uuid yields its sixteen bytes", func(t *testing.T) {
		u := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
		id := UUID(u)
		assert.Equal(t, u[:], id.IDBytes())
	})

	t.Run("node yields raw bytes", func(t *testing.T) {
		id := NodeID([]byte{1, 2, 3})
		assert.Equal(t, []byte{1, 2, 3}, id.IDBytes())
	})
}

func TestIdentityToBase64URL(t *testing.T) {
	id := NodeID([]byte{0xfb, 0xef, 0xff})
	// URL-safe alphabet, no padding.
	got := id.ToBase64URL()
	assert.NotContains(t, got, "=")
	assert.NotContains(t, got, "+")
	assert.NotContains(t, got, "/")
}

func TestIdentityConstructorsCopy(t *testing.T) {
	raw := []byte{1, 2, 3}
	id := NodeID(raw)
	raw[0] = 99
	assert.Equal(t, []byte{1, 2, 3}, id.ID, "constructor should copy its input")
}

func TestDeriveIdentity(t *testing.T) {
	key := []byte("some public key material")

	t.Run("deterministic", func(t *testing.T) {
		a := DeriveNodeID(key)
		b := DeriveNodeID(key)
		assert.True(t, a.Equal(b))
		assert.Len(t, a.ID, 32)
	})

	t.Run("node and peer derivations share bytes but not code", func(t *testing.T) {
		n := DeriveNodeID(key)
		p := DerivePeerID(key)
		assert.True(t, bytes.Equal(n.ID, p.ID))
		assert.False(t, n.Equal(p))
	})

	t.Run("distinct keys diverge", func(t *testing.T) {
		a := DeriveNodeID([]byte("key one"))
		b := DeriveNodeID([]byte("key two"))
		assert.False(t, a.Equal(b))
	})
}

func TestIdentityEqual(t *testing.T) {
	a := NodeID([]byte{1, 2, 3})
	b := NodeID([]byte{1, 2, 3})
	c := PeerID([]byte{1, 2, 3})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, CustomIdentity("x", []byte{1}).Equal(CustomIdentity("y", []byte{1})))
}
