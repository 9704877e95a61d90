package stackaddr

import (
	"bytes"
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// base32Codec is the RFC 4648 alphabet without padding, the canonical
// string encoding for binary identity payloads.
var base32Codec = base32.StdEncoding.WithPadding(base32.NoPadding)

// IdentityCode identifies an identity variant.
type IdentityCode uint8

const (
	// IdentityNode is a node ID, such as an Ed25519 public key
	IdentityNode IdentityCode = iota + 1
	// IdentityPeer is a peer ID, as used in many P2P protocols
	IdentityPeer
	// IdentityUUID is a universally unique identifier
	IdentityUUID
	// IdentityCustom is a custom identity with an explicit kind
	IdentityCustom
)

// String returns the canonical wire keyword for the identity code.
func (c IdentityCode) String() string {
	switch c {
	case IdentityNode:
		return "node"
	case IdentityPeer:
		return "peer"
	case IdentityUUID:
		return "uuid"
	case IdentityCustom:
		return "identity"
	default:
		return fmt.Sprintf("IdentityCode(%d)", uint8(c))
	}
}

// Identity is a unique cryptographic or system-level identifier embedded
// in a layered address.
//
// Binary identity payloads render as base32 (RFC 4648, no padding) in
// string form; UUIDs render as lowercase hyphenless hex, a deliberate
// departure kept for readability of standard UUID values.
type Identity struct {
	// Code selects the variant
	Code IdentityCode
	// Kind is the custom identity kind (identity variant only)
	Kind string
	// ID holds the raw identity bytes for node/peer/custom variants
	ID []byte
	// UUID holds the value for the uuid variant
	UUID uuid.UUID
}

// NodeID creates a node identity from raw ID bytes. The bytes are copied.
func NodeID(id []byte) Identity {
	return Identity{Code: IdentityNode, ID: bytes.Clone(id)}
}

// PeerID creates a peer identity from raw ID bytes. The bytes are copied.
func PeerID(id []byte) Identity {
	return Identity{Code: IdentityPeer, ID: bytes.Clone(id)}
}

// UUID creates a UUID identity.
func UUID(u uuid.UUID) Identity {
	return Identity{Code: IdentityUUID, UUID: u}
}

// CustomIdentity creates an identity with an explicit kind and raw ID
// bytes. The bytes are copied.
func CustomIdentity(kind string, id []byte) Identity {
	return Identity{Code: IdentityCustom, Kind: kind, ID: bytes.Clone(id)}
}

// NodeIDFromBase32 decodes a base32 (RFC 4648, no padding) string into a
// node identity. Decoding is case-insensitive.
func NodeIDFromBase32(encoded string) (Identity, error) {
	id, err := decodeBase32(encoded)
	if err != nil {
		return Identity{}, newAddrError("decode", "base32 node id", ErrInvalidEncoding)
	}
	return Identity{Code: IdentityNode, ID: id}, nil
}

// PeerIDFromBase32 decodes a base32 (RFC 4648, no padding) string into a
// peer identity. Decoding is case-insensitive.
func PeerIDFromBase32(encoded string) (Identity, error) {
	id, err := decodeBase32(encoded)
	if err != nil {
		return Identity{}, newAddrError("decode", "base32 peer id", ErrInvalidEncoding)
	}
	return Identity{Code: IdentityPeer, ID: id}, nil
}

// CustomIdentityFromBase32 decodes a base32 (RFC 4648, no padding) string
// into a custom identity with the given kind. Decoding is case-insensitive.
func CustomIdentityFromBase32(kind, encoded string) (Identity, error) {
	id, err := decodeBase32(encoded)
	if err != nil {
		return Identity{}, newAddrError("decode", "base32 identity", ErrInvalidEncoding)
	}
	return Identity{Code: IdentityCustom, Kind: kind, ID: id}, nil
}

// DeriveNodeID derives a 32-byte node identity from public key material
// using BLAKE2b-256, giving a stable fingerprint for keys of any length.
func DeriveNodeID(publicKey []byte) Identity {
	sum := blake2b.Sum256(publicKey)
	return Identity{Code: IdentityNode, ID: sum[:]}
}

// DerivePeerID derives a 32-byte peer identity from public key material
// using BLAKE2b-256.
func DerivePeerID(publicKey []byte) Identity {
	sum := blake2b.Sum256(publicKey)
	return Identity{Code: IdentityPeer, ID: sum[:]}
}

// decodeBase32 normalizes case and decodes RFC 4648 base32 without padding.
func decodeBase32(encoded string) ([]byte, error) {
	return base32Codec.DecodeString(strings.ToUpper(encoded))
}

// IDBytes returns the underlying identity bytes for any variant. The uuid
// variant returns its canonical 16-byte form, so every identity shares one
// byte-level view regardless of tag.
func (i Identity) IDBytes() []byte {
	if i.Code == IdentityUUID {
		u := i.UUID
		return u[:]
	}
	return i.ID
}

// ToBase32 encodes the identity bytes as base32 (RFC 4648, no padding).
func (i Identity) ToBase32() string {
	return base32Codec.EncodeToString(i.IDBytes())
}

// ToBase64URL encodes the identity bytes as URL-safe base64 without padding.
func (i Identity) ToBase64URL() string {
	return base64.RawURLEncoding.EncodeToString(i.IDBytes())
}

// Equal reports exact structural equality with another identity.
func (i Identity) Equal(other Identity) bool {
	return i.Code == other.Code &&
		i.Kind == other.Kind &&
		i.UUID == other.UUID &&
		bytes.Equal(i.ID, other.ID)
}

// String renders the canonical "/<keyword>[/<kind>]/<value>" form.
func (i Identity) String() string {
	switch i.Code {
	case IdentityNode, IdentityPeer:
		return "/" + i.Code.String() + "/" + i.ToBase32()
	case IdentityUUID:
		u := i.UUID
		return "/uuid/" + hex.EncodeToString(u[:])
	case IdentityCustom:
		return "/identity/" + i.Kind + "/" + i.ToBase32()
	default:
		return "/" + i.Code.String()
	}
}

func (Identity) segment() {}

// compare defines a total order over identities: by code, then kind, then
// identity bytes.
func (i Identity) compare(other Identity) int {
	if i.Code != other.Code {
		if i.Code < other.Code {
			return -1
		}
		return 1
	}
	if c := strings.Compare(i.Kind, other.Kind); c != 0 {
		return c
	}
	return bytes.Compare(i.IDBytes(), other.IDBytes())
}
