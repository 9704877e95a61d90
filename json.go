package stackaddr

import (
	"encoding/json"
	"net/netip"

	"github.com/google/uuid"
)

// The structured JSON form is an ordered array of tagged segment objects,
// mirroring the in-memory model field-for-field. Binary identity payloads
// travel in Go's native []byte JSON form (base64), not the base32 used by
// the string form; order is preserved exactly.

type protocolJSON struct {
	Type string  `json:"type"`
	Code string  `json:"code"`
	Addr string  `json:"addr,omitempty"`
	MAC  string  `json:"mac,omitempty"`
	Name string  `json:"name,omitempty"`
	Port *uint16 `json:"port,omitempty"`
}

type identityJSON struct {
	Type string `json:"type"`
	Code string `json:"code"`
	Kind string `json:"kind,omitempty"`
	ID   []byte `json:"id,omitempty"`
	UUID string `json:"uuid,omitempty"`
}

type pathJSON struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

type metaJSON struct {
	Type  string `json:"type"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// MarshalJSON encodes the address as the ordered structured form.
func (a *StackAddr) MarshalJSON() ([]byte, error) {
	out := make([]interface{}, 0, len(a.segments))
	for _, s := range a.segments {
		switch x := s.(type) {
		case Protocol:
			out = append(out, marshalProtocol(x))
		case Identity:
			out = append(out, marshalIdentity(x))
		case Path:
			out = append(out, pathJSON{Type: "path", Path: string(x)})
		case Metadata:
			out = append(out, metaJSON{Type: "meta", Key: x.Key, Value: x.Value})
		}
	}
	return json.Marshal(out)
}

func marshalProtocol(p Protocol) protocolJSON {
	pj := protocolJSON{Type: "protocol", Code: p.Code.String()}
	switch p.Code {
	case CodeMAC:
		pj.MAC = p.String()[len("/mac/"):]
	case CodeIP4, CodeIP6:
		pj.Addr = p.Addr.String()
	case CodeDNS, CodeDNS4, CodeDNS6, CodeOnion, CodeCustom:
		pj.Name = p.Name
	case CodeTCP, CodeUDP, CodeWS, CodeWSS, CodeWebTransport:
		port := p.Port
		pj.Port = &port
	}
	return pj
}

func marshalIdentity(i Identity) identityJSON {
	ij := identityJSON{Type: "identity", Code: i.Code.String()}
	switch i.Code {
	case IdentityNode, IdentityPeer:
		ij.ID = i.ID
	case IdentityUUID:
		ij.UUID = i.UUID.String()
	case IdentityCustom:
		ij.Kind = i.Kind
		ij.ID = i.ID
	}
	return ij
}

// UnmarshalJSON decodes the ordered structured form produced by
// MarshalJSON, replacing the receiver's segments.
func (a *StackAddr) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	segments := make([]Segment, 0, len(raw))
	for _, r := range raw {
		var tag struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(r, &tag); err != nil {
			return err
		}

		var seg Segment
		var err error
		switch tag.Type {
		case "protocol":
			seg, err = unmarshalProtocol(r)
		case "identity":
			seg, err = unmarshalIdentity(r)
		case "path":
			var pj pathJSON
			if err = json.Unmarshal(r, &pj); err == nil {
				seg = Path(pj.Path)
			}
		case "meta":
			var mj metaJSON
			if err = json.Unmarshal(r, &mj); err == nil {
				seg = Meta(mj.Key, mj.Value)
			}
		default:
			err = newAddrError("unmarshal", tag.Type, ErrUnknownProtocol)
		}
		if err != nil {
			return err
		}
		segments = append(segments, seg)
	}

	a.segments = segments
	return nil
}

func unmarshalProtocol(data []byte) (Segment, error) {
	var pj protocolJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return nil, err
	}

	code, ok := protocolCodeFromKeyword(pj.Code)
	if !ok {
		return nil, newAddrError("unmarshal", pj.Code, ErrUnknownProtocol)
	}

	switch code {
	case CodeMAC:
		return ParseMACProtocol(pj.MAC)
	case CodeIP4, CodeIP6:
		ip, err := netip.ParseAddr(pj.Addr)
		if err != nil {
			return nil, newAddrError("unmarshal", pj.Code+" address", ErrInvalidAddress)
		}
		return Protocol{Code: code, Addr: ip}, nil
	case CodeDNS, CodeDNS4, CodeDNS6, CodeOnion, CodeCustom:
		return Protocol{Code: code, Name: pj.Name}, nil
	case CodeTCP, CodeUDP, CodeWS, CodeWSS, CodeWebTransport:
		if pj.Port == nil {
			return nil, newAddrError("unmarshal", pj.Code+" port", ErrMissingPart)
		}
		return Protocol{Code: code, Port: *pj.Port}, nil
	default:
		// Markers carry no payload.
		return Protocol{Code: code}, nil
	}
}

func unmarshalIdentity(data []byte) (Segment, error) {
	var ij identityJSON
	if err := json.Unmarshal(data, &ij); err != nil {
		return nil, err
	}

	switch ij.Code {
	case "node":
		return Identity{Code: IdentityNode, ID: ij.ID}, nil
	case "peer":
		return Identity{Code: IdentityPeer, ID: ij.ID}, nil
	case "uuid":
		u, err := uuid.Parse(ij.UUID)
		if err != nil {
			return nil, newAddrError("unmarshal", "uuid", ErrInvalidEncoding)
		}
		return UUID(u), nil
	case "identity":
		return Identity{Code: IdentityCustom, Kind: ij.Kind, ID: ij.ID}, nil
	default:
		return nil, newAddrError("unmarshal", ij.Code, ErrUnknownProtocol)
	}
}

// protocolCodeFromKeyword maps a wire keyword back to its protocol code.
func protocolCodeFromKeyword(keyword string) (ProtocolCode, bool) {
	switch keyword {
	case "mac":
		return CodeMAC, true
	case "ip4":
		return CodeIP4, true
	case "ip6":
		return CodeIP6, true
	case "dns":
		return CodeDNS, true
	case "dns4":
		return CodeDNS4, true
	case "dns6":
		return CodeDNS6, true
	case "tcp":
		return CodeTCP, true
	case "udp":
		return CodeUDP, true
	case "tls":
		return CodeTLS, true
	case "quic":
		return CodeQUIC, true
	case "http":
		return CodeHTTP, true
	case "https":
		return CodeHTTPS, true
	case "ws":
		return CodeWS, true
	case "wss":
		return CodeWSS, true
	case "wtr", "webtransport":
		return CodeWebTransport, true
	case "webrtc":
		return CodeWebRTC, true
	case "onion":
		return CodeOnion, true
	case "custom":
		return CodeCustom, true
	default:
		return 0, false
	}
}
