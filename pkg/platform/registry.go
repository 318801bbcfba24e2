// Package platform orchestrates the tokenization contracts: it creates
// issuer, asset, campaign and payout manager instances through their
// factories, correlates the created instance addresses out of transaction
// receipts, discovers deployed instances, and drives the investment
// lifecycle.
package platform

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/ampnet/tokenizer-middleware/pkg/ethereum/contracts"
)

// Decoder recognizes one creation event. Parse returns an error when the log
// is not this event; the registry treats that as a non-match, never a
// failure. A non-zero Emitter restricts matches to logs from that address.
type Decoder struct {
	Event   string
	Kind    InstanceKind
	Emitter common.Address
	Parse   func(lg types.Log) (*CreationRecord, error)
}

// Registry holds an ordered list of creation event decoders. Order matters:
// the first decoder that recognizes a log wins.
type Registry struct {
	decoders []Decoder
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a decoder. Later registrations are tried after earlier
// ones.
func (r *Registry) Register(d Decoder) {
	r.decoders = append(r.decoders, d)
}

// TryDecode attempts each decoder against the log in registration order and
// returns the first match. Logs no decoder recognizes return (nil, false).
// Callers that expect one specific event use TryDecodeEvent, which scopes
// the attempt to the decoders registered under that event name.
func (r *Registry) TryDecode(lg types.Log) (*CreationRecord, bool) {
	for _, d := range r.decoders {
		if record, ok := r.decodeWith(d, lg); ok {
			return record, true
		}
	}
	return nil, false
}

// TryDecodeEvent decodes the log with the decoders registered for one named
// event only.
func (r *Registry) TryDecodeEvent(lg types.Log, event string) (*CreationRecord, bool) {
	for _, d := range r.decoders {
		if d.Event != event {
			continue
		}
		if record, ok := r.decodeWith(d, lg); ok {
			return record, true
		}
	}
	return nil, false
}

func (r *Registry) decodeWith(d Decoder, lg types.Log) (*CreationRecord, bool) {
	if d.Emitter != (common.Address{}) && d.Emitter != lg.Address {
		return nil, false
	}
	record, err := d.Parse(lg)
	if err != nil {
		return nil, false
	}
	record.Kind = d.Kind
	record.EventName = d.Event
	record.Raw = lg
	return record, true
}

// DefaultRegistry wires decoders for the four factory creation events.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Decoder{
		Event: "IssuerCreated",
		Kind:  KindIssuer,
		Parse: func(lg types.Log) (*CreationRecord, error) {
			ev, err := contracts.ParseIssuerCreated(lg)
			if err != nil {
				return nil, err
			}
			return &CreationRecord{Instance: ev.Issuer, Owner: ev.Creator, ID: ev.Id}, nil
		},
	})
	r.Register(Decoder{
		Event: "AssetCreated",
		Kind:  KindAsset,
		Parse: func(lg types.Log) (*CreationRecord, error) {
			ev, err := contracts.ParseAssetCreated(lg)
			if err != nil {
				return nil, err
			}
			return &CreationRecord{Instance: ev.Asset, Owner: ev.Creator, ID: ev.Id}, nil
		},
	})
	r.Register(Decoder{
		Event: "CfManagerSoftcapCreated",
		Kind:  KindCampaign,
		Parse: func(lg types.Log) (*CreationRecord, error) {
			ev, err := contracts.ParseCfManagerSoftcapCreated(lg)
			if err != nil {
				return nil, err
			}
			return &CreationRecord{Instance: ev.CfManager, Owner: ev.Creator, ID: ev.Id, Asset: ev.Asset}, nil
		},
	})
	r.Register(Decoder{
		Event: "PayoutManagerCreated",
		Kind:  KindPayoutManager,
		Parse: func(lg types.Log) (*CreationRecord, error) {
			ev, err := contracts.ParsePayoutManagerCreated(lg)
			if err != nil {
				return nil, err
			}
			return &CreationRecord{Instance: ev.PayoutManager, Owner: ev.Creator, ID: ev.Id, Asset: ev.Asset}, nil
		},
	})
	return r
}
