package platform

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ampnet/tokenizer-middleware/internal/metrics"
	apperrors "github.com/ampnet/tokenizer-middleware/pkg/app/errors"
	"github.com/ampnet/tokenizer-middleware/pkg/history"
)

// issuerEnumerator is the subset of factory enumeration shared by every
// family.
type issuerEnumerator interface {
	GetInstances(ctx context.Context) ([]common.Address, error)
	GetInstancesForIssuer(ctx context.Context, issuer common.Address) ([]common.Address, error)
}

// assetEnumerator additionally narrows by asset.
type assetEnumerator interface {
	issuerEnumerator
	GetInstancesForAsset(ctx context.Context, asset common.Address) ([]common.Address, error)
}

// Discovery enumerates the instances each factory has created. It holds no
// state of its own: every call is answered by the factories' on-chain
// registries, so instances created outside this process are always visible.
type Discovery struct {
	issuers   issuerLister
	assets    issuerEnumerator
	campaigns assetEnumerator
	payouts   assetEnumerator
}

type issuerLister interface {
	GetInstances(ctx context.Context) ([]common.Address, error)
}

func NewDiscovery(issuers issuerLister, assets issuerEnumerator, campaigns, payouts assetEnumerator) *Discovery {
	return &Discovery{
		issuers:   issuers,
		assets:    assets,
		campaigns: campaigns,
		payouts:   payouts,
	}
}

// ListIssuers returns every issuer instance the factory has created.
func (d *Discovery) ListIssuers(ctx context.Context) ([]common.Address, error) {
	out, err := d.issuers.GetInstances(ctx)
	if err != nil {
		return nil, discoveryError("issuer", err)
	}
	metrics.DiscoveredInstances.WithLabelValues(string(KindIssuer)).Set(float64(len(out)))
	return out, nil
}

// ListForKind returns every instance of one family, unfiltered.
func (d *Discovery) ListForKind(ctx context.Context, kind InstanceKind) ([]common.Address, error) {
	enum, err := d.enumerator(kind)
	if err != nil {
		return nil, err
	}
	out, err := enum.GetInstances(ctx)
	if err != nil {
		return nil, discoveryError(string(kind), err)
	}
	metrics.DiscoveredInstances.WithLabelValues(string(kind)).Set(float64(len(out)))
	return out, nil
}

// ListForIssuer returns the instances of one family that belong to the
// issuer.
func (d *Discovery) ListForIssuer(ctx context.Context, kind InstanceKind, issuer common.Address) ([]common.Address, error) {
	enum, err := d.enumerator(kind)
	if err != nil {
		return nil, err
	}
	out, err := enum.GetInstancesForIssuer(ctx, issuer)
	if err != nil {
		return nil, discoveryError(string(kind), err)
	}
	return out, nil
}

// ListForAsset returns the campaigns or payout managers created against one
// asset.
func (d *Discovery) ListForAsset(ctx context.Context, kind InstanceKind, asset common.Address) ([]common.Address, error) {
	var enum assetEnumerator
	switch kind {
	case KindCampaign:
		enum = d.campaigns
	case KindPayoutManager:
		enum = d.payouts
	default:
		return nil, apperrors.BadRequestError(nil,
			fmt.Sprintf("kind %s cannot be narrowed by asset", kind))
	}
	out, err := enum.GetInstancesForAsset(ctx, asset)
	if err != nil {
		return nil, discoveryError(string(kind), err)
	}
	return out, nil
}

// InstanceSet gathers the issuer's assets, campaigns and payout managers in
// one shot, querying the three factories concurrently. History scans start
// here.
func (d *Discovery) InstanceSet(ctx context.Context, issuer common.Address) (history.InstanceSet, error) {
	var set history.InstanceSet
	var errs [3]error

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		set.Assets, errs[0] = d.assets.GetInstancesForIssuer(ctx, issuer)
	}()
	go func() {
		defer wg.Done()
		set.Campaigns, errs[1] = d.campaigns.GetInstancesForIssuer(ctx, issuer)
	}()
	go func() {
		defer wg.Done()
		set.PayoutManagers, errs[2] = d.payouts.GetInstancesForIssuer(ctx, issuer)
	}()
	wg.Wait()

	for i, family := range []string{"asset", "campaign", "payout manager"} {
		if errs[i] != nil {
			return history.InstanceSet{}, discoveryError(family, errs[i])
		}
	}
	return set, nil
}

func (d *Discovery) enumerator(kind InstanceKind) (issuerEnumerator, error) {
	switch kind {
	case KindAsset:
		return d.assets, nil
	case KindCampaign:
		return d.campaigns, nil
	case KindPayoutManager:
		return d.payouts, nil
	default:
		return nil, apperrors.BadRequestError(nil, fmt.Sprintf("unknown instance kind %q", kind))
	}
}

func discoveryError(family string, err error) error {
	return apperrors.DiscoveryUnavailableError(err,
		fmt.Sprintf("%s factory enumeration failed", family))
}
