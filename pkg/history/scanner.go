package history

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/ampnet/tokenizer-middleware/internal/metrics"
	"github.com/ampnet/tokenizer-middleware/pkg/ethereum/contracts"
)

// BlockTimeSource resolves a block number to its timestamp. Transfer events
// carry no timestamp of their own, so the scanner looks one up per match.
type BlockTimeSource interface {
	BlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error)
}

// Scanner queries the event history of every instance in an InstanceSet and
// normalizes the matches into Records. All instance queries run concurrently;
// a failing instance is reported but never hides results from the others.
type Scanner struct {
	backend bind.ContractBackend
	blocks  BlockTimeSource
	logger  *zap.Logger
}

func NewScanner(backend bind.ContractBackend, blocks BlockTimeSource, logger *zap.Logger) *Scanner {
	return &Scanner{
		backend: backend,
		blocks:  blocks,
		logger:  logger.Named("history"),
	}
}

type scanJob struct {
	instance common.Address
	event    string
	run      func(ctx context.Context) ([]Record, error)
}

// Scan reconstructs the wallet's transaction records across every instance in
// the set. The returned slice is unordered; callers merge it with Merge. If
// some instance queries fail while others succeed, the successful records are
// returned together with a *PartialError listing the failures.
func (s *Scanner) Scan(ctx context.Context, wallet common.Address, set InstanceSet) ([]Record, error) {
	jobs := s.buildJobs(wallet, set)

	results := make([][]Record, len(jobs))
	errs := make([]error, len(jobs))

	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(i int, job scanJob) {
			defer wg.Done()
			metrics.ScanQueriesTotal.WithLabelValues(job.event).Inc()
			records, err := job.run(ctx)
			if err != nil {
				metrics.ScanFailuresTotal.WithLabelValues(job.event).Inc()
				s.logger.Warn("instance query failed",
					zap.String("instance", job.instance.Hex()),
					zap.String("event", job.event),
					zap.Error(err))
				errs[i] = err
				return
			}
			results[i] = records
		}(i, job)
	}
	wg.Wait()

	var records []Record
	var failures []InstanceFailure
	for i, job := range jobs {
		if errs[i] != nil {
			failures = append(failures, InstanceFailure{
				Instance: job.instance,
				Event:    job.event,
				Err:      errs[i],
			})
			continue
		}
		records = append(records, results[i]...)
	}
	if len(failures) > 0 {
		return records, &PartialError{Failures: failures}
	}
	return records, nil
}

func (s *Scanner) buildJobs(wallet common.Address, set InstanceSet) []scanJob {
	filter := []common.Address{wallet}
	var jobs []scanJob

	for _, addr := range set.Assets {
		asset := contracts.NewAsset(addr, s.backend)
		jobs = append(jobs,
			scanJob{addr, "Transfer(from)", func(ctx context.Context) ([]Record, error) {
				events, err := asset.FilterTransfer(ctx, filter, nil)
				if err != nil {
					return nil, err
				}
				return s.transferRecords(ctx, asset.Address(), events)
			}},
			scanJob{addr, "Transfer(to)", func(ctx context.Context) ([]Record, error) {
				events, err := asset.FilterTransfer(ctx, nil, filter)
				if err != nil {
					return nil, err
				}
				return s.transferRecords(ctx, asset.Address(), events)
			}},
		)
	}

	for _, addr := range set.Campaigns {
		campaign := contracts.NewCfManager(addr, s.backend)
		jobs = append(jobs,
			scanJob{addr, "Invest", func(ctx context.Context) ([]Record, error) {
				events, err := campaign.FilterInvest(ctx, filter)
				if err != nil {
					return nil, err
				}
				return campaignRecords(KindInvest, campaign.Address(), events), nil
			}},
			scanJob{addr, "CancelInvestment", func(ctx context.Context) ([]Record, error) {
				events, err := campaign.FilterCancelInvestment(ctx, filter)
				if err != nil {
					return nil, err
				}
				return campaignRecords(KindCancelInvestment, campaign.Address(), events), nil
			}},
			scanJob{addr, "Claim", func(ctx context.Context) ([]Record, error) {
				events, err := campaign.FilterClaim(ctx, filter)
				if err != nil {
					return nil, err
				}
				return campaignRecords(KindClaimTokens, campaign.Address(), events), nil
			}},
		)
	}

	for _, addr := range set.PayoutManagers {
		manager := contracts.NewPayoutManager(addr, s.backend)
		jobs = append(jobs, scanJob{addr, "Release", func(ctx context.Context) ([]Record, error) {
			events, err := manager.FilterRelease(ctx, filter)
			if err != nil {
				return nil, err
			}
			return releaseRecords(manager.Address(), events), nil
		}})
	}

	return jobs
}

// transferRecords resolves each transfer's block timestamp before
// normalizing. A failed lookup fails the whole query for this instance.
func (s *Scanner) transferRecords(ctx context.Context, asset common.Address, events []contracts.Transfer) ([]Record, error) {
	records := make([]Record, 0, len(events))
	for _, ev := range events {
		ts, err := s.blocks.BlockTimestamp(ctx, ev.Raw.BlockNumber)
		if err != nil {
			return nil, err
		}
		records = append(records, Record{
			Kind:        KindTokenTransfer,
			From:        ev.From,
			To:          ev.To,
			Amount:      ev.Value,
			Asset:       asset,
			Timestamp:   ts,
			BlockNumber: ev.Raw.BlockNumber,
			LogIndex:    ev.Raw.Index,
			TxHash:      ev.Raw.TxHash,
		})
	}
	return records, nil
}

// campaignRecords normalizes Invest, CancelInvestment and Claim events. The
// stablecoin value goes into Amount and the token side into TokenAmount. For
// investments funds flow wallet to campaign; for cancellations and claims the
// direction is reversed.
func campaignRecords(kind Kind, campaign common.Address, events []contracts.CampaignEvent) []Record {
	records := make([]Record, 0, len(events))
	for _, ev := range events {
		record := Record{
			Kind:        kind,
			Amount:      ev.TokenValue,
			TokenAmount: ev.TokenAmount,
			Timestamp:   time.Unix(ev.Timestamp.Int64(), 0).UTC(),
			BlockNumber: ev.Raw.BlockNumber,
			LogIndex:    ev.Raw.Index,
			TxHash:      ev.Raw.TxHash,
		}
		if kind == KindInvest {
			record.From = ev.Investor
			record.To = campaign
		} else {
			record.From = campaign
			record.To = ev.Investor
		}
		records = append(records, record)
	}
	return records
}

func releaseRecords(manager common.Address, events []contracts.Release) []Record {
	records := make([]Record, 0, len(events))
	for _, ev := range events {
		records = append(records, Record{
			Kind:        KindRevenueShare,
			From:        manager,
			To:          ev.Investor,
			Amount:      ev.Amount,
			Asset:       ev.Asset,
			PayoutID:    ev.PayoutId,
			Timestamp:   time.Unix(ev.Timestamp.Int64(), 0).UTC(),
			BlockNumber: ev.Raw.BlockNumber,
			LogIndex:    ev.Raw.Index,
			TxHash:      ev.Raw.TxHash,
		})
	}
	return records
}
