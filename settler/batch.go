package settler

import (
	"fmt"
	"math/big"

	"github.com/HumansWindow/minting-service/app"
	"github.com/HumansWindow/minting-service/models"
	"github.com/google/uuid"
)

// Chunk is a group of claimed requests that settles in one chain
// transaction. A single receipt decides the outcome for every member.
type Chunk struct {
	ID       string
	Kind     models.Kind
	Requests []models.MintRequest
}

// TotalAmount sums the member amounts. The same per-item amounts are what
// the vault call receives, so the sum the chunk reports is exactly the sum
// that moves on chain.
func (c *Chunk) TotalAmount() (*big.Int, error) {
	total := new(big.Int)
	for _, request := range c.Requests {
		if request.Amount == "" {
			continue
		}
		amount, ok := new(big.Int).SetString(request.Amount, 10)
		if !ok {
			return nil, fmt.Errorf("invalid amount %q on request %s", request.Amount, request.Id.Hex())
		}
		total.Add(total, amount)
	}
	return total, nil
}

// PartitionClaims groups claimed requests into settlement chunks. Payouts
// and burns of the same kind share chunks of up to MaxBatchSize in claim
// order; membership and annual mints settle alone since the vault call is
// per-address. Chunk order follows the order of each chunk's first member,
// so the claim ordering carries through to submission.
func PartitionClaims(requests []models.MintRequest) []*Chunk {
	maxBatchSize := app.Config.Queue.MaxBatchSize
	if maxBatchSize <= 0 {
		maxBatchSize = models.DefaultMaxBatchSize
	}

	var chunks []*Chunk
	open := map[models.Kind]*Chunk{}

	for _, request := range requests {
		if !request.Kind.IsBatchable() {
			chunks = append(chunks, &Chunk{
				ID:       uuid.New().String(),
				Kind:     request.Kind,
				Requests: []models.MintRequest{request},
			})
			continue
		}

		chunk, ok := open[request.Kind]
		if !ok || int64(len(chunk.Requests)) >= maxBatchSize {
			chunk = &Chunk{
				ID:   uuid.New().String(),
				Kind: request.Kind,
			}
			chunks = append(chunks, chunk)
			open[request.Kind] = chunk
		}
		chunk.Requests = append(chunk.Requests, request)
	}

	return chunks
}
