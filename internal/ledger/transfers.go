package ledger

import (
	"context"
	"fmt"

	"contas/internal/core"
	"contas/internal/log"
)

// TransferResponse is the create-transfer reply: the authoritative record
// plus the ids of the two double-entry legs the ledger booked.
type TransferResponse struct {
	Transfer         core.TransferRecord `json:"transfer"`
	SrcTransactionID int64               `json:"src_transaction_id"`
	DstTransactionID int64               `json:"dst_transaction_id"`
}

// CreateTransfer submits a request already assembled by
// core.TransferDraft.BuildCreateRequest. A transfer books two
// transactions, so that collection is invalidated alongside any cached
// transfer reads.
func (c *Client) CreateTransfer(ctx context.Context, req core.TransferCreateRequest) (TransferResponse, error) {
	var resp TransferResponse
	if err := c.post(ctx, "/fin/transfers", req, &resp); err != nil {
		return TransferResponse{}, err
	}
	c.cache.Invalidate(transactionsCollection)
	c.logger.Info("transfer created",
		log.FieldOperation, log.OpCreate,
		log.FieldTransferID, resp.Transfer.ID,
		log.FieldAmount, resp.Transfer.SrcAmount,
		log.FieldFxRate, resp.Transfer.RateValue)
	return resp, nil
}

// GetTransfer fetches the authoritative record for one transfer.
func (c *Client) GetTransfer(ctx context.Context, id int64) (core.TransferRecord, error) {
	var tr core.TransferRecord
	if err := c.get(ctx, fmt.Sprintf("/fin/transfers/%d", id), nil, &tr); err != nil {
		return core.TransferRecord{}, err
	}
	return tr, nil
}

// VoidTransfer logically reverses a transfer and both of its legs.
func (c *Client) VoidTransfer(ctx context.Context, id int64) (core.TransferRecord, error) {
	var tr core.TransferRecord
	if err := c.post(ctx, fmt.Sprintf("/fin/transfers/%d/void", id), nil, &tr); err != nil {
		return core.TransferRecord{}, err
	}
	c.cache.Invalidate(transactionsCollection)
	c.logger.Info("transfer voided",
		log.FieldOperation, log.OpVoid, log.FieldTransferID, id)
	return tr, nil
}
