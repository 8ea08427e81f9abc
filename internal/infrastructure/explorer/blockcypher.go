package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"valora.backend/internal/config"
	"valora.backend/internal/domain/entities"
)

// BlockCypherObserver watches Bitcoin addresses via the BlockCypher API
type BlockCypherObserver struct {
	baseURL string
	client  *http.Client
}

// NewBlockCypherObserver creates a Bitcoin observer
func NewBlockCypherObserver(cfg config.ExplorerConfig) *BlockCypherObserver {
	return &BlockCypherObserver{
		baseURL: cfg.BlockCypherURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Currency returns the currency this observer watches
func (o *BlockCypherObserver) Currency() entities.Currency {
	return entities.CurrencyBTC
}

type blockCypherTx struct {
	Hash          string    `json:"hash"`
	Confirmations int       `json:"confirmations"`
	Received      time.Time `json:"received"`
	Inputs        []struct {
		Addresses []string `json:"addresses"`
	} `json:"inputs"`
	Outputs []struct {
		Value     int64    `json:"value"`
		Addresses []string `json:"addresses"`
	} `json:"outputs"`
}

// FetchInboundTransactions returns transactions paying the address, with
// values in satoshis.
func (o *BlockCypherObserver) FetchInboundTransactions(ctx context.Context, address string) ([]entities.ObservedTransaction, error) {
	url := fmt.Sprintf("%s/btc/main/addrs/%s/full?limit=50", o.baseURL, address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("blockcypher returned status %d", resp.StatusCode)
	}

	var body struct {
		Txs []blockCypherTx `json:"txs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode blockcypher response: %w", err)
	}

	var txs []entities.ObservedTransaction
	for _, tx := range body.Txs {
		for _, output := range tx.Outputs {
			if !containsAddress(output.Addresses, address) {
				continue
			}
			from := "unknown"
			if len(tx.Inputs) > 0 && len(tx.Inputs[0].Addresses) > 0 {
				from = tx.Inputs[0].Addresses[0]
			}
			txs = append(txs, entities.ObservedTransaction{
				Currency:      entities.CurrencyBTC,
				Hash:          tx.Hash,
				Value:         decimal.NewFromInt(output.Value),
				Confirmations: tx.Confirmations,
				Timestamp:     tx.Received,
				From:          from,
				To:            address,
			})
		}
	}
	return txs, nil
}

func containsAddress(addresses []string, address string) bool {
	for _, a := range addresses {
		if a == address {
			return true
		}
	}
	return false
}
