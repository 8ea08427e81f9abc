package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"valora.backend/internal/config"
	"valora.backend/internal/domain/entities"
)

// USDTTronContractAddress is the USDT TRC-20 contract on the TRON mainnet
const USDTTronContractAddress = "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t"

// TronGridObserver watches TRON addresses for USDT TRC-20 transfers
type TronGridObserver struct {
	baseURL  string
	contract string
	client   *http.Client
}

// NewTronGridObserver creates a USDT TRC-20 observer
func NewTronGridObserver(cfg config.ExplorerConfig) *TronGridObserver {
	return &TronGridObserver{
		baseURL:  cfg.TronGridURL,
		contract: USDTTronContractAddress,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

// Currency returns the currency this observer watches
func (o *TronGridObserver) Currency() entities.Currency {
	return entities.CurrencyUSDTTRC20
}

type tronGridTx struct {
	TransactionID  string `json:"transaction_id"`
	From           string `json:"from"`
	To             string `json:"to"`
	Value          string `json:"value"`
	Confirmed      bool   `json:"confirmed"`
	BlockTimestamp int64  `json:"block_timestamp"`
}

// FetchInboundTransactions returns USDT transfers sent to the address,
// with values in 6-decimal base units. TronGrid only reports whether a
// transaction is confirmed, so confirmations are 0 or 1.
func (o *TronGridObserver) FetchInboundTransactions(ctx context.Context, address string) ([]entities.ObservedTransaction, error) {
	url := fmt.Sprintf("%s/v1/accounts/%s/transactions/trc20?contract_address=%s&limit=50",
		o.baseURL, address, o.contract)

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
		return nil, fmt.Errorf("trongrid returned status %d", resp.StatusCode)
	}

	var body struct {
		Data []tronGridTx `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode trongrid response: %w", err)
	}

	var txs []entities.ObservedTransaction
	for _, tx := range body.Data {
		if !strings.EqualFold(tx.To, address) {
			continue
		}
		value, err := decimal.NewFromString(tx.Value)
		if err != nil {
			continue
		}
		confirmations := 0
		if tx.Confirmed {
			confirmations = 1
		}
		txs = append(txs, entities.ObservedTransaction{
			Currency:      entities.CurrencyUSDTTRC20,
			Hash:          tx.TransactionID,
			Value:         value,
			Confirmations: confirmations,
			Timestamp:     time.UnixMilli(tx.BlockTimestamp).UTC(),
			From:          tx.From,
			To:            address,
		})
	}
	return txs, nil
}
