package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"valora.backend/internal/config"
	"valora.backend/internal/domain/entities"
)

// USDTContractAddress is the USDT ERC-20 contract on Ethereum mainnet
const USDTContractAddress = "0xdAC17F958D2ee523a2206206994597C13D831ec7"

// EtherscanObserver watches Ethereum addresses for native ETH transfers
type EtherscanObserver struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewEtherscanObserver creates an Ethereum observer
func NewEtherscanObserver(cfg config.ExplorerConfig) *EtherscanObserver {
	return &EtherscanObserver{
		baseURL: cfg.EtherscanURL,
		apiKey:  cfg.EtherscanKey,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Currency returns the currency this observer watches
func (o *EtherscanObserver) Currency() entities.Currency {
	return entities.CurrencyETH
}

type etherscanTx struct {
	Hash          string `json:"hash"`
	From          string `json:"from"`
	To            string `json:"to"`
	Value         string `json:"value"`
	Confirmations string `json:"confirmations"`
	TimeStamp     string `json:"timeStamp"`
	IsError       string `json:"isError"`
}

// FetchInboundTransactions returns successful transactions sent to the
// address, with values in wei.
func (o *EtherscanObserver) FetchInboundTransactions(ctx context.Context, address string) ([]entities.ObservedTransaction, error) {
	params := url.Values{}
	params.Set("module", "account")
	params.Set("action", "txlist")
	params.Set("address", address)
	params.Set("startblock", "0")
	params.Set("endblock", "99999999")
	params.Set("sort", "desc")
	params.Set("apikey", o.apiKey)

	result, err := fetchEtherscan(ctx, o.client, o.baseURL, params)
	if err != nil {
		return nil, err
	}

	var txs []entities.ObservedTransaction
	for _, tx := range result {
		if !strings.EqualFold(tx.To, address) || tx.IsError != "0" {
			continue
		}
		observed, err := etherscanToObserved(tx, entities.CurrencyETH, address)
		if err != nil {
			continue
		}
		txs = append(txs, observed)
	}
	return txs, nil
}

// EtherscanTokenObserver watches Ethereum addresses for USDT ERC-20 transfers
type EtherscanTokenObserver struct {
	baseURL  string
	apiKey   string
	contract string
	client   *http.Client
}

// NewEtherscanTokenObserver creates a USDT ERC-20 observer
func NewEtherscanTokenObserver(cfg config.ExplorerConfig) *EtherscanTokenObserver {
	return &EtherscanTokenObserver{
		baseURL:  cfg.EtherscanURL,
		apiKey:   cfg.EtherscanKey,
		contract: USDTContractAddress,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

// Currency returns the currency this observer watches
func (o *EtherscanTokenObserver) Currency() entities.Currency {
	return entities.CurrencyUSDTERC20
}

// FetchInboundTransactions returns USDT token transfers sent to the
// address, with values in 6-decimal base units.
func (o *EtherscanTokenObserver) FetchInboundTransactions(ctx context.Context, address string) ([]entities.ObservedTransaction, error) {
	params := url.Values{}
	params.Set("module", "account")
	params.Set("action", "tokentx")
	params.Set("contractaddress", o.contract)
	params.Set("address", address)
	params.Set("page", "1")
	params.Set("offset", "100")
	params.Set("sort", "desc")
	params.Set("apikey", o.apiKey)

	result, err := fetchEtherscan(ctx, o.client, o.baseURL, params)
	if err != nil {
		return nil, err
	}

	var txs []entities.ObservedTransaction
	for _, tx := range result {
		if !strings.EqualFold(tx.To, address) {
			continue
		}
		observed, err := etherscanToObserved(tx, entities.CurrencyUSDTERC20, address)
		if err != nil {
			continue
		}
		txs = append(txs, observed)
	}
	return txs, nil
}

func fetchEtherscan(ctx context.Context, client *http.Client, baseURL string, params url.Values) ([]etherscanTx, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("etherscan returned status %d", resp.StatusCode)
	}

	// Etherscan signals "no transactions" with status "0" and a string
	// result, so the result field has to be decoded leniently.
	var body struct {
		Status string          `json:"status"`
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode etherscan response: %w", err)
	}

	var result []etherscanTx
	if err := json.Unmarshal(body.Result, &result); err != nil {
		return nil, nil
	}
	return result, nil
}

func etherscanToObserved(tx etherscanTx, currency entities.Currency, address string) (entities.ObservedTransaction, error) {
	value, err := decimal.NewFromString(tx.Value)
	if err != nil {
		return entities.ObservedTransaction{}, fmt.Errorf("invalid value %q: %w", tx.Value, err)
	}

	confirmations, _ := strconv.Atoi(tx.Confirmations)

	var timestamp time.Time
	if unix, err := strconv.ParseInt(tx.TimeStamp, 10, 64); err == nil {
		timestamp = time.Unix(unix, 0).UTC()
	}

	return entities.ObservedTransaction{
		Currency:      currency,
		Hash:          tx.Hash,
		Value:         value,
		Confirmations: confirmations,
		Timestamp:     timestamp,
		From:          tx.From,
		To:            address,
	}, nil
}
