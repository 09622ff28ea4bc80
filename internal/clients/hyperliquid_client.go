package clients

import (
	"context"
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	hyperliquid "github.com/sonirico/go-hyperliquid"
)

// HyperliquidClient wraps the Hyperliquid SDK. The SDK authenticates with an
// ECDSA key even for read paths, so one is required here too.
type HyperliquidClient struct {
	exchange    *hyperliquid.Exchange
	accountAddr string
}

const mainnetAPIURL = "https://api.hyperliquid.xyz"

// NewHyperliquidClient derives the account address from the private key and
// builds the exchange handle. An empty baseURL selects mainnet.
func NewHyperliquidClient(privateKeyHex, baseURL string) (*HyperliquidClient, error) {
	if baseURL == "" {
		baseURL = mainnetAPIURL
	}

	key := privateKeyHex
	if len(key) >= 2 && (key[:2] == "0x" || key[:2] == "0X") {
		key = key[2:]
	}

	privateKey, err := crypto.HexToECDSA(key)
	if err != nil {
		return nil, err
	}

	pub := privateKey.Public()
	pubECDSA, ok := pub.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("error casting public key to ECDSA")
	}
	accountAddr := crypto.PubkeyToAddress(*pubECDSA).Hex()

	ex := hyperliquid.NewExchange(
		context.Background(),
		privateKey,
		baseURL,
		nil,
		"",
		accountAddr,
		nil,
	)

	return &HyperliquidClient{exchange: ex, accountAddr: accountAddr}, nil
}

// Info returns the market data handle.
func (c *HyperliquidClient) Info() *hyperliquid.Info { return c.exchange.Info() }

// AccountAddress returns the derived account address.
func (c *HyperliquidClient) AccountAddress() string { return c.accountAddr }
