package config

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
)

// ErrUnknownNetwork is returned for a network name with no chain parameters.
var ErrUnknownNetwork = errors.New("unknown network")

// Params returns the chain parameters for the given network.
func Params(network NetworkType) (*chaincfg.Params, error) {
	switch network {
	case Mainnet:
		return &chaincfg.MainNetParams, nil
	case Testnet:
		return &chaincfg.TestNet3Params, nil
	case Regtest:
		return &chaincfg.RegressionNetParams, nil
	case Simnet:
		return &chaincfg.SimNetParams, nil
	case Signet:
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNetwork, network)
	}
}

// Networks lists all supported network names.
func Networks() []NetworkType {
	return []NetworkType{Mainnet, Testnet, Regtest, Simnet, Signet}
}
