package votepower

import "fmt"

// Network is a Radix network id.
type Network uint8

const (
	Mainnet  Network = 1
	Stokenet Network = 2
)

const (
	mainnetXRD            = "resource_rdx1tknxxxxxxxxxradxrdxxxxxxxxx009923554798xxxxxxxxxradxrd"
	mainnetLSULPResource  = "resource_rdx1thksg5ng70g9mmy9ne7wz0sc7auzrrwy7fmgcxzel2gvp8pj0xxfmf"
	mainnetLSULPComponent = "component_rdx1cppy08xgra5tv5melsjtj79c0ngvrlmzl8hhs7vwtzknp9xxs63mfp"

	stokenetXRD        = "resource_tdx_2_1tknxxxxxxxxxradxrdxxxxxxxxx009923554798xxxxxxxxxtfd2jc"
	stokenetGovernance = "component_tdx_2_1cqnp3rptnwqjc4r7kzwkctec09jkdqa8v2rue580kw66fvt4ctpnmc"
)

// ParseNetwork validates a numeric network id.
func ParseNetwork(id int) (Network, error) {
	switch Network(id) {
	case Mainnet, Stokenet:
		return Network(id), nil
	default:
		return 0, fmt.Errorf("unsupported network id %d", id)
	}
}

func (n Network) String() string {
	switch n {
	case Mainnet:
		return "mainnet"
	case Stokenet:
		return "stokenet"
	default:
		return fmt.Sprintf("network-%d", uint8(n))
	}
}

// IsMainnet reports whether LSULP and DEX sources apply.
func (n Network) IsMainnet() bool { return n == Mainnet }

// XRD returns the network's native token resource.
func (n Network) XRD() string {
	if n == Mainnet {
		return mainnetXRD
	}
	return stokenetXRD
}

// GovernanceComponent returns the default governance component, empty when the network has none.
func (n Network) GovernanceComponent() string {
	if n == Stokenet {
		return stokenetGovernance
	}
	return ""
}

// GatewayURLs returns the public gateway for the network.
func (n Network) GatewayURLs() []string {
	if n == Mainnet {
		return []string{"https://mainnet.radixdlt.com"}
	}
	return []string{"https://stokenet.radixdlt.com"}
}

// LSULP returns the default liquid-staking pool resource and component.
func (n Network) LSULP() (resource, component string) {
	if n == Mainnet {
		return mainnetLSULPResource, mainnetLSULPComponent
	}
	return "", ""
}
