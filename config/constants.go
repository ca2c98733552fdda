package config

const (
	NormalizerSection = "normalizer"

	NetworkMainnet = "mainnet"
	NetworkDevnet  = "devnet"
)
