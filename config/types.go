package config

// normalizerSection mirrors the [normalizer] section of the connector .ini file.
// Setting default_valid_until below 4294967295 changes what an absent validUntil
// means: such transactions expire at that block instead of never.
type normalizerSection struct {
	DefaultValidUntil int64 `ini:"default_valid_until"`
	MaxMemoBytes      int   `ini:"max_memo_bytes"`
}

// NetworkProfile is one entry of profiles.yml. Absent limits fall back to the
// normalizer defaults.
//
// DefaultValidUntil overrides the "never expires" sentinel for this network: a
// description without validUntil normalizes to this block height rather than
// 4294967295. Leave it unset to keep the wallet-facing default.
type NetworkProfile struct {
	Name              string  `yaml:"name"`
	NetworkID         string  `yaml:"network_id"`
	DefaultValidUntil *uint32 `yaml:"default_valid_until"`
	MaxMemoBytes      *int    `yaml:"max_memo_bytes"`
}

// ProfilesFile is the top-level structure for profiles.yml
type ProfilesFile struct {
	Profiles []NetworkProfile `yaml:"profiles"`
}
