package config

import (
	"fmt"
	"math"
	"os"

	"github.com/mezonai/mina-connector/logx"
	"github.com/mezonai/mina-connector/transaction"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// LoadNormalizerConfig reads the [normalizer] section of an .ini file. Keys that
// are not set keep transaction.DefaultNormalizerConfig values. A
// default_valid_until other than transaction.DefaultValidUntil makes absent
// validUntil a finite expiry, which is logged as a warning.
func LoadNormalizerConfig(path string) (transaction.NormalizerConfig, error) {
	defaults := transaction.DefaultNormalizerConfig()
	cfg, err := ini.Load(path)
	if err != nil {
		return defaults, err
	}
	section := normalizerSection{
		DefaultValidUntil: int64(defaults.DefaultValidUntil),
		MaxMemoBytes:      defaults.MaxMemoBytes,
	}
	if err := cfg.Section(NormalizerSection).MapTo(&section); err != nil {
		return defaults, err
	}
	if section.DefaultValidUntil <= 0 || section.DefaultValidUntil > math.MaxUint32 {
		return defaults, fmt.Errorf("config: default_valid_until %d out of range 1..%d", section.DefaultValidUntil, uint32(math.MaxUint32))
	}
	logx.Info("CONFIG", fmt.Sprintf("Loaded normalizer config from %s: default_valid_until=%d max_memo_bytes=%d",
		path, section.DefaultValidUntil, section.MaxMemoBytes))
	if uint32(section.DefaultValidUntil) != transaction.DefaultValidUntil {
		logx.Warn("CONFIG", fmt.Sprintf("Transactions without validUntil will expire at block %d", section.DefaultValidUntil))
	}
	return transaction.NormalizerConfig{
		DefaultValidUntil: uint32(section.DefaultValidUntil),
		MaxMemoBytes:      section.MaxMemoBytes,
	}, nil
}

// LoadProfiles reads and parses a profiles.yml file
func LoadProfiles(path string) (*ProfilesFile, error) {
	file, err := os.Open(path)
	if err != nil {
		logx.Error("CONFIG", "Failed to open profiles file: ", err)
		return nil, err
	}
	defer file.Close()

	var profiles ProfilesFile
	if err := yaml.NewDecoder(file).Decode(&profiles); err != nil {
		logx.Error("CONFIG", "Failed to decode profiles YAML: ", err)
		return nil, err
	}
	seen := make(map[string]struct{}, len(profiles.Profiles))
	for _, p := range profiles.Profiles {
		if p.Name == "" {
			return nil, fmt.Errorf("config: profile without name in %s", path)
		}
		if _, dup := seen[p.Name]; dup {
			return nil, fmt.Errorf("config: duplicate profile %q in %s", p.Name, path)
		}
		seen[p.Name] = struct{}{}
	}
	logx.Info("CONFIG", fmt.Sprintf("Loaded %d network profiles from %s", len(profiles.Profiles), path))
	return &profiles, nil
}

func (f *ProfilesFile) Find(name string) (NetworkProfile, error) {
	for _, p := range f.Profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return NetworkProfile{}, fmt.Errorf("config: no profile named %q", name)
}

// NormalizerConfig layers the profile's limits over base.
func (p NetworkProfile) NormalizerConfig(base transaction.NormalizerConfig) transaction.NormalizerConfig {
	if p.DefaultValidUntil != nil {
		base.DefaultValidUntil = *p.DefaultValidUntil
	}
	if p.MaxMemoBytes != nil {
		base.MaxMemoBytes = *p.MaxMemoBytes
	}
	return base
}
