package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mezonai/mina-connector/codec"
	"github.com/mezonai/mina-connector/config"
	txerrors "github.com/mezonai/mina-connector/errors"
	"github.com/mezonai/mina-connector/logx"
	"github.com/mezonai/mina-connector/stringutil"
	"github.com/mezonai/mina-connector/transaction"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	formatJSON = "json"
	formatCBOR = "cbor"
)

// SourceConfig selects the description a command reads and the defaults it is
// normalized with.
type SourceConfig struct {
	Kind         string
	Input        string
	Format       string
	ConfigPath   string
	ProfilesPath string
	Network      string
}

type NormalizeConfig struct {
	SourceConfig
	Emit   string
	Pretty bool
}

type HashConfig struct {
	SourceConfig
}

var (
	normalizeConfig NormalizeConfig
	hashConfig      HashConfig
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [flags]",
	Short: "Print the canonical record for a transaction description",
	Long: `Reads a transaction description (JSON or CBOR) and prints the canonical record
the signer expects, with amount, memo and validUntil defaulted.

Examples:
  # Normalize a payment read from stdin
  echo '{"to":"B62A","from":"B62B","fee":1000000,"nonce":3}' | normalize

  # Normalize a delegation from a file using the devnet profile
  normalize -k delegation -i tx.json --profiles profiles.yml --network devnet`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat("emit", normalizeConfig.Emit); err != nil {
			return err
		}
		c, err := loadCanonical(cmd, normalizeConfig.SourceConfig)
		if err != nil {
			return err
		}
		return writeCanonical(cmd.OutOrStdout(), c, normalizeConfig)
	},
}

var hashCmd = &cobra.Command{
	Use:   "hash [flags]",
	Short: "Print the history fingerprint of a normalized transaction",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCanonical(cmd, hashConfig.SourceConfig)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), c.Hash())
		return err
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(hashCmd)

	bindSourceFlags(normalizeCmd.Flags(), &normalizeConfig.SourceConfig)
	normalizeCmd.Flags().StringVar(&normalizeConfig.Emit, "emit", formatJSON, "output format (json or cbor)")
	normalizeCmd.Flags().BoolVar(&normalizeConfig.Pretty, "pretty", false, "indent JSON output")

	bindSourceFlags(hashCmd.Flags(), &hashConfig.SourceConfig)
}

func bindSourceFlags(fs *pflag.FlagSet, cfg *SourceConfig) {
	fs.StringVarP(&cfg.Kind, "kind", "k", "payment", "transaction kind (payment, delegation, zkApp)")
	fs.StringVarP(&cfg.Input, "input", "i", "-", "description file, - for stdin")
	fs.StringVar(&cfg.Format, "format", formatJSON, "input format (json or cbor)")
	fs.StringVar(&cfg.ConfigPath, "config", "", "connector .ini file with a [normalizer] section")
	fs.StringVar(&cfg.ProfilesPath, "profiles", "", "network profiles .yml file")
	fs.StringVar(&cfg.Network, "network", config.NetworkMainnet, "profile name to apply from --profiles")
}

func checkFormat(flag, format string) error {
	switch format {
	case formatJSON, formatCBOR:
		return nil
	}
	return &txerrors.UnsupportedFormatError{Flag: flag, Value: format}
}

func loadCanonical(cmd *cobra.Command, cfg SourceConfig) (transaction.Canonical, error) {
	if err := checkFormat("format", cfg.Format); err != nil {
		return nil, err
	}
	kind, err := transaction.ParseKind(cfg.Kind)
	if err != nil {
		return nil, err
	}
	normalizer, err := buildNormalizer(cfg)
	if err != nil {
		return nil, err
	}
	raw, err := readInput(cmd.InOrStdin(), cfg.Input)
	if err != nil {
		return nil, err
	}

	var d transaction.Description
	switch cfg.Format {
	case formatJSON:
		d, err = codec.DecodeDescriptionJSON(raw)
	case formatCBOR:
		d, err = codec.DecodeDescriptionCBOR(raw)
	default:
		err = checkFormat("format", cfg.Format)
	}
	if err != nil {
		return nil, err
	}

	c, err := normalizer.Normalize(kind, d)
	if err != nil {
		return nil, err
	}
	logx.Info("NORMALIZE", fmt.Sprintf("Normalized %s from %s (nonce: %d, fingerprint: %s)",
		kind, stringutil.ShortenLog(d.From), *d.Nonce, stringutil.ShortenLog(c.Hash())))
	return c, nil
}

func buildNormalizer(cfg SourceConfig) (*transaction.Normalizer, error) {
	ncfg := transaction.DefaultNormalizerConfig()
	if cfg.ConfigPath != "" {
		loaded, err := config.LoadNormalizerConfig(cfg.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load normalizer config: %w", err)
		}
		ncfg = loaded
	}
	if cfg.ProfilesPath != "" {
		profiles, err := config.LoadProfiles(cfg.ProfilesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load profiles: %w", err)
		}
		profile, err := profiles.Find(cfg.Network)
		if err != nil {
			return nil, err
		}
		ncfg = profile.NormalizerConfig(ncfg)
	}
	return transaction.NewNormalizer(ncfg), nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func writeCanonical(w io.Writer, c transaction.Canonical, cfg NormalizeConfig) error {
	var (
		out []byte
		err error
	)
	switch cfg.Emit {
	case formatJSON:
		out, err = codec.EncodeCanonicalJSON(c)
		if err == nil && cfg.Pretty {
			var buf bytes.Buffer
			err = json.Indent(&buf, out, "", "  ")
			out = buf.Bytes()
		}
		out = append(out, '\n')
	case formatCBOR:
		out, err = codec.EncodeCanonicalCBOR(c)
	default:
		err = checkFormat("emit", cfg.Emit)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
