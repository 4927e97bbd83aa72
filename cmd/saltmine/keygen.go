package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/wenakita/saltmine/internal/ui"
	"github.com/wenakita/saltmine/pkg/derive"
	"github.com/wenakita/saltmine/pkg/miner"
)

func newKeygenCmd() *cobra.Command {
	var (
		network string
		prefix  string
		suffix  string
		workers int
		output  string
	)

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Mine a keypair whose public address matches a pattern",
		RunE: func(cmd *cobra.Command, args []string) error {
			ui.PrintBanner(version)

			if prefix == "" && suffix == "" {
				return errors.New("at least one of --prefix or --suffix is required")
			}

			var (
				deriver    miner.Deriver
				matcher    miner.Matcher
				difficulty uint64
				hexPattern bool
			)
			switch strings.ToLower(network) {
			case "eth", "ethereum":
				network = "ethereum"
				hexPattern = true
				deriver = derive.EthereumKeypair{}
				pattern, err := miner.ParsePattern(prefix, suffix)
				if err != nil {
					return err
				}
				matcher = pattern
				difficulty = hexDifficulty(pattern.Bits())
			case "sol", "solana":
				network = "solana"
				deriver = derive.SolanaKeypair{}
				m, err := derive.NewBase58Matcher(prefix, suffix)
				if err != nil {
					return err
				}
				matcher = m
				difficulty = base58Difficulty(len(prefix) + len(suffix))
			case "btc", "bitcoin":
				network = "bitcoin"
				deriver = derive.BitcoinKeypair{}
				m, err := derive.NewP2PKHMatcher(prefix, suffix)
				if err != nil {
					return err
				}
				matcher = m
				// The leading '1' is fixed by the address version byte.
				difficulty = base58Difficulty(len(strings.TrimPrefix(prefix, "1")) + len(suffix))
			default:
				return fmt.Errorf("network: unknown %q (want ethereum, solana or bitcoin)", network)
			}

			// Keypair candidates are always sampled randomly: a counter
			// walk over private keys would make every mined key
			// predictable from the one before it.
			res, err := runSearch(miner.Config{
				Deriver: deriver,
				Matcher: matcher,
				Workers: workers,
				Random:  true,
			}, patternLabel(prefix, suffix, hexPattern), difficulty)
			if err != nil || res == nil {
				return err
			}

			var address, private string
			switch network {
			case "ethereum":
				address = common.BytesToAddress(res.Digest).Hex()
				private = derive.EthereumPrivateKeyHex(res.Candidate[:])
			case "solana":
				address = derive.SolanaAddress(res.Digest)
				private = derive.SolanaPrivateKeyBase58(res.Candidate[:])
			case "bitcoin":
				if address, err = derive.P2PKHAddress(res.Digest); err != nil {
					return err
				}
				if private, err = derive.BitcoinWIF(res.Candidate[:]); err != nil {
					return err
				}
			}

			ui.PrintResultHeader()
			ui.PrintField("Network", network)
			ui.PrintField("Address", address)
			ui.PrintSecret("Private key", private)
			ui.PrintRunStats(res.Attempts, res.Elapsed)
			ui.PrintSecretWarning()

			if output != "" {
				if err := writeWallet(output, network, address, private, res); err != nil {
					return fmt.Errorf("write wallet: %w", err)
				}
				fmt.Printf("    💾 saved to %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&network, "network", "n", "ethereum", "target network: ethereum, solana or bitcoin")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "address prefix (hex for ethereum, base58 otherwise)")
	cmd.Flags().StringVarP(&suffix, "suffix", "s", "", "address suffix")
	cmd.Flags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "worker goroutines")
	cmd.Flags().StringVarP(&output, "output", "o", "wallet.txt", "wallet file (empty to skip)")
	return cmd
}

// writeWallet persists the mined keypair, owner-readable only.
func writeWallet(path, network, address, private string, res *miner.Result) error {
	content := fmt.Sprintf(`%s vanity address
=======================

Address:     %s
Private Key: %s

Statistics:
  Time:     %s
  Attempts: %s

Generated: %s

⚠️ WARNING: Keep this private key secret and secure!
`, network, address, private,
		ui.FormatDuration(res.Elapsed), ui.FormatNumber(res.Attempts),
		time.Now().Format("2006-01-02 15:04:05"))
	return os.WriteFile(path, []byte(content), 0600)
}
