package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/wenakita/saltmine/internal/ui"
	"github.com/wenakita/saltmine/pkg/derive"
	"github.com/wenakita/saltmine/pkg/miner"
)

// defaultFactory is Arachnid's deterministic deployment proxy, live at
// the same address on most EVM chains.
const defaultFactory = "0x4e59b44847b379578588920cA78FbF26c0B4956C"

func newSaltCmd() *cobra.Command {
	var (
		factory      string
		initHash     string
		initCodeFile string
		prefix       string
		suffix       string
		workers      int
		random       bool
		start        uint64
		limit        uint64
		output       string
	)

	cmd := &cobra.Command{
		Use:   "salt",
		Short: "Mine a CREATE2 salt for a vanity deployment address",
		RunE: func(cmd *cobra.Command, args []string) error {
			ui.PrintBanner(version)

			if initHash == "" && initCodeFile == "" {
				return errors.New("either --init-hash or --init-code-file is required")
			}
			if initHash == "" {
				raw, err := os.ReadFile(initCodeFile)
				if err != nil {
					return fmt.Errorf("init code file: %w", err)
				}
				code, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(string(raw)), "0x"))
				if err != nil {
					return fmt.Errorf("init code file: %w", err)
				}
				initHash = derive.InitCodeHash(code).Hex()
			}

			deriver, err := derive.NewCreate2(factory, initHash)
			if err != nil {
				return err
			}
			pattern, err := miner.ParsePattern(prefix, suffix)
			if err != nil {
				return err
			}
			if pattern.Empty() {
				return errors.New("at least one of --prefix or --suffix is required")
			}

			res, err := runSearch(miner.Config{
				Deriver: deriver,
				Matcher: pattern,
				Workers: workers,
				Random:  random,
				Start:   start,
				Limit:   limit,
			}, patternLabel(prefix, suffix, true), hexDifficulty(pattern.Bits()))
			if err != nil || res == nil {
				return err
			}

			addr := common.BytesToAddress(res.Digest)
			salt := "0x" + hex.EncodeToString(res.Candidate[:])

			ui.PrintResultHeader()
			ui.PrintField("Address", addr.Hex())
			ui.PrintField("Salt", salt)
			if !random {
				ui.PrintField("Nonce", fmt.Sprintf("%d", res.Nonce()))
			}
			ui.PrintField("Factory", deriver.Factory().Hex())
			ui.PrintRunStats(res.Attempts, res.Elapsed)

			if output != "" {
				if err := writeSaltResult(output, salt, addr.Hex(), res); err != nil {
					return fmt.Errorf("write result: %w", err)
				}
				fmt.Printf("    💾 saved to %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&factory, "factory", "f", defaultFactory, "CREATE2 factory address")
	cmd.Flags().StringVarP(&initHash, "init-hash", "i", "", "init code hash (keccak256 of creation bytecode)")
	cmd.Flags().StringVarP(&initCodeFile, "init-code-file", "F", "", "file holding creation bytecode hex, hashed when --init-hash is absent")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "address prefix (hex)")
	cmd.Flags().StringVarP(&suffix, "suffix", "s", "", "address suffix (hex, odd length matches on the nibble)")
	cmd.Flags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "worker goroutines")
	cmd.Flags().BoolVar(&random, "random", false, "sample random salts instead of the deterministic counter walk")
	cmd.Flags().Uint64Var(&start, "start", 0, "resume the counter walk from this value")
	cmd.Flags().Uint64Var(&limit, "limit", 0, "exclusive counter bound (0 = full range)")
	cmd.Flags().StringVarP(&output, "output", "o", "vanity-result.txt", "result file (empty to skip)")
	return cmd
}

// writeSaltResult persists the mined salt in the env style deployment
// scripts source directly.
func writeSaltResult(path, salt, address string, res *miner.Result) error {
	content := fmt.Sprintf("VANITY_SALT=%s\nVANITY_ADDRESS=%s\nATTEMPTS=%d\nTIME_SECONDS=%.2f\n",
		salt, address, res.Attempts, res.Elapsed.Seconds())
	return os.WriteFile(path, []byte(content), 0644)
}
