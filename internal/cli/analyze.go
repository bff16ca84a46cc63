package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vietddude/sniffer/internal/analysis"
	"github.com/vietddude/sniffer/internal/control"
	"github.com/vietddude/sniffer/internal/core/domain"
	"github.com/vietddude/sniffer/internal/emitter"
)

var (
	payloadPath string
	optionsPath string
	emitAlerts  bool

	addresses  []string
	watchlist  []string
	contract   string
	poolAddr   string
	topic0     string
	txHash     string
	fromBlock  uint64
	startBlock uint64
	endBlock   uint64
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a pre-fetched payload file and print the report",
}

var analyzeWalletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Analyze the transfers around watched addresses",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newService()
		defer closeService(s)
		req := s.NewWalletRequest()
		req.Addresses = addresses
		req.FromBlock = fromBlock
		if cmd.Flags().Changed("topic0") {
			req.TransferTopic = topic0
		}
		if err := loadInputs(&req.Options, &req.Payload); err != nil {
			return err
		}
		return printReport(s.AnalyzeWallet(cmd.Context(), req))
	},
}

var analyzeEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Analyze one event stream of a contract",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newService()
		defer closeService(s)
		req := s.NewEventRequest()
		req.Contract = contract
		if cmd.Flags().Changed("topic0") {
			req.Topic0 = topic0
		}
		req.StartBlock = startBlock
		req.EndBlock = endBlock
		if err := loadInputs(&req.Options, &req.Payload); err != nil {
			return err
		}
		return printReport(s.AnalyzeEvents(cmd.Context(), req))
	},
}

var analyzeSwapsCmd = &cobra.Command{
	Use:   "swaps",
	Short: "Analyze the swaps of a pool for price impact and wash trading",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newService()
		defer closeService(s)
		req := s.NewSwapRequest()
		req.PoolAddress = poolAddr
		if cmd.Flags().Changed("topic0") {
			req.Topic0 = topic0
		}
		req.StartBlock = startBlock
		req.EndBlock = endBlock
		if err := loadInputs(&req.Options, &req.Payload); err != nil {
			return err
		}
		return printReport(s.AnalyzeSwaps(cmd.Context(), req))
	},
}

var analyzeTransactionCmd = &cobra.Command{
	Use:   "transaction",
	Short: "Label the method and risk of a transaction",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newService()
		defer closeService(s)
		req := s.NewTransactionRequest()
		req.TxHash = txHash
		req.FromBlock = fromBlock
		if err := loadInputs(&req.Options, &req.Payload); err != nil {
			return err
		}
		if len(watchlist) > 0 {
			req.Options.Watchlist = watchlist
		}
		return printReport(s.AnalyzeTransaction(cmd.Context(), req))
	},
}

func init() {
	analyzeCmd.PersistentFlags().StringVar(&payloadPath, "payload", "", "payload JSON file (next_block, logs, transactions, decoded_logs)")
	analyzeCmd.PersistentFlags().StringVar(&optionsPath, "options", "", "JSON file overriding the configured analysis options")
	analyzeCmd.PersistentFlags().BoolVar(&emitAlerts, "emit", false, "publish alerts to the configured sinks")

	analyzeWalletCmd.Flags().StringSliceVar(&addresses, "addresses", nil, "watched wallet addresses")
	analyzeWalletCmd.Flags().Uint64Var(&fromBlock, "from-block", 0, "first block of the payload")
	analyzeWalletCmd.Flags().StringVar(&topic0, "topic0", analysis.TransferTopic, "transfer event topic")

	analyzeEventsCmd.Flags().StringVar(&contract, "contract", "", "contract address")
	analyzeEventsCmd.Flags().StringVar(&topic0, "topic0", analysis.TransferTopic, "event topic")
	analyzeEventsCmd.Flags().Uint64Var(&startBlock, "start-block", 0, "first block")
	analyzeEventsCmd.Flags().Uint64Var(&endBlock, "end-block", 0, "last block")

	analyzeSwapsCmd.Flags().StringVar(&poolAddr, "pool", "", "pool address")
	analyzeSwapsCmd.Flags().StringVar(&topic0, "topic0", "", "swap event topic")
	analyzeSwapsCmd.Flags().Uint64Var(&startBlock, "start-block", 0, "first block")
	analyzeSwapsCmd.Flags().Uint64Var(&endBlock, "end-block", 0, "last block")

	analyzeTransactionCmd.Flags().StringVar(&txHash, "tx-hash", "", "transaction hash")
	analyzeTransactionCmd.Flags().Uint64Var(&fromBlock, "from-block", 0, "block of the transaction")
	analyzeTransactionCmd.Flags().StringSliceVar(&watchlist, "watchlist", nil, "addresses whose involvement is flagged")

	analyzeCmd.AddCommand(analyzeWalletCmd, analyzeEventsCmd, analyzeSwapsCmd, analyzeTransactionCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func newService() *control.Service {
	var sinks emitter.Emitter
	if emitAlerts {
		sinks = control.NewEmitters(control.ConfigFrom(appCfg))
	}
	return control.NewService(appCfg.Analysis, sinks)
}

func closeService(s *control.Service) {
	if err := s.Close(); err != nil {
		slog.Warn("Failed to close alert sinks", "error", err)
	}
}

// loadInputs decodes the options file over the defaults and the payload file.
func loadInputs(options any, payload *analysis.Payload) error {
	if optionsPath != "" {
		if err := decodeFile(optionsPath, options); err != nil {
			return err
		}
	}
	if payloadPath == "" {
		return nil
	}
	return decodeFile(payloadPath, payload)
}

func decodeFile(path string, dst any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	if err := analysis.Decode(f, dst); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func printReport(report *domain.Report, err error) error {
	if err != nil {
		return err
	}
	return writeReport(os.Stdout, report)
}

func writeReport(w io.Writer, report *domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
