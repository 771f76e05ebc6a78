package main

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/vfg2006/marketing-analytics-api/infrastructure/spreadsheet"
	"github.com/vfg2006/marketing-analytics-api/internal/domain"
	"github.com/vfg2006/marketing-analytics-api/internal/usecases/analyzing"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "campaigns",
		Short:         "Métricas de campanhas de marketing a partir de planilhas .csv ou .xlsx",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRecomputeCommand(),
		newSummaryCommand(),
		newDescribeCommand(),
		newCorrelateCommand(),
		newExportCommand(),
	)
	return root
}

func newRecomputeCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "recompute <planilha>",
		Short: "Recalcula CTR, CPA e ROAS e grava a planilha resultante",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := readTable(args[0])
			if err != nil {
				return err
			}

			recomputed, err := analyzing.RecomputeMetrics(table)
			if err != nil {
				return err
			}

			if out == "" {
				out = args[0]
			}
			return writeTable(out, recomputed)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "arquivo de saída (.xlsx ou .csv); padrão: sobrescreve a entrada")
	return cmd
}

func newSummaryCommand() *cobra.Command {
	var statuses, platforms, channels []string

	cmd := &cobra.Command{
		Use:   "summary <planilha>",
		Short: "Resume as campanhas, opcionalmente filtradas por status, plataforma e canal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := readTable(args[0])
			if err != nil {
				return err
			}

			// Flag não informada seleciona todos os valores da dimensão
			filters := analyzing.AllFilters(table)
			if cmd.Flags().Changed("status") {
				filters.Statuses = statuses
			}
			if cmd.Flags().Changed("platform") {
				filters.Platforms = platforms
			}
			if cmd.Flags().Changed("channel") {
				filters.Channels = channels
			}

			analysis := analyzing.Analyze(table, filters)
			return printJSON(cmd.OutOrStdout(), analysis.Summary)
		},
	}

	cmd.Flags().StringSliceVar(&statuses, "status", nil, "status aceitos (separados por vírgula)")
	cmd.Flags().StringSliceVar(&platforms, "platform", nil, "plataformas aceitas (separadas por vírgula)")
	cmd.Flags().StringSliceVar(&channels, "channel", nil, "canais aceitos (separados por vírgula)")
	return cmd
}

func newDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <planilha>",
		Short: "Estatísticas descritivas das colunas numéricas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := readTable(args[0])
			if err != nil {
				return err
			}

			stats, err := analyzing.Describe(table)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), stats)
		},
	}
}

func newCorrelateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "correlate <planilha>",
		Short: "Matriz de correlação entre as colunas numéricas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := readTable(args[0])
			if err != nil {
				return err
			}

			matrix, err := analyzing.Correlate(table)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), matrix)
		},
	}
}

func newExportCommand() *cobra.Command {
	var example bool

	cmd := &cobra.Command{
		Use:   "export <origem> <destino>",
		Short: "Converte a planilha entre .csv e .xlsx",
		Long:  "Converte a planilha entre .csv e .xlsx. Com --example, a origem é ignorada e a planilha de exemplo é gravada.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if example {
				return writeTable(args[len(args)-1], domain.ExampleTable())
			}
			if len(args) != 2 {
				return fmt.Errorf("informe origem e destino")
			}

			table, err := readTable(args[0])
			if err != nil {
				return err
			}
			return writeTable(args[1], table)
		},
	}

	cmd.Flags().BoolVar(&example, "example", false, "grava a planilha de exemplo")
	return cmd
}

func readTable(path string) (domain.CampaignTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.CampaignTable{}, err
	}
	defer f.Close()

	return spreadsheet.Import(path, f)
}

func writeTable(path string, table domain.CampaignTable) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := spreadsheet.Export(path, f, table); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
