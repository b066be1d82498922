package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/proposalgen/proposal-backend/internal/export"
	"github.com/proposalgen/proposal-backend/internal/repository"
	"github.com/proposalgen/proposal-backend/internal/storage"
)

var (
	exportFormat string
	exportDir    string
)

var exportCmd = &cobra.Command{
	Use:   "export <proposal-id>",
	Short: "Export a stored proposal to a file",
	Long: `Export a stored proposal to md, docx or pdf.

The file is written as proposal_<id>_<YYYYMMDDHHMMSS>.<ext> into --dir
(OUTPUT_DIR by default) and is not removed afterwards.

Example:
  proposalctl export 42 --format docx --dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid proposal id %q", args[0])
		}

		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}

		cfg, conn, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		proposal, err := repository.NewProposalRepository(conn).GetByID(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("load proposal %d: %w", id, err)
		}

		dir := exportDir
		if dir == "" {
			dir = cfg.Export.OutputDir
		}
		artifacts, err := storage.NewArtifactStorage(dir)
		if err != nil {
			return err
		}

		exporter := export.NewExporter(export.NewRenderer(cfg.Export))
		filename := artifacts.Filename(proposal.ID, format.Ext(), time.Now())

		path, err := exporter.Export(cmd.Context(), format, proposal.Content, filename, artifacts.Dir())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "pdf", "output format (md, docx, pdf)")
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "", "output directory (default OUTPUT_DIR)")
	rootCmd.AddCommand(exportCmd)
}
