package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	attendanceSvc "github.com/smartworld/smartdesk/internal/attendance"
	"github.com/smartworld/smartdesk/internal/directory"
	"github.com/smartworld/smartdesk/pkg/logger"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Check the roster and attendance spreadsheets",
	Long:  `Read the configured spreadsheets the way the server does and print what would be loaded.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg, err := loadConfig(configDir)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		initLogger(cfg)
		lg := logger.LoggerWrapper()

		source, err := newSource(ctx, cfg.Data)
		if err != nil {
			log.Fatalf("failed to open spreadsheet source: %v", err)
		}

		rows, err := source.Roster(ctx)
		if err != nil {
			log.Fatalf("roster: %v", err)
		}

		dir := directory.NewService(nil, cfg.Data.UploadsDir, lg)
		if err := dir.Load(ctx, rows); err != nil {
			log.Fatalf("roster: %v", err)
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "roster rows\t%d\n", len(rows))
		fmt.Fprintf(tw, "employees\t%d\n", dir.Count())
		fmt.Fprintf(tw, "departments\t%d\n", len(dir.Departments())-1)
		fmt.Fprintf(tw, "locations\t%d\n", len(dir.Locations())-1)

		attendance, err := source.Attendance(ctx)
		if err != nil {
			fmt.Fprintf(tw, "attendance\tunreadable (%v); placeholder records would be used\n", err)
		} else {
			att := attendanceSvc.NewService(lg)
			att.Load(attendance)
			fmt.Fprintf(tw, "attendance records\t%d\n", att.Count())
		}
		_ = tw.Flush()
	},
}
