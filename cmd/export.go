package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"placehub/internal/config"
	"placehub/internal/infrastructure/database"
	"placehub/internal/infrastructure/repository"
	"placehub/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	exportDriveID int64
	exportOutFile string
)

// exportCmd writes a drive's applicant sheet as CSV, the offline equivalent
// of the dashboard download.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a drive's applicants as CSV",
	Long: `Write the applicant rows for one drive to a CSV file. Rows carry
the profile snapshot taken at apply time, in the order applications were
recorded.`,
	Run: func(cmd *cobra.Command, args []string) {
		runExport()
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().Int64Var(&exportDriveID, "drive", 0, "Drive ID to export (required)")
	exportCmd.Flags().StringVarP(&exportOutFile, "out", "o", "", "Output file (default drive_<id>_applicants.csv)")
	exportCmd.MarkFlagRequired("drive")
}

func runExport() {
	cfg := config.Get()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewConnection(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.Username,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Name,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to unwrap database connection: %v", err)
	}

	reportRepo := repository.NewReportRepository(sqlDB)
	rows, err := reportRepo.ExportApplicants(ctx, exportDriveID)
	if err != nil {
		logger.Fatal("Failed to export applicants: %v", err)
	}

	outFile := exportOutFile
	if outFile == "" {
		outFile = fmt.Sprintf("drive_%d_applicants.csv", exportDriveID)
	}

	f, err := os.Create(outFile)
	if err != nil {
		logger.Fatal("Failed to create output file: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"S.No", "Register Number", "Roll Number", "Year", "Department", "CGPA", "Resume Link", "Applied At"}); err != nil {
		logger.Fatal("Failed to write CSV header: %v", err)
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.Serial),
			row.RegisterNumber,
			row.RollNumber,
			string(row.Year),
			row.Department,
			strconv.FormatFloat(row.CGPA, 'f', 2, 64),
			row.ResumeLink,
			row.AppliedAt,
		}
		if err := w.Write(record); err != nil {
			logger.Fatal("Failed to write CSV row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		logger.Fatal("Failed to flush CSV: %v", err)
	}

	fmt.Printf("Wrote %d applicants to %s\n", len(rows), outFile)
}
