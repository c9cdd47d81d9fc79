package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ebse-lab/sevscope/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// ExportTables writes each aggregate as a CSV file under dir and returns
// the written paths. Aggregates that were not computed are skipped.
func ExportTables(dir string, agg *model.Aggregates) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create tables directory",
			goerr.V("dir", dir))
	}

	var paths []string
	writers := []func(string, *model.Aggregates) (string, error){
		writeDistributionTable,
		writeStatusTable,
		writeProjectTable,
		writeIssueTypeTable,
		writeLengthTable,
	}
	for _, fn := range writers {
		path, err := fn(dir, agg)
		if err != nil {
			return nil, err
		}
		if path != "" {
			paths = append(paths, path)
		}
	}

	return paths, nil
}

func csvFile(dir, name string) (*os.File, *csv.Writer, string, error) {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, "", goerr.Wrap(err, "failed to create table file",
			goerr.V("path", path))
	}
	return f, csv.NewWriter(f), path, nil
}

func writeDistributionTable(dir string, agg *model.Aggregates) (string, error) {
	f, w, path, err := csvFile(dir, "severity_distribution.csv")
	if err != nil {
		return "", err
	}
	defer f.Close()

	_ = w.Write([]string{"severity", "count", "percentage"})
	for _, e := range agg.Severity.Entries {
		_ = w.Write([]string{string(e.Label), fmt.Sprintf("%d", e.Count), fmt.Sprintf("%.2f", e.Percentage)})
	}
	w.Flush()
	return path, w.Error()
}

func writeStatusTable(dir string, agg *model.Aggregates) (string, error) {
	if agg.ByStatus == nil {
		return "", nil
	}
	return writeCrossTab(dir, "severity_vs_status.csv", agg.ByStatus)
}

func writeProjectTable(dir string, agg *model.Aggregates) (string, error) {
	if agg.ByProject == nil {
		return "", nil
	}
	return writeCrossTab(dir, "severity_vs_project.csv", agg.ByProject)
}

func writeIssueTypeTable(dir string, agg *model.Aggregates) (string, error) {
	if agg.ByIssueType == nil {
		return "", nil
	}
	return writeCrossTab(dir, "severity_vs_issue_type.csv", agg.ByIssueType)
}

func writeCrossTab(dir, name string, ct *model.CrossTab) (string, error) {
	f, w, path, err := csvFile(dir, name)
	if err != nil {
		return "", err
	}
	defer f.Close()

	header := append([]string{ct.RowLabel}, ct.ColNames...)
	_ = w.Write(header)
	for i, row := range ct.RowNames {
		record := make([]string, 0, len(ct.ColNames)+1)
		record = append(record, row)
		for j := range ct.ColNames {
			record = append(record, fmt.Sprintf("%d", ct.Cells[i][j]))
		}
		_ = w.Write(record)
	}
	w.Flush()
	return path, w.Error()
}

func writeLengthTable(dir string, agg *model.Aggregates) (string, error) {
	if agg.DescLength == nil {
		return "", nil
	}

	f, w, path, err := csvFile(dir, "desc_length_stats.csv")
	if err != nil {
		return "", err
	}
	defer f.Close()

	_ = w.Write([]string{"severity", "count", "mean", "median", "std"})
	for _, s := range agg.DescLength {
		_ = w.Write([]string{
			string(s.Label),
			fmt.Sprintf("%d", s.Count),
			fmt.Sprintf("%.2f", s.Mean),
			fmt.Sprintf("%.2f", s.Median),
			fmt.Sprintf("%.2f", s.StdDev),
		})
	}
	w.Flush()
	return path, w.Error()
}
