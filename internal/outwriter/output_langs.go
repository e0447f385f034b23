package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/repolens/repolens/internal/contract"
	"github.com/repolens/repolens/schema"
)

// LanguageInfo is one row of the active extension mapping. Metrics marks
// whether line classification and the complexity signal apply; unsupported
// languages still get line counts.
type LanguageInfo struct {
	Extension string `json:"extension"`
	Language  string `json:"language"`
	Metrics   bool   `json:"metrics"`
}

// WriteLanguageInfos outputs the active extension-to-language mapping,
// dispatching based on the output format configured.
func WriteLanguageInfos(infos []LanguageInfo, cfg *contract.Config) error {
	sort.Slice(infos, func(i, j int) bool { return infos[i].Extension < infos[j].Extension })

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, infos)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"extension", "language", "metrics"}, func(cw *csv.Writer) error {
				for _, info := range infos {
					rec := []string{info.Extension, info.Language, strconv.FormatBool(info.Metrics)}
					if err := cw.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLanguageTable(infos, w)
		}, "Wrote table")
	}
	return nil
}

func writeLanguageTable(infos []LanguageInfo, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Extension", "Language", "Metrics"})

	var data [][]string
	for _, info := range infos {
		metrics := "counts only"
		if info.Metrics {
			metrics = "full"
		}
		data = append(data, []string{info.Extension, info.Language, metrics})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "%d extensions mapped\n", len(infos))
	return err
}
