// package formatter provides functions to export board data to various formats (CSV, Markdown, plain text, JSON, YAML)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/kanban/internal/models"
	"github.com/desertthunder/kanban/internal/shared"
	"gopkg.in/yaml.v3"
)

// Format names accepted by [Export].
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// Formats lists every supported export format.
var Formats = []string{FormatText, FormatMarkdown, FormatCSV, FormatJSON, FormatYAML}

// Extension returns the file extension used for format.
func Extension(format string) string {
	switch strings.ToLower(format) {
	case FormatText, "txt", "":
		return "txt"
	case FormatMarkdown, "md":
		return "md"
	case FormatYAML, "yml":
		return "yaml"
	default:
		return strings.ToLower(format)
	}
}

// Export renders columns in the named format. "md", "txt" and "yml" are accepted as aliases.
func Export(columns []models.Column, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatText, "txt", "":
		return ExportToText(columns)
	case FormatMarkdown, "md":
		return ExportToMarkdown(columns)
	case FormatCSV:
		return ExportToCSV(columns)
	case FormatJSON:
		return ExportToJSON(columns, true)
	case FormatYAML, "yml":
		return ExportToYAML(columns)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q (want one of %s)", shared.ErrInvalidFlag, format, strings.Join(Formats, ", "))
	}
}

// ExportToCSV converts a board to CSV with columns: Column ID, Column, Position, Card ID, Label
func ExportToCSV(columns []models.Column) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Column ID", "Column", "Position", "Card ID", "Label"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, col := range columns {
		for i, card := range col.Cards {
			record := []string{col.ColumnID, col.Name, strconv.Itoa(i + 1), card.ID, card.Label}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a board to Markdown: one section per column with a task list.
//
// Cards in the sink column are rendered as checked items.
func ExportToMarkdown(columns []models.Column) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Board\n")

	for _, col := range columns {
		buf.WriteString(fmt.Sprintf("\n## %s\n\n", col.Name))
		if len(col.Cards) == 0 {
			buf.WriteString("_No cards_\n")
			continue
		}

		box := "[ ]"
		if col.Role == models.RoleSink {
			box = "[x]"
		}
		for _, card := range col.Cards {
			buf.WriteString(fmt.Sprintf("- %s %s\n", box, card.Label))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a board to plain text format
func ExportToText(columns []models.Column) ([]byte, error) {
	var buf bytes.Buffer

	for i, col := range columns {
		if i > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(fmt.Sprintf("%s (%d)\n", col.Name, len(col.Cards)))
		for j, card := range col.Cards {
			buf.WriteString(fmt.Sprintf("  %d. %s [%s]\n", j+1, card.Label, card.ID))
		}
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts a board to the snapshot JSON layout.
func ExportToJSON(columns []models.Column, pretty bool) ([]byte, error) {
	if columns == nil {
		columns = []models.Column{}
	}

	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(columns, "", "  ")
	} else {
		data, err = json.Marshal(columns)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return append(data, '\n'), nil
}

// ExportToYAML converts a board to YAML using the same field names as the snapshot.
func ExportToYAML(columns []models.Column) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(columns); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush YAML: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteExport renders columns in format and writes them to path.
func WriteExport(columns []models.Column, format, path string) error {
	data, err := Export(columns, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
