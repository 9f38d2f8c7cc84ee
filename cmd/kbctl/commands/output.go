package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	models "kbportal/internal/domain/models/docsystem"
)

// Format is an output format
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat parses a --output value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table", "":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format: %q (valid: table, json, yaml)", s)
	}
}

// print writes data as JSON or YAML, or renders the table for table output
func (a *app) print(data any, headers []string, rows [][]string) error {
	switch a.format {
	case FormatJSON:
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case FormatYAML:
		enc := yaml.NewEncoder(a.out)
		defer enc.Close()
		return enc.Encode(data)
	default:
		printTable(a.out, headers, rows)
		return nil
	}
}

// printTable renders borderless, left-aligned columns
func printTable(w io.Writer, headers []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	table.AppendBulk(rows)
	table.Render()
}

var nodeHeaders = []string{"Name", "Kind", "Type", "Size", "Modified", "ID"}

func nodeRows(nodes []*models.Node) [][]string {
	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		row := []string{n.Name, string(n.Kind), "", "", "", n.ID}
		if n.File != nil {
			row[2] = strings.ToUpper(n.File.Extension)
			row[3] = n.File.SizeLabel
			row[4] = n.File.ModifiedDate
		}
		rows = append(rows, row)
	}
	return rows
}

func (a *app) printNodes(nodes []*models.Node) error {
	return a.print(nodes, nodeHeaders, nodeRows(nodes))
}

func (a *app) printNode(node *models.Node) error {
	return a.print(node, nodeHeaders, nodeRows([]*models.Node{node}))
}
