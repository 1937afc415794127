package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openfoodshare/foodgate/internal/gateway"
	"github.com/openfoodshare/foodgate/internal/reports"
)

type ListReportsInput struct{}

type ReportInfo struct {
	Name   string `json:"name" jsonschema_description:"Report identifier for run_report"`
	Title  string `json:"title" jsonschema_description:"Human-readable question the report answers"`
	Params int    `json:"params" jsonschema_description:"Number of parameters the report takes"`
}

type ListReportsOutput struct {
	Reports []ReportInfo `json:"reports" jsonschema_description:"Available analytical reports"`
}

func GetListReportsTool() *ToolDefinition[ListReportsInput, ListReportsOutput] {
	return NewToolDefinition[ListReportsInput, ListReportsOutput](
		"list_reports",
		"List the fixed catalog of analytical reports (the 15 insights).",
		listReportsHandler,
	)
}

func listReportsHandler(ctx context.Context, req *mcp.CallToolRequest, input ListReportsInput) (*mcp.CallToolResult, ListReportsOutput, error) {
	infos := make([]ReportInfo, 0, len(reports.Catalog))
	for _, tpl := range reports.Catalog {
		infos = append(infos, ReportInfo{
			Name:   tpl.Name,
			Title:  tpl.Title,
			Params: tpl.Params,
		})
	}

	output := ListReportsOutput{Reports: infos}

	result, err := textResult(output)
	if err != nil {
		return nil, ListReportsOutput{}, err
	}
	return result, output, nil
}

type RunReportInput struct {
	Report string `json:"report" jsonschema:"required" jsonschema_description:"Report name from list_reports"`
	City   string `json:"city,omitempty" jsonschema_description:"Optional exact-match city filter, for reports that accept one"`
}

type RunReportOutput struct {
	Title   string   `json:"title" jsonschema_description:"Question the report answers"`
	Columns []string `json:"columns" jsonschema_description:"Result column names in order"`
	Rows    [][]any  `json:"rows" jsonschema_description:"Result rows in column order"`
	Message string   `json:"message" jsonschema_description:"Completion message"`
}

func GetRunReportTool(gw *gateway.Gateway) *ToolDefinition[RunReportInput, RunReportOutput] {
	return NewToolDefinition[RunReportInput, RunReportOutput](
		"run_report",
		"Execute one report from the catalog and return its tabular result.",
		func(ctx context.Context, req *mcp.CallToolRequest, input RunReportInput) (*mcp.CallToolResult, RunReportOutput, error) {
			return runReportHandler(ctx, req, input, gw)
		},
	)
}

func runReportHandler(ctx context.Context, req *mcp.CallToolRequest, input RunReportInput, gw *gateway.Gateway) (*mcp.CallToolResult, RunReportOutput, error) {
	gw, err := sessionGateway(gw)
	if err != nil {
		return nil, RunReportOutput{}, err
	}

	tpl, ok := reports.Lookup(input.Report)
	if !ok {
		return nil, RunReportOutput{}, fmt.Errorf("unknown report %q, see list_reports", input.Report)
	}

	city := strings.TrimSpace(input.City)

	var params []any
	switch {
	case tpl.Params == 1:
		// Absent filter binds NULL, which the template's predicate passes through.
		if city == "" {
			params = []any{nil}
		} else {
			params = []any{city}
		}
	case city != "":
		return nil, RunReportOutput{}, fmt.Errorf("report %q does not take a city filter", input.Report)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	table, err := reports.Run(ctx, gw, tpl.Name, params...)
	if err != nil {
		return nil, RunReportOutput{}, fmt.Errorf("report execution error: %v", err)
	}

	message := fmt.Sprintf("report completed (%d rows)", len(table.Rows))
	if table.Empty() {
		message = "report completed: no rows matched"
	}

	output := RunReportOutput{
		Title:   tpl.Title,
		Columns: table.Columns,
		Rows:    table.Rows,
		Message: message,
	}

	result, err := textResult(output)
	if err != nil {
		return nil, RunReportOutput{}, err
	}
	return result, output, nil
}

type GetKPIsInput struct{}

type GetKPIsOutput struct {
	KPIs    reports.KPISet `json:"kpis" jsonschema_description:"Dashboard summary metrics"`
	Message string         `json:"message" jsonschema_description:"Completion message"`
}

func GetKPIsTool(gw *gateway.Gateway) *ToolDefinition[GetKPIsInput, GetKPIsOutput] {
	return NewToolDefinition[GetKPIsInput, GetKPIsOutput](
		"get_kpis",
		"Compute the dashboard KPIs: total quantity, claim counts, success rate, provider and receiver counts.",
		func(ctx context.Context, req *mcp.CallToolRequest, input GetKPIsInput) (*mcp.CallToolResult, GetKPIsOutput, error) {
			return getKPIsHandler(ctx, req, input, gw)
		},
	)
}

func getKPIsHandler(ctx context.Context, req *mcp.CallToolRequest, input GetKPIsInput, gw *gateway.Gateway) (*mcp.CallToolResult, GetKPIsOutput, error) {
	gw, err := sessionGateway(gw)
	if err != nil {
		return nil, GetKPIsOutput{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	kpis, err := reports.ComputeKPIs(ctx, gw)
	if err != nil {
		return nil, GetKPIsOutput{}, fmt.Errorf("KPI computation error: %v", err)
	}

	output := GetKPIsOutput{
		KPIs:    *kpis,
		Message: "KPIs computed successfully",
	}

	result, err := textResult(output)
	if err != nil {
		return nil, GetKPIsOutput{}, err
	}
	return result, output, nil
}
