package v1

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gosuda/teamboard/internal/report"
)

type ReportInput struct {
	Employee string `query:"employee" doc:"Employee display name, defaults to the caller"`
	Preset   string `query:"preset" enum:"all,today,this-week,this-month,this-year,last-30-days,custom" doc:"Date preset applied to created date"`
	Start    string `query:"start" doc:"Custom range start (YYYY-MM-DD)"`
	End      string `query:"end" doc:"Custom range end (YYYY-MM-DD)"`
}

// ReportOutput is the report as a downloadable JSON file.
type ReportOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

func RegisterReportRoutes(api huma.API, svc BoardService) {
	huma.Register(api, huma.Operation{
		OperationID: "export-report",
		Method:      http.MethodGet,
		Path:        "/reports",
		Summary:     "Export an employee progress report",
		Tags:        []string{"Reports"},
	}, func(ctx context.Context, input *ReportInput) (*ReportOutput, error) {
		tenantID, viewer, err := caller(ctx, svc)
		if err != nil {
			return nil, err
		}
		today := svc.Today()
		r, err := resolveRange(input.Preset, input.Start, input.End, today)
		if err != nil {
			return nil, err
		}

		rep, err := svc.Report(ctx, tenantID, viewer, input.Employee, r)
		if err != nil {
			return nil, serviceError(err, "not found", "failed to build report")
		}

		var buf bytes.Buffer
		if err := report.Encode(&buf, rep); err != nil {
			return nil, huma.Error500InternalServerError("failed to encode report", err)
		}
		return &ReportOutput{
			ContentType:        "application/json",
			ContentDisposition: fmt.Sprintf("attachment; filename=%q", report.Filename(rep.Employee, today)),
			Body:               buf.Bytes(),
		}, nil
	})
}
