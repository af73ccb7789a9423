package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gosuda/teamboard/internal/filter"
)

type CalendarInput struct {
	Month string `query:"month" pattern:"^[0-9]{4}-[0-9]{2}$" doc:"Month to show (YYYY-MM), defaults to the current month"`
	CriteriaQuery
}

type CalendarOutput struct {
	Body []filter.CalendarDay
}

func RegisterCalendarRoutes(api huma.API, svc BoardService) {
	huma.Register(api, huma.Operation{
		OperationID: "get-calendar",
		Method:      http.MethodGet,
		Path:        "/calendar",
		Summary:     "Get visible tasks by due day for a month",
		Tags:        []string{"Calendar"},
	}, func(ctx context.Context, input *CalendarInput) (*CalendarOutput, error) {
		tenantID, viewer, err := caller(ctx, svc)
		if err != nil {
			return nil, err
		}
		today := svc.Today()
		c, err := input.criteria(today)
		if err != nil {
			return nil, err
		}

		year, month := today.Year, int(today.Month)
		if input.Month != "" {
			m, err := time.Parse("2006-01", input.Month)
			if err != nil {
				return nil, huma.Error400BadRequest("invalid month (want YYYY-MM)")
			}
			year, month = m.Year(), int(m.Month())
		}

		days, err := svc.Calendar(ctx, tenantID, c, viewer, year, month)
		if err != nil {
			return nil, serviceError(err, "not found", "failed to build calendar")
		}
		return &CalendarOutput{Body: days}, nil
	})
}
