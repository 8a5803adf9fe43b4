package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/T1mof/timetrack-reports/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

// ReportTemplate имя шаблона месячного отчёта по активностям.
const ReportTemplate = "activity_month.html"

const heading = "Activity totals per user"

type Renderer struct {
	templates *template.Template
	currency  string
}

func NewRenderer(currency string) (*Renderer, error) {
	t, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{
		templates: t,
		currency:  currency,
	}, nil
}

// Templates набор шаблонов для gin.Engine.SetHTMLTemplate.
func (r *Renderer) Templates() *template.Template {
	return r.templates
}

// Render пишет HTML отчёта в w.
func (r *Renderer) Render(w io.Writer, report *domain.UserActivitySumReport) error {
	if err := r.templates.ExecuteTemplate(w, ReportTemplate, r.BuildView(report)); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// BuildView раскладывает отчёт в таблицу: строки по активностям, колонки по пользователям.
func (r *Renderer) BuildView(report *domain.UserActivitySumReport) View {
	view := View{
		Title:      report.ReportTitle,
		Heading:    heading,
		ActionURL:  domain.ReportRouteUserActivitySum,
		ExportURL:  exportURL(report),
		MonthValue: report.Start.Format("2006-01"),
		MonthLabel: report.Start.Format("January 2006"),
		Decimal:    report.Decimal,
		HasData:    report.HasData,
		SumTypes:   sumTypeOptions(report.SumType),
	}

	for _, team := range report.Teams {
		view.Teams = append(view.Teams, Option{
			Value:    team.ID.String(),
			Label:    team.Name,
			Selected: team.ID.String() == report.Filter.Team,
		})
	}

	if !report.HasData || len(report.ActivityTotals) == 0 {
		return view
	}

	for _, user := range report.Users {
		view.Headers = append(view.Headers, user.DisplayName())
	}

	perUser := make(map[uuid.UUID]*domain.Totals, len(report.Users))
	var grand domain.Totals

	for _, total := range sortedTotals(report) {
		row := Row{Label: activityLabel(report, total.ActivityID)}
		for _, user := range report.Users {
			sub, ok := total.PerUser[user.ID]
			if !ok {
				row.Cells = append(row.Cells, Cell{})
				continue
			}
			row.Cells = append(row.Cells, r.cell(*sub, report))

			acc, ok := perUser[user.ID]
			if !ok {
				acc = &domain.Totals{}
				perUser[user.ID] = acc
			}
			acc.Add(*sub)
		}
		row.Total = r.cell(total.Totals, report)
		grand.Add(total.Totals)
		view.Rows = append(view.Rows, row)
	}

	view.Footer = Row{Label: "Total"}
	for _, user := range report.Users {
		var sum domain.Totals
		if acc, ok := perUser[user.ID]; ok {
			sum = *acc
		}
		view.Footer.Cells = append(view.Footer.Cells, r.cell(sum, report))
	}
	view.Footer.Total = r.cell(grand, report)

	return view
}

func (r *Renderer) cell(t domain.Totals, report *domain.UserActivitySumReport) Cell {
	switch report.SumType {
	case domain.SumTypeRate:
		return r.moneyCell(t.Rate)
	case domain.SumTypeInternalRate:
		return r.moneyCell(t.InternalRate)
	}

	if report.Decimal {
		hours := DecimalHours(t.Duration)
		return Cell{Text: hours, Value: hours}
	}
	return Cell{Text: FormatDuration(t.Duration)}
}

func (r *Renderer) moneyCell(amount decimal.Decimal) Cell {
	value := amount.StringFixed(2)
	text := value
	if r.currency != "" {
		text = value + " " + r.currency
	}
	return Cell{Text: text, Value: value}
}

// FormatDuration секунды в вид "h:mm".
func FormatDuration(seconds int64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%d:%02d", sign, seconds/3600, (seconds%3600)/60)
}

// DecimalHours секунды в часы с двумя знаками.
func DecimalHours(seconds int64) string {
	return decimal.NewFromInt(seconds).Div(decimal.NewFromInt(3600)).StringFixed(2)
}

func sortedTotals(report *domain.UserActivitySumReport) []*domain.ActivityTotal {
	totals := make([]*domain.ActivityTotal, 0, len(report.ActivityTotals))
	for _, total := range report.ActivityTotals {
		totals = append(totals, total)
	}
	sort.Slice(totals, func(i, j int) bool {
		li := activityLabel(report, totals[i].ActivityID)
		lj := activityLabel(report, totals[j].ActivityID)
		if li != lj {
			return li < lj
		}
		return totals[i].ActivityID.String() < totals[j].ActivityID.String()
	})
	return totals
}

func activityLabel(report *domain.UserActivitySumReport, id uuid.UUID) string {
	if activity, ok := report.Activities[id]; ok && activity.Name != "" {
		return activity.Name
	}
	return id.String()
}

func sumTypeOptions(selected string) []Option {
	options := []Option{
		{Value: domain.SumTypeDuration, Label: "Duration"},
		{Value: domain.SumTypeRate, Label: "Rate"},
		{Value: domain.SumTypeInternalRate, Label: "Internal rate"},
	}
	for i := range options {
		options[i].Selected = options[i].Value == selected
	}
	return options
}

func exportURL(report *domain.UserActivitySumReport) string {
	values := url.Values{}
	values.Set("date", report.Filter.Date)
	if report.Filter.Team != "" {
		values.Set("team", report.Filter.Team)
	}
	if report.Filter.SumType != "" {
		values.Set("sumType", report.Filter.SumType)
	}
	if report.Filter.Decimal {
		values.Set("decimal", "1")
	}
	return report.ExportRoute + "?" + values.Encode()
}
