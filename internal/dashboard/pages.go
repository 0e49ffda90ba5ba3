package dashboard

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"agentcrm_site/internal/config"
)

// Metric is a headline number on a dashboard card
type Metric struct {
	Label string
	Value string
	Trend string
}

// Table is a simple placeholder listing
type Table struct {
	Headers []string
	Rows    [][]string
}

// Panel is the content shown for one sidebar page
type Panel struct {
	Title    string
	Subtitle string
	Metrics  []Metric
	Table    *Table
	Notes    []string
}

// PanelComponent renders a panel using the shared theme
func PanelComponent(theme config.Theme, p Panel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		e := templ.EscapeString

		fmt.Fprintf(&b, `<section class="panel" data-page="%s">`, e(p.Title))
		fmt.Fprintf(&b, `<h2 style="color:%s">%s</h2>`, e(theme.Primary), e(p.Title))
		if p.Subtitle != "" {
			fmt.Fprintf(&b, `<p class="subtitle" style="color:%s">%s</p>`, e(theme.Muted), e(p.Subtitle))
		}

		if len(p.Metrics) > 0 {
			b.WriteString(`<div class="metrics">`)
			for _, m := range p.Metrics {
				fmt.Fprintf(&b, `<div class="metric" style="border-top:3px solid %s">`, e(theme.Accent))
				fmt.Fprintf(&b, `<span class="metric-label">%s</span>`, e(m.Label))
				fmt.Fprintf(&b, `<strong class="metric-value">%s</strong>`, e(m.Value))
				if m.Trend != "" {
					fmt.Fprintf(&b, `<span class="metric-trend" style="color:%s">%s</span>`, e(theme.Secondary), e(m.Trend))
				}
				b.WriteString(`</div>`)
			}
			b.WriteString(`</div>`)
		}

		if p.Table != nil {
			b.WriteString(`<table class="data"><thead><tr>`)
			for _, h := range p.Table.Headers {
				fmt.Fprintf(&b, `<th>%s</th>`, e(h))
			}
			b.WriteString(`</tr></thead><tbody>`)
			for _, row := range p.Table.Rows {
				b.WriteString(`<tr>`)
				for _, cell := range row {
					fmt.Fprintf(&b, `<td>%s</td>`, e(cell))
				}
				b.WriteString(`</tr>`)
			}
			b.WriteString(`</tbody></table>`)
		}

		if len(p.Notes) > 0 {
			b.WriteString(`<ul class="notes">`)
			for _, n := range p.Notes {
				fmt.Fprintf(&b, `<li>%s</li>`, e(n))
			}
			b.WriteString(`</ul>`)
		}

		b.WriteString(`</section>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// DefaultPanels holds the placeholder content for every sidebar page.
// All figures are sample data.
var DefaultPanels = []Panel{
	{
		Title:    PageDashboard,
		Subtitle: "Your book of business at a glance",
		Metrics: []Metric{
			{Label: "Policies Sold", Value: "128", Trend: "+12% this month"},
			{Label: "Active Clients", Value: "342", Trend: "+8 this week"},
			{Label: "Commission Earned", Value: "₹4,85,200", Trend: "+₹36,400 this month"},
			{Label: "Renewals Due", Value: "17", Trend: "next 30 days"},
		},
		Table: &Table{
			Headers: []string{"Client", "Policy", "Premium", "Status"},
			Rows: [][]string{
				{"Anita Desai", "Term Life 1Cr", "₹14,200", "Issued"},
				{"Rahul Mehta", "Family Floater", "₹22,850", "Pending medicals"},
				{"Sunita Rao", "Motor Comprehensive", "₹9,400", "Renewal due"},
			},
		},
	},
	{
		Title:    PageProducts,
		Subtitle: "Plans you can sell today",
		Table: &Table{
			Headers: []string{"Product", "Insurer", "Category", "Commission"},
			Rows: [][]string{
				{"Smart Term Plus", "Bharat Life", "Life", "35%"},
				{"Health Shield Family", "Suraksha Health", "Health", "20%"},
				{"Drive Secure", "Apex General", "Motor", "15%"},
			},
		},
	},
	{
		Title:    PageClients,
		Subtitle: "Everyone you look after",
		Metrics: []Metric{
			{Label: "Total Clients", Value: "342"},
			{Label: "New This Month", Value: "21"},
			{Label: "Birthdays This Week", Value: "4"},
		},
		Table: &Table{
			Headers: []string{"Name", "City", "Policies", "Last Contact"},
			Rows: [][]string{
				{"Anita Desai", "Pune", "3", "2 days ago"},
				{"Rahul Mehta", "Mumbai", "2", "1 week ago"},
				{"Sunita Rao", "Bengaluru", "1", "Yesterday"},
			},
		},
	},
	{
		Title:    PageCommissions,
		Subtitle: "What you have earned and what is on the way",
		Metrics: []Metric{
			{Label: "Paid This Year", Value: "₹4,85,200"},
			{Label: "Pending Payout", Value: "₹62,300"},
			{Label: "Average per Policy", Value: "₹3,790"},
		},
	},
	{
		Title:    PageMarketing,
		Subtitle: "Ready-made creatives and campaigns",
		Notes: []string{
			"Festive season greeting templates for WhatsApp",
			"Tax-saving Section 80C reminder campaign",
			"Personalised client birthday cards",
		},
	},
	{
		Title:    PageHelp,
		Subtitle: "We are here Monday to Saturday, 9am to 7pm IST",
		Notes: []string{
			"Email support@agentcrm.in",
			"Call 1800-000-0000 (toll free)",
			"Browse the knowledge base for step-by-step guides",
		},
	},
	{
		Title:    PageNoticeBoard,
		Subtitle: "Announcements from the team and insurers",
		Notes: []string{
			"New health riders available from next month",
			"Commission statements for last quarter are now published",
		},
	},
	{
		Title:    PagePricing,
		Subtitle: "Simple plans for individual agents and agencies",
		Table: &Table{
			Headers: []string{"Plan", "Price", "Includes"},
			Rows: [][]string{
				{"Starter", "Free", "Up to 50 clients"},
				{"Professional", "₹499 / month", "Unlimited clients, reminders"},
				{"Agency", "₹2,999 / month", "10 agent seats, team reports"},
			},
		},
	},
	{
		Title:    PageProfile,
		Subtitle: "Your account details",
		Table: &Table{
			Headers: []string{"Field", "Value"},
			Rows: [][]string{
				{"Name", "Demo Agent"},
				{"IRDAI Licence", "XXXX-0000"},
				{"Plan", "Professional"},
			},
		},
	},
}

// DefaultRegistry registers a component for every sidebar page
func DefaultRegistry(theme config.Theme) *Registry {
	r := NewRegistry()
	for _, p := range DefaultPanels {
		r.Register(p.Title, PanelComponent(theme, p))
	}
	return r
}
