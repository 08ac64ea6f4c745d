package page

import "fmt"

// Stat is one summary card.
type Stat struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Icon   string `json:"icon,omitempty"`
}

// ChartPoint is one bar of the overview chart.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Chart is the overview panel. With no points the renderer shows a
// placeholder.
type Chart struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Points      []ChartPoint `json:"points,omitempty"`
}

// Activity is one entry of the recent activity feed.
type Activity struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	When        string `json:"when"`
}

// Dashboard is the overview page.
type Dashboard struct {
	Title               string     `json:"title"`
	Subtitle            string     `json:"subtitle"`
	ActionLabel         string     `json:"action_label,omitempty"`
	ActionHref          string     `json:"action_href,omitempty"`
	Stats               []Stat     `json:"stats"`
	Chart               Chart      `json:"chart"`
	ActivityTitle       string     `json:"activity_title"`
	ActivityDescription string     `json:"activity_description"`
	Activity            []Activity `json:"activity"`
}

func (Dashboard) Kind() Kind { return KindDashboard }
func (d Dashboard) Heading() string { return d.Title }
func (d Dashboard) HasChartData() bool { return len(d.Chart.Points) > 0 }

// SampleDashboard returns the stock dashboard with placeholder figures.
func SampleDashboard() Dashboard {
	d := Dashboard{
		Title:       "Dashboard",
		Subtitle:    "Welcome back! Here's your overview.",
		ActionLabel: "View Details",
		ActionHref:  "/users",
		Stats: []Stat{
			{Title: "Total Revenue", Value: "$45,231.89", Change: "+20.1% from last month", Icon: "dollar"},
			{Title: "Active Users", Value: "+2,350", Change: "+180.1% from last month", Icon: "users"},
			{Title: "Sales", Value: "+12,234", Change: "+19% from last month", Icon: "card"},
			{Title: "Active Now", Value: "+573", Change: "+201 since last hour", Icon: "activity"},
		},
		Chart: Chart{
			Title:       "Overview",
			Description: "Your performance metrics for this month",
		},
		ActivityTitle:       "Recent Activity",
		ActivityDescription: "Latest updates from your workspace",
	}
	for i := 1; i <= 5; i++ {
		d.Activity = append(d.Activity, Activity{
			Title:       fmt.Sprintf("Activity Item %d", i),
			Description: fmt.Sprintf("Description of activity %d", i),
			When:        fmt.Sprintf("%dh ago", i),
		})
	}
	return d
}
