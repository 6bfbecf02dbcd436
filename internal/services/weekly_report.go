package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"smartrubbish/internal/models"
	"smartrubbish/internal/utils"
)

const (
	topAreas         = 10
	topContributors  = 10
	unknownUserName  = "Unknown User"
	reportFilePrefix = "Sydney_Weekly_Rubbish_Report_"
)

type WeeklySummary struct {
	TotalReports    int `json:"totalReports"`
	PendingReports  int `json:"pendingReports"`
	ReviewedReports int `json:"reviewedReports"`
	ResolvedReports int `json:"resolvedReports"`
	NewMembers      int `json:"newMembers"`
	TotalMembers    int `json:"totalMembers"`
}

type TypeCount struct {
	Type  string
	Count int
}

// TypeCounts keeps report types in first-seen order and encodes as a JSON object.
type TypeCounts []TypeCount

func (tc TypeCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range tc {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Type)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(c.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Count returns the number of reports of the given type.
func (tc TypeCounts) Count(reportType string) int {
	for _, c := range tc {
		if c.Type == reportType {
			return c.Count
		}
	}
	return 0
}

type AreaCount struct {
	Area  string `json:"area"`
	Count int    `json:"count"`
}

type Contributor struct {
	UserID      string `json:"userId"`
	UserName    string `json:"userName"`
	ReportCount int    `json:"reportCount"`
}

type WeeklyReport struct {
	ReportDate        string        `json:"reportDate"`
	WeekStart         string        `json:"weekStart"`
	WeekEnd           string        `json:"weekEnd"`
	Summary           WeeklySummary `json:"summary"`
	ReportsByType     TypeCounts    `json:"reportsByType"`
	ReportsByLocation []AreaCount   `json:"reportsByLocation"`
	TopContributors   []Contributor `json:"topContributors"`
}

// WeeklyReportGenerator aggregates the Monday to Sunday window. It never writes to storage.
type WeeklyReportGenerator struct {
	reports  *ReportService
	accounts *AccountService
	loc      *time.Location
	now      func() time.Time
}

func NewWeeklyReportGenerator(reports *ReportService, accounts *AccountService, loc *time.Location) *WeeklyReportGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &WeeklyReportGenerator{reports: reports, accounts: accounts, loc: loc, now: time.Now}
}

func (g *WeeklyReportGenerator) Generate() WeeklyReport {
	return g.GenerateAt(g.now())
}

// GenerateAt builds the report for the week containing now.
func (g *WeeklyReportGenerator) GenerateAt(now time.Time) WeeklyReport {
	start, end := utils.WeekRange(now, g.loc)
	inWeek := func(t time.Time) bool {
		return !t.Before(start) && !t.After(end)
	}

	users := g.accounts.ListAll()
	names := make(map[string]string, len(users))
	newMembers := 0
	for _, u := range users {
		names[u.ID] = u.Name
		if inWeek(u.CreatedAt) {
			newMembers++
		}
	}

	summary := WeeklySummary{
		NewMembers:   newMembers,
		TotalMembers: g.reports.Stats().TotalMembers,
	}
	byType := TypeCounts{}
	typeIdx := map[string]int{}
	areas := []AreaCount{}
	areaIdx := map[string]int{}
	contributors := []Contributor{}
	contributorIdx := map[string]int{}

	for _, r := range g.reports.ListAll() {
		if !inWeek(r.Timestamp) {
			continue
		}

		summary.TotalReports++
		switch r.Status {
		case models.StatusPending:
			summary.PendingReports++
		case models.StatusReviewed:
			summary.ReviewedReports++
		case models.StatusResolved:
			summary.ResolvedReports++
		}

		if i, ok := typeIdx[r.Type]; ok {
			byType[i].Count++
		} else {
			typeIdx[r.Type] = len(byType)
			byType = append(byType, TypeCount{Type: r.Type, Count: 1})
		}

		area := AreaOf(r.Location.Address)
		if i, ok := areaIdx[area]; ok {
			areas[i].Count++
		} else {
			areaIdx[area] = len(areas)
			areas = append(areas, AreaCount{Area: area, Count: 1})
		}

		if i, ok := contributorIdx[r.UserID]; ok {
			contributors[i].ReportCount++
		} else {
			name := names[r.UserID]
			if name == "" {
				name = unknownUserName
			}
			contributorIdx[r.UserID] = len(contributors)
			contributors = append(contributors, Contributor{UserID: r.UserID, UserName: name, ReportCount: 1})
		}
	}

	sort.SliceStable(areas, func(i, j int) bool { return areas[i].Count > areas[j].Count })
	sort.SliceStable(contributors, func(i, j int) bool { return contributors[i].ReportCount > contributors[j].ReportCount })
	if len(areas) > topAreas {
		areas = areas[:topAreas]
	}
	if len(contributors) > topContributors {
		contributors = contributors[:topContributors]
	}

	return WeeklyReport{
		ReportDate:        now.In(g.loc).Format(utils.DisplayDateLayout),
		WeekStart:         start.Format(utils.DisplayDateLayout),
		WeekEnd:           end.Format(utils.DisplayDateLayout),
		Summary:           summary,
		ReportsByType:     byType,
		ReportsByLocation: areas,
		TopContributors:   contributors,
	}
}

// NextReportDate is when the next weekly report is due.
func (g *WeeklyReportGenerator) NextReportDate() string {
	return utils.NextSunday(g.now(), g.loc).Format(utils.ScheduleLayout)
}

// FileName returns today's export file name with the given extension.
func (g *WeeklyReportGenerator) FileName(ext string) string {
	return reportFilePrefix + g.now().In(g.loc).Format(utils.FileDateLayout) + "." + ext
}

// AreaOf extracts the suburb from an address: the second comma-separated part, else the first.
func AreaOf(address string) string {
	parts := strings.Split(address, ",")
	if len(parts) > 1 {
		return strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(parts[0])
}

// JSON encodes the report with two-space indentation.
func (r WeeklyReport) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// CSV flattens the report into fixed sections separated by blank lines.
func (r WeeklyReport) CSV() ([]byte, error) {
	s := r.Summary
	sections := [][][]string{
		{{"Sydney City Council - Weekly Rubbish Report"}},
		{
			{"Report Date", r.ReportDate},
			{"Week Period", fmt.Sprintf("%s to %s", r.WeekStart, r.WeekEnd)},
		},
		{
			{"SUMMARY STATISTICS"},
			{"Metric", "Count"},
			{"Total Reports", strconv.Itoa(s.TotalReports)},
			{"Pending Reports", strconv.Itoa(s.PendingReports)},
			{"Reviewed Reports", strconv.Itoa(s.ReviewedReports)},
			{"Resolved Reports", strconv.Itoa(s.ResolvedReports)},
			{"Total Community Members", strconv.Itoa(s.TotalMembers)},
		},
	}

	types := [][]string{{"REPORTS BY TYPE"}, {"Type", "Count"}}
	for _, c := range r.ReportsByType {
		types = append(types, []string{c.Type, strconv.Itoa(c.Count)})
	}
	areas := [][]string{{"TOP AFFECTED AREAS"}, {"Location", "Reports"}}
	for _, a := range r.ReportsByLocation {
		areas = append(areas, []string{a.Area, strconv.Itoa(a.Count)})
	}
	contributors := [][]string{{"TOP CONTRIBUTORS"}, {"User Name", "Reports Submitted"}}
	for _, c := range r.TopContributors {
		contributors = append(contributors, []string{c.UserName, strconv.Itoa(c.ReportCount)})
	}
	sections = append(sections, types, areas, contributors)

	var buf bytes.Buffer
	for i, rows := range sections {
		if i > 0 {
			buf.WriteString("\n")
		}
		w := csv.NewWriter(&buf)
		if err := w.WriteAll(rows); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
