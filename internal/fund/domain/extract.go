package domain

import (
	"strings"
)

// RejectReason 行被过滤的原因，进入诊断统计
type RejectReason string

const (
	RejectEmptyName      RejectReason = "empty_scheme_name"
	RejectRepeatedHeader RejectReason = "repeated_header"
	RejectExitLoadNote   RejectReason = "exit_load_note"
	RejectCategoryBanner RejectReason = "category_banner"
	RejectFootnote       RejectReason = "footnote"
	RejectDashesOnly     RejectReason = "dashes_only"
	RejectNoLaunchDate   RejectReason = "no_launch_date"
)

// RowVerdict 行提取的三值结果：接受（携带记录）或带原因的拒绝。
// 拒绝原因可检视，不静默丢弃。
type RowVerdict struct {
	Record *FundRecord
	Reason RejectReason
}

// Accepted 行是否产出记录
func (v RowVerdict) Accepted() bool { return v.Record != nil }

// rejected 构造拒绝判定
func rejected(reason RejectReason) RowVerdict { return RowVerdict{Reason: reason} }

// footnoteMarkers 方案名以这些标记开头的行是法务脚注，不是数据
var footnoteMarkers = []string{
	`# : "in the`,
	"in the next",
}

// SheetReport 单张表的摄取诊断
type SheetReport struct {
	Sheet     string               `json:"sheet"`
	HeaderRow int                  `json:"header_row"`
	Layout    string               `json:"layout,omitempty"`
	Columns   map[string]int       `json:"columns,omitempty"`
	Extracted int                  `json:"extracted"`
	Rejected  map[RejectReason]int `json:"rejected,omitempty"`
	Error     string               `json:"error,omitempty"`
}

// Extractor 将一张表按推断布局展开为记录序列
type Extractor struct {
	Strategy LayoutStrategy
	Mode     CoercionMode
}

// ExtractSheet 推断布局并逐行提取。表头缺失不是致命错误：
// 该表贡献零条记录，错误进入诊断，摄取继续处理其余表。
func (e *Extractor) ExtractSheet(sheet *Sheet) ([]*FundRecord, *SheetReport) {
	report := &SheetReport{
		Sheet:     sheet.Name,
		HeaderRow: -1,
		Rejected:  make(map[RejectReason]int),
	}

	layout, err := InferLayout(sheet, e.Strategy)
	if err != nil {
		report.Error = err.Error()
		return nil, report
	}
	report.HeaderRow = layout.HeaderRow
	report.Layout = layout.Name
	report.Columns = layout.ColumnNames()

	var records []*FundRecord
	for row := layout.HeaderRow + 1; row < sheet.Height(); row++ {
		verdict := e.extractRow(sheet, layout, row)
		if verdict.Accepted() {
			records = append(records, verdict.Record)
			continue
		}
		report.Rejected[verdict.Reason]++
	}
	report.Extracted = len(records)

	return records, report
}

// extractRow 读取一行：先做行有效性过滤，再按布局逐列强制转换
func (e *Extractor) extractRow(sheet *Sheet, layout *Layout, row int) RowVerdict {
	nameCol, ok := layout.Columns[FieldSchemeName]
	if !ok {
		nameCol = 0
	}
	dateCol, ok := layout.Columns[FieldLaunchDate]
	if !ok {
		dateCol = 1
	}

	schemeName := strings.TrimSpace(sheet.Cell(row, nameCol).String())
	launchDate := sheet.Cell(row, dateCol).String()

	if reason, ok := filterRow(schemeName, launchDate, sheet.Name); ok {
		return rejected(reason)
	}

	rec := &FundRecord{
		Category:   sheet.Name,
		SchemeName: schemeName,
		LaunchDate: launchDate,
	}

	for field, col := range layout.Columns {
		if field == FieldSchemeName || field == FieldLaunchDate {
			continue
		}
		rec.setField(field, CoerceNumber(sheet.Cell(row, col), e.Mode))
	}

	// 溢出列只收数值，文本噪声不进记录
	for _, col := range layout.Overflow {
		if v := CoerceNumber(sheet.Cell(row, col), CoerceStrict); v != nil {
			rec.Extra = append(rec.Extra, *v)
		}
	}

	return RowVerdict{Record: rec}
}

// filterRow 行有效性过滤。数据表把法务脚注与段落横幅混排在数据行
// 之间，没有结构标记，只能按内容启发式剔除。
func filterRow(schemeName, launchDate, category string) (RejectReason, bool) {
	lower := strings.ToLower(schemeName)

	switch {
	case schemeName == "":
		return RejectEmptyName, true
	case strings.Contains(lower, "scheme name") || strings.Contains(lower, "fund name"):
		return RejectRepeatedHeader, true
	case strings.Contains(lower, "to view exit loads"):
		return RejectExitLoadNote, true
	case schemeName == category:
		return RejectCategoryBanner, true
	}

	for _, marker := range footnoteMarkers {
		if strings.HasPrefix(lower, marker) {
			return RejectFootnote, true
		}
	}

	if strings.Trim(schemeName, "- \t") == "" {
		return RejectDashesOnly, true
	}
	if strings.TrimSpace(launchDate) == "" {
		return RejectNoLaunchDate, true
	}

	return "", false
}

// SkipSheet 判断表名是否命中跳过列表（大小写不敏感的子串匹配）。
// 工作簿里的封面、摘要、术语表不是数据表。
func SkipSheet(name string, skipList []string) bool {
	lower := strings.ToLower(name)
	for _, skip := range skipList {
		if skip == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(skip)) {
			return true
		}
	}
	return false
}
