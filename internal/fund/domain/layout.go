package domain

import (
	"errors"
	"strings"
)

// Field 记录的逻辑字段
type Field int

const (
	FieldSchemeName Field = iota
	FieldLaunchDate
	FieldSizeApr
	FieldSizeMay
	FieldLatestNAV
	FieldDays7
	FieldDays14
	FieldDays21
	FieldMonth1
	FieldMonths3
	FieldMonths6
	FieldYTD
	FieldYear1
	FieldYears2
	FieldYears3
	FieldYears4
	FieldYears5
	FieldYears7
	FieldYears10
)

// fieldNames 用于诊断输出
var fieldNames = map[Field]string{
	FieldSchemeName: "scheme_name",
	FieldLaunchDate: "launch_date",
	FieldSizeApr:    "fund_size_apr",
	FieldSizeMay:    "fund_size_may",
	FieldLatestNAV:  "latest_nav",
	FieldDays7:      "days_7",
	FieldDays14:     "days_14",
	FieldDays21:     "days_21",
	FieldMonth1:     "month_1",
	FieldMonths3:    "months_3",
	FieldMonths6:    "months_6",
	FieldYTD:        "ytd",
	FieldYear1:      "year_1",
	FieldYears2:     "years_2",
	FieldYears3:     "years_3",
	FieldYears4:     "years_4",
	FieldYears5:     "years_5",
	FieldYears7:     "years_7",
	FieldYears10:    "years_10",
}

// String 字段的诊断名
func (f Field) String() string { return fieldNames[f] }

// LayoutStrategy 布局推断策略
type LayoutStrategy string

const (
	// StrategyFixed 固定列位，快但对列序变化脆弱
	StrategyFixed LayoutStrategy = "fixed"
	// StrategyHeader 表头文本匹配，容忍列重排，推荐的通用策略
	StrategyHeader LayoutStrategy = "header"
)

// headerScanRows 表头行只在前若干行内查找
const headerScanRows = 15

// headerProbeCols 表头文本策略在前若干列内探测表头行
const headerProbeCols = 4

// ErrHeaderNotFound 表头行未找到，整张表贡献零条记录，摄取继续
var ErrHeaderNotFound = errors.New("header row not found")

// Layout 一张表的物理布局：表头行位置与逻辑字段到列的映射
type Layout struct {
	HeaderRow int
	Columns   map[Field]int
	// Overflow 最大已映射列之后未分类的列，按溢出数值列捕获
	Overflow []int
	// Name 诊断用布局名
	Name string
}

// ColumnNames 以字段名为键的列映射，用于诊断输出
func (l *Layout) ColumnNames() map[string]int {
	out := make(map[string]int, len(l.Columns))
	for f, col := range l.Columns {
		out[f.String()] = col
	}
	return out
}

// fixedFullColumns 全量布局：含 7/14/21 天短周期列，共 19 列
var fixedFullColumns = map[Field]int{
	FieldSchemeName: 0, FieldLaunchDate: 1,
	FieldSizeApr: 2, FieldSizeMay: 3, FieldLatestNAV: 4,
	FieldDays7: 5, FieldDays14: 6, FieldDays21: 7,
	FieldMonth1: 8, FieldMonths3: 9, FieldMonths6: 10, FieldYTD: 11,
	FieldYear1: 12, FieldYears2: 13, FieldYears3: 14, FieldYears4: 15,
	FieldYears5: 16, FieldYears7: 17, FieldYears10: 18,
}

// fixedReducedColumns 精简布局：无短周期列，共 16 列
var fixedReducedColumns = map[Field]int{
	FieldSchemeName: 0, FieldLaunchDate: 1,
	FieldSizeApr: 2, FieldSizeMay: 3, FieldLatestNAV: 4,
	FieldMonth1: 5, FieldMonths3: 6, FieldMonths6: 7, FieldYTD: 8,
	FieldYear1: 9, FieldYears2: 10, FieldYears3: 11, FieldYears4: 12,
	FieldYears5: 13, FieldYears7: 14, FieldYears10: 15,
}

// InferFixedLayout 固定列位策略：在前 15 行的第 0 列找包含
// "scheme name" 的表头行；再探测第 5 列是否为 "7 days" 表头，
// 以此区分全量与精简两种布局。不同基金类别报告的周期集不同，
// 而表内没有任何结构性声明，这个探测是唯一的判别手段。
func InferFixedLayout(sheet *Sheet) (*Layout, error) {
	headerRow := -1
	for row := 0; row < headerScanRows && row < sheet.Height(); row++ {
		if strings.Contains(strings.ToLower(sheet.Cell(row, 0).String()), "scheme name") {
			headerRow = row
			break
		}
	}
	if headerRow < 0 {
		return nil, ErrHeaderNotFound
	}

	probe := strings.ToLower(sheet.Cell(headerRow, 5).String())
	if strings.Contains(probe, "7 days") {
		return &Layout{HeaderRow: headerRow, Columns: fixedFullColumns, Name: "full (19 columns)"}, nil
	}
	return &Layout{HeaderRow: headerRow, Columns: fixedReducedColumns, Name: "reduced (16 columns)"}, nil
}

// headerRule 表头分类规则：谓词命中即将该列绑定到字段
type headerRule struct {
	field Field
	match func(h string) bool
}

// headerRules 有序规则表，首个命中者生效，每个字段至多绑定一次。
// 末尾的裸 "nav" 规则是 latest_nav 的回退：仅当更强的
// "latest nav" 未命中时才会轮到它。
var headerRules = []headerRule{
	{FieldSchemeName, func(h string) bool {
		return strings.Contains(h, "scheme name") || strings.Contains(h, "fund name")
	}},
	{FieldLaunchDate, func(h string) bool { return strings.Contains(h, "launch") }},
	{FieldSizeApr, func(h string) bool {
		return strings.Contains(h, "fund size") && strings.Contains(h, "apr")
	}},
	{FieldSizeMay, func(h string) bool {
		return strings.Contains(h, "fund size") && strings.Contains(h, "may")
	}},
	{FieldLatestNAV, func(h string) bool { return strings.Contains(h, "latest nav") }},
	{FieldYTD, func(h string) bool {
		return hasToken(h, "ytd") || strings.Contains(h, "year to date")
	}},
	{FieldDays7, dayRule("7")},
	{FieldDays14, dayRule("14")},
	{FieldDays21, dayRule("21")},
	{FieldMonth1, monthRule("1")},
	{FieldMonths3, monthRule("3")},
	{FieldMonths6, monthRule("6")},
	{FieldYear1, yearRule("1")},
	{FieldYears2, yearRule("2")},
	{FieldYears3, yearRule("3")},
	{FieldYears4, yearRule("4")},
	{FieldYears5, yearRule("5")},
	{FieldYears7, yearRule("7")},
	{FieldYears10, yearRule("10")},
	{FieldLatestNAV, func(h string) bool { return hasToken(h, "nav") }},
}

func dayRule(n string) func(string) bool {
	return func(h string) bool {
		return hasToken(h, n) && (hasToken(h, "day") || hasToken(h, "days") || hasToken(h, "d"))
	}
}

func monthRule(n string) func(string) bool {
	return func(h string) bool {
		return hasToken(h, n) && (hasToken(h, "month") || hasToken(h, "months") || hasToken(h, "m"))
	}
}

func yearRule(n string) func(string) bool {
	return func(h string) bool {
		return hasToken(h, n) && (hasToken(h, "year") || hasToken(h, "years") || hasToken(h, "yr") || hasToken(h, "y"))
	}
}

// hasToken 按字母数字边界切词后做整词比较，避免 "10 years" 命中 "1"
func hasToken(h, token string) bool {
	for _, t := range strings.FieldsFunc(h, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		if t == token {
			return true
		}
	}
	return false
}

// headerMarkers 表头文本策略据此定位表头行
var headerMarkers = []string{"scheme name", "fund name", "launch date", "nav"}

// InferHeaderLayout 表头文本策略：在前 15 行的前几列内找到首个
// 含已知表头标记的行作为表头行，然后独立分类每个表头单元格。
func InferHeaderLayout(sheet *Sheet) (*Layout, error) {
	headerRow := -1
scan:
	for row := 0; row < headerScanRows && row < sheet.Height(); row++ {
		for col := 0; col < headerProbeCols; col++ {
			text := strings.ToLower(sheet.Cell(row, col).String())
			for _, marker := range headerMarkers {
				if strings.Contains(text, marker) {
					headerRow = row
					break scan
				}
			}
		}
	}
	if headerRow < 0 {
		return nil, ErrHeaderNotFound
	}

	columns := make(map[Field]int)
	width := sheet.Width()
	for col := 0; col < width; col++ {
		h := strings.ToLower(strings.TrimSpace(sheet.Cell(headerRow, col).String()))
		if h == "" {
			continue
		}
		for _, rule := range headerRules {
			if _, taken := columns[rule.field]; taken {
				continue
			}
			if rule.match(h) {
				columns[rule.field] = col
				break
			}
		}
	}

	maxCol := -1
	for _, col := range columns {
		if col > maxCol {
			maxCol = col
		}
	}

	// 已映射区之外的列留作溢出，源表 schema 漂移时数据不丢
	var overflow []int
	mapped := make(map[int]bool, len(columns))
	for _, col := range columns {
		mapped[col] = true
	}
	for col := maxCol + 1; col < width; col++ {
		if !mapped[col] {
			overflow = append(overflow, col)
		}
	}

	return &Layout{HeaderRow: headerRow, Columns: columns, Overflow: overflow, Name: "header-mapped"}, nil
}

// InferLayout 按策略推断布局
func InferLayout(sheet *Sheet, strategy LayoutStrategy) (*Layout, error) {
	if strategy == StrategyFixed {
		return InferFixedLayout(sheet)
	}
	return InferHeaderLayout(sheet)
}
