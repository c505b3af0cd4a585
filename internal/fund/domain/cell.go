package domain

import (
	"math"
	"strconv"
	"strings"
)

// CellKind 单元格类型，电子表格库返回的动态类型在此边界收敛为封闭变体
type CellKind int

const (
	// CellEmpty 空单元格
	CellEmpty CellKind = iota
	// CellNumber 数值单元格
	CellNumber
	// CellText 文本单元格
	CellText
	// CellBool 布尔单元格
	CellBool
	// CellError 错误单元格（如 #DIV/0!）
	CellError
)

// Cell 类型化的单元格值
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
	Bool   bool
}

// NumberCell 构造数值单元格
func NumberCell(v float64) Cell { return Cell{Kind: CellNumber, Number: v} }

// TextCell 构造文本单元格
func TextCell(s string) Cell { return Cell{Kind: CellText, Text: s} }

// BoolCell 构造布尔单元格
func BoolCell(b bool) Cell { return Cell{Kind: CellBool, Bool: b} }

// ErrorCell 构造错误单元格
func ErrorCell(code string) Cell { return Cell{Kind: CellError, Text: code} }

// EmptyCell 空单元格
func EmptyCell() Cell { return Cell{Kind: CellEmpty} }

// CoercionMode 数值强制转换模式
type CoercionMode int

const (
	// CoerceStrict 无法解析的文本视为缺失
	CoerceStrict CoercionMode = iota
	// CoerceLenient 无法解析的文本视为 0
	CoerceLenient
)

// numericNoise 文本数值中需要剥离的修饰符
var numericNoise = strings.NewReplacer("%", "", ",", "", "₹", "", "Rs", "")

// CoerceNumber 将单元格转换为数值，缺失时返回 nil。
// 规则按优先级：原生数值直接返回（NaN/Inf 视为缺失）；文本剥离
// 百分号、千分位逗号、货币符号后按十进制解析；布尔、错误与空
// 单元格永远视为缺失，绝不通过字符串转换得到无意义的数字。
func CoerceNumber(c Cell, mode CoercionMode) *float64 {
	switch c.Kind {
	case CellNumber:
		if math.IsNaN(c.Number) || math.IsInf(c.Number, 0) {
			return nil
		}
		v := c.Number
		return &v
	case CellText:
		cleaned := strings.TrimSpace(numericNoise.Replace(c.Text))
		if cleaned == "" {
			return nil
		}
		v, err := strconv.ParseFloat(cleaned, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			if mode == CoerceLenient {
				zero := 0.0
				return &zero
			}
			return nil
		}
		return &v
	default:
		// 布尔、错误、空单元格一律缺失
		return nil
	}
}

// String 返回单元格的文本表示，用于读取方案名与成立日期
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellBool:
		if c.Bool {
			return "TRUE"
		}
		return "FALSE"
	default:
		return ""
	}
}

// Sheet 一张数据表的稠密单元格网格
type Sheet struct {
	Name string
	Rows [][]Cell
}

// Cell 按 (row, col) 取单元格，越界返回空单元格
func (s *Sheet) Cell(row, col int) Cell {
	if row < 0 || row >= len(s.Rows) {
		return EmptyCell()
	}
	r := s.Rows[row]
	if col < 0 || col >= len(r) {
		return EmptyCell()
	}
	return r[col]
}

// Height 网格行数
func (s *Sheet) Height() int { return len(s.Rows) }

// Width 网格最大列数
func (s *Sheet) Width() int {
	w := 0
	for _, r := range s.Rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// Workbook 已解析工作簿的抽象，由 spreadsheet 适配层实现
type Workbook interface {
	SheetNames() []string
	Sheet(name string) (*Sheet, error)
	Close() error
}

// WorkbookOpener 按路径打开工作簿
type WorkbookOpener func(path string) (Workbook, error)
