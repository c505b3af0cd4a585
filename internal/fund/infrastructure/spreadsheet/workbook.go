// Package spreadsheet 基于 excelize 的工作簿读取适配，把 xlsx 单元格
// 映射为领域层的类型化 Cell。
package spreadsheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/wyfcoding/fundbarometer/internal/fund/domain"
)

type excelWorkbook struct {
	file *excelize.File
}

// Open 打开 xlsx 文件，返回领域层工作簿。满足 domain.WorkbookOpener。
func Open(path string) (domain.Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	return &excelWorkbook{file: f}, nil
}

func (w *excelWorkbook) SheetNames() []string {
	return w.file.GetSheetList()
}

func (w *excelWorkbook) Close() error {
	return w.file.Close()
}

// Sheet 整表读入内存。数据表行数在千这个量级，不值得流式读取。
func (w *excelWorkbook) Sheet(name string) (*domain.Sheet, error) {
	raw, err := w.file.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", name, err)
	}

	rows := make([][]domain.Cell, len(raw))
	for ri, rawRow := range raw {
		row := make([]domain.Cell, len(rawRow))
		for ci, value := range rawRow {
			row[ci] = w.cell(name, ri, ci, value)
		}
		rows[ri] = row
	}
	return &domain.Sheet{Name: name, Rows: rows}, nil
}

// cell 按存储类型映射单个单元格。GetRows 给出的是格式化文本，
// 类型要单独查，否则布尔和错误单元格会伪装成文本混进数值强转。
func (w *excelWorkbook) cell(sheet string, ri, ci int, value string) domain.Cell {
	if value == "" {
		return domain.EmptyCell()
	}

	axis, err := excelize.CoordinatesToCellName(ci+1, ri+1)
	if err != nil {
		return domain.TextCell(value)
	}
	cellType, err := w.file.GetCellType(sheet, axis)
	if err != nil {
		return domain.TextCell(value)
	}

	switch cellType {
	case excelize.CellTypeBool:
		return domain.BoolCell(value == "TRUE" || value == "1")
	case excelize.CellTypeError:
		return domain.ErrorCell(value)
	case excelize.CellTypeDate:
		return domain.TextCell(value)
	case excelize.CellTypeNumber, excelize.CellTypeFormula, excelize.CellTypeUnset:
		// 数值按原样存文本的情况也走这里，解析失败则按文本处理
		if n, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64); err == nil {
			return domain.NumberCell(n)
		}
		return domain.TextCell(value)
	default:
		return domain.TextCell(value)
	}
}
