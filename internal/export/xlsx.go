package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	Extension   = ".xlsx"

	defaultSheet = "Sheet1"
	sheetName    = "Report"
)

var ErrNoTable = errors.New("no table in markup")

// TableCell ячейка таблицы из разметки отчёта.
type TableCell struct {
	Text    string
	Value   string
	Heading bool
}

// ParseTable читает первую <table> из HTML: строки thead, tbody, tfoot по порядку.
// Возвращает и заголовок страницы (<h1>), если он есть.
func ParseTable(r io.Reader) (title string, rows [][]TableCell, err error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse markup: %w", err)
	}

	if h1 := findFirst(doc, atom.H1); h1 != nil {
		title = textContent(h1)
	}

	table := findFirst(doc, atom.Table)
	if table == nil {
		return title, nil, ErrNoTable
	}

	walk(table, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		if n.DataAtom == atom.Table && n != table {
			return false
		}
		if n.DataAtom != atom.Tr {
			return true
		}

		var row []TableCell
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || (c.DataAtom != atom.Td && c.DataAtom != atom.Th) {
				continue
			}
			row = append(row, TableCell{
				Text:    textContent(c),
				Value:   attr(c, "data-value"),
				Heading: c.DataAtom == atom.Th,
			})
		}
		rows = append(rows, row)
		return false
	})

	return title, rows, nil
}

// ConvertHTML переносит таблицу отчёта на лист xlsx. Ячейки с data-value пишутся числами.
// Разметка без таблицы даёт лист только с заголовком.
func ConvertHTML(r io.Reader) (*excelize.File, error) {
	title, rows, err := ParseTable(r)
	if err != nil && !errors.Is(err, ErrNoTable) {
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	if title != "" {
		if err := f.SetDocProps(&excelize.DocProperties{Title: title, Creator: "timetrack-reports"}); err != nil {
			return nil, fmt.Errorf("failed to set document properties: %w", err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	for i, row := range rows {
		for j, cell := range row {
			axis, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := writeCell(f, axis, cell); err != nil {
				return nil, err
			}
			if cell.Heading {
				if err := f.SetCellStyle(sheetName, axis, axis, bold); err != nil {
					return nil, fmt.Errorf("failed to style cell %s: %w", axis, err)
				}
			}
		}
	}

	if len(rows) > 0 {
		if err := f.SetColWidth(sheetName, "A", "A", 30); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	return f, nil
}

// WriteXLSX конвертирует разметку и пишет готовый файл в w.
func WriteXLSX(w io.Writer, markup io.Reader) error {
	f, err := ConvertHTML(markup)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return nil
}

// Filename имя файла выгрузки.
func Filename(base string) string {
	return base + Extension
}

func writeCell(f *excelize.File, axis string, cell TableCell) error {
	if cell.Value != "" {
		if v, err := strconv.ParseFloat(cell.Value, 64); err == nil {
			if err := f.SetCellFloat(sheetName, axis, v, -1, 64); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", axis, err)
			}
			return nil
		}
	}
	if err := f.SetCellStr(sheetName, axis, cell.Text); err != nil {
		return fmt.Errorf("failed to write cell %s: %w", axis, err)
	}
	return nil
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	var found *html.Node
	walk(n, func(c *html.Node) bool {
		if found != nil {
			return false
		}
		if c.Type == html.ElementNode && c.DataAtom == a {
			found = c
			return false
		}
		return true
	})
	return found
}

// walk обходит дерево в глубину; fn возвращает false, чтобы не спускаться в детей.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})
	return strings.Join(strings.Fields(sb.String()), " ")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
