package render

// View модель шаблона отчёта.
type View struct {
	Title      string
	Heading    string
	ActionURL  string
	ExportURL  string
	MonthValue string
	MonthLabel string
	Teams      []Option
	SumTypes   []Option
	Decimal    bool
	HasData    bool
	Headers    []string
	Rows       []Row
	Footer     Row
}

type Option struct {
	Value    string
	Label    string
	Selected bool
}

type Row struct {
	Label string
	Cells []Cell
	Total Cell
}

// Cell текст ячейки и, для числовых значений, число для data-value.
type Cell struct {
	Text  string
	Value string
}
