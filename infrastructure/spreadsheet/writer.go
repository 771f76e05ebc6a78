package spreadsheet

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/vfg2006/marketing-analytics-api/internal/domain"
)

const (
	// ExportFileName é o nome do arquivo entregue no download da planilha
	ExportFileName = "campanhas_marketing.xlsx"
	// XLSXContentType é o MIME type de planilhas Excel
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	sheetName = "Campanhas"
	// formato numérico embutido "0.00"
	twoDecimalsNumFmt = 2
)

// Colunas exibidas com duas casas decimais
var twoDecimalFields = map[domain.Field]bool{
	domain.FieldInvestment: true,
	domain.FieldCTR:        true,
	domain.FieldCPA:        true,
	domain.FieldROAS:       true,
}

// Export grava a tabela no formato indicado pela extensão do nome do arquivo
func Export(filename string, w io.Writer, table domain.CampaignTable) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return WriteXLSX(w, table)
	case ".csv":
		return WriteCSV(w, table)
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "arquivo %q (use .xlsx ou .csv)", filename)
	}
}

// WriteXLSX grava a tabela em uma planilha Excel de aba única:
// linha de cabeçalho seguida de uma linha por campanha
func WriteXLSX(w io.Writer, table domain.CampaignTable) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return errors.Wrap(err, "erro ao nomear aba")
	}

	header := make([]interface{}, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c.Header
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return errors.Wrap(err, "erro ao gravar cabeçalho")
	}

	for i, record := range table.Records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "erro ao calcular célula")
		}

		row := make([]interface{}, len(table.Columns))
		for j, c := range table.Columns {
			row[j] = cellValue(record, c)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return errors.Wrapf(err, "erro ao gravar linha %d", i+2)
		}
	}

	if err := formatColumns(f, table); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "erro ao gerar arquivo xlsx")
	}
	return nil
}

func formatColumns(f *excelize.File, table domain.CampaignTable) error {
	if len(table.Columns) == 0 {
		return nil
	}

	style, err := f.NewStyle(&excelize.Style{NumFmt: twoDecimalsNumFmt})
	if err != nil {
		return errors.Wrap(err, "erro ao criar estilo numérico")
	}

	for i, c := range table.Columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return errors.Wrap(err, "erro ao calcular coluna")
		}
		if err := f.SetColWidth(sheetName, name, name, 16); err != nil {
			return errors.Wrap(err, "erro ao ajustar largura da coluna")
		}
		if twoDecimalFields[c.Field] && !c.IsExtra() {
			if err := f.SetColStyle(sheetName, name, style); err != nil {
				return errors.Wrap(err, "erro ao aplicar estilo numérico")
			}
		}
	}
	return nil
}

// cellValue retorna o valor de uma célula: números como float64, N/A como célula vazia,
// textos e colunas extras como string
func cellValue(record domain.CampaignRecord, c domain.Column) interface{} {
	switch {
	case c.IsExtra():
		return record.Extra[c.Header]
	case c.Field.IsNumeric():
		if v, ok := record.Number(c.Field).Float(); ok {
			return v
		}
		return nil
	default:
		return record.Text(c.Field)
	}
}

// WriteCSV grava a tabela em texto separado por vírgulas
func WriteCSV(w io.Writer, table domain.CampaignTable) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(table.Headers()); err != nil {
		return errors.Wrap(err, "erro ao gravar cabeçalho")
	}

	for _, record := range table.Records {
		row := make([]string, len(table.Columns))
		for j, c := range table.Columns {
			switch {
			case c.IsExtra():
				row[j] = record.Extra[c.Header]
			case c.Field.IsNumeric():
				row[j] = record.Number(c.Field).String()
			default:
				row[j] = record.Text(c.Field)
			}
		}
		if err := writer.Write(row); err != nil {
			return errors.Wrap(err, "erro ao gravar linha")
		}
	}

	writer.Flush()
	return writer.Error()
}
