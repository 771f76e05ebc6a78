package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/vfg2006/marketing-analytics-api/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Import lê uma planilha (.csv ou .xlsx, pela extensão do nome do arquivo)
// e a converte em uma tabela de campanhas. Colunas desconhecidas são preservadas.
func Import(filename string, r io.Reader) (domain.CampaignTable, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ReadCSV(r)
	case ".xlsx":
		return ReadXLSX(r)
	default:
		return domain.CampaignTable{}, errors.Wrapf(ErrUnsupportedFormat, "arquivo %q (use .xlsx ou .csv)", filename)
	}
}

// ReadCSV lê uma planilha em texto separado por vírgula, ponto e vírgula ou tabulação
func ReadCSV(r io.Reader) (domain.CampaignTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.CampaignTable{}, errors.Wrap(err, "erro ao ler arquivo CSV")
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return domain.CampaignTable{}, errors.Wrapf(ErrMalformedFile, "csv: %v", err)
	}

	return buildTable(rows)
}

// ReadXLSX lê a primeira aba de uma planilha Excel
func ReadXLSX(r io.Reader) (domain.CampaignTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return domain.CampaignTable{}, errors.Wrapf(ErrMalformedFile, "xlsx: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return domain.CampaignTable{}, errors.Wrap(ErrMalformedFile, "xlsx sem abas")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return domain.CampaignTable{}, errors.Wrapf(ErrMalformedFile, "xlsx: %v", err)
	}

	return buildTable(rows)
}

// sniffDelimiter escolhe o separador mais frequente na primeira linha
func sniffDelimiter(data []byte) rune {
	firstLine := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		firstLine = data[:i]
	}

	best, bestCount := ',', 0
	for _, candidate := range []rune{',', ';', '\t'} {
		if n := strings.Count(string(firstLine), string(candidate)); n > bestCount {
			best, bestCount = candidate, n
		}
	}
	return best
}

// buildTable converte linhas de células (a primeira é o cabeçalho) em tabela
func buildTable(rows [][]string) (domain.CampaignTable, error) {
	if len(rows) == 0 || isBlankRow(rows[0]) {
		return domain.CampaignTable{}, errors.Wrap(ErrMalformedFile, "planilha sem cabeçalho")
	}

	table := domain.CampaignTable{
		Columns: ResolveColumns(rows[0]),
		Records: make([]domain.CampaignRecord, 0, len(rows)-1),
	}

	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		table.Records = append(table.Records, buildRecord(table.Columns, row))
	}

	return table, nil
}

func buildRecord(columns []domain.Column, row []string) domain.CampaignRecord {
	var record domain.CampaignRecord
	for i, column := range columns {
		var cell string
		if i < len(row) {
			cell = strings.TrimSpace(row[i])
		}

		switch {
		case column.IsExtra():
			if cell == "" {
				continue
			}
			if record.Extra == nil {
				record.Extra = make(map[string]string)
			}
			record.Extra[column.Header] = cell
		case column.Field.IsNumeric():
			n, _ := domain.ParseNumber(cell)
			record.SetNumber(column.Field, n)
		default:
			record.SetText(column.Field, cell)
		}
	}
	return record
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
