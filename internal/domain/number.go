package domain

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Number é um valor numérico que pode estar indisponível (N/A).
// Valores inválidos são serializados como null e nunca carregam NaN ou infinito.
type Number struct {
	Value float64
	Valid bool
}

// NA é o sentinela de valor indisponível
var NA = Number{}

// NewNumber cria um Number válido. NaN e infinitos viram N/A.
func NewNumber(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NA
	}
	return Number{Value: v, Valid: true}
}

// Float retorna o valor e se ele está disponível
func (n Number) Float() (float64, bool) {
	return n.Value, n.Valid
}

func (n Number) String() string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(n.Value, 'f', -1, 64)), nil
}

// UnmarshalJSON aceita null, números e strings numéricas ("" vira N/A)
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = NA
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, ok := ParseNumber(s)
		if !ok && strings.TrimSpace(s) != "" {
			return fmt.Errorf("valor numérico inválido: %q", s)
		}
		*n = parsed
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("valor numérico inválido: %s", string(data))
	}
	*n = NewNumber(f)
	return nil
}

// ParseNumber interpreta texto numérico vindo de planilhas.
// Aceita "1234.5", "1,234.5" e o formato brasileiro "1.234,56".
func ParseNumber(s string) (Number, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" {
		return NA, false
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		n := NewNumber(f)
		return n, n.Valid
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	var normalized string
	switch {
	case lastComma > lastDot:
		// vírgula decimal: pontos são separadores de milhar
		normalized = strings.ReplaceAll(s, ".", "")
		normalized = strings.Replace(normalized, ",", ".", 1)
	case lastDot > lastComma && lastComma >= 0:
		normalized = strings.ReplaceAll(s, ",", "")
	default:
		return NA, false
	}

	f, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return NA, false
	}
	n := NewNumber(f)
	return n, n.Valid
}
