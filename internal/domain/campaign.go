package domain

import (
	"strings"
)

// Field identifica uma coluna conhecida da planilha de campanhas
type Field string

const (
	FieldName        Field = "name"
	FieldInvestment  Field = "investment"
	FieldClicks      Field = "clicks"
	FieldImpressions Field = "impressions"
	FieldConversions Field = "conversions"
	FieldCTR         Field = "ctr"
	FieldCPA         Field = "cpa"
	FieldROAS        Field = "roas"
	FieldStatus      Field = "status"
	FieldPlatform    Field = "platform"
	FieldChannel     Field = "channel"

	// FieldExtra marca colunas não reconhecidas, preservadas como texto
	FieldExtra Field = ""
)

// NumericFields são os campos numéricos na ordem padrão da planilha
var NumericFields = []Field{
	FieldInvestment,
	FieldClicks,
	FieldImpressions,
	FieldConversions,
	FieldCTR,
	FieldCPA,
	FieldROAS,
}

// DefaultHeaders são os cabeçalhos usados na planilha de exemplo e em colunas adicionadas
var DefaultHeaders = map[Field]string{
	FieldName:        "Campanha",
	FieldInvestment:  "Investimento",
	FieldClicks:      "Cliques",
	FieldImpressions: "Impressões",
	FieldConversions: "Conversões",
	FieldCTR:         "CTR",
	FieldCPA:         "CPA",
	FieldROAS:        "ROAS",
	FieldStatus:      "Status",
	FieldPlatform:    "Plataforma",
	FieldChannel:     "Canal",
}

// IsNumeric indica se o campo guarda um Number
func (f Field) IsNumeric() bool {
	for _, nf := range NumericFields {
		if f == nf {
			return true
		}
	}
	return false
}

// Status é o status de uma campanha
type Status string

const (
	StatusActive    Status = "Ativa"
	StatusPaused    Status = "Pausada"
	StatusCompleted Status = "Concluída"
	StatusDraft     Status = "Rascunho"
)

// KnownStatuses lista os status oferecidos no editor
var KnownStatuses = []Status{StatusActive, StatusPaused, StatusCompleted, StatusDraft}

var statusAliases = map[string]Status{
	"ativa":     StatusActive,
	"active":    StatusActive,
	"pausada":   StatusPaused,
	"paused":    StatusPaused,
	"concluída": StatusCompleted,
	"concluida": StatusCompleted,
	"completed": StatusCompleted,
	"rascunho":  StatusDraft,
	"draft":     StatusDraft,
}

// NormalizeStatus converte grafias conhecidas (inclusive em inglês) para o status canônico.
// Valores desconhecidos são mantidos como vieram.
func NormalizeStatus(s string) Status {
	trimmed := strings.TrimSpace(s)
	if status, ok := statusAliases[strings.ToLower(trimmed)]; ok {
		return status
	}
	return Status(trimmed)
}

// Platforms e Channels são as opções oferecidas no editor; valores livres também são aceitos
var (
	Platforms = []string{"Google Ads", "Facebook Ads", "Instagram Ads", "TikTok Ads", "LinkedIn Ads"}
	Channels  = []string{"Search", "Display", "Feed", "Stories", "Reels", "Vídeo"}
)

// Column descreve uma coluna da tabela: o cabeçalho original e o campo reconhecido
type Column struct {
	Header string `json:"header"`
	Field  Field  `json:"field,omitempty"`
}

// IsExtra indica coluna não reconhecida
func (c Column) IsExtra() bool {
	return c.Field == FieldExtra
}

// CampaignRecord é uma linha da planilha de campanhas
type CampaignRecord struct {
	Name        string            `json:"name"`
	Investment  Number            `json:"investment"`
	Clicks      Number            `json:"clicks"`
	Impressions Number            `json:"impressions"`
	Conversions Number            `json:"conversions"`
	CTR         Number            `json:"ctr"`
	CPA         Number            `json:"cpa"`
	ROAS        Number            `json:"roas"`
	Status      Status            `json:"status"`
	Platform    string            `json:"platform"`
	Channel     string            `json:"channel"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// Number retorna o valor de um campo numérico
func (r CampaignRecord) Number(f Field) Number {
	switch f {
	case FieldInvestment:
		return r.Investment
	case FieldClicks:
		return r.Clicks
	case FieldImpressions:
		return r.Impressions
	case FieldConversions:
		return r.Conversions
	case FieldCTR:
		return r.CTR
	case FieldCPA:
		return r.CPA
	case FieldROAS:
		return r.ROAS
	}
	return NA
}

// SetNumber altera um campo numérico
func (r *CampaignRecord) SetNumber(f Field, n Number) {
	switch f {
	case FieldInvestment:
		r.Investment = n
	case FieldClicks:
		r.Clicks = n
	case FieldImpressions:
		r.Impressions = n
	case FieldConversions:
		r.Conversions = n
	case FieldCTR:
		r.CTR = n
	case FieldCPA:
		r.CPA = n
	case FieldROAS:
		r.ROAS = n
	}
}

// Text retorna o valor textual de um campo categórico
func (r CampaignRecord) Text(f Field) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldStatus:
		return string(r.Status)
	case FieldPlatform:
		return r.Platform
	case FieldChannel:
		return r.Channel
	}
	return ""
}

// SetText altera um campo categórico
func (r *CampaignRecord) SetText(f Field, value string) {
	switch f {
	case FieldName:
		r.Name = value
	case FieldStatus:
		r.Status = NormalizeStatus(value)
	case FieldPlatform:
		r.Platform = value
	case FieldChannel:
		r.Channel = value
	}
}

// Clone copia o registro, inclusive o mapa de colunas extras
func (r CampaignRecord) Clone() CampaignRecord {
	if r.Extra != nil {
		extra := make(map[string]string, len(r.Extra))
		for k, v := range r.Extra {
			extra[k] = v
		}
		r.Extra = extra
	}
	return r
}

// CampaignTable é a planilha de campanhas: colunas ordenadas e registros ordenados
type CampaignTable struct {
	Columns []Column         `json:"columns"`
	Records []CampaignRecord `json:"records"`
}

// Len retorna o número de linhas
func (t CampaignTable) Len() int {
	return len(t.Records)
}

// IsEmpty indica tabela sem linhas
func (t CampaignTable) IsEmpty() bool {
	return len(t.Records) == 0
}

// HasField indica se a coluna do campo existe na tabela
func (t CampaignTable) HasField(f Field) bool {
	_, ok := t.ColumnFor(f)
	return ok
}

// ColumnFor retorna a coluna associada ao campo
func (t CampaignTable) ColumnFor(f Field) (Column, bool) {
	if f == FieldExtra {
		return Column{}, false
	}
	for _, c := range t.Columns {
		if c.Field == f {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnByHeader busca uma coluna pelo cabeçalho
func (t CampaignTable) ColumnByHeader(header string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Header == header {
			return c, true
		}
	}
	return Column{}, false
}

// Headers retorna os cabeçalhos na ordem da tabela
func (t CampaignTable) Headers() []string {
	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Header
	}
	return headers
}

// Clone copia a tabela inteira
func (t CampaignTable) Clone() CampaignTable {
	clone := CampaignTable{
		Columns: make([]Column, len(t.Columns)),
		Records: make([]CampaignRecord, len(t.Records)),
	}
	copy(clone.Columns, t.Columns)
	for i, r := range t.Records {
		clone.Records[i] = r.Clone()
	}
	return clone
}

// Empty retorna uma tabela com as mesmas colunas e nenhuma linha
func (t CampaignTable) Empty() CampaignTable {
	columns := make([]Column, len(t.Columns))
	copy(columns, t.Columns)
	return CampaignTable{Columns: columns, Records: []CampaignRecord{}}
}

// WithRecords retorna uma tabela com as mesmas colunas e os registros informados
func (t CampaignTable) WithRecords(records []CampaignRecord) CampaignTable {
	out := t.Empty()
	out.Records = records
	return out
}

// DefaultColumns são as colunas da planilha de exemplo
func DefaultColumns() []Column {
	fields := []Field{
		FieldName, FieldInvestment, FieldClicks, FieldImpressions, FieldConversions,
		FieldCTR, FieldCPA, FieldROAS, FieldStatus, FieldPlatform, FieldChannel,
	}
	columns := make([]Column, len(fields))
	for i, f := range fields {
		columns[i] = Column{Header: DefaultHeaders[f], Field: f}
	}
	return columns
}

// ExampleTable retorna a planilha de exemplo usada no início da sessão e no reset
func ExampleTable() CampaignTable {
	n := NewNumber
	return CampaignTable{
		Columns: DefaultColumns(),
		Records: []CampaignRecord{
			{Name: "Verão 2023", Investment: n(5000), Clicks: n(1200), Impressions: n(50000), Conversions: n(120), CTR: n(2.4), CPA: n(41.67), ROAS: n(3.2), Status: StatusActive, Platform: "Google Ads", Channel: "Search"},
			{Name: "Black Friday", Investment: n(15000), Clicks: n(3500), Impressions: n(150000), Conversions: n(350), CTR: n(2.3), CPA: n(42.86), ROAS: n(4.1), Status: StatusCompleted, Platform: "Facebook Ads", Channel: "Feed"},
			{Name: "Natal", Investment: n(10000), Clicks: n(2800), Impressions: n(120000), Conversions: n(210), CTR: n(2.1), CPA: n(47.62), ROAS: n(3.8), Status: StatusCompleted, Platform: "Google Ads", Channel: "Display"},
			{Name: "Ano Novo", Investment: n(8000), Clicks: n(2100), Impressions: n(90000), Conversions: n(180), CTR: n(2.6), CPA: n(44.44), ROAS: n(3.5), Status: StatusPaused, Platform: "Facebook Ads", Channel: "Stories"},
			{Name: "Dia das Mães", Investment: n(7000), Clicks: n(1900), Impressions: n(85000), Conversions: n(160), CTR: n(2.2), CPA: n(43.75), ROAS: n(3.7), Status: StatusActive, Platform: "Instagram Ads", Channel: "Reels"},
		},
	}
}
