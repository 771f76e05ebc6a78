package domain

import (
	"time"
)

// ActivityAction identifica a operação registrada no histórico
type ActivityAction string

const (
	ActivityUpload    ActivityAction = "upload"
	ActivityEdit      ActivityAction = "edit"
	ActivityReset     ActivityAction = "reset"
	ActivityClear     ActivityAction = "clear"
	ActivityRecompute ActivityAction = "recompute"
	ActivityExport    ActivityAction = "export"
)

// ActivityEntry é um registro do histórico de operações sobre a planilha.
// O conteúdo da planilha não é armazenado, apenas a operação e o tamanho resultante.
type ActivityEntry struct {
	ID        string         `json:"id"`
	Action    ActivityAction `json:"action"`
	Source    string         `json:"source,omitempty"`
	Rows      int            `json:"rows"`
	Columns   int            `json:"columns"`
	CreatedAt time.Time      `json:"created_at"`
}
