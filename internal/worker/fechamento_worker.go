package worker

// fechamento_worker.go
// Processes closing-report jobs: renders the reconciliation to PDF and mails
// it to the supervisor address configured in RELATORIO_EMAIL.

import (
	"context"
	"encoding/json"
	"fmt"

	"parquepos/internal/dto"
	"parquepos/internal/infra"

	"github.com/rs/zerolog/log"
)

// FechamentoJobPayload is the job envelope sent to QueueFechamento.
type FechamentoJobPayload struct {
	Relatorio dto.RelatorioFechamentoResponse `json:"relatorio"`
}

type FechamentoWorker struct {
	mailer       *infra.Mailer
	storagePath  string
	nomeFantasia string
	destinatario string
}

func NewFechamentoWorker(mailer *infra.Mailer, storagePath, nomeFantasia, destinatario string) *FechamentoWorker {
	return &FechamentoWorker{
		mailer:       mailer,
		storagePath:  storagePath,
		nomeFantasia: nomeFantasia,
		destinatario: destinatario,
	}
}

// Process renders the PDF and sends it. A returned error sends the job to the
// DLQ for manual inspection.
func (w *FechamentoWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload FechamentoJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("fechamento_worker: payload inválido: %w", err)
	}

	pdfPath, err := infra.GerarRelatorioPDF(&payload.Relatorio, w.nomeFantasia, w.storagePath)
	if err != nil {
		return fmt.Errorf("fechamento_worker: gerar PDF: %w", err)
	}
	log.Info().Str("caixa_id", payload.Relatorio.CaixaID).Str("pdf", pdfPath).Msg("relatório de fechamento gerado")

	if w.destinatario == "" {
		log.Warn().Msg("fechamento_worker: RELATORIO_EMAIL vazio — pulando envio")
		return nil
	}
	subject := fmt.Sprintf("Fechamento de caixa — %s", payload.Relatorio.Nome)
	body := fmt.Sprintf("Saldo esperado: R$ %s", payload.Relatorio.SaldoEsperado.StringFixed(2))
	if err := w.mailer.EnviarRelatorio(w.destinatario, subject, body, pdfPath); err != nil {
		return fmt.Errorf("fechamento_worker: enviar e-mail: %w", err)
	}
	return nil
}
