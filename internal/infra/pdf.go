package infra

// pdf.go — closing-report PDF generation using go-pdf/fpdf.
// Renders the end-of-day reconciliation of a caixa: fundo de troco, sales
// grouped by payment method, sangrias, suprimentos and the expected balance.
// The output file is saved to storagePath/fechamento_{caixa}_{data}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"parquepos/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GerarRelatorioPDF writes the closing report to storagePath (created if
// needed) and returns the absolute path of the generated file.
func GerarRelatorioPDF(relatorio *dto.RelatorioFechamentoResponse, nomeFantasia, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("fechamento_%s_%s.pdf", relatorio.CaixaID, time.Now().Format("20060102_150405"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, nomeFantasia, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Relatorio de Fechamento de Caixa", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Caixa: %s", relatorio.Nome), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	if relatorio.AbertoEm != nil {
		pdf.CellFormat(contentW, 4, fmt.Sprintf("Aberto em: %s", *relatorio.AbertoEm), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 4, fmt.Sprintf("Emitido em: %s", time.Now().Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	linha := func(label, valor string, negrito bool) {
		style := ""
		if negrito {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 9)
		pdf.CellFormat(contentW*0.6, 5, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.4, 5, valor, "", 1, "R", false, 0, "")
	}

	// ── Totais ───────────────────────────────────────────────────────────────
	linha("Fundo de troco", "R$ "+relatorio.FundoTroco.StringFixed(2), false)
	linha("Total de vendas", "R$ "+relatorio.TotalVendas.StringFixed(2), false)
	for _, venda := range relatorio.VendasPorMetodo {
		linha("    "+venda.Metodo, "R$ "+venda.Total.StringFixed(2), false)
	}
	linha("Suprimentos", "R$ "+relatorio.TotalSuprimentos.StringFixed(2), false)
	linha("Sangrias", "- R$ "+relatorio.TotalSangrias.StringFixed(2), false)

	pdf.Ln(2)
	pdf.SetDrawColor(0, 0, 0)
	y := pdf.GetY()
	pdf.Line(10, y, 10+contentW, y)
	pdf.Ln(2)
	linha("Saldo esperado em caixa", "R$ "+relatorio.SaldoEsperado.StringFixed(2), true)

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
