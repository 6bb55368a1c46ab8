package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth  = 210 // A4 width in mm
	pdfMargin     = 10  // Margin in mm
	pdfLineHeight = 5   // Line height in mm
	pdfFontSize   = 9
	pdfTabWidth   = 4 // Number of spaces for a tab
)

// generatePDF renders a processing result as a PDF: the ASCII tree, each
// embedded file with syntax highlighting, and the stats summary.
func generatePDF(output *ProcessedOutput, outcomes []FileOutcome, outputPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	style := styles.Get("github")
	if style == nil {
		style = styles.Fallback
	}

	// Tree section, plain monospace. Box-drawing glyphs survive in Courier
	// well enough for a structural overview.
	pdf.SetFont("Courier", "", pdfFontSize)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight, renderTree(output.FileTree), "", "L", false)
	pdf.Ln(pdfLineHeight)

	for _, outcome := range outcomes {
		if outcome.State != Embedded {
			continue
		}

		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", pdfFontSize+1)
		pdf.SetTextColor(0, 0, 0)
		pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight, fmt.Sprintf("File: %s", outcome.Path), "", "L", false)
		pdf.Ln(pdfLineHeight / 2)

		pdf.Line(pdfMargin, pdf.GetY(), pdfPageWidth-pdfMargin, pdf.GetY())
		pdf.Ln(pdfLineHeight / 2)

		if err := writeHighlightedCode(pdf, style, outcome.Content, outcome.Path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: syntax highlighting failed for %s: %v. Writing plain text.\n", outcome.Path, err)
			pdf.SetFont("Courier", "", pdfFontSize)
			pdf.SetTextColor(0, 0, 0)
			pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight, outcome.Content, "", "L", false)
		}
	}

	// Summary page
	stats := output.Stats
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", pdfFontSize+1)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight, "--- Summary ---", "", "L", false)
	pdf.Ln(pdfLineHeight / 2)

	pdf.SetFont("Helvetica", "", pdfFontSize)
	summary := fmt.Sprintf("Files: %d\nFolders: %d\nLines of code: %d\nArchive size: %s\nProcessing time: %s",
		stats.TotalFiles, stats.TotalFolders, stats.LinesOfCode, stats.FileSize, stats.ProcessingTime)
	if stats.TotalTokens > 0 {
		summary += fmt.Sprintf("\nTotal tokens: %d", stats.TotalTokens)
	}
	pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight, summary, "", "L", false)

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("failed to save PDF to %s: %w", outputPath, err)
	}
	fmt.Printf("Successfully saved PDF to %s\n", outputPath)
	return nil
}

// writeHighlightedCode tokenizes code content with chroma and writes styled
// tokens to the PDF.
func writeHighlightedCode(pdf *gofpdf.Fpdf, style *chroma.Style, codeContent, filePath string) error {
	lexer := lexers.Match(filePath)
	if lexer == nil {
		lexer = lexers.Analyse(codeContent)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, codeContent)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	pdf.SetFont("Courier", "", pdfFontSize)

	for token := iterator(); token != chroma.EOF; token = iterator() {
		entry := style.Get(token.Type)
		styleStr := ""
		if entry.Bold == chroma.Yes {
			styleStr += "B"
		}
		if entry.Italic == chroma.Yes {
			styleStr += "I"
		}
		pdf.SetFontStyle(styleStr)

		if entry.Colour.IsSet() {
			pdf.SetTextColor(int(entry.Colour.Red()), int(entry.Colour.Green()), int(entry.Colour.Blue()))
		} else {
			fg := style.Get(chroma.Text).Colour
			if fg.IsSet() {
				pdf.SetTextColor(int(fg.Red()), int(fg.Green()), int(fg.Blue()))
			} else {
				pdf.SetTextColor(0, 0, 0)
			}
		}

		tokenValue := strings.ReplaceAll(token.Value, "\t", strings.Repeat(" ", pdfTabWidth))
		pdf.Write(pdfLineHeight, tokenValue)
	}
	pdf.Ln(-1)

	return nil
}
