package pdfocr

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

var pdfStringEscapes = strings.NewReplacer(`\(`, "(", `\)`, ")", `\\`, `\`)

// unescapePDFString undoes the backslash escapes of a PDF literal string
func unescapePDFString(s string) string {
	return pdfStringEscapes.Replace(s)
}

// decodeUTF16BE decodes a PDF text string written as UTF-16BE with a byte order mark
func decodeUTF16BE(b []byte) (string, error) {
	if !bytes.HasPrefix(b, []byte{0xFE, 0xFF}) {
		return "", fmt.Errorf("no BOM detected, cannot confirm UTF-16BE")
	}
	dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
	out, err := dec.Bytes(b)
	if err != nil {
		return "", fmt.Errorf("invalid UTF-16BE string: %w", err)
	}
	return string(out), nil
}

// getLogger returns where warnings go: nowhere when LogWarnings is off,
// otherwise config.Logger or stdout
func getLogger(config OCRConfig) io.Writer {
	if !config.LogWarnings {
		return io.Discard
	}
	if config.Logger == nil {
		return os.Stdout
	}
	return config.Logger
}

// dumpPDFStructure writes the first byteCount bytes of the PDF and the context
// of the first /OCG reference
func dumpPDFStructure(pdfData []byte, byteCount int, logger io.Writer) {
	byteCount = min(byteCount, len(pdfData))

	fmt.Fprintf(logger, "===== PDF STRUCTURE DUMP (FIRST %d BYTES) =====\n", byteCount)
	fmt.Fprintln(logger, string(pdfData[:byteCount]))
	fmt.Fprintln(logger, "===== END PDF STRUCTURE DUMP =====")

	if i := bytes.Index(pdfData, []byte("/OCG")); i >= 0 {
		fmt.Fprintln(logger, "===== OCG CONTEXT =====")
		fmt.Fprintln(logger, string(pdfData[max(i-20, 0):min(i+100, len(pdfData))]))
		fmt.Fprintln(logger, "===== END OCG CONTEXT =====")
	}
}
