// Package cv2pdf renders structured CV content to a two-column A4 PDF using
// headless Chrome.
//
// # Quick Start
//
//	exp, err := cv2pdf.NewExporter(cv2pdf.WithOutputDir("out"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer exp.Close()
//
//	res, err := exp.Export(ctx, cv2pdf.Input{Content: cv})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Filepath, res.PageCount)
//
// # Rendering Pipeline
//
//  1. Sections are split into the sidebar and main columns.
//  2. The photo, if any, is resolved to a data URI.
//  3. Three standalone HTML documents are assembled: sidebar, main and a
//     one-page background holding both column colours.
//  4. Chrome prints the three documents concurrently. Each column paginates
//     on its own.
//  5. The PDFs are stacked page by page: background, sidebar, main.
//
// A column with no content is not printed and contributes no pages.
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library downloads a
// managed Chromium on first run (~/.cache/rod/browser/). Use ROD_BROWSER_BIN
// or WithBrowserBin to point at an installed binary; containers usually need
// WithNoSandbox(true).
//
// One browser process is launched lazily and shared by every export of an
// Exporter, which is safe for concurrent use. Close tears it down.
package cv2pdf
