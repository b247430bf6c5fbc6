// Package pdf converte HTML de impressão em PDF usando Chromium headless.
package pdf

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// Renderer converte um documento HTML num buffer PDF. A implementação real
// sobe um Chromium; testes injetam um fake.
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// A4 em polegadas; margem fixa de 8mm.
const (
	paperWidthIn  = 8.27
	paperHeightIn = 11.69
	marginIn      = 8.0 / 25.4
)

// ChromeRenderer renderiza via Chromium headless (go-rod). O navegador é
// iniciado e encerrado a cada chamada, inclusive em caminhos de erro.
type ChromeRenderer struct {
	binPath string
	timeout time.Duration
	logger  *zap.Logger
}

// NewChromeRenderer cria o renderizador. binPath vazio deixa o launcher
// localizar (ou baixar) o Chromium; timeout <= 0 usa 30s.
func NewChromeRenderer(binPath string, timeout time.Duration, logger *zap.Logger) *ChromeRenderer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChromeRenderer{binPath: binPath, timeout: timeout, logger: logger}
}

// Render gera o PDF: A4 retrato, margens de 8mm, fundo impresso.
func (r *ChromeRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	l := launcher.New().Headless(true).NoSandbox(true)
	if r.binPath != "" {
		l = l.Bin(r.binPath)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("iniciar chromium: %w", err)
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("conectar ao chromium: %w", err)
	}
	defer func() {
		if err := browser.Close(); err != nil {
			r.logger.Warn("Falha ao fechar o navegador", zap.Error(err))
		}
	}()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("abrir página: %w", err)
	}
	defer page.Close()

	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("carregar documento: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("aguardar documento: %w", err)
	}

	f := func(v float64) *float64 { return &v }
	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
		PaperWidth:        f(paperWidthIn),
		PaperHeight:       f(paperHeightIn),
		MarginTop:         f(marginIn),
		MarginBottom:      f(marginIn),
		MarginLeft:        f(marginIn),
		MarginRight:       f(marginIn),
	})
	if err != nil {
		return nil, fmt.Errorf("imprimir pdf: %w", err)
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("ler pdf: %w", err)
	}
	r.logger.Debug("PDF gerado", zap.Int("bytes", len(data)))
	return data, nil
}
