// Command insights calcula el reporte de inteligencia de inventario desde la terminal.
//
//	insights [--input-file payload.json] [--output-format json|text]
//	         [--plot [--plot-file sales-chart.xlsx]] [--pdf-file report.pdf]
//
// Sin --input-file se usa el dataset demo. Códigos de salida: 0 ok, 1 error de datos,
// 2 uso incorrecto, 3 backend de gráficos no disponible.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Prathamesh0412/Sentinel-Ops/internal/application/dto"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/application/insights"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/domain"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/infrastructure/demo"
	infrapdf "github.com/Prathamesh0412/Sentinel-Ops/internal/infrastructure/pdf"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/infrastructure/xlsx"
	"github.com/Prathamesh0412/Sentinel-Ops/pkg/config"
	"github.com/Prathamesh0412/Sentinel-Ops/pkg/logger"
)

const (
	exitOK          = 0
	exitDataError   = 1
	exitUsage       = 2
	exitUnavailable = 3
)

func main() {
	_ = godotenv.Load()
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, time.Now))
}

type options struct {
	inputFile    string
	outputFormat string
	plot         bool
	plotFile     string
	pdfFile      string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("insights", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.inputFile, "input-file", "", "payload JSON opcional (sin él se usa el dataset demo)")
	fs.StringVar(&o.outputFormat, "output-format", "json", "formato de salida: json | text")
	fs.BoolVar(&o.plot, "plot", false, "exporta el gráfico de ventas totales por producto (xlsx)")
	fs.StringVar(&o.plotFile, "plot-file", "sales-chart.xlsx", "destino del gráfico cuando se usa --plot")
	fs.StringVar(&o.pdfFile, "pdf-file", "", "escribe además el reporte en PDF")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.outputFormat != "json" && o.outputFormat != "text" {
		fmt.Fprintf(stderr, "--output-format inválido %q (json|text)\n", o.outputFormat)
		return o, flag.ErrHelp
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "argumentos inesperados: %v\n", fs.Args())
		return o, flag.ErrHelp
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, clock func() time.Time) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "configuración:", err)
		return exitUsage
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: stderr})

	var body []byte
	if opts.inputFile != "" {
		if body, err = os.ReadFile(opts.inputFile); err != nil {
			fmt.Fprintln(stderr, "leer payload:", err)
			return exitDataError
		}
	}

	uc := insights.NewUseCase(log.Zerolog(),
		insights.WithClock(clock),
		insights.WithClusterSeed(cfg.Insights.ClusterSeed))
	report, err := uc.Generate(ctx, insights.NewPayloadSource(body, demo.NewSource(clock)))
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitDataError
	}

	if opts.outputFormat == "text" {
		fmt.Fprintln(stdout, insights.RenderText(report))
	} else {
		out, err := json.Marshal(report)
		if err != nil {
			fmt.Fprintln(stderr, "serializar reporte:", err)
			return exitDataError
		}
		fmt.Fprintln(stdout, string(out))
	}

	if opts.pdfFile != "" {
		b, err := infrapdf.NewMarotoReportGenerator().GenerateInsightsPDF(ctx, report)
		if err == nil {
			err = os.WriteFile(opts.pdfFile, b, 0o644)
		}
		if err != nil {
			fmt.Fprintln(stderr, "pdf:", err)
			return exitDataError
		}
		log.Info().Str("file", opts.pdfFile).Msg("reporte PDF escrito")
	}

	if opts.plot {
		return plot(ctx, xlsx.NewSalesChartRenderer(cfg.Insights.ChartBackend), report, opts.plotFile, stdout, stderr)
	}
	return exitOK
}

// plot escribe el gráfico. Sin ventas solo avisa; sin backend falla con un código propio.
func plot(ctx context.Context, r insights.SalesChartRenderer, report *dto.InventoryInsightsDTO, file string, stdout, stderr io.Writer) int {
	b, err := r.RenderSalesChart(ctx, report)
	switch {
	case errors.Is(err, domain.ErrNoChartData):
		fmt.Fprintln(stderr, "No sales data to plot.")
		return exitOK
	case errors.Is(err, domain.ErrChartUnavailable):
		fmt.Fprintln(stderr, "plot:", err)
		return exitUnavailable
	case err != nil:
		fmt.Fprintln(stderr, "plot:", err)
		return exitDataError
	}
	if err := os.WriteFile(file, b, 0o644); err != nil {
		fmt.Fprintln(stderr, "plot:", err)
		return exitDataError
	}
	fmt.Fprintf(stderr, "gráfico escrito en %s\n", file)
	return exitOK
}
