package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"github.com/montanaflynn/stats"
	plt "github.com/phil-mansfield/pyplot"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/phil-mansfield/approx/io"
	"github.com/phil-mansfield/approx/math/interpolate"
	"github.com/phil-mansfield/approx/textmatch"
)

var (
	// Functions which can be approximated by name from an [Approximate]
	// config file.
	Functions = map[string]interpolate.Func{
		"yandex": func(x float64) float64 {
			return math.Sin(x/5)*math.Exp(x/10) + 5*math.Exp(-x/2)
		},
		"runge": func(x float64) float64 { return 1 / (1 + 25*x*x) },
		"sin":   math.Sin,
		"exp":   math.Exp,
	}
)

func main() {
	var (
		approximate, match string
		exampleConfig      string
		model, count       int
	)
	vars := map[string]*string{
		"Approximate":   &approximate,
		"Match":         &match,
		"ExampleConfig": &exampleConfig,
	}

	flag.StringVar(
		&approximate, "Approximate", "",
		"Configuration file for [Approximate] mode.",
	)
	flag.StringVar(
		&match, "Match", "",
		"Text file with one sentence per line for [Match] mode.",
	)
	flag.StringVar(
		&exampleConfig,
		"ExampleConfig", "", "Prints an example configuration file of the "+
			"specified type to stdout. 'Approximate' is the only accepted "+
			"argument.",
	)
	flag.IntVar(
		&model, "Model", 0,
		"Index of the sentence that [Match] mode finds neighbors of.",
	)
	flag.IntVar(
		&count, "Count", 2,
		"Number of sentences [Match] mode prints.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err.Error())
	}
	defer logger.Sync()

	switch modeName {
	case "Approximate":
		wrap, err := io.ReadApproximateConfig(approximate)
		if err != nil {
			log.Fatal(err.Error())
		}
		approximateMain(wrap, logger)

	case "Match":
		if count <= 0 {
			log.Fatalf("Count must be positive, but is %d.", count)
		}
		matchMain(match, model, count)

	case "ExampleConfig":
		switch exampleConfig {
		case "Approximate":
			fmt.Println(io.ExampleApproximateFile)
		default:
			log.Fatalf(
				"'%s' is not a recognized config type. Only 'Approximate' "+
					"is accepted.", exampleConfig,
			)
		}
	}
}

func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but approx "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

func approximateMain(wrap *io.ApproximateWrapper, logger *zap.Logger) {
	con := &wrap.Approximate
	f, ok := Functions[con.Function]
	if !ok {
		log.Fatalf("Function '%s' is not recognized.", con.Function)
	}

	xs := con.Grid()
	polys := wrap.Polynomials()

	names := []string{con.Function}
	curves := [][]float64{interpolate.ValueVector(xs, f)}
	for _, poly := range polys {
		ys, err := interpolate.Approximate(
			f, poly.SamplePoints, xs,
			interpolate.Logger(logger.With(zap.String("polynomial", poly.Name))),
			interpolate.MaxCondition(con.MaxCondition),
		)
		if err != nil {
			log.Fatalf("Polynomial '%s': %s", poly.Name, err.Error())
		}

		meanErr, maxErr := errorSummary(curves[0], ys)
		logger.Info("approximated function",
			zap.String("polynomial", poly.Name),
			zap.Int("degree", len(poly.SamplePoints)-1),
			zap.Float64("mean_abs_error", meanErr),
			zap.Float64("max_abs_error", maxErr),
		)

		names = append(names, poly.Name)
		curves = append(curves, ys)
	}

	out := os.Stdout
	if con.ValidTableFile() {
		var err error
		out, err = os.Create(con.TableFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		defer out.Close()
	}
	if err := io.WriteCurves(out, xs, names, curves); err != nil {
		log.Fatal(err.Error())
	}

	if con.ValidPlotFile() {
		plotCurves(con, f, xs, polys, curves)
	}
}

// errorSummary returns the mean and maximum absolute difference between
// approximate and exact values.
func errorSummary(exact, approx []float64) (mean, max float64) {
	diffs := make([]float64, len(exact))
	for i := range exact {
		diffs[i] = math.Abs(exact[i] - approx[i])
	}
	mean, err := stats.Mean(diffs)
	if err != nil {
		log.Fatal(err.Error())
	}
	max, err = stats.Max(diffs)
	if err != nil {
		log.Fatal(err.Error())
	}
	return mean, max
}

func plotCurves(
	con *io.ApproximateConfig, f interpolate.Func, xs []float64,
	polys []*io.PolynomialConfig, curves [][]float64,
) {
	plt.Figure()
	plt.Plot(xs, curves[0], "g--", plt.LW(2))
	for i, poly := range polys {
		color := poly.Color
		if color == "" {
			color = "k"
		}
		plt.Plot(xs, curves[i+1], color+"--")
		plt.Plot(
			poly.SamplePoints, interpolate.ValueVector(poly.SamplePoints, f),
			"o"+color,
		)
	}

	plt.Title(fmt.Sprintf("Polynomial approximations of '%s'", con.Function))
	plt.XLabel(`$x$`, plt.FontSize(16))
	plt.YLabel(`$f(x)$`, plt.FontSize(16))
	plt.XLim(con.Min, con.Max)
	plt.Grid(plt.Axis("y"))
	plt.SaveFig(con.PlotFile)
	plt.Execute()
}

func matchMain(fname string, model, count int) {
	f, err := os.Open(fname)
	if err != nil {
		log.Fatal(err.Error())
	}
	defer f.Close()

	sentences, err := textmatch.ReadSentences(f)
	if err != nil {
		log.Fatal(err.Error())
	}

	idxs, err := textmatch.Match(sentences, model, count)
	if err != nil {
		log.Fatal(err.Error())
	}

	fmt.Printf("Original:\n %s\n\nFound:\n", sentences[model])
	for _, i := range idxs {
		fmt.Println(sentences[i])
	}
}
