package io

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/phil-mansfield/table"
	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/approx/math/interpolate"
)

const (
	ExampleApproximateFile = `[Approximate]

#######################
# Required Parameters #
#######################

# The curves are evaluated on Points evenly spaced values in [Min, Max].
Min = 0
Max = 15
Points = 50

#######################
# Optional Parameters #
#######################

# Name of the function being approximated. Default is 'yandex',
# sin(x / 5) * exp(x / 10) + 5 * exp(-x / 2).
# Function = yandex

# If set, the curves are written to this file as a whitespace separated table.
# TableFile = curves.txt

# If set, a figure showing every curve is saved to this file.
# PlotFile = curves.png

# Solves whose condition number is larger than this are logged as warnings.
# Default is 1e12.
# MaxCondition = 1e12

# Each [Polynomial] section defines one interpolating polynomial. Its sample
# points are either listed one per line or read from a column of a text table.
[Polynomial "linear"]
SamplePoints = 1
SamplePoints = 15
Color = r

[Polynomial "quadratic"]
SamplePoints = 1
SamplePoints = 8
SamplePoints = 15
Color = y

[Polynomial "cubic"]
# SampleFile = path/to/points.txt
# SampleColumn = 0
SamplePoints = 1
SamplePoints = 4
SamplePoints = 10
SamplePoints = 15
Color = b`

	DefaultFunction     = "yandex"
	DefaultMaxCondition = interpolate.DefaultMaxCondition
)

type ApproximateConfig struct {
	// Required
	Min, Max float64
	Points   int

	// Optional
	Function     string
	TableFile    string
	PlotFile     string
	MaxCondition float64
}

// PolynomialConfig describes the sample points of a single interpolating
// polynomial.
type PolynomialConfig struct {
	// Required, unless SampleFile is set.
	SamplePoints []float64

	// Optional
	SampleFile   string
	SampleColumn int
	Color        string
	Name         string
}

type ApproximateWrapper struct {
	Approximate ApproximateConfig
	Polynomial  map[string]*PolynomialConfig
}

func DefaultApproximateWrapper() *ApproximateWrapper {
	con := ApproximateConfig{}
	con.Function = DefaultFunction
	con.MaxCondition = DefaultMaxCondition
	return &ApproximateWrapper{Approximate: con}
}

func (con *ApproximateConfig) ValidRange() bool {
	return con.Max > con.Min
}
func (con *ApproximateConfig) ValidPoints() bool {
	return con.Points >= 2
}
func (con *ApproximateConfig) ValidMaxCondition() bool {
	return con.MaxCondition > 0
}
func (con *ApproximateConfig) ValidTableFile() bool {
	return con.TableFile != ""
}
func (con *ApproximateConfig) ValidPlotFile() bool {
	return con.PlotFile != ""
}

// Grid returns the Points evenly spaced evaluation points in [Min, Max].
func (con *ApproximateConfig) Grid() []float64 {
	xs := make([]float64, con.Points)
	dx := (con.Max - con.Min) / float64(con.Points-1)
	for i := range xs {
		xs[i] = con.Min + dx*float64(i)
	}
	xs[len(xs)-1] = con.Max
	return xs
}

func (con *ApproximateConfig) CheckInit() error {
	if !con.ValidRange() {
		return fmt.Errorf(
			"[Approximate] needs Max > Min, but Min = %g and Max = %g.",
			con.Min, con.Max,
		)
	} else if !con.ValidPoints() {
		return fmt.Errorf(
			"[Approximate] needs at least 2 Points, but Points = %d.",
			con.Points,
		)
	} else if !con.ValidMaxCondition() {
		return fmt.Errorf(
			"[Approximate] given a non-positive MaxCondition, %g.",
			con.MaxCondition,
		)
	}
	return nil
}

// CheckInit validates the section and, if SampleFile is set, reads its
// sample points from column SampleColumn of that file.
func (poly *PolynomialConfig) CheckInit(name string) error {
	poly.Name = name

	if poly.SampleFile != "" {
		if len(poly.SamplePoints) > 0 {
			return fmt.Errorf(
				"Polynomial '%s' sets both SamplePoints and SampleFile.", name,
			)
		} else if poly.SampleColumn < 0 {
			return fmt.Errorf(
				"Polynomial '%s' given a negative SampleColumn, %d.",
				name, poly.SampleColumn,
			)
		}

		cols, err := table.ReadTable(
			poly.SampleFile, []int{poly.SampleColumn}, nil,
		)
		if err != nil {
			return fmt.Errorf(
				"Polynomial '%s' could not read SampleFile '%s': %w",
				name, poly.SampleFile, err,
			)
		}
		poly.SamplePoints = cols[0]
	}

	if len(poly.SamplePoints) == 0 {
		return fmt.Errorf("Need to specify SamplePoints for Polynomial '%s'.", name)
	}

	seen := map[float64]bool{}
	for _, x := range poly.SamplePoints {
		if seen[x] {
			return fmt.Errorf(
				"Polynomial '%s' lists the sample point %g more than once.",
				name, x,
			)
		}
		seen[x] = true
	}

	return nil
}

// Polynomials returns the checked [Polynomial] sections sorted by name.
func (wrap *ApproximateWrapper) Polynomials() []*PolynomialConfig {
	names := make([]string, 0, len(wrap.Polynomial))
	for name := range wrap.Polynomial {
		names = append(names, name)
	}
	sort.Strings(names)

	polys := make([]*PolynomialConfig, len(names))
	for i, name := range names {
		polys[i] = wrap.Polynomial[name]
	}
	return polys
}

// CheckInit validates every section, reporting all problems at once.
func (wrap *ApproximateWrapper) CheckInit() error {
	var mErr *multierror.Error

	if err := wrap.Approximate.CheckInit(); err != nil {
		mErr = multierror.Append(mErr, err)
	}
	if len(wrap.Polynomial) == 0 {
		mErr = multierror.Append(mErr, fmt.Errorf(
			"Need at least one [Polynomial] section.",
		))
	}
	for _, poly := range wrap.Polynomials() {
		if err := poly.CheckInit(poly.Name); err != nil {
			mErr = multierror.Append(mErr, err)
		}
	}

	return mErr.ErrorOrNil()
}

// ReadApproximateConfig reads and validates an [Approximate] config file.
func ReadApproximateConfig(fname string) (*ApproximateWrapper, error) {
	wrap := DefaultApproximateWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	return wrap, wrap.initNames().CheckInit()
}

// ParseApproximateConfig is ReadApproximateConfig for a config held in memory.
func ParseApproximateConfig(str string) (*ApproximateWrapper, error) {
	wrap := DefaultApproximateWrapper()
	if err := gcfg.ReadStringInto(wrap, str); err != nil {
		return nil, err
	}
	return wrap, wrap.initNames().CheckInit()
}

func (wrap *ApproximateWrapper) initNames() *ApproximateWrapper {
	for name, poly := range wrap.Polynomial {
		poly.Name = name
	}
	return wrap
}
