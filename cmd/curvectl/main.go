package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"sigmoidcalc/config"
	"sigmoidcalc/fixed"
	"sigmoidcalc/native/curve"
	"sigmoidcalc/observability/logging"
	"sigmoidcalc/observability/metrics"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
)

var errUsage = errors.New("usage")

type result struct {
	Method string `json:"method"`
	Result string `json:"result"`
	Raw    string `json:"raw"`
	BPS    string `json:"bps,omitempty"`
}

type commonFlags struct {
	config    string
	estimator string
	steps     int
	raw       bool
	metrics   bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: curvectl <command> [flags] [args]")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  ping                      liveness probe")
	fmt.Fprintln(w, "  version                   interface version")
	fmt.Fprintln(w, "  echo <n>                  echo a raw integer")
	fmt.Fprintln(w, "  add <a> <b>               checked raw integer addition")
	fmt.Fprintln(w, "  exp <x>                   e^x")
	fmt.Fprintln(w, "  sigmoid <x>               1 / (1 + e^-x)")
	fmt.Fprintln(w, "  price <supply>            spot price")
	fmt.Fprintln(w, "  integral <from> <to>      area under the price curve")
	fmt.Fprintln(w, "  buy <supply> <amount>     cost of minting amount")
	fmt.Fprintln(w, "  sell <supply> <amount>    proceeds of burning amount")
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -config PATH  -estimator series|precise  -steps N  -raw  -metrics")
	fmt.Fprintln(w, "Flags precede arguments. Use -- before negative values, e.g. curvectl sigmoid -- -2")
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		usage(stderr)
		return errUsage
	}
	command, arity := args[0], 0
	switch command {
	case "ping", "version":
	case "echo", "exp", "sigmoid", "price":
		arity = 1
	case "add", "integral", "buy", "sell":
		arity = 2
	case "help", "-h", "--help":
		usage(stdout)
		return nil
	default:
		usage(stderr)
		return errUsage
	}

	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts commonFlags
	fs.StringVar(&opts.config, "config", "", "Path to a TOML or YAML calculator config (defaults when empty)")
	fs.StringVar(&opts.estimator, "estimator", "", "Override the configured estimator (series or precise)")
	fs.IntVar(&opts.steps, "steps", 0, "Override the configured integration step count")
	fs.BoolVar(&opts.raw, "raw", false, "Read arguments as raw scaled integers (decimal or 0x hex)")
	fs.BoolVar(&opts.metrics, "metrics", false, "Dump call metrics to stderr on exit")
	if err := fs.Parse(args[1:]); err != nil {
		return errUsage
	}
	if fs.NArg() != arity {
		return fmt.Errorf("%s expects %d argument(s), got %d", command, arity, fs.NArg())
	}

	cfg, err := config.Load(opts.config)
	if err != nil {
		return err
	}
	if opts.estimator != "" {
		cfg.Estimator = opts.estimator
	}
	if opts.steps != 0 {
		cfg.IntegrationSteps = opts.steps
	}
	if opts.metrics {
		cfg.Metrics.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closer, err := logging.Setup(logging.Options{
		Service: cfg.Log.Service,
		Env:     cfg.Log.Env,
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Output:  stderr,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	kind, err := cfg.EstimatorKind()
	if err != nil {
		return err
	}
	estimator, err := curve.NewEstimator(kind)
	if err != nil {
		return err
	}
	calcOpts := []curve.CalculatorOption{
		curve.WithEstimator(estimator),
		curve.WithSteps(cfg.IntegrationSteps),
		curve.WithLogger(logger),
	}
	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		observer, err := metrics.NewCalculatorMetrics(cfg.Metrics.Namespace, registry)
		if err != nil {
			return err
		}
		calcOpts = append(calcOpts, curve.WithObserver(observer))
	}
	calc, err := curve.NewCalculator(cfg.CurveParams(), calcOpts...)
	if err != nil {
		return err
	}

	out, err := dispatch(calc, command, fs.Args(), opts.raw)
	if registry != nil {
		if dumpErr := metrics.Dump(stderr, registry); dumpErr != nil {
			logger.Warn("metrics dump failed", "error", dumpErr)
		}
	}
	if err != nil {
		return err
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func dispatch(calc *curve.Calculator, command string, args []string, raw bool) (result, error) {
	switch command {
	case "ping":
		return integerResult(command, calc.Ping()), nil
	case "version":
		return integerResult(command, calc.Version()), nil
	case "echo":
		n, err := parseInteger(args[0])
		if err != nil {
			return result{}, err
		}
		return integerResult(command, calc.Echo(n)), nil
	case "add":
		a, err := parseInteger(args[0])
		if err != nil {
			return result{}, err
		}
		b, err := parseInteger(args[1])
		if err != nil {
			return result{}, err
		}
		sum, err := calc.Add(a, b)
		if err != nil {
			return result{}, err
		}
		return integerResult(command, sum), nil
	}

	values := make([]fixed.Value, len(args))
	for i, arg := range args {
		v, err := parseValue(arg, raw)
		if err != nil {
			return result{}, err
		}
		values[i] = v
	}
	var (
		v   fixed.Value
		err error
	)
	switch command {
	case "exp":
		v, err = calc.Exp(values[0])
	case "sigmoid":
		v, err = calc.Sigmoid(values[0])
	case "price":
		v, err = calc.Price(values[0])
	case "integral":
		v, err = calc.Integral(values[0], values[1])
	case "buy":
		v, err = calc.BuyCost(values[0], values[1])
	case "sell":
		v, err = calc.SellProceeds(values[0], values[1])
	default:
		return result{}, fmt.Errorf("unknown command %q", command)
	}
	if err != nil {
		return result{}, err
	}
	out := result{Method: command, Result: v.String(), Raw: v.Hex()}
	if command == "sigmoid" {
		if bps, err := fixed.ToBasisPoints(v); err == nil {
			out.BPS = bps.String()
		}
	}
	return out, nil
}

func parseValue(arg string, raw bool) (fixed.Value, error) {
	if raw {
		return fixed.ParseRaw(arg)
	}
	return fixed.Parse(arg)
}

func parseInteger(arg string) (*uint256.Int, error) {
	v, err := fixed.ParseRaw(arg)
	if err != nil {
		return nil, err
	}
	n, err := v.Uint()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", strings.TrimSpace(arg), err)
	}
	return n, nil
}

func integerResult(method string, n *uint256.Int) result {
	return result{Method: method, Result: n.Dec(), Raw: hexutil.EncodeBig(n.ToBig())}
}
