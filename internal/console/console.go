// Package console implements the storefront admin CLI on top of the
// composition root.
package console

import (
	"context"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/shopspring/decimal"

	"github.com/urbanexpress/storefront/internal/storefront"
	"github.com/urbanexpress/storefront/pkg/enums"
	pkgerrors "github.com/urbanexpress/storefront/pkg/errors"
	"github.com/urbanexpress/storefront/pkg/logger"
	"github.com/urbanexpress/storefront/pkg/types"
	"github.com/urbanexpress/storefront/pkg/validators"
)

// Free-text caps applied before input reaches the stores.
const (
	maxNameLen  = 80
	maxPhoneLen = 32
	maxNotesLen = 500
)

// App runs one command against a loaded storefront.
type App struct {
	Storefront *storefront.Storefront
	Logger     *logger.Logger
	Gatherer   prometheus.Gatherer
	Out        io.Writer

	// WhatsAppPhone is the default share target for "orders share".
	WhatsAppPhone string
	// Language is the default for commands taking -lang.
	Language enums.Language
}

// input holds the parsed flags of one action.
type input struct {
	id        string
	data      string
	status    string
	lang      string
	phone     string
	name      string
	branch    string
	product   string
	unit      string
	staffType string
	staff     string
	preset    string
	amount    string
	quantity  string
	index     int
	seconds   int
	eta       int
}

type action struct {
	summary string
	flags   []string
	run     func(ctx context.Context, app *App, in *input) (any, error)
}

type group map[string]action

var groups = map[string]group{
	"categories":    categoryCommands,
	"units":         unitCommands,
	"products":      productCommands,
	"branches":      branchCommands,
	"orders":        orderCommands,
	"stock":         stockCommands,
	"notifications": notificationCommands,
	"cart":          cartCommands,
	"fees":          feeCommands,
	"scrolling":     scrollingCommands,
	"cancellation":  cancellationCommands,
	"user":          userCommands,
}

// Run executes `<group> <action> [flags]`. State is loaded before the action
// and saved after it when the action changes anything.
func (a *App) Run(ctx context.Context, args []string) error {
	if a.Storefront == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "storefront is not configured")
	}
	if a.Logger == nil {
		a.Logger = logger.Nop()
	}
	if len(args) < 2 {
		return usageError("usage: storefront <group> <action> [flags]")
	}

	grp, ok := groups[args[0]]
	if !ok {
		return usageError(fmt.Sprintf("unknown group %q; groups: %s", args[0], strings.Join(sortedKeys(groups), ", ")))
	}
	act, ok := grp[args[1]]
	if !ok {
		return usageError(fmt.Sprintf("unknown action %q for %s; actions: %s", args[1], args[0], strings.Join(sortedKeys(grp), ", ")))
	}

	name := args[0] + " " + args[1]
	in, err := parseFlags(name, act.flags, args[2:])
	if err != nil {
		return err
	}
	if in.lang == "" {
		in.lang = string(a.Language)
	}

	ctx = a.Logger.WithCommand(ctx, name)
	a.Storefront.Load(ctx)

	result, err := act.run(ctx, a, in)
	if err != nil {
		return err
	}
	if a.Storefront.Dirty() {
		if err := a.Storefront.Save(ctx); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save storefront state")
		}
	}
	a.Logger.Debug(ctx, "command completed")
	return WriteSuccess(a.Out, result)
}

// WriteMetrics prints the gathered metrics in the Prometheus text format.
func (a *App) WriteMetrics(w io.Writer) error {
	if a.Gatherer == nil {
		return nil
	}
	families, err := a.Gatherer.Gather()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "gather metrics")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

// Usage lists every group and action.
func Usage(w io.Writer) {
	fmt.Fprintln(w, "usage: storefront [-metrics] <group> <action> [flags]")
	for _, g := range sortedKeys(groups) {
		fmt.Fprintf(w, "\n%s\n", g)
		for _, name := range sortedKeys(groups[g]) {
			fmt.Fprintf(w, "  %-14s %s\n", name, groups[g][name].summary)
		}
	}
}

func parseFlags(name string, names []string, args []string) (*input, error) {
	in := &input{index: -1}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, f := range names {
		switch f {
		case "id":
			fs.StringVar(&in.id, "id", "", "record id")
		case "data":
			fs.StringVar(&in.data, "data", "", "JSON payload")
		case "status":
			fs.StringVar(&in.status, "status", "", "order status")
		case "lang":
			fs.StringVar(&in.lang, "lang", "", "display language (en|ar)")
		case "phone":
			fs.StringVar(&in.phone, "phone", "", "phone number")
		case "name":
			fs.StringVar(&in.name, "name", "", "name")
		case "branch":
			fs.StringVar(&in.branch, "branch", "", "branch id")
		case "product":
			fs.StringVar(&in.product, "product", "", "product id")
		case "unit":
			fs.StringVar(&in.unit, "unit", "", "unit id")
		case "type":
			fs.StringVar(&in.staffType, "type", "", "staff or order type")
		case "staff":
			fs.StringVar(&in.staff, "staff", "", "staff member id")
		case "preset":
			fs.StringVar(&in.preset, "preset", "", "cancellation preset (30sec|60sec|90sec|2min|3min|5min)")
		case "amount":
			fs.StringVar(&in.amount, "amount", "", "order amount")
		case "quantity":
			fs.StringVar(&in.quantity, "quantity", "", "stock quantity")
		case "index":
			fs.IntVar(&in.index, "index", -1, "tier index")
		case "seconds":
			fs.IntVar(&in.seconds, "seconds", 0, "seconds")
		case "eta":
			fs.IntVar(&in.eta, "eta", 0, "estimated minutes")
		}
	}
	if err := fs.Parse(args); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid flags")
	}
	if fs.NArg() > 0 {
		return nil, usageError(fmt.Sprintf("unexpected arguments: %s", strings.Join(fs.Args(), " ")))
	}
	in.name = validators.SanitizeString(in.name, maxNameLen)
	in.phone = validators.SanitizeString(in.phone, maxPhoneLen)
	return in, nil
}

func usageError(msg string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, msg)
}

func requireFlag(value, flagName string) error {
	if strings.TrimSpace(value) == "" {
		return usageError(fmt.Sprintf("-%s is required", flagName))
	}
	return nil
}

func requireID(in *input) (types.ID, error) {
	if err := requireFlag(in.id, "id"); err != nil {
		return "", err
	}
	return types.ID(in.id).Normalized(), nil
}

func decode(in *input, dest any) error {
	return validators.DecodeJSONString(in.data, dest)
}

func parseDecimal(value, flagName string) (decimal.Decimal, error) {
	if err := requireFlag(value, flagName); err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("-%s must be a number", flagName))
	}
	return d, nil
}

func notFound(what string, id types.ID) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("%s %s not found", what, id))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
