package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/regform/pkg/cli/config"
	"github.com/secmon-lab/regform/pkg/domain/types"
	"github.com/secmon-lab/regform/pkg/usecase"
	"github.com/secmon-lab/regform/pkg/utils/logging"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

// ErrRegistrationInvalid is returned when any checked registration has errors
var ErrRegistrationInvalid = goerr.New("registration has validation errors")

const checkConcurrency = 8

// registration is one set of field values to check
type registration struct {
	name   string
	inputs []usecase.FieldInput
}

func cmdCheck() *cli.Command {
	var files []string
	var fields []string

	return &cli.Command{
		Name:      "check",
		Aliases:   []string{"c"},
		Usage:     "Validate registrations from TOML files or flags",
		ArgsUsage: "[file.toml ...]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "TOML file mapping field identifiers to values",
				Destination: &files,
			},
			&cli.StringSliceFlag{
				Name:        "field",
				Usage:       "Field value as name=value, checked as one registration",
				Destination: &fields,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = logging.With(ctx, logging.Default())
			files = append(files, c.Args().Slice()...)

			var regs []registration
			for _, path := range files {
				reg, err := loadRegistration(path)
				if err != nil {
					return err
				}
				regs = append(regs, reg)
			}
			if len(fields) > 0 {
				reg, err := parseFieldArgs(fields)
				if err != nil {
					return err
				}
				regs = append(regs, reg)
			}
			if len(regs) == 0 {
				return goerr.New("no registration given; use --file or --field")
			}

			results, err := checkRegistrations(ctx, usecase.NewCheckUseCase(time.Now), regs)
			if err != nil {
				return err
			}

			if !printCheckResults(color.Output, regs, results) {
				return ErrRegistrationInvalid
			}
			return nil
		},
	}
}

// loadRegistration reads a flat TOML table of field identifier to value.
// Known fields are checked in display order, missing ones as blank; extra
// keys follow in name order.
func loadRegistration(path string) (registration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return registration{}, goerr.Wrap(err, "failed to read registration file", goerr.V("path", path))
	}

	var values map[string]string
	if err := toml.Unmarshal(data, &values); err != nil {
		return registration{}, goerr.Wrap(err, "failed to parse registration file", goerr.V("path", path))
	}

	return registration{name: path, inputs: toInputs(values)}, nil
}

func parseFieldArgs(args []string) (registration, error) {
	values := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return registration{}, goerr.Wrap(config.ErrInvalidFieldArg, "bad --field", goerr.V("arg", arg))
		}
		values[name] = value
	}
	return registration{name: "(flags)", inputs: toInputs(values)}, nil
}

func toInputs(values map[string]string) []usecase.FieldInput {
	var inputs []usecase.FieldInput
	for _, field := range types.AllFieldIDs() {
		inputs = append(inputs, usecase.FieldInput{Field: field, Value: values[field.String()]})
	}

	var extra []string
	for name := range values {
		if !types.FieldID(name).IsKnown() {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	for _, name := range extra {
		inputs = append(inputs, usecase.FieldInput{Field: types.FieldID(name), Value: values[name]})
	}
	return inputs
}

func checkRegistrations(ctx context.Context, uc *usecase.CheckUseCase, regs []registration) ([]*usecase.CheckResult, error) {
	results := make([]*usecase.CheckResult, len(regs))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(checkConcurrency)
	for i, reg := range regs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return goerr.Wrap(err, "check cancelled", goerr.V("registration", reg.name))
			}
			results[i] = uc.CheckRegistration(ctx, reg.inputs)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// printCheckResults writes one block per registration and reports whether
// every registration passed.
func printCheckResults(w io.Writer, regs []registration, results []*usecase.CheckResult) bool {
	ok := true
	for i, reg := range regs {
		result := results[i]
		if result.Valid() {
			_, _ = fmt.Fprintf(w, "%s %s\n", color.GreenString("PASS"), reg.name)
			continue
		}

		ok = false
		_, _ = fmt.Fprintf(w, "%s %s\n", color.RedString("FAIL"), reg.name)
		for _, e := range result.Errors {
			msg := e.Message
			if msg == "" {
				msg = color.YellowString("(no message)")
			}
			_, _ = fmt.Fprintf(w, "  %s: %s\n", color.CyanString(e.Field.String()), msg)
		}
	}
	return ok
}
