package main

import (
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/zeebo/simlab/bigint"
	"github.com/zeebo/simlab/congruential"
)

const linearHelp = `linear parameters:
simlab linear -seed x0 -k k -c c (-p modulus -n length | -count -p count) [-d decimals]
[-json] [-log-level level]
`

const multiplicativeHelp = `multiplicative parameters:
simlab multiplicative -seed odd-x0 -k k (-p modulus -n length | -count -p count) [-d decimals]
[-family 3+8k|5+8k] [-json] [-log-level level]
`

const paramsHelp = `params parameters:
simlab params -k k -m modulus -c c [-json] [-log-level level]
`

// maxDecimals bounds the rendering precision of normalized values.
const maxDecimals = 32

func runLinear(args []string, out io.Writer) error {
	return runGenerator("linear", linearHelp, true, args, out)
}

func runMultiplicative(args []string, out io.Writer) error {
	return runGenerator("multiplicative", multiplicativeHelp, false, args, out)
}

func runGenerator(name, help string, linear bool, args []string, out io.Writer) error {
	var (
		opts   options
		count  bool
		fields = make(map[string]*string)
	)
	fs := newFlagSet(name, help, &opts)
	fs.BoolVar(&count, "count", false, "treat -p as the number of values to generate")

	names := []string{
		congruential.FieldSeed,
		congruential.FieldIndex,
		congruential.FieldRange,
		congruential.FieldDecimals,
		congruential.FieldLength,
	}
	if linear {
		names = append(names, congruential.FieldIncrement)
	} else {
		names = append(names, congruential.FieldFamily)
	}
	for _, field := range names {
		fields[field] = fs.String(field, "", field+" parameter")
	}

	l, err := parse(fs, &opts, args)
	if err != nil {
		return err
	}

	form := make(map[string]string, len(fields))
	for field, v := range fields {
		form[field] = *v
	}
	req, err := congruential.ParseForm(form, count)
	if err != nil {
		return fail(l, err)
	}

	generate := congruential.Multiplicative
	if linear {
		generate = congruential.Linear
	}

	rows, meta, err := generate(req)
	if err != nil {
		return fail(l, err)
	}
	fp := congruential.Fingerprint(rows)
	l.Debug("generated", "rows", len(rows), "m", meta.Modulus, "g", meta.Exponent, "fingerprint", fmt.Sprintf("%016x", fp))

	d := decimals(req.Decimals)
	if opts.json {
		return writeJSON(out, newSequenceJSON(rows, meta, fp, d))
	}
	return renderSequence(out, rows, meta, fp, d)
}

func runParams(args []string, out io.Writer) error {
	var (
		opts    options
		k, m, c string
	)
	fs := newFlagSet("params", paramsHelp, &opts)
	fs.StringVar(&k, "k", "", "multiplier index")
	fs.StringVar(&m, "m", "", "modulus, a power of two")
	fs.StringVar(&c, "c", "", "increment")

	l, err := parse(fs, &opts, args)
	if err != nil {
		return err
	}

	var ints [3]*big.Int
	for i, f := range []struct{ name, raw string }{{"k", k}, {"m", m}, {"c", c}} {
		if ints[i], err = parseInteger(f.name, f.raw); err != nil {
			return fail(l, err)
		}
	}

	meta, err := congruential.LinearParameters(ints[0], ints[1], ints[2])
	if err != nil {
		return fail(l, err)
	}

	if opts.json {
		return writeJSON(out, newMetadataJSON(meta))
	}
	return renderMetadata(out, meta)
}

// parseInteger parses a flag value named name. An empty value is missing and
// returns nil.
func parseInteger(name, raw string) (*big.Int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := bigint.ToInteger(raw)
	if err != nil {
		return nil, bigint.Conversion.New("%s: %q is not an integer", name, raw)
	}
	return v, nil
}

// decimals converts the requested precision to a rendering precision.
func decimals(d *big.Int) int {
	switch {
	case d == nil || d.Sign() <= 0:
		return 0
	case !d.IsInt64() || d.Int64() > maxDecimals:
		return maxDecimals
	}
	return int(d.Int64())
}

func formatNormalized(v float64, d int) string {
	return strconv.FormatFloat(v, 'f', d, 64)
}

func renderMetadata(w io.Writer, meta congruential.Metadata) error {
	_, err := fmt.Fprintf(w, "a = %v\nm = %v\ng = %d\n", meta.Multiplier, meta.Modulus, meta.Exponent)
	return err
}

func renderSequence(w io.Writer, rows []congruential.Row, meta congruential.Metadata, fp uint64, d int) error {
	if err := renderMetadata(w, meta); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "fingerprint = %016x\n\n", fp); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "i\tX(i-1)\toperation\tX(i)\tr(i)")
	for _, row := range rows {
		fmt.Fprintf(tw, "%d\t%v\t%s\t%v\t%s\n",
			row.Index, row.Previous, row.Operation(), row.Current, formatNormalized(row.Normalized, d))
	}
	return tw.Flush()
}

type metadataJSON struct {
	Multiplier string `json:"a"`
	Modulus    string `json:"m"`
	Exponent   int    `json:"g"`
}

func newMetadataJSON(meta congruential.Metadata) metadataJSON {
	return metadataJSON{
		Multiplier: meta.Multiplier.String(),
		Modulus:    meta.Modulus.String(),
		Exponent:   meta.Exponent,
	}
}

type rowJSON struct {
	Index      int    `json:"i"`
	Previous   string `json:"previous"`
	Operation  string `json:"operation"`
	Current    string `json:"current"`
	Normalized string `json:"normalized"`
}

type sequenceJSON struct {
	Metadata    metadataJSON `json:"metadata"`
	Fingerprint string       `json:"fingerprint"`
	Rows        []rowJSON    `json:"rows"`
}

func newSequenceJSON(rows []congruential.Row, meta congruential.Metadata, fp uint64, d int) sequenceJSON {
	out := sequenceJSON{
		Metadata:    newMetadataJSON(meta),
		Fingerprint: fmt.Sprintf("%016x", fp),
		Rows:        make([]rowJSON, 0, len(rows)),
	}
	for _, row := range rows {
		out.Rows = append(out.Rows, rowJSON{
			Index:      row.Index,
			Previous:   row.Previous.String(),
			Operation:  row.Operation(),
			Current:    row.Current.String(),
			Normalized: formatNormalized(row.Normalized, d),
		})
	}
	return out
}
