// Package cmd - shipping command
package cmd

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"pottery-cost/core/output"
	"pottery-cost/core/shipping"
	"pottery-cost/internal/config"
	"pottery-cost/internal/errors"
)

var shipFlags struct {
	weight    string
	dims      string
	zone      string
	speed     string
	declared  string
	duty      string
	vat       string
	deMinimis string
	baseRate  string
	perKg     string
	divisor   string
}

var shippingCmd = &cobra.Command{
	Use:   "shipping",
	Short: "Quote shipping, duty and VAT for a packed box",
	Long: `Work out the billable weight of a box and quote its shipping cost.
International zones also get duty and VAT on the declared value.

Examples:
  potcost shipping --weight 1.2 --dims 30x20x15
  potcost shipping --weight 2 --dims 40x30x30 --zone zone3 --speed express \
    --declared 120 --duty 8 --vat 20 --de-minimis 50`,
	Args: cobra.NoArgs,
	RunE: runShipping,
}

func init() {
	f := shippingCmd.Flags()
	f.StringVar(&shipFlags.weight, "weight", "0", "actual weight in kg")
	f.StringVar(&shipFlags.dims, "dims", "0x0x0", "box size in cm as LxWxH")
	f.StringVar(&shipFlags.zone, "zone", "domestic", "destination zone (domestic, zone1..zone4)")
	f.StringVar(&shipFlags.speed, "speed", "standard", "service speed (economy, standard, express)")
	f.StringVar(&shipFlags.declared, "declared", "0", "declared customs value")
	f.StringVar(&shipFlags.duty, "duty", "0", "duty percent")
	f.StringVar(&shipFlags.vat, "vat", "0", "VAT percent")
	f.StringVar(&shipFlags.deMinimis, "de-minimis", "0", "declared value at or below which no duty is charged")
	f.StringVar(&shipFlags.baseRate, "base-rate", "", "carrier base rate (default tariff when unset)")
	f.StringVar(&shipFlags.perKg, "per-kg", "", "carrier rate per billable kg (default tariff when unset)")
	f.StringVar(&shipFlags.divisor, "divisor", "", "volumetric divisor in cm³ per kg")

	rootCmd.AddCommand(shippingCmd)
}

func parseAmount(flag, v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return decimal.Zero, errors.Newf(errors.TypeInput, "--%s: %q is not a number", flag, v)
	}
	return d, nil
}

func parseDims(v string) (l, w, h decimal.Decimal, err error) {
	parts := strings.Split(strings.ToLower(v), "x")
	if len(parts) != 3 {
		return l, w, h, errors.Newf(errors.TypeInput, "--dims: %q is not LxWxH", v)
	}
	var out [3]decimal.Decimal
	for i, p := range parts {
		if out[i], err = parseAmount("dims", p); err != nil {
			return l, w, h, err
		}
	}
	return out[0], out[1], out[2], nil
}

func shippingRequest() (shipping.Request, error) {
	var req shipping.Request
	var err error

	if req.Parcel.ActualWeightKg, err = parseAmount("weight", shipFlags.weight); err != nil {
		return req, err
	}
	if req.Parcel.LengthCm, req.Parcel.WidthCm, req.Parcel.HeightCm, err = parseDims(shipFlags.dims); err != nil {
		return req, err
	}
	if req.Zone, err = shipping.ParseZone(shipFlags.zone); err != nil {
		return req, err
	}
	if req.Speed, err = shipping.ParseSpeed(shipFlags.speed); err != nil {
		return req, err
	}

	customs := []struct {
		flag string
		val  string
		dst  *decimal.Decimal
	}{
		{"declared", shipFlags.declared, &req.Customs.DeclaredValue},
		{"duty", shipFlags.duty, &req.Customs.DutyPercent},
		{"vat", shipFlags.vat, &req.Customs.VATPercent},
		{"de-minimis", shipFlags.deMinimis, &req.Customs.DeMinimis},
	}
	for _, c := range customs {
		if *c.dst, err = parseAmount(c.flag, c.val); err != nil {
			return req, err
		}
	}

	req.Rates = shipping.DefaultRates()
	rates := []struct {
		flag string
		val  string
		dst  *decimal.Decimal
	}{
		{"base-rate", shipFlags.baseRate, &req.Rates.BaseRate},
		{"per-kg", shipFlags.perKg, &req.Rates.PerKgRate},
		{"divisor", shipFlags.divisor, &req.Rates.DimDivisor},
	}
	for _, r := range rates {
		if r.val == "" {
			continue
		}
		if *r.dst, err = parseAmount(r.flag, r.val); err != nil {
			return req, err
		}
	}
	return req, nil
}

func runShipping(cmd *cobra.Command, args []string) error {
	req, err := shippingRequest()
	if err != nil {
		return err
	}
	res := shipping.Quote(req)
	cur := config.Get().Currency

	w := newWriter()
	w.Header("Shipping quote: " + res.Zone.String() + ", " + res.Speed.String())

	table := w.NewTable("", "").AlignRight(1)
	table.AddRow("Volumetric weight", res.VolumetricWeightKg.String()+" kg")
	table.AddRow("Billable weight", res.BillableWeightKg.String()+" kg")
	table.AddRow("Shipping", output.MoneyDecimal(res.Shipping, cur))
	if res.Zone.International() {
		duty := output.MoneyDecimal(res.Duty, cur)
		if !res.DutyApplied {
			duty += " (under de minimis)"
		}
		table.AddRow("Duty", duty)
		table.AddRow("VAT", output.MoneyDecimal(res.VAT, cur))
	}
	table.AddRow("Landed cost", output.MoneyDecimal(res.Landed, cur))
	table.Render()
	return nil
}
